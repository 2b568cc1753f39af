package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPainterDefaults(t *testing.T) {
	p := newPainter()
	assert.Equal(t, [channelsPerPixel]float32{1, 1, 1, 1}, p.foreground())
	assert.Equal(t, [channelsPerPixel]float32{0, 0, 0, 1}, p.background())
	assert.Equal(t, stampReplace, p.stampMode())
}

func TestPainterOmittedAlphaDefaultsToOpaque(t *testing.T) {
	p := newPainter()
	p.setForeground(1.0, 0.5, 0.0)
	assert.Equal(t, [channelsPerPixel]float32{1, 0.5, 0, 1}, p.foreground())
}

func TestPainterIgnoresNonNumericSlots(t *testing.T) {
	p := newPainter()
	p.setForeground(1.0, nil, 0.25)
	fg := p.foreground()
	assert.Equal(t, float32(1), fg[0])
	assert.Equal(t, float32(0), fg[1], "non-numeric slot contributes nothing")
	assert.Equal(t, float32(0.25), fg[2])
}

func TestPainterClampsOutOfRangeChannels(t *testing.T) {
	p := newPainter()
	p.setForeground(1.5, -0.5, 0.5)
	fg := p.foreground()
	assert.Equal(t, float32(1), fg[0])
	assert.Equal(t, float32(0), fg[1])
}

func TestPainterModeSelectorInSlotFive(t *testing.T) {
	p := newPainter()
	p.setForeground(1.0, 1.0, 1.0, 1.0, "mix")
	assert.Equal(t, stampMix, p.stampMode())
	p.setForeground(1.0, 1.0, 1.0, 1.0, "replace")
	assert.Equal(t, stampReplace, p.stampMode())
	// Unknown selectors leave the mode alone.
	p.setForeground(1.0, 1.0, 1.0, 1.0, "sideways")
	assert.Equal(t, stampReplace, p.stampMode())
}

func TestPainterThroughAdapterLegacyAggregate(t *testing.T) {
	p := newPainter()
	a := newColorAdapter(p.setForeground, p.setBackground)

	a.SetForeground([]float64{255, 128, 0})

	fg := p.foreground()
	assert.Equal(t, float32(1), fg[0])
	assert.InDelta(t, 128.0/255.0, float64(fg[1]), 1e-6)
	assert.Equal(t, float32(0), fg[2])
	assert.Equal(t, float32(1), fg[3])
}
