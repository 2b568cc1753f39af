package main

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formatPixelRows renders a pixel buffer as one hex line per canvas row so
// golden diffs stay readable.
func formatPixelRows(pixels []byte, width int) []byte {
	var b strings.Builder
	rowBytes := width * channelsPerPixel
	for base := 0; base < len(pixels); base += rowBytes {
		b.WriteString(hex.EncodeToString(pixels[base : base+rowBytes]))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func TestCPUPresenterGoldenPixels(t *testing.T) {
	cv := newCanvas(4, 4)
	for i := range cv.channels {
		cv.channels[i] = float32(i) / float32(len(cv.channels))
	}
	mask := newStencil(4, 4)
	p := newCPUPresenter(cv, mask, 2)

	pixels, err := p.present([channelsPerPixel]float32{0, 0, 0, 1}, 1.0, 0, false)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "cpu_present_pixels", formatPixelRows(pixels, 4))
}

func TestCPUPresenterConvertsWithoutFade(t *testing.T) {
	cv := newCanvas(2, 2)
	cv.fill([channelsPerPixel]float32{0.5, 0.25, 1, 1})
	mask := newStencil(2, 2)
	p := newCPUPresenter(cv, mask, 1)

	pixels, err := p.present([channelsPerPixel]float32{0, 0, 0, 1}, 1.0, 0, false)
	require.NoError(t, err)

	require.Len(t, pixels, 2*2*channelsPerPixel)
	assert.Equal(t, byte(128), pixels[0])
	assert.Equal(t, byte(64), pixels[1])
	assert.Equal(t, byte(255), pixels[2])
	assert.Equal(t, byte(255), pixels[3])
}

func TestCPUPresenterFadeStepsCombine(t *testing.T) {
	cv := newCanvas(2, 2)
	cv.fill([channelsPerPixel]float32{1, 1, 1, 1})
	mask := newStencil(2, 2)
	p := newCPUPresenter(cv, mask, 2)

	// Two steps at 0.5 retention collapse into a single 0.25 factor.
	_, err := p.present([channelsPerPixel]float32{0, 0, 0, 1}, 0.5, 2, false)
	require.NoError(t, err)

	got := cv.readPixel(0, 0)
	assert.InDelta(t, 0.25, float64(got[0]), 1e-6)
	assert.InDelta(t, 0.25, float64(got[2]), 1e-6)
	assert.InDelta(t, 1.0, float64(got[3]), 1e-6, "alpha fades toward the background's alpha")
}

func TestCPUPresenterFadeMovesTowardBackground(t *testing.T) {
	cv := newCanvas(2, 2)
	cv.fill([channelsPerPixel]float32{1, 0, 0, 1})
	mask := newStencil(2, 2)
	p := newCPUPresenter(cv, mask, 1)

	bg := [channelsPerPixel]float32{0, 0, 0.5, 1}
	_, err := p.present(bg, 0.5, 1, false)
	require.NoError(t, err)

	got := cv.readPixel(1, 1)
	assert.InDelta(t, 0.5, float64(got[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(got[1]), 1e-6)
	assert.InDelta(t, 0.25, float64(got[2]), 1e-6)
}

func TestCPUPresenterStencilTint(t *testing.T) {
	cv := newCanvas(2, 2)
	cv.fill([channelsPerPixel]float32{1, 1, 1, 1})
	mask := newStencil(2, 2)
	mask.cells[0] = true
	p := newCPUPresenter(cv, mask, 1)

	pixels, err := p.present([channelsPerPixel]float32{0, 0, 0, 1}, 1.0, 0, true)
	require.NoError(t, err)

	assert.Equal(t, stencilColor[:], pixels[:channelsPerPixel])
	assert.Equal(t, byte(255), pixels[channelsPerPixel], "unmasked cells convert normally")

	// With the overlay off the masked cell converts like any other.
	pixels, err = p.present([channelsPerPixel]float32{0, 0, 0, 1}, 1.0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, byte(255), pixels[0])
}

func TestCPUPresenterFadeSkipsMaskedCells(t *testing.T) {
	cv := newCanvas(2, 2)
	cv.fill([channelsPerPixel]float32{1, 1, 1, 1})
	mask := newStencil(2, 2)
	mask.cells[3] = true
	p := newCPUPresenter(cv, mask, 1)

	_, err := p.present([channelsPerPixel]float32{0, 0, 0, 1}, 0.5, 1, true)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, float64(cv.readPixel(0, 0)[0]), 1e-6)
	assert.Equal(t, float32(1), cv.readPixel(1, 1)[0], "masked cells hold their ink")
}

func TestAssignRowMasksRoundRobin(t *testing.T) {
	rows := []rowMask{{y: 0}, {y: 1}, {y: 2}, {y: 3}, {y: 4}}
	masks := assignRowMasks(2, rows)
	require.Len(t, masks, 2)
	assert.Len(t, masks[0].rows, 3)
	assert.Len(t, masks[1].rows, 2)

	masks = assignRowMasks(0, rows)
	require.Len(t, masks, 1)
	assert.Len(t, masks[0].rows, 5)
}
