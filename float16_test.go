package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfRoundTripExactForChannelValues(t *testing.T) {
	// Values with short binary fractions survive binary16 exactly.
	for _, v := range []float32{0, 0.25, 0.5, 0.75, 1, -1, 0.125} {
		assert.Equal(t, v, halfToFloat32(halfBits(v)), "value %v", v)
	}
}

func TestHalfRoundTripStaysClose(t *testing.T) {
	for _, v := range []float32{0.1, 0.2, 0.7, 0.999, 1.0 / 255.0, 128.0 / 255.0} {
		got := halfToFloat32(halfBits(v))
		assert.InDelta(t, float64(v), float64(got), 1e-3, "value %v", v)
	}
}

func TestHalfSpecialValues(t *testing.T) {
	assert.Equal(t, float32(0), halfToFloat32(halfBits(0)))
	// Subnormal float32 inputs flush toward zero rather than exploding.
	tiny := float32(1e-10)
	assert.Equal(t, float32(0), halfToFloat32(halfBits(tiny)))
}

func TestPackUnpackHalfChannels(t *testing.T) {
	src := []float32{0, 0.25, 0.5, 1, 0.75, 0.125, 1, 0}
	packed := make([]uint16, len(src))
	packHalfChannels(packed, src)

	got := make([]float32, len(src))
	unpackHalfChannels(got, packed)

	require.Equal(t, src, got)
}
