package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertChannelIdempotentOnTargetDomain(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.999, 1} {
		assert.Equal(t, v, convertChannel(v), "value %v already in [0,1] must pass through", v)
	}
}

func TestConvertChannelRescalesLegacyDomain(t *testing.T) {
	assert.Equal(t, 1.0, convertChannel(255.0))
	assert.Equal(t, 128.0/255.0, convertChannel(128.0))
	assert.Equal(t, 2.0/255.0, convertChannel(2.0))
	// Out-of-range legacy values still divide; range policing is the native
	// entry point's job.
	assert.Equal(t, 300.0/255.0, convertChannel(300.0))
}

func TestConvertChannelAcceptsIntegerKinds(t *testing.T) {
	assert.Equal(t, 1.0, convertChannel(255))
	assert.Equal(t, 1.0, convertChannel(uint8(255)))
	assert.Equal(t, 64.0/255.0, convertChannel(int32(64)))
	assert.Equal(t, 200.0/255.0, convertChannel(uint64(200)))
	assert.Equal(t, 96.0/255.0, convertChannel(float32(96)))
}

func TestConvertChannelExactOneIsAmbiguousAndUntouched(t *testing.T) {
	// A bare 1 cannot be told apart from a target-domain 1.0, so it is
	// deliberately not rescaled.
	assert.Equal(t, 1, convertChannel(1))
	assert.Equal(t, 1.0, convertChannel(1.0))
}

func TestConvertChannelNonNumericPassthrough(t *testing.T) {
	assert.Equal(t, "mix", convertChannel("mix"))
	assert.Nil(t, convertChannel(nil))
	assert.Equal(t, true, convertChannel(true))
}

func TestClassifyColorCallPositional(t *testing.T) {
	c := classifyColorCall([]any{255.0, 0.0, 0.0})
	assert.Equal(t, shapePositional, c.shape)
	assert.Len(t, c.slots, 3)

	// A single scalar is positional, not a one-element aggregate.
	c = classifyColorCall([]any{0.5})
	assert.Equal(t, shapePositional, c.shape)

	// A lone string is positional too; strings are not collections here.
	c = classifyColorCall([]any{"sentinel"})
	assert.Equal(t, shapePositional, c.shape)
}

func TestClassifyColorCallAggregate(t *testing.T) {
	c := classifyColorCall([]any{[]float64{255, 0, 0}})
	assert.Equal(t, shapeAggregate, c.shape)
	assert.Len(t, c.slots, 3)

	c = classifyColorCall([]any{[3]int{255, 128, 0}})
	assert.Equal(t, shapeAggregate, c.shape)
	assert.Len(t, c.slots, 3)
}

func TestClassifyColorCallAggregateCapsAtFourSlots(t *testing.T) {
	c := classifyColorCall([]any{[]float64{255, 254, 253, 252, 251, 250}})
	assert.Equal(t, shapeAggregate, c.shape)
	require.Len(t, c.slots, maxChannelSlots)
	assert.Equal(t, 252.0, c.slots[3])
}

func TestConvertedLeavesSlotsBeyondFourAlone(t *testing.T) {
	c := classifyColorCall([]any{255.0, 255.0, 255.0, 255.0, 255.0, "flag"})
	out := c.converted()
	require.Len(t, out, 6)
	for i := 0; i < maxChannelSlots; i++ {
		assert.Equal(t, 1.0, out[i])
	}
	assert.Equal(t, 255.0, out[4], "slot five is past the channel cap")
	assert.Equal(t, "flag", out[5])
}

func TestConvertedDoesNotMutateClassifiedInput(t *testing.T) {
	args := []any{255.0, 128.0, 0.0}
	c := classifyColorCall(args)
	_ = c.converted()
	assert.Equal(t, []any{255.0, 128.0, 0.0}, args)
}
