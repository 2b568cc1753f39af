package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStencilGenerateMasksCells(t *testing.T) {
	s := newStencil(64, 64)
	s.rng = rand.New(rand.NewSource(42))

	s.generate(32, 32)

	masked := 0
	for _, c := range s.cells {
		if c {
			masked++
		}
	}
	assert.Greater(t, masked, 0, "segments must mask at least some cells")
	assert.True(t, s.dirty)
}

func TestStencilGenerateIsSeedDeterministic(t *testing.T) {
	a := newStencil(64, 64)
	a.rng = rand.New(rand.NewSource(7))
	a.generate(32, 32)

	b := newStencil(64, 64)
	b.rng = rand.New(rand.NewSource(7))
	b.generate(32, 32)

	assert.Equal(t, a.cells, b.cells)
}

func TestStencilKeepsExclusionZoneClear(t *testing.T) {
	s := newStencil(64, 64)
	s.rng = rand.New(rand.NewSource(3))
	cx, cy := 32.0, 32.0

	s.generate(cx, cy)

	r2 := float64(stencilExclusionRad * stencilExclusionRad)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy < r2 {
				require.False(t, s.cells[y*64+x], "cell (%d,%d) inside the exclusion zone is masked", x, y)
			}
		}
	}
}

func TestStencilBlockedOutOfBounds(t *testing.T) {
	s := newStencil(8, 8)
	assert.True(t, s.blocked(-1, 0))
	assert.True(t, s.blocked(0, -1))
	assert.True(t, s.blocked(8, 0))
	assert.True(t, s.blocked(0, 8))
	assert.False(t, s.blocked(4, 4))
}

func TestStencilIndicesMatchMaskedCells(t *testing.T) {
	s := newStencil(8, 8)
	s.cells[3] = true
	s.cells[17] = true
	s.cells[63] = true

	idx := s.indices(nil)

	assert.Equal(t, []int32{3, 17, 63}, idx)

	// Reuses the destination slice across regenerations.
	s.cells[17] = false
	idx = s.indices(idx)
	assert.Equal(t, []int32{3, 63}, idx)
}
