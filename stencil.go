package main

import (
	"math/rand"
	"time"
)

// stencil masks canvas cells that the brush cannot paint over. Segments are
// generated procedurally and can be rerolled at runtime.
type stencil struct {
	width, height int
	cells         []bool
	rng           *rand.Rand
	dirty         bool
}

// newStencil allocates an empty stencil covering the canvas.
func newStencil(width, height int) *stencil {
	return &stencil{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano() + 1)),
	}
}

// generate procedurally lays out masked segments, keeping a clear zone around
// the cursor position (cx, cy).
func (s *stencil) generate(cx, cy float64) {
	for i := range s.cells {
		s.cells[i] = false
	}
	for seg := 0; seg < stencilSegments; seg++ {
		lengthRange := stencilMaxLen - stencilMinLen + 1
		if lengthRange <= 0 {
			lengthRange = 1
		}
		length := stencilMinLen + s.rng.Intn(lengthRange)
		thickness := 1
		if stencilThickVariance > 0 {
			thickness += s.rng.Intn(stencilThickVariance + 1)
		}
		horizontal := s.rng.Intn(2) == 0
		x := s.rng.Intn(s.width-4) + 2
		y := s.rng.Intn(s.height-4) + 2
		dx, dy := 0, 1
		if horizontal {
			dx, dy = 1, 0
		}
		perpX, perpY := dy, dx
		px, py := x, y
		for l := 0; l < length; l++ {
			if px <= 1 || px >= s.width-1 || py <= 1 || py >= s.height-1 {
				break
			}
			for t := -thickness; t <= thickness; t++ {
				s.trySetCell(px+perpX*t, py+perpY*t, cx, cy)
			}
			px += dx
			py += dy
		}
	}
	s.dirty = true
}

// trySetCell marks a cell as masked while enforcing spacing from the cursor.
func (s *stencil) trySetCell(x, y int, cx, cy float64) {
	if x <= 1 || x >= s.width-1 || y <= 1 || y >= s.height-1 {
		return
	}
	dx := float64(x) - cx
	dy := float64(y) - cy
	if dx*dx+dy*dy < float64(stencilExclusionRad*stencilExclusionRad) {
		return
	}
	s.cells[y*s.width+x] = true
	s.dirty = true
}

// blocked reports whether the coordinates reference a masked cell.
// Out-of-bounds coordinates count as blocked.
func (s *stencil) blocked(x, y int) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return true
	}
	if len(s.cells) == 0 {
		return false
	}
	return s.cells[y*s.width+x]
}

// indices collects the flat cell indices of all masked cells, reusing dst.
// The OpenCL presenter uploads these for its tint kernel.
func (s *stencil) indices(dst []int32) []int32 {
	dst = dst[:0]
	for i, masked := range s.cells {
		if masked {
			dst = append(dst, int32(i))
		}
	}
	return dst
}
