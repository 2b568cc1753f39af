package main

// stampMode selects how a brush stamp combines with existing ink. The mode
// rides in slot five of the color calls, past the four channel slots.
type stampMode int

const (
	stampReplace stampMode = iota
	stampMix
)

// canvas stores the paint surface as flat float32 RGBA channels in the target
// [0,1] convention. Host-side writes bump a generation counter so the OpenCL
// presenter can skip redundant uploads.
type canvas struct {
	width, height int
	channels      []float32
	writeGen      uint64
	syncedGen     uint64
}

// newCanvas allocates a canvas with a properly sized channel buffer.
func newCanvas(width, height int) *canvas {
	return &canvas{
		width:    width,
		height:   height,
		channels: make([]float32, width*height*channelsPerPixel),
	}
}

// pixelBase returns the channel buffer offset of the pixel at (x, y).
func (c *canvas) pixelBase(x, y int) int {
	return (y*c.width + x) * channelsPerPixel
}

// fill floods every pixel with the given target-domain color.
func (c *canvas) fill(col [channelsPerPixel]float32) {
	for i := 0; i < len(c.channels); i += channelsPerPixel {
		c.channels[i] = col[0]
		c.channels[i+1] = col[1]
		c.channels[i+2] = col[2]
		c.channels[i+3] = col[3]
	}
	c.writeGen++
}

// stamp paints the brush footprint centered at (cx, cy), skipping cells that
// fall outside the canvas or under the stencil mask. Returns how many cells
// actually took ink, which drives the audio feedback level.
func (c *canvas) stamp(cx, cy int, footprint []gridOffset, col [channelsPerPixel]float32, mode stampMode, mask *stencil) int {
	painted := 0
	for _, offset := range footprint {
		x := cx + offset.dx
		y := cy + offset.dy
		if x < 0 || x >= c.width || y < 0 || y >= c.height {
			continue
		}
		if mask != nil && mask.blocked(x, y) {
			continue
		}
		base := c.pixelBase(x, y)
		switch mode {
		case stampMix:
			a := col[3]
			inv := 1 - a
			c.channels[base] = col[0]*a + c.channels[base]*inv
			c.channels[base+1] = col[1]*a + c.channels[base+1]*inv
			c.channels[base+2] = col[2]*a + c.channels[base+2]*inv
			if c.channels[base+3] < a {
				c.channels[base+3] = a
			}
		default:
			c.channels[base] = col[0]
			c.channels[base+1] = col[1]
			c.channels[base+2] = col[2]
			c.channels[base+3] = col[3]
		}
		painted++
	}
	if painted > 0 {
		c.writeGen++
	}
	return painted
}

// readPixel returns the target-domain channels of the pixel at (x, y).
func (c *canvas) readPixel(x, y int) [channelsPerPixel]float32 {
	base := c.pixelBase(x, y)
	return [channelsPerPixel]float32{
		c.channels[base],
		c.channels[base+1],
		c.channels[base+2],
		c.channels[base+3],
	}
}

// row returns the channel slice backing canvas row y.
func (c *canvas) row(y int) []float32 {
	base := y * c.width * channelsPerPixel
	return c.channels[base : base+c.width*channelsPerPixel]
}

// modified reports whether host writes happened since the last device sync.
func (c *canvas) modified() bool {
	return c.writeGen != c.syncedGen
}

// clearModified records that the device copy matches the host buffer.
func (c *canvas) clearModified() {
	c.syncedGen = c.writeGen
}
