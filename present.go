package main

import (
	"math"
	"sync"
)

// span represents an inclusive column range inside a row mask.
type span struct{ start, end int }

// rowMask groups contiguous paintable spans for a single canvas row.
type rowMask struct {
	y     int
	spans []span
}

// workerMask collects the row masks assigned to a worker goroutine.
type workerMask struct {
	rows []rowMask
}

// presenter turns the target-domain float canvas into byte pixels for
// WritePixels and applies the per-frame fade batch while doing so.
type presenter interface {
	present(bg [channelsPerPixel]float32, retention float64, fadeSteps int, showStencil bool) ([]byte, error)
	close()
	name() string
}

// cpuPresenter is the fallback presenter used when OpenCL is unavailable. It
// fades and converts rows in parallel across worker goroutines coordinated by
// a cond-var step protocol.
type cpuPresenter struct {
	canvas *canvas
	mask   *stencil
	pixels []byte

	workerCount    int
	workerMasks    []workerMask
	workerMu       sync.Mutex
	workerCond     *sync.Cond
	workerStep     int
	workerPending  int
	workersStarted bool

	stepFactor      float32
	stepBG          [channelsPerPixel]float32
	stepShowStencil bool
}

// newCPUPresenter constructs a presenter over the canvas and stencil and
// launches its worker pool.
func newCPUPresenter(cv *canvas, mask *stencil, workerCount int) *cpuPresenter {
	p := &cpuPresenter{
		canvas:      cv,
		mask:        mask,
		pixels:      make([]byte, cv.width*cv.height*channelsPerPixel),
		workerCount: workerCount,
	}
	if p.workerCount < 1 {
		p.workerCount = 1
	}
	p.workerCond = sync.NewCond(&p.workerMu)
	p.rebuildRowMasks()
	p.startWorkers()
	return p
}

// name identifies the presenter in startup logging.
func (p *cpuPresenter) name() string { return "CPU workers" }

// close is a no-op; the worker goroutines exit with the process.
func (p *cpuPresenter) close() {}

// present fans one fade-and-convert step out to the workers and blocks until
// every row has been processed.
func (p *cpuPresenter) present(bg [channelsPerPixel]float32, retention float64, fadeSteps int, showStencil bool) ([]byte, error) {
	if p.mask.dirty {
		p.rebuildRowMasks()
		p.mask.dirty = false
	}
	factor := float32(1)
	if fadeSteps > 0 {
		factor = float32(math.Pow(retention, float64(fadeSteps)))
	}
	p.workerMu.Lock()
	p.stepFactor = factor
	p.stepBG = bg
	p.stepShowStencil = showStencil
	p.workerPending = p.workerCount
	p.workerStep++
	p.workerCond.Broadcast()
	for p.workerPending > 0 {
		p.workerCond.Wait()
	}
	p.workerMu.Unlock()
	if factor < 1 {
		p.canvas.writeGen++
	}
	return p.pixels, nil
}

// rebuildRowMasks recalculates the row spans describing unmasked cells.
func (p *cpuPresenter) rebuildRowMasks() {
	width := p.canvas.width
	height := p.canvas.height
	rows := make([]rowMask, 0, height)
	for y := 0; y < height; y++ {
		base := y * width
		spans := make([]span, 0, 8)
		in := false
		start := 0
		for x := 0; x < width; x++ {
			blocked := p.mask.cells[base+x]
			if !blocked && !in {
				in = true
				start = x
			}
			if (blocked || x == width-1) && in {
				end := x - 1
				if x == width-1 && !blocked {
					end = x
				}
				if end >= start {
					spans = append(spans, span{start: start, end: end})
				}
				in = false
			}
		}
		rows = append(rows, rowMask{y: y, spans: spans})
	}
	p.workerMu.Lock()
	p.workerMasks = assignRowMasks(p.workerCount, rows)
	p.workerMu.Unlock()
}

// assignRowMasks distributes row masks across worker goroutines in round
// robin fashion.
func assignRowMasks(workerCount int, rows []rowMask) []workerMask {
	if workerCount < 1 {
		workerCount = 1
	}
	masks := make([]workerMask, workerCount)
	for idx, row := range rows {
		workerIdx := idx % workerCount
		masks[workerIdx].rows = append(masks[workerIdx].rows, row)
	}
	return masks
}

// startWorkers launches the background goroutines that fade and convert rows.
func (p *cpuPresenter) startWorkers() {
	if p.workersStarted {
		return
	}
	p.workersStarted = true
	for i := 0; i < p.workerCount; i++ {
		go p.presentWorkerLoop(i)
	}
}

// presentWorkerLoop processes the rows assigned to one worker each step.
func (p *cpuPresenter) presentWorkerLoop(index int) {
	lastStep := 0
	p.workerMu.Lock()
	for {
		for p.workerStep == lastStep {
			p.workerCond.Wait()
		}
		lastStep = p.workerStep
		var mask workerMask
		if index < len(p.workerMasks) {
			mask = p.workerMasks[index]
		}
		factor := p.stepFactor
		bg := p.stepBG
		showStencil := p.stepShowStencil
		p.workerMu.Unlock()

		for _, row := range mask.rows {
			p.processRow(row, factor, bg, showStencil)
		}

		p.workerMu.Lock()
		p.workerPending--
		if p.workerPending == 0 {
			p.workerCond.Broadcast()
		}
	}
}

// processRow fades the paintable spans of one row toward the background and
// rewrites the row's byte pixels. Masked cells take the stencil color when
// the overlay is on and pass through unfaded otherwise.
func (p *cpuPresenter) processRow(row rowMask, factor float32, bg [channelsPerPixel]float32, showStencil bool) {
	width := p.canvas.width
	channels := p.canvas.row(row.y)
	pixelBase := row.y * width * channelsPerPixel
	if factor < 1 {
		for _, sp := range row.spans {
			for x := sp.start; x <= sp.end; x++ {
				base := x * channelsPerPixel
				channels[base] = bg[0] + (channels[base]-bg[0])*factor
				channels[base+1] = bg[1] + (channels[base+1]-bg[1])*factor
				channels[base+2] = bg[2] + (channels[base+2]-bg[2])*factor
				channels[base+3] = bg[3] + (channels[base+3]-bg[3])*factor
			}
		}
	}
	maskBase := row.y * width
	for x := 0; x < width; x++ {
		dst := pixelBase + x*channelsPerPixel
		if showStencil && p.mask.cells[maskBase+x] {
			p.pixels[dst] = stencilColor[0]
			p.pixels[dst+1] = stencilColor[1]
			p.pixels[dst+2] = stencilColor[2]
			p.pixels[dst+3] = stencilColor[3]
			continue
		}
		src := x * channelsPerPixel
		p.pixels[dst] = channelByte(channels[src])
		p.pixels[dst+1] = channelByte(channels[src+1])
		p.pixels[dst+2] = channelByte(channels[src+2])
		p.pixels[dst+3] = channelByte(channels[src+3])
	}
}
