//go:build opencl

package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// openCLPresenter keeps the float canvas resident on an OpenCL device, runs
// the fade batch and byte conversion there, and reads back both the faded
// channels and the final pixel bytes each frame. Host writes are uploaded
// only when the canvas generation moved.
type openCLPresenter struct {
	context           *cl.Context
	queue             *cl.CommandQueue
	program           *cl.Program
	fadeKernel        *cl.Kernel
	presentKernel     *cl.Kernel
	tintStencilKernel *cl.Kernel
	canvasBuf         *cl.MemObject
	pixelBuf          *cl.MemObject
	maskIndexBuf      *cl.MemObject
	canvas            *canvas
	mask              *stencil
	pixels            []byte
	maskIndices       []int32
	maskCount         int
	maskSynced        bool
	deviceName        string
}

// The tint kernel bakes in the same stencil color the CPU presenter uses.
const presentKernelSource = `__kernel void fade_step(
    const int count,
    const float factor,
    const float bg_r,
    const float bg_g,
    const float bg_b,
    const float bg_a,
    __global float* canvas)
{
    int idx = get_global_id(0);
    if (idx >= count) {
        return;
    }
    int ch = idx & 3;
    float bg = ch == 0 ? bg_r : (ch == 1 ? bg_g : (ch == 2 ? bg_b : bg_a));
    canvas[idx] = bg + (canvas[idx] - bg) * factor;
}

__kernel void present_rgba(
    const int count,
    __global const float* canvas,
    __global uchar* pixels)
{
    int idx = get_global_id(0);
    if (idx >= count) {
        return;
    }
    float v = clamp(canvas[idx], 0.0f, 1.0f);
    pixels[idx] = (uchar)(v * 255.0f + 0.5f);
}

__kernel void tint_stencil(
    const int mask_count,
    __global const int* mask_indices,
    __global uchar* pixels)
{
    int gid = get_global_id(0);
    if (gid >= mask_count) {
        return;
    }
    int base = mask_indices[gid] * 4;
    pixels[base] = 30;
    pixels[base + 1] = 40;
    pixels[base + 2] = 80;
    pixels[base + 3] = 255;
}`

func newOpenCLPresenter(cv *canvas, mask *stencil) (*openCLPresenter, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	var device *cl.Device
	for _, p := range platforms {
		devices, derr := p.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, p := range platforms {
			devices, derr := p.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{presentKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	fadeKernel, err := program.CreateKernel("fade_step")
	if err != nil {
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating fade kernel: %w", err)
	}
	presentKernel, err := program.CreateKernel("present_rgba")
	if err != nil {
		fadeKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating present kernel: %w", err)
	}
	tintStencilKernel, err := program.CreateKernel("tint_stencil")
	if err != nil {
		presentKernel.Release()
		fadeKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating stencil tint kernel: %w", err)
	}
	count := cv.width * cv.height * channelsPerPixel
	floatBytes := count * int(unsafe.Sizeof(float32(0)))
	canvasBuf, err := context.CreateEmptyBuffer(cl.MemReadWrite, floatBytes)
	if err != nil {
		tintStencilKernel.Release()
		presentKernel.Release()
		fadeKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating canvas buffer: %w", err)
	}
	pixelBuf, err := context.CreateEmptyBuffer(cl.MemReadWrite, count)
	if err != nil {
		canvasBuf.Release()
		tintStencilKernel.Release()
		presentKernel.Release()
		fadeKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating pixel buffer: %w", err)
	}
	maskIndexBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, cv.width*cv.height*int(unsafe.Sizeof(int32(0))))
	if err != nil {
		pixelBuf.Release()
		canvasBuf.Release()
		tintStencilKernel.Release()
		presentKernel.Release()
		fadeKernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating stencil index buffer: %w", err)
	}

	p := &openCLPresenter{
		context:           context,
		queue:             queue,
		program:           program,
		fadeKernel:        fadeKernel,
		presentKernel:     presentKernel,
		tintStencilKernel: tintStencilKernel,
		canvasBuf:         canvasBuf,
		pixelBuf:          pixelBuf,
		maskIndexBuf:      maskIndexBuf,
		canvas:            cv,
		mask:              mask,
		pixels:            make([]byte, count),
		deviceName:        device.Name(),
	}

	if err := p.presentKernel.SetArgs(int32(count), p.canvasBuf, p.pixelBuf); err != nil {
		p.close()
		return nil, fmt.Errorf("setting present kernel arguments: %w", err)
	}
	if err := p.tintStencilKernel.SetArgs(int32(0), p.maskIndexBuf, p.pixelBuf); err != nil {
		p.close()
		return nil, fmt.Errorf("setting stencil tint kernel arguments: %w", err)
	}

	return p, nil
}

// name identifies the presenter in startup logging.
func (p *openCLPresenter) name() string {
	return fmt.Sprintf("OpenCL (device: %s)", p.deviceName)
}

// syncMaskIndices re-uploads the stencil index buffer after a regeneration.
func (p *openCLPresenter) syncMaskIndices() error {
	p.maskIndices = p.mask.indices(p.maskIndices)
	p.maskCount = len(p.maskIndices)
	if p.maskCount > 0 {
		ptr := unsafe.Pointer(&p.maskIndices[0])
		byteLen := p.maskCount * int(unsafe.Sizeof(int32(0)))
		if _, err := p.queue.EnqueueWriteBuffer(p.maskIndexBuf, false, 0, byteLen, ptr, nil); err != nil {
			return fmt.Errorf("writing stencil index buffer: %w", err)
		}
	}
	if err := p.tintStencilKernel.SetArgInt32(0, int32(p.maskCount)); err != nil {
		return fmt.Errorf("setting stencil count: %w", err)
	}
	p.maskSynced = true
	return nil
}

// present uploads host canvas changes if any, fades and converts the canvas
// on the device, and reads back both the faded channels and the pixel bytes.
func (p *openCLPresenter) present(bg [channelsPerPixel]float32, retention float64, fadeSteps int, showStencil bool) ([]byte, error) {
	count := p.canvas.width * p.canvas.height * channelsPerPixel
	if len(p.canvas.channels) != count {
		return nil, fmt.Errorf("unexpected canvas buffer size")
	}
	if p.canvas.modified() {
		if _, err := p.queue.EnqueueWriteBufferFloat32(p.canvasBuf, false, 0, p.canvas.channels, nil); err != nil {
			return nil, fmt.Errorf("writing canvas buffer: %w", err)
		}
		p.canvas.clearModified()
	}
	if !p.maskSynced || p.mask.dirty {
		if err := p.syncMaskIndices(); err != nil {
			return nil, err
		}
		p.mask.dirty = false
	}
	global := []int{count}
	if fadeSteps > 0 && retention < 1 {
		factor := float32(math.Pow(retention, float64(fadeSteps)))
		if err := p.fadeKernel.SetArgs(int32(count), factor, bg[0], bg[1], bg[2], bg[3], p.canvasBuf); err != nil {
			return nil, fmt.Errorf("setting fade kernel arguments: %w", err)
		}
		if _, err := p.queue.EnqueueNDRangeKernel(p.fadeKernel, nil, global, nil, nil); err != nil {
			return nil, fmt.Errorf("enqueueing fade kernel: %w", err)
		}
	}
	if _, err := p.queue.EnqueueNDRangeKernel(p.presentKernel, nil, global, nil, nil); err != nil {
		return nil, fmt.Errorf("enqueueing present kernel: %w", err)
	}
	if showStencil && p.maskCount > 0 {
		if _, err := p.queue.EnqueueNDRangeKernel(p.tintStencilKernel, nil, []int{p.maskCount}, nil, nil); err != nil {
			return nil, fmt.Errorf("tinting stencil cells: %w", err)
		}
	}
	// The host copy stays authoritative for stamping, so the faded channels
	// come back every frame alongside the pixel bytes.
	if _, err := p.queue.EnqueueReadBufferFloat32(p.canvasBuf, true, 0, p.canvas.channels, nil); err != nil {
		return nil, fmt.Errorf("reading canvas buffer: %w", err)
	}
	p.canvas.clearModified()
	if _, err := p.queue.EnqueueReadBuffer(p.pixelBuf, true, 0, count, unsafe.Pointer(&p.pixels[0]), nil); err != nil {
		return nil, fmt.Errorf("reading pixel buffer: %w", err)
	}
	return p.pixels, nil
}

func (p *openCLPresenter) close() {
	if p.maskIndexBuf != nil {
		p.maskIndexBuf.Release()
		p.maskIndexBuf = nil
	}
	if p.pixelBuf != nil {
		p.pixelBuf.Release()
		p.pixelBuf = nil
	}
	if p.canvasBuf != nil {
		p.canvasBuf.Release()
		p.canvasBuf = nil
	}
	if p.fadeKernel != nil {
		p.fadeKernel.Release()
		p.fadeKernel = nil
	}
	if p.presentKernel != nil {
		p.presentKernel.Release()
		p.presentKernel = nil
	}
	if p.tintStencilKernel != nil {
		p.tintStencilKernel.Release()
		p.tintStencilKernel = nil
	}
	if p.program != nil {
		p.program.Release()
		p.program = nil
	}
	if p.queue != nil {
		p.queue.Release()
		p.queue = nil
	}
	if p.context != nil {
		p.context.Release()
		p.context = nil
	}
}
