//go:build !opencl

package main

import "errors"

// newOpenCLPresenter reports OpenCL as unavailable; the application falls
// back to the CPU presenter.
func newOpenCLPresenter(cv *canvas, mask *stencil) (presenter, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}
