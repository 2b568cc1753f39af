package main

import "time"

// Canvas and application configuration constants. These values define the
// canvas size, brush behavior, fade timing, and audio parameters for the
// paint surface.
const (
	w, h                 = 512, 512
	windowScale          = 2
	channelsPerPixel     = 4
	brushRad             = 3
	moveSpeed            = 2
	defaultFadeRetention = 0.9985
	defaultFadeSteps     = 4
	fadeStepDelta        = 1
	minFadeSteps         = 0
	maxFadeSteps         = 64
	stencilSegments      = 25
	stencilMinLen        = 12
	stencilMaxLen        = 100
	stencilExclusionRad  = 12
	stencilThickVariance = 2
	cursorArmCells       = 6
	maxSnapshots         = 16
	pgoRecordDuration    = 15 * time.Second
	audioSampleRate      = 48000
	audioToneBaseHz      = 220.0
	audioToneSpanHz      = 440.0
	audioLevelSmoothing  = 0.05
)

// stencilColor is the byte pixel written over masked cells, matching the
// presenters on both the CPU and OpenCL paths.
var stencilColor = [channelsPerPixel]byte{30, 40, 80, 255}
