package main

import (
	"math"
	"sync"
)

// brushToneStream is an infinite PCM stream for Ebiten's audio player. The
// game publishes a target level from stamp activity and a pitch from the
// foreground luminance; Read synthesizes a sine at those parameters, easing
// the level per frame so strokes swell and decay instead of clicking.
type brushToneStream struct {
	mu     sync.Mutex
	target float32
	freq   float64

	level float32
	phase float64
}

func newBrushToneStream() *brushToneStream {
	return &brushToneStream{freq: audioToneBaseHz}
}

// SetTone publishes the desired level (0-1) and pitch in Hz.
func (s *brushToneStream) SetTone(level float32, freq float64) {
	if level > 1 {
		level = 1
	} else if level < 0 {
		level = 0
	}
	s.mu.Lock()
	s.target = level
	if freq > 0 {
		s.freq = freq
	}
	s.mu.Unlock()
}

func (s *brushToneStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	// Ensure we generate whole stereo frames (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	target := s.target
	freq := s.freq
	s.mu.Unlock()

	phaseStep := 2 * math.Pi * freq / audioSampleRate
	for i := 0; i < frameBytes; i += 4 {
		s.level += (target - s.level) * audioLevelSmoothing
		sample := float32(math.Sin(s.phase)) * s.level
		s.phase += phaseStep
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		v := int16(sample * 20000)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *brushToneStream) Close() error {
	return nil
}

// foregroundLuminance maps a target-domain color to a perceptual brightness
// used for the tone pitch.
func foregroundLuminance(col [channelsPerPixel]float32) float64 {
	return float64(0.2126*col[0] + 0.7152*col[1] + 0.0722*col[2])
}
