package main

// setFunc is the signature of a native color entry point: up to four
// positional channel values in the target [0,1] convention, plus any
// library-specific extras after slot four.
type setFunc func(args ...any)

// colorAdapter lets callers keep the legacy [0,255] convention against a
// painter whose native convention is [0,1]. It is an explicit decorator
// threaded to call sites rather than a replacement installed into a shared
// global, so the native entry points are captured exactly once at
// construction and double-wrapping cannot happen by accident.
type colorAdapter struct {
	foreground setFunc
	background setFunc
}

// newColorAdapter captures the two native entry points. The references are
// never reassigned afterwards.
func newColorAdapter(foreground, background setFunc) *colorAdapter {
	return &colorAdapter{foreground: foreground, background: background}
}

// SetForeground accepts 1-4 channel values in the legacy convention, either
// positionally or as one ordered collection, rescales them to the target
// convention, and forwards positionally to the native foreground entry point.
// Arguments beyond the fourth slot pass through unconverted; whatever the
// native function returns or raises is its own business.
func (a *colorAdapter) SetForeground(args ...any) {
	a.foreground(classifyColorCall(args).converted()...)
}

// SetBackground is the background counterpart of SetForeground under the
// identical contract.
func (a *colorAdapter) SetBackground(args ...any) {
	a.background(classifyColorCall(args).converted()...)
}
