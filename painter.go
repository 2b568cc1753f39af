package main

// painter is the native drawing backend the adapter delegates to. Its color
// entry points take up to four positional channel values that must already be
// in the target [0,1] convention; slot five, when present and a string,
// selects the stamp blend mode. Channel slots that are not numeric are
// ignored here rather than rejected, so sentinel values coming through the
// adapter are harmless.
type painter struct {
	fg   [channelsPerPixel]float32
	bg   [channelsPerPixel]float32
	mode stampMode
}

// newPainter returns a painter with an opaque white foreground over an opaque
// black background.
func newPainter() *painter {
	return &painter{
		fg: [channelsPerPixel]float32{1, 1, 1, 1},
		bg: [channelsPerPixel]float32{0, 0, 0, 1},
	}
}

// setForeground is the native foreground entry point.
func (p *painter) setForeground(args ...any) {
	p.fg = applyChannelArgs(args)
	p.applyMode(args)
}

// setBackground is the native background entry point. The background is the
// fade target, so changing it shifts the whole surface over time instead of
// clearing it.
func (p *painter) setBackground(args ...any) {
	p.bg = applyChannelArgs(args)
	p.applyMode(args)
}

// applyMode inspects slot five for a blend mode selector.
func (p *painter) applyMode(args []any) {
	if len(args) <= maxChannelSlots {
		return
	}
	if mode, ok := args[maxChannelSlots].(string); ok {
		switch mode {
		case "mix":
			p.mode = stampMix
		case "replace":
			p.mode = stampReplace
		}
	}
}

// applyChannelArgs collects up to four numeric channel values into an RGBA
// quad, clamped to [0,1]. An omitted alpha defaults to opaque.
func applyChannelArgs(args []any) [channelsPerPixel]float32 {
	col := [channelsPerPixel]float32{0, 0, 0, 1}
	n := len(args)
	if n > maxChannelSlots {
		n = maxChannelSlots
	}
	for i := 0; i < n; i++ {
		f, ok := channelFloat(args[i])
		if !ok {
			continue
		}
		col[i] = clamp01(float32(f))
	}
	return col
}

// foreground returns the current target-domain foreground color.
func (p *painter) foreground() [channelsPerPixel]float32 { return p.fg }

// background returns the current target-domain background color.
func (p *painter) background() [channelsPerPixel]float32 { return p.bg }

// stampMode returns the currently selected blend mode.
func (p *painter) stampMode() stampMode { return p.mode }
