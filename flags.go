package main

import "flag"

// Command-line flags that control optional rendering, audio, and runtime
// behavior. Each flag mirrors a configuration value that is useful to adjust
// without rebuilding.
var (
	// showStencilFlag toggles rendering of the stencil mask overlay.
	showStencilFlag = flag.Bool("show-stencil", true, "render the stencil mask overlay")

	// fadeRetentionFlag adjusts how much ink each fade step keeps.
	fadeRetentionFlag = flag.Float64("fade-retention", defaultFadeRetention, "per-step ink retention toward the background (0-1)")

	// paletteFlag points at an optional YAML palette file with legacy-domain entries.
	paletteFlag = flag.String("palette", "", "YAML palette file with 0-255 channel entries")

	// recordDefaultPGO triggers a scripted brush walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "paint randomly for 15s while capturing default.pgo")

	// debugFlag enables the FPS and fade batch overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and fade batch overlay")

	// enableAudioFlag toggles the optional brush hum driven by stamp activity.
	enableAudioFlag = flag.Bool("enable-audio", false, "enable audible brush feedback")
)
