package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// paletteEntry is one named color whose channel values stay in the legacy
// [0,255] convention for the lifetime of the palette. Conversion happens at
// the adapter boundary on every selection, so the same entry can be applied
// any number of times.
type paletteEntry struct {
	Name     string    `yaml:"name"`
	Channels []float64 `yaml:"channels"`
}

// palette is an ordered color table addressed by the digit hotkeys.
type palette struct {
	entries []paletteEntry
}

// defaultPalette returns the built-in color table.
func defaultPalette() *palette {
	return &palette{entries: []paletteEntry{
		{Name: "white", Channels: []float64{255, 255, 255}},
		{Name: "ember", Channels: []float64{255, 96, 32}},
		{Name: "sky", Channels: []float64{64, 160, 255}},
		{Name: "moss", Channels: []float64{48, 192, 96}},
		{Name: "violet", Channels: []float64{144, 0, 255}},
		{Name: "gold", Channels: []float64{255, 220, 0}},
		{Name: "rose", Channels: []float64{255, 64, 128}},
		{Name: "slate", Channels: []float64{110, 120, 140}},
		{Name: "wash", Channels: []float64{255, 255, 255, 128}},
	}}
}

// loadPalette reads a YAML color table. Entries must carry 1-4 channel values
// in the legacy convention; extra channels are tolerated here and capped at
// the adapter boundary.
func loadPalette(path string) (*palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []paletteEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing palette %q: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("palette %q has no entries", path)
	}
	for i, e := range entries {
		if len(e.Channels) == 0 {
			return nil, fmt.Errorf("palette %q entry %d (%s) has no channels", path, i, e.Name)
		}
	}
	return &palette{entries: entries}, nil
}

// size returns the number of entries in the table.
func (p *palette) size() int { return len(p.entries) }

// entry returns the i-th color, if present.
func (p *palette) entry(i int) (paletteEntry, bool) {
	if i < 0 || i >= len(p.entries) {
		return paletteEntry{}, false
	}
	return p.entries[i], true
}

// applyForeground selects entry i as the foreground color through the
// adapter. The entry's slice is handed over as-is: the aggregate call shape
// guarantees the adapter converts into its own copy and this cached entry
// survives unmutated.
func (p *palette) applyForeground(i int, adapter *colorAdapter) bool {
	e, ok := p.entry(i)
	if !ok {
		return false
	}
	adapter.SetForeground(e.Channels)
	return true
}

// applyBackground selects entry i as the background color through the
// adapter, under the same aggregate-call contract as applyForeground.
func (p *palette) applyBackground(i int, adapter *colorAdapter) bool {
	e, ok := p.entry(i)
	if !ok {
		return false
	}
	adapter.SetBackground(e.Channels)
	return true
}
