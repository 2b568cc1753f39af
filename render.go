package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the presented canvas pixels, the cursor, and optional overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	if len(g.pixels) == w*h*channelsPerPixel {
		screen.WritePixels(g.pixels)
	}

	g.drawCursor(screen, int(g.cx), int(g.cy))

	if *debugFlag {
		fps := ebiten.ActualFPS()
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		fadeMS := g.lastFadeDuration.Seconds() * 1000
		entryName := ""
		if e, ok := g.pal.entry(g.selected); ok {
			entryName = e.Name
		}
		mode := "replace"
		if g.mixMode {
			mode = "mix"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f (%.1f TPS)\nFade steps: %d (+/-)\nPresent: %.2f ms\nColor: %s (%s)",
			fps, tps, g.fadeSteps, fadeMS, entryName, mode)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return w, h }

// drawCursor renders a crosshair around the brush position.
func (g *Game) drawCursor(screen *ebiten.Image, cx, cy int) {
	left := clampCoord(cx-cursorArmCells, 0, w-1)
	right := clampCoord(cx+cursorArmCells, 0, w-1)
	top := clampCoord(cy-cursorArmCells, 0, h-1)
	bottom := clampCoord(cy+cursorArmCells, 0, h-1)
	drawLine(screen, left, cy, right, cy, color.RGBA{0, 255, 200, 200})
	drawLine(screen, cx, top, cx, bottom, color.RGBA{0, 200, 255, 200})
	if cx >= 0 && cx < w && cy >= 0 && cy < h {
		screen.Set(cx, cy, color.RGBA{255, 0, 0, 255})
	}
}

// drawLine plots a line segment using Bresenham's integer algorithm.
func drawLine(screen *ebiten.Image, x0, y0, x1, y1 int, clr color.Color) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			screen.Set(x0, y0, clr)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
