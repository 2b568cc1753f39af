package main

import (
	"log"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game encapsulates the paint surface, the color adapter feeding the native
// painter, the presenter, and the optional audio pipeline.
type Game struct {
	canvas   *canvas
	mask     *stencil
	brush    *painter
	colors   *colorAdapter
	pal      *palette
	pres     presenter
	shots    *snapshotStack
	pixels   []byte
	selected int
	mixMode  bool

	cx float64
	cy float64

	fadeSteps        int
	lastFadeDuration time.Duration
	stampActivity    float32

	autoWalk           bool
	autoWalkDeadline   time.Time
	autoWalkRand       *rand.Rand
	autoWalkDirX       float64
	autoWalkDirY       float64
	autoWalkFrameCount int

	audioCtx    *audio.Context
	audioStream *brushToneStream
	audioPlayer *audio.Player
}

// newGame constructs a fully initialized Game instance.
func newGame() *Game {
	cv := newCanvas(w, h)
	mask := newStencil(w, h)
	brush := newPainter()
	g := &Game{
		canvas:    cv,
		mask:      mask,
		brush:     brush,
		colors:    newColorAdapter(brush.setForeground, brush.setBackground),
		pal:       defaultPalette(),
		shots:     newSnapshotStack(maxSnapshots),
		cx:        float64(w / 2),
		cy:        float64(h / 2),
		fadeSteps: defaultFadeSteps,
	}
	if *paletteFlag != "" {
		pal, err := loadPalette(*paletteFlag)
		if err != nil {
			log.Fatalf("Loading palette failed: %v", err)
		}
		g.pal = pal
		log.Printf("Loaded palette %q (%d entries)", *paletteFlag, pal.size())
	}
	mask.generate(g.cx, g.cy)
	g.pal.applyForeground(0, g.colors)
	cv.fill(brush.background())
	if pres, err := newOpenCLPresenter(cv, mask); err != nil {
		log.Printf("OpenCL presenter unavailable (%v); falling back to CPU workers", err)
		g.pres = newCPUPresenter(cv, mask, runtime.NumCPU())
	} else {
		g.pres = pres
	}
	log.Printf("Presenter enabled: %s", g.pres.name())
	if enableAudioFlag != nil && *enableAudioFlag {
		ctx := audio.NewContext(audioSampleRate)
		g.audioCtx = ctx
		stream := newBrushToneStream()
		g.audioStream = stream
		if player, err := ctx.NewPlayer(stream); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.Play()
		}
	}
	return g
}

// Update moves the cursor, stamps ink through the color adapter's painter,
// runs the presenter's fade-and-convert step, and refreshes audio feedback.
func (g *Game) Update() error {
	dx, dy := g.movementVector()
	oldX, oldY := g.cx, g.cy
	g.cx = math.Max(brushRad, math.Min(float64(w-brushRad-1), g.cx+dx))
	g.cy = math.Max(brushRad, math.Min(float64(h-brushRad-1), g.cy+dy))
	if g.mask.blocked(int(g.cx), int(g.cy)) {
		g.cx, g.cy = oldX, oldY
	}

	g.handleHotkeys()
	g.handleDebugControls()

	painted := 0
	if g.autoWalk || ebiten.IsKeyPressed(ebiten.KeySpace) {
		painted = g.canvas.stamp(int(g.cx), int(g.cy), brushFootprint,
			g.brush.foreground(), g.brush.stampMode(), g.mask)
	}

	fadeStart := time.Now()
	pixels, err := g.pres.present(g.brush.background(), *fadeRetentionFlag, g.fadeSteps, *showStencilFlag)
	if err != nil {
		return err
	}
	g.pixels = pixels
	g.lastFadeDuration = time.Since(fadeStart)

	if g.audioStream != nil {
		target := float32(0)
		if painted > 0 {
			target = float32(painted) / float32(len(brushFootprint))
		}
		g.stampActivity += (target - g.stampActivity) * 0.2
		freq := audioToneBaseHz + audioToneSpanHz*foregroundLuminance(g.brush.foreground())
		g.audioStream.SetTone(g.stampActivity, freq)
	}

	return nil
}

// handleHotkeys processes palette selection and canvas actions.
func (g *Game) handleHotkeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	for i := 0; i < 9 && i < g.pal.size(); i++ {
		if !inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			continue
		}
		if shift {
			g.pal.applyBackground(i, g.colors)
		} else if g.pal.applyForeground(i, g.colors) {
			g.selected = i
			g.reapplyMode()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.mixMode = !g.mixMode
		g.reapplyMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.mask.generate(g.cx, g.cy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.canvas.fill(g.brush.background())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.shots.take(g.canvas)
		log.Printf("Snapshot taken (%d held)", g.shots.depth())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if g.shots.restore(g.canvas) {
			log.Printf("Snapshot restored (%d held)", g.shots.depth())
		}
	}
}

// reapplyMode resends the selected palette entry positionally with the blend
// mode riding in slot five, past the channel slots the adapter converts.
func (g *Game) reapplyMode() {
	e, ok := g.pal.entry(g.selected)
	if !ok {
		return
	}
	mode := "replace"
	if g.mixMode {
		mode = "mix"
	}
	args := make([]any, 0, maxChannelSlots+1)
	for i := 0; i < maxChannelSlots; i++ {
		if i < len(e.Channels) {
			args = append(args, e.Channels[i])
		} else {
			args = append(args, float64(legacyChannelMax))
		}
	}
	args = append(args, mode)
	g.colors.SetForeground(args...)
}

// handleDebugControls processes debug overlay hotkeys.
func (g *Game) handleDebugControls() {
	if !*debugFlag {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustFadeSteps(-fadeStepDelta)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustFadeSteps(fadeStepDelta)
	}
}

// adjustFadeSteps clamps the fade batch size delta within bounds.
func (g *Game) adjustFadeSteps(delta int) {
	g.fadeSteps += delta
	if g.fadeSteps < minFadeSteps {
		g.fadeSteps = minFadeSteps
	} else if g.fadeSteps > maxFadeSteps {
		g.fadeSteps = maxFadeSteps
	}
}
