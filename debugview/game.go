// Package debugview is a minimal ebiten host for playing levels with flat
// wireframe rendering and the physics overlay.
package debugview

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/skyhook/audio"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/input"
	"github.com/automoto/skyhook/level"
	"github.com/automoto/skyhook/progress"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/scene"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/ticker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var errNoLevels = errors.New("no levels")

type outcome int

const (
	outcomeNone outcome = iota
	outcomeGoal
	outcomeDie
)

// Game plays the given levels in order.
type Game struct {
	scenes map[string]*scene.Node
	names  []string
	index  int

	store  *progress.Store
	sounds *audio.Manager
	device *input.Device
	ticker *ticker.Ticker
	graph  *render.Graph

	level   *level.Level
	pending outcome

	resolutionIndex int
	volumeIndex     int
}

// New creates the host and starts the level the store has selected.
func New(scenes map[string]*scene.Node, names []string, store *progress.Store) (*Game, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("debug view: %w", errNoLevels)
	}
	g := &Game{
		scenes:          scenes,
		names:           names,
		store:           store,
		sounds:          audio.NewManager(cfg.Sound.Defs, cfg.Audio.MasterVolume),
		device:          &input.Device{},
		ticker:          ticker.New(cfg.Ticker.MaxDelta),
		graph:           &render.Graph{},
		resolutionIndex: cfg.DebugView.DefaultResolutionIndex,
		volumeIndex:     len(cfg.DebugView.VolumeSteps) - 1,
	}
	g.applySettings()

	g.ticker.BeforeTick = g.handleActions
	g.ticker.Add(func(delta float64) {
		if g.level != nil {
			g.level.Update(delta)
		}
	})
	g.ticker.AfterTick = g.handleOutcome

	for i, name := range names {
		if name == store.Selected {
			g.index = i
		}
	}
	if err := g.load(g.index); err != nil {
		return nil, err
	}
	g.ticker.Start()
	return g, nil
}

func (g *Game) load(index int) error {
	if g.level != nil {
		g.level.Destroy()
		g.level = nil
	}
	name := g.names[index]
	l, err := level.New(level.Options{
		Scene:         g.scenes[name],
		Audio:         g.sounds,
		Input:         &g.device.Buffer,
		Graph:         g.graph,
		OnReachedGoal: func() { g.pending = outcomeGoal },
		OnPlayerDie:   func() { g.pending = outcomeDie },
	})
	if err != nil {
		return fmt.Errorf("load level %s: %w", name, err)
	}
	g.index = index
	g.level = l
	if err := g.store.Select(name); err != nil {
		log.Printf("Warning: %v", err)
	}
	g.level.Start()
	log.Printf("level %s started", name)
	return nil
}

func (g *Game) viewport() gamemath.Viewport {
	return gamemath.Viewport{Width: float64(cfg.C.Width), Height: float64(cfg.C.Height)}
}

// handleActions forwards this frame's edge-triggered actions to the level.
func (g *Game) handleActions() {
	g.device.Poll()
	if g.level == nil {
		return
	}
	if g.device.Action(cfg.ActionMoveUp).JustPressed {
		g.level.HandleJumpPressed()
	}
	if g.device.Action(cfg.ActionGrapple).JustPressed {
		g.level.HandleGrapplePressed(g.viewport())
	}
	if g.device.Action(cfg.ActionGrappleRelease).JustPressed {
		g.level.HandleGrappleRelease()
	}
	if g.device.Action(cfg.ActionGrappleEscape).JustPressed {
		g.level.HandleGrappleEscape()
	}
	if g.device.Action(cfg.ActionRestart).JustPressed {
		g.level.Reset()
	}
}

// handleOutcome acts on goal and death outside the systems loop.
func (g *Game) handleOutcome() {
	switch g.pending {
	case outcomeGoal:
		name := g.names[g.index]
		elapsed := g.level.Elapsed()
		if best, err := g.store.Complete(name, elapsed); err == nil && best {
			log.Printf("level %s: new best time %.2fs", name, elapsed)
		}
		next := (g.index + 1) % len(g.names)
		if err := g.load(next); err != nil {
			log.Printf("Warning: %v", err)
		}
	case outcomeDie:
		g.level.Reset()
	}
	g.pending = outcomeNone
}

func (g *Game) Update() error {
	g.updateSettings()
	g.ticker.Tick()
	return nil
}

func (g *Game) Layout(width, height int) (int, int) {
	return cfg.C.Width, cfg.C.Height
}

// updateSettings handles the debug keys: F1 physics overlay, F2 resolution,
// F3 volume, N next level.
func (g *Game) updateSettings() {
	changed := false
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		cfg.DebugView.ShowPhysics = !cfg.DebugView.ShowPhysics
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.resolutionIndex = (g.resolutionIndex + 1) % len(cfg.DebugView.Resolutions)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.volumeIndex = (g.volumeIndex + 1) % len(cfg.DebugView.VolumeSteps)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if err := g.load((g.index + 1) % len(g.names)); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	if !changed {
		return
	}
	g.applyView()
	if err := g.store.SaveSettings(progress.Settings{
		MasterVolume:    g.sounds.MasterVolume(),
		ResolutionIndex: g.resolutionIndex,
		Fullscreen:      ebiten.IsFullscreen(),
		ShowPhysics:     cfg.DebugView.ShowPhysics,
	}); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// applySettings restores saved settings, if any.
func (g *Game) applySettings() {
	saved, err := g.store.LoadSettings()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	if saved != nil {
		if saved.ResolutionIndex >= 0 && saved.ResolutionIndex < len(cfg.DebugView.Resolutions) {
			g.resolutionIndex = saved.ResolutionIndex
		}
		for i, v := range cfg.DebugView.VolumeSteps {
			if v == saved.MasterVolume {
				g.volumeIndex = i
			}
		}
		cfg.DebugView.ShowPhysics = saved.ShowPhysics
		ebiten.SetFullscreen(saved.Fullscreen)
	}
	g.applyView()
}

func (g *Game) applyView() {
	res := cfg.DebugView.Resolutions[g.resolutionIndex]
	cfg.C.Width, cfg.C.Height = res.Width, res.Height
	if !ebiten.IsFullscreen() {
		ebiten.SetWindowSize(res.Width, res.Height)
	}
	g.sounds.SetMasterVolume(cfg.DebugView.VolumeSteps[g.volumeIndex])
}
