// Package level runs one playable level: it builds the entity world from a
// scene, steps the systems in a fixed order and exposes the player's
// edge-triggered actions.
package level

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/skyhook/audio"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/input"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/physics/chipmunk"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/scene"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrNoScene is returned when a level is created without a scene.
var ErrNoScene = errors.New("no scene")

// Options configures a level. Only Scene is required.
type Options struct {
	Scene *scene.Node

	// World defaults to a chipmunk world with the configured gravity.
	World physics.World
	Audio audio.Provider
	Input input.State
	// Graph receives the level's visual nodes. A private graph is used when
	// nil.
	Graph *render.Graph
	// Rand drives grapple jitter and sound variation. Defaults to math/rand.
	Rand func() float64

	OnReachedGoal func()
	OnPlayerDie   func()
}

type Level struct {
	ecs    *ecs.ECS
	world  physics.World
	graph  *render.Graph
	player *donburi.Entry
	level  *donburi.Entry

	nodes     []*render.Node
	destroyed bool
}

// New builds the level. Resources created before a failure are released
// again.
func New(opts Options) (*Level, error) {
	if opts.Scene == nil {
		return nil, fmt.Errorf("new level: %w", ErrNoScene)
	}
	world := opts.World
	if world == nil {
		world = chipmunk.New(cfg.Physics.Gravity)
	}
	graph := opts.Graph
	if graph == nil {
		graph = &render.Graph{}
	}

	e := ecs.NewECS(donburi.NewWorld())

	e.AddSystem(systems.UpdatePhysics)
	e.AddSystem(systems.UpdatePlayer)
	e.AddSystem(systems.UpdateEnemies)
	e.AddSystem(systems.UpdateBlocks)
	e.AddSystem(systems.UpdateSprings)
	e.AddSystem(systems.UpdateIntents)
	e.AddSystem(systems.UpdateCamera)
	e.AddSystem(systems.UpdateBlockDrag)
	e.AddSystem(systems.UpdateCollisions)
	e.AddSystem(systems.UpdateContactForces)
	e.AddSystem(systems.UpdateLevelTimer)

	e.AddRenderer(cfg.Default, systems.DrawDebug)

	factory.CreateSpace(e, world)
	factory.CreateAudio(e, opts.Audio)
	factory.CreateInput(e, opts.Input)
	factory.CreateTick(e)
	factory.CreateCamera(e)
	factory.CreateGrapple(e, opts.Rand)

	bundle, err := factory.BuildLevel(e, opts.Scene)
	if err != nil {
		return nil, fmt.Errorf("new level: %w", err)
	}

	player, err := factory.CreatePlayer(e)
	if err != nil {
		factory.DestroyLevel(e, &bundle)
		return nil, fmt.Errorf("new level: %w", err)
	}

	l := &Level{
		ecs:    e,
		world:  world,
		graph:  graph,
		player: player,
	}
	l.level = factory.CreateLevel(e, bundle, opts.OnReachedGoal, opts.OnPlayerDie)

	l.nodes = append(l.nodes, components.Object.Get(player).Node)
	l.nodes = append(l.nodes, bundle.Objects...)
	graph.Add(l.nodes...)

	return l, nil
}

// Update advances the simulation by delta seconds, clamped to the configured
// maximum.
func (l *Level) Update(delta float64) {
	if l.destroyed {
		return
	}
	systems.SetDelta(l.ecs, ClampDelta(delta))
	l.ecs.Update()
}

// Draw renders the debug overlay.
func (l *Level) Draw(screen *ebiten.Image) {
	if l.destroyed {
		return
	}
	l.ecs.Draw(screen)
}

// ClampDelta limits delta to [0, cfg.Ticker.MaxDelta].
func ClampDelta(delta float64) float64 {
	return gamemath.Clamp(delta, 0, cfg.Ticker.MaxDelta)
}

// Start begins the level timer.
func (l *Level) Start() {
	if data := l.data(); data != nil {
		data.Started = true
	}
}

func (l *Level) HandleJumpPressed() {
	if l.destroyed {
		return
	}
	systems.Jump(l.ecs)
}

// HandleGrapplePressed aims from the player's on-screen position toward the
// input's look point.
func (l *Level) HandleGrapplePressed(vp gamemath.Viewport) bool {
	if l.destroyed {
		return false
	}
	var look mgl64.Vec2
	if e, ok := components.Input.First(l.ecs.World); ok {
		if state := components.Input.Get(e).State; state != nil {
			look = state.Look()
		}
	}
	return systems.FireGrapple(l.ecs, look, vp)
}

// HandleGrappleRelease drops the newest link.
func (l *Level) HandleGrappleRelease() {
	if l.destroyed {
		return
	}
	systems.Release(l.ecs, systems.ReleaseLast)
}

// HandleGrappleEscape detaches the player from the graph.
func (l *Level) HandleGrappleEscape() {
	if l.destroyed {
		return
	}
	systems.Escape(l.ecs, components.Body.Get(l.player).Body)
}

// Reset returns every dynamic entity to its start and clears the grapple.
func (l *Level) Reset() {
	if l.destroyed {
		return
	}
	systems.ResetLevel(l.ecs)
}

// Destroy releases every physics resource the level created and removes its
// nodes from the graph. Calling it again does nothing.
func (l *Level) Destroy() {
	if l.destroyed {
		return
	}
	systems.ResetGrapple(l.ecs)

	var provider audio.Provider = audio.Silent{}
	if e, ok := components.Audio.First(l.ecs.World); ok {
		provider = components.Audio.Get(e).Provider
	}
	for _, id := range []cfg.SoundID{
		cfg.SoundGrapple,
		cfg.SoundWoodHit,
		cfg.SoundDrop,
		cfg.SoundPlayerHit,
		cfg.SoundBlockDrag,
		cfg.SoundJetpackLoop,
		cfg.SoundFootsteps,
	} {
		provider.Stop(id)
	}

	if data := l.data(); data != nil {
		factory.DestroyLevel(l.ecs, &data.Bundle)
	}
	factory.DestroyPlayer(l.ecs, l.player)

	for _, n := range l.nodes {
		l.graph.Remove(n)
	}
	l.nodes = nil
	l.destroyed = true

	log.Printf("level destroyed")
}

// Elapsed returns the seconds played since Start.
func (l *Level) Elapsed() float64 {
	if data := l.data(); data != nil {
		return data.Elapsed
	}
	return 0
}

// Bundle returns what the builder produced.
func (l *Level) Bundle() components.LevelBundle {
	if data := l.data(); data != nil {
		return data.Bundle
	}
	return components.LevelBundle{}
}

// Camera returns the follow camera position.
func (l *Level) Camera() mgl64.Vec3 {
	e, ok := components.Camera.First(l.ecs.World)
	if !ok {
		return mgl64.Vec3{}
	}
	return components.Camera.Get(e).Position
}

func (l *Level) Player() *donburi.Entry { return l.player }

func (l *Level) ECS() *ecs.ECS { return l.ecs }

func (l *Level) World() physics.World { return l.world }

func (l *Level) Graph() *render.Graph { return l.graph }

func (l *Level) data() *components.LevelData {
	if l.level == nil || !l.level.Valid() {
		return nil
	}
	return components.Level.Get(l.level)
}
