package systems

import (
	"math"
	"testing"

	"github.com/automoto/skyhook/audio"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/input"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/physics/physicstest"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const tick = 1.0 / 60

type harness struct {
	ecs    *ecs.ECS
	world  *physicstest.World
	sounds *audio.Manager
	player *donburi.Entry
	body   physics.BodyHandle
}

// newHarness returns an ECS with every singleton, a player at the spawn point
// and a zero gravity test world. Grapple jitter is zero.
func newHarness(t *testing.T) *harness {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	w := physicstest.New()
	m := audio.NewManager(cfg.Sound.Defs, 1)

	factory.CreateSpace(e, w)
	factory.CreateAudio(e, m)
	factory.CreateInput(e, nil)
	factory.CreateTick(e)
	factory.CreateCamera(e)
	factory.CreateGrapple(e, func() float64 { return 0.5 })

	player, err := factory.CreatePlayer(e)
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	SetDelta(e, tick)

	return &harness{
		ecs:    e,
		world:  w,
		sounds: m,
		player: player,
		body:   components.Body.Get(player).Body,
	}
}

func (h *harness) playerData() *components.PlayerData {
	return components.Player.Get(h.player)
}

// withLevel spawns the level singleton around bundle.
func (h *harness) withLevel(bundle components.LevelBundle, onGoal, onDie func()) *components.LevelData {
	return components.Level.Get(factory.CreateLevel(h.ecs, bundle, onGoal, onDie))
}

// fixedBox adds a fixed body at the origin with a box collider centred at pos,
// the way terrain is laid out.
func (h *harness) fixedBox(pos, half mgl64.Vec3) (physics.BodyHandle, physics.ColliderHandle) {
	b := h.world.CreateRigidBody(physics.BodyDesc{Kind: physics.Fixed})
	c := h.world.CreateCollider(physics.ColliderDesc{
		Shape:       physics.Cuboid,
		HalfExtents: half,
		Translation: pos,
	}, b)
	return b, c
}

// dynamicBox adds a dynamic body at pos carrying a box of the given mass.
func (h *harness) dynamicBox(pos mgl64.Vec3, half float64, mass float64) (physics.BodyHandle, physics.ColliderHandle) {
	b := h.world.CreateRigidBody(physics.BodyDesc{Kind: physics.Dynamic, Translation: pos, LockTranslationZ: true})
	c := h.world.CreateCollider(physics.ColliderDesc{
		Shape:       physics.Cuboid,
		HalfExtents: mgl64.Vec3{half, half, half},
		Mass:        mass,
	}, b)
	return b, c
}

func (h *harness) setInput(state input.State) {
	if e, ok := components.Input.First(h.ecs.World); ok {
		components.Input.Get(e).State = state
	}
}

func (h *harness) links() []*components.SpringData {
	e, ok := components.Grapple.First(h.ecs.World)
	if !ok {
		return nil
	}
	g := components.Grapple.Get(e)
	out := make([]*components.SpringData, len(g.Links))
	for i, l := range g.Links {
		out[i] = components.Spring.Get(l)
	}
	return out
}

func (h *harness) lastImpulse(t *testing.T) mgl64.Vec3 {
	t.Helper()
	imp := h.world.Impulses(h.body)
	if len(imp) == 0 {
		t.Fatalf("no impulse applied to the player")
	}
	return imp[len(imp)-1]
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func nearVec(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-6)
}
