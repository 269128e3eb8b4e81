package level

import (
	"errors"
	"testing"

	"github.com/automoto/skyhook/audio"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/input"
	"github.com/automoto/skyhook/physics/physicstest"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/scene"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems"
	"github.com/go-gl/mathgl/mgl64"
)

func quad(name string, pos mgl64.Vec3) *scene.Node {
	vertices, indices := scene.Rect(1, 1, true)
	n := scene.NewMesh(name, vertices, indices)
	n.Position = pos
	return n
}

func testScene() *scene.Node {
	root := scene.NewNode("level")
	root.Add(
		quad("ground-floor", mgl64.Vec3{0, 0, 0}),
		quad("ground-post", mgl64.Vec3{5, 1, 0}),
		quad("enemy-1", mgl64.Vec3{10, 1, 0}),
		quad("moveable-block-1", mgl64.Vec3{-6, 0, 0}),
		quad("goal_sensor", mgl64.Vec3{20, 1, 0}),
		quad("danger-pit", mgl64.Vec3{-20, -5, 0}),
	)
	return root
}

type fixture struct {
	level  *Level
	world  *physicstest.World
	sounds *audio.Manager
	graph  *render.Graph
	goals  int
	deaths int
}

func newFixture(t *testing.T, state input.State) *fixture {
	t.Helper()
	f := &fixture{
		world:  physicstest.New(),
		sounds: audio.NewManager(cfg.Sound.Defs, 1),
		graph:  &render.Graph{},
	}
	l, err := New(Options{
		Scene:         testScene(),
		World:         f.world,
		Audio:         f.sounds,
		Input:         state,
		Graph:         f.graph,
		Rand:          func() float64 { return 0.5 },
		OnReachedGoal: func() { f.goals++ },
		OnPlayerDie:   func() { f.deaths++ },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.level = l
	return f
}

func TestNewWithoutScene(t *testing.T) {
	_, err := New(Options{World: physicstest.New()})
	if !errors.Is(err, ErrNoScene) {
		t.Errorf("expected ErrNoScene, got %v", err)
	}
}

func TestNewRollsBackOnBuildError(t *testing.T) {
	w := physicstest.New()
	root := testScene()
	broken := scene.NewNode("moveable-block-2")
	broken.Mesh = &scene.Mesh{}
	root.Add(broken)

	if _, err := New(Options{Scene: root, World: w}); err == nil {
		t.Fatalf("expected an error for a block without bounds")
	}
	if w.LiveBodies() != 0 || w.LiveColliders() != 0 {
		t.Errorf("expected nothing left, got %d bodies and %d colliders", w.LiveBodies(), w.LiveColliders())
	}
}

func TestNewPopulatesGraph(t *testing.T) {
	f := newFixture(t, nil)

	bundle := f.level.Bundle()
	if len(bundle.Enemies) != 1 || len(bundle.Blocks) != 1 || len(bundle.TerrainColliders) != 2 {
		t.Fatalf("unexpected bundle: %d enemies, %d blocks, %d terrain", len(bundle.Enemies), len(bundle.Blocks), len(bundle.TerrainColliders))
	}
	// player, enemy, block and danger
	if f.graph.Len() != 4 {
		t.Errorf("expected 4 graph nodes, got %d", f.graph.Len())
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Normal tick", 1.0 / 60, 1.0 / 60},
		{"Long stall", 5, cfg.Ticker.MaxDelta},
		{"Negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.in); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUpdateSteps(t *testing.T) {
	f := newFixture(t, nil)
	f.level.Start()

	f.level.Update(1.0 / 60)
	f.level.Update(10)

	if f.world.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", f.world.Steps)
	}
	if want := 1.0/60 + cfg.Ticker.MaxDelta; f.level.Elapsed() != want {
		t.Errorf("expected %v elapsed, got %v", want, f.level.Elapsed())
	}
}

func TestGoalAndDeath(t *testing.T) {
	f := newFixture(t, nil)
	own := components.Body.Get(f.level.Player()).Collider
	bundle := f.level.Bundle()

	f.world.PushCollision(own, bundle.GoalSensors[0], true)
	f.world.PushCollision(bundle.DangerSensors[0], own, true)
	f.level.Update(1.0 / 60)

	if f.goals != 1 || f.deaths != 1 {
		t.Errorf("expected one goal and one death, got %d and %d", f.goals, f.deaths)
	}
}

func TestHandleGrapple(t *testing.T) {
	vp := gamemath.Viewport{Width: 640, Height: 480}
	cam := cfg.Camera
	screen, ok := gamemath.Project(cfg.Player.Spawn, cam.Start, cam.Fov, cam.Near, cam.RenderDistance, vp)
	if !ok {
		t.Fatalf("player is not on screen")
	}
	f := newFixture(t, input.Snapshot{Pointer: screen.Add(mgl64.Vec2{50, 0})})

	if !f.level.HandleGrapplePressed(vp) {
		t.Fatalf("expected a link to the post")
	}
	if n := systems.GrappleCount(f.level.ECS()); n != 1 {
		t.Fatalf("expected 1 link, got %d", n)
	}

	f.level.HandleGrappleRelease()
	if n := systems.GrappleCount(f.level.ECS()); n != 0 {
		t.Errorf("expected the link to be released, got %d", n)
	}
}

func TestHandleJumpPlaysBurst(t *testing.T) {
	f := newFixture(t, nil)
	f.level.HandleJumpPressed()

	if inst, ok := f.sounds.Last(cfg.SoundJetpackBurst); !ok || !inst.Playing {
		t.Errorf("expected the jetpack burst to play")
	}
}

func TestDestroyReleasesEverything(t *testing.T) {
	f := newFixture(t, input.Snapshot{Buttons: input.Buttons{Boost: true}})
	f.level.Update(1.0 / 60)
	f.level.Update(1.0 / 60)
	systems.Grapple(f.level.ECS(), components.Body.Get(f.level.Player()).Body, mgl64.Vec2{1, 0})

	f.level.Destroy()
	f.level.Destroy()

	if f.world.LiveBodies() != 0 || f.world.LiveColliders() != 0 || f.world.LiveJoints() != 0 {
		t.Errorf("expected nothing left, got %d bodies, %d colliders and %d joints",
			f.world.LiveBodies(), f.world.LiveColliders(), f.world.LiveJoints())
	}
	if f.graph.Len() != 0 {
		t.Errorf("expected an empty graph, got %d nodes", f.graph.Len())
	}
	if loop, ok := f.sounds.Last(cfg.SoundJetpackLoop); ok && loop.Playing {
		t.Errorf("expected the jetpack loop to stop")
	}

	steps := f.world.Steps
	f.level.Update(1.0 / 60)
	f.level.HandleJumpPressed()
	f.level.Reset()
	if f.world.Steps != steps {
		t.Errorf("expected a destroyed level to stay idle")
	}
}

func TestReset(t *testing.T) {
	f := newFixture(t, nil)
	f.level.Start()
	body := components.Body.Get(f.level.Player()).Body
	f.world.SetTranslation(body, mgl64.Vec3{4, 4, 0}, true)
	f.level.Update(1.0 / 60)

	f.level.Reset()

	if got := f.world.Translation(body); got != cfg.Player.Spawn {
		t.Errorf("expected the player at the spawn, got %v", got)
	}
	if f.level.Elapsed() != 0 {
		t.Errorf("expected the timer to restart, got %v", f.level.Elapsed())
	}
}
