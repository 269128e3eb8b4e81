package systems

import (
	"testing"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	aimRight = mgl64.Vec2{1, 0}
	aimUp    = mgl64.Vec2{0, 1}
	aimLeft  = mgl64.Vec2{-1, 0}
)

// targets places a fixed box right of the player, a light dynamic box above
// it and another fixed box to its left.
func targets(h *harness) (right, up, left physics.BodyHandle) {
	right, _ = h.fixedBox(mgl64.Vec3{5, 1, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
	up, _ = h.dynamicBox(mgl64.Vec3{0, 5, 0}, 0.5, 0.2)
	left, _ = h.fixedBox(mgl64.Vec3{-5, 1, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
	return right, up, left
}

func TestGrappleFixedTarget(t *testing.T) {
	h := newHarness(t)
	right, _, _ := targets(h)

	if !Grapple(h.ecs, h.body, aimRight) {
		t.Fatalf("expected a link to the box on the right")
	}

	links := h.links()
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	s := links[0]
	if s.Parent != h.body || s.Child != right {
		t.Errorf("expected link %d->%d, got %d->%d", h.body, right, s.Parent, s.Child)
	}
	if s.Stiffness != cfg.Grapple.FixedStiffness {
		t.Errorf("expected stiffness %v, got %v", cfg.Grapple.FixedStiffness, s.Stiffness)
	}
	if !nearVec(s.ChildHitPoint, mgl64.Vec3{4.5, 1, 0}) {
		t.Errorf("expected hit point (4.5,1,0), got %v", s.ChildHitPoint)
	}
	if s.Jitter != 0 {
		t.Errorf("expected zero jitter from a centred random source, got %v", s.Jitter)
	}

	joint, ok := h.world.Joint(s.Joint)
	if !ok {
		t.Fatalf("link joint is not live")
	}
	if joint.RestLength != cfg.Spring.RestLength || joint.Damping != cfg.Spring.Damping {
		t.Errorf("unexpected joint parameters %+v", joint)
	}
	if joint.ChildAnchor != s.ChildHitPoint {
		t.Errorf("expected child anchor %v, got %v", s.ChildHitPoint, joint.ChildAnchor)
	}
}

func TestGrappleDynamicTargetStiffness(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		want float64
	}{
		{"Light body", 0.2, 0.2*cfg.Grapple.MassStiffnessFactor + cfg.Grapple.MassStiffnessBias},
		{"Heavy body capped", 5, cfg.Grapple.FixedStiffness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			target, _ := h.dynamicBox(mgl64.Vec3{0, 5, 0}, 0.5, tt.mass)

			if !Grapple(h.ecs, h.body, aimUp) {
				t.Fatalf("expected a link to the box above")
			}
			s := h.links()[0]
			if s.Child != target {
				t.Fatalf("expected child %d, got %d", target, s.Child)
			}
			if !near(s.Stiffness, tt.want) {
				t.Errorf("expected stiffness %v, got %v", tt.want, s.Stiffness)
			}
			if s.ChildHitPoint != (mgl64.Vec3{}) {
				t.Errorf("expected a centred anchor on a dynamic body, got %v", s.ChildHitPoint)
			}
		})
	}
}

func TestGrappleNoLink(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl64.Vec2
	}{
		{"Nothing in range", aimLeft},
		{"Zero direction", mgl64.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.fixedBox(mgl64.Vec3{5, 1, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
			h.fixedBox(mgl64.Vec3{-20, 1, 0}, mgl64.Vec3{0.5, 0.5, 0.5})

			if Grapple(h.ecs, h.body, tt.dir) {
				t.Errorf("expected no link")
			}
			if GrappleCount(h.ecs) != 0 || h.world.LiveJoints() != 0 {
				t.Errorf("expected an empty graph, got %d links and %d joints", GrappleCount(h.ecs), h.world.LiveJoints())
			}
		})
	}
}

func TestGrappleIgnoresSensors(t *testing.T) {
	h := newHarness(t)
	h.world.CreateCollider(physics.ColliderDesc{
		Shape:       physics.Cuboid,
		HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5},
		Translation: mgl64.Vec3{2, 1, 0},
		Sensor:      true,
	}, 0)
	right, _ := h.fixedBox(mgl64.Vec3{5, 1, 0}, mgl64.Vec3{0.5, 0.5, 0.5})

	if !Grapple(h.ecs, h.body, aimRight) {
		t.Fatalf("expected the ray to pass through the sensor")
	}
	if s := h.links()[0]; s.Child != right {
		t.Errorf("expected child %d, got %d", right, s.Child)
	}
}

func TestGrappleEvictsOldest(t *testing.T) {
	h := newHarness(t)
	targets(h)

	Grapple(h.ecs, h.body, aimRight)
	oldest := h.links()[0].Joint
	for i := 0; i < cfg.Grapple.MaxInstances; i++ {
		if !Grapple(h.ecs, h.body, aimRight) {
			t.Fatalf("grapple %d failed", i)
		}
	}

	if n := GrappleCount(h.ecs); n != cfg.Grapple.MaxInstances {
		t.Errorf("expected %d links, got %d", cfg.Grapple.MaxInstances, n)
	}
	if n := h.world.LiveJoints(); n != cfg.Grapple.MaxInstances {
		t.Errorf("expected %d joints, got %d", cfg.Grapple.MaxInstances, n)
	}
	if _, ok := h.world.Joint(oldest); ok {
		t.Errorf("expected the oldest joint to be removed")
	}
}

func TestRelease(t *testing.T) {
	tests := []struct {
		name  string
		order ReleaseOrder
		want  func(right, up, left physics.BodyHandle) []physics.BodyHandle
	}{
		{"Last", ReleaseLast, func(r, u, _ physics.BodyHandle) []physics.BodyHandle { return []physics.BodyHandle{r, u} }},
		{"First", ReleaseFirst, func(_, u, l physics.BodyHandle) []physics.BodyHandle { return []physics.BodyHandle{u, l} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			right, up, left := targets(h)
			for _, dir := range []mgl64.Vec2{aimRight, aimUp, aimLeft} {
				if !Grapple(h.ecs, h.body, dir) {
					t.Fatalf("grapple %v failed", dir)
				}
			}

			Release(h.ecs, tt.order)

			want := tt.want(right, up, left)
			links := h.links()
			if len(links) != len(want) {
				t.Fatalf("expected %d links, got %d", len(want), len(links))
			}
			for i, s := range links {
				if s.Child != want[i] {
					t.Errorf("link %d: expected child %d, got %d", i, want[i], s.Child)
				}
			}
			if h.world.LiveJoints() != len(want) {
				t.Errorf("expected %d joints, got %d", len(want), h.world.LiveJoints())
			}
		})
	}
}

func TestReleaseEmpty(t *testing.T) {
	h := newHarness(t)
	Release(h.ecs, ReleaseLast)
	Release(h.ecs, ReleaseFirst)
	if GrappleCount(h.ecs) != 0 {
		t.Errorf("expected no links")
	}
}

func TestEscapeJoinsPairs(t *testing.T) {
	h := newHarness(t)
	right, up, _ := targets(h)
	for _, dir := range []mgl64.Vec2{aimRight, aimUp, aimLeft} {
		Grapple(h.ecs, h.body, dir)
	}
	first := h.links()
	wantStiffness := (first[0].Stiffness + first[1].Stiffness) / 2
	wantParentPoint := first[1].ChildHitPoint
	wantChildPoint := first[0].ChildHitPoint

	Escape(h.ecs, h.body)

	links := h.links()
	if len(links) != 1 {
		t.Fatalf("expected 1 joined link, got %d", len(links))
	}
	s := links[0]
	if s.Parent != up || s.Child != right {
		t.Errorf("expected link %d->%d, got %d->%d", up, right, s.Parent, s.Child)
	}
	if !near(s.Stiffness, wantStiffness) {
		t.Errorf("expected mean stiffness %v, got %v", wantStiffness, s.Stiffness)
	}
	if s.ParentHitPoint != wantParentPoint || s.ChildHitPoint != wantChildPoint {
		t.Errorf("expected hit points %v/%v, got %v/%v", wantParentPoint, wantChildPoint, s.ParentHitPoint, s.ChildHitPoint)
	}
	if h.world.LiveJoints() != 1 {
		t.Errorf("expected 1 joint, got %d", h.world.LiveJoints())
	}
}

// Joined links carry no anchor jitter and leave the random sequence alone.
func TestEscapeJoinedLinkHasNoJitter(t *testing.T) {
	h := newHarness(t)
	targets(h)
	e, ok := components.Grapple.First(h.ecs.World)
	if !ok {
		t.Fatalf("missing grapple")
	}
	calls := 0
	components.Grapple.Get(e).Rand = func() float64 {
		calls++
		return 0.9
	}
	Grapple(h.ecs, h.body, aimRight)
	Grapple(h.ecs, h.body, aimUp)
	if links := h.links(); links[0].Jitter == 0 {
		t.Fatalf("expected player links to be jittered")
	}
	before := calls

	Escape(h.ecs, h.body)

	links := h.links()
	if len(links) != 1 {
		t.Fatalf("expected 1 joined link, got %d", len(links))
	}
	if links[0].Jitter != 0 {
		t.Errorf("expected no jitter on the joined link, got %v", links[0].Jitter)
	}
	if calls != before {
		t.Errorf("expected Escape not to draw random numbers, got %d draws", calls-before)
	}
}

func TestEscapeSkipsSameTarget(t *testing.T) {
	h := newHarness(t)
	right, up, _ := targets(h)
	for _, dir := range []mgl64.Vec2{aimRight, aimRight, aimUp} {
		Grapple(h.ecs, h.body, dir)
	}

	Escape(h.ecs, h.body)

	links := h.links()
	if len(links) != 1 {
		t.Fatalf("expected 1 joined link, got %d", len(links))
	}
	if links[0].Parent != up || links[0].Child != right {
		t.Errorf("expected link %d->%d, got %d->%d", up, right, links[0].Parent, links[0].Child)
	}
}

func TestEscapeKeepsForeignLinks(t *testing.T) {
	h := newHarness(t)
	right, up, _ := targets(h)
	Grapple(h.ecs, h.body, aimRight)
	Grapple(h.ecs, h.body, aimUp)
	Escape(h.ecs, h.body)

	// A lone player link has no partner and is dropped.
	Grapple(h.ecs, h.body, aimRight)
	Escape(h.ecs, h.body)

	links := h.links()
	if len(links) != 1 {
		t.Fatalf("expected the joined link to survive, got %d links", len(links))
	}
	if links[0].Parent != up || links[0].Child != right {
		t.Errorf("expected link %d->%d, got %d->%d", up, right, links[0].Parent, links[0].Child)
	}
	for _, s := range links {
		if s.Parent == h.body || s.Child == h.body {
			t.Errorf("player still linked")
		}
	}
}

func TestResetGrapple(t *testing.T) {
	h := newHarness(t)
	targets(h)
	Grapple(h.ecs, h.body, aimRight)
	Grapple(h.ecs, h.body, aimLeft)

	ResetGrapple(h.ecs)

	if GrappleCount(h.ecs) != 0 || h.world.LiveJoints() != 0 {
		t.Errorf("expected an empty graph, got %d links and %d joints", GrappleCount(h.ecs), h.world.LiveJoints())
	}
}

func TestFireGrapplePlaysSound(t *testing.T) {
	h := newHarness(t)
	targets(h)
	vp := gamemath.Viewport{Width: 640, Height: 480}
	cam := cfg.Camera
	screen, ok := gamemath.Project(cfg.Player.Spawn, cam.Start, cam.Fov, cam.Near, cam.RenderDistance, vp)
	if !ok {
		t.Fatalf("player is not on screen")
	}

	if !FireGrapple(h.ecs, screen.Add(mgl64.Vec2{100, 0}), vp) {
		t.Fatalf("expected a link")
	}

	inst, ok := h.sounds.Last(cfg.SoundGrapple)
	if !ok || !inst.Playing {
		t.Fatalf("expected the grapple sound to play")
	}
	conf := cfg.ContactAudio
	if !near(inst.Gain, conf.GrappleVolume) {
		t.Errorf("expected volume %v, got %v", conf.GrappleVolume, inst.Gain)
	}
	if !near(inst.Detune, 0.5*conf.GrappleDetune) {
		t.Errorf("expected detune %v, got %v", 0.5*conf.GrappleDetune, inst.Detune)
	}
	if !near(inst.Rate, conf.GrappleRateMin+0.5*conf.GrappleRateRange) {
		t.Errorf("unexpected rate %v", inst.Rate)
	}
}

func TestFireGrappleMissIsSilent(t *testing.T) {
	h := newHarness(t)
	vp := gamemath.Viewport{Width: 640, Height: 480}

	if FireGrapple(h.ecs, mgl64.Vec2{640, 0}, vp) {
		t.Fatalf("expected no link in an empty world")
	}
	if _, ok := h.sounds.Last(cfg.SoundGrapple); ok {
		t.Errorf("expected no grapple sound")
	}
}
