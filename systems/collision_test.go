package systems

import (
	"testing"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/scene"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
)

type outcomes struct {
	goals, deaths int
}

func (o *outcomes) goal() { o.goals++ }
func (o *outcomes) die()  { o.deaths++ }

type collisionFixture struct {
	*harness
	own, goal, danger, enemy, floor physics.ColliderHandle
	got                             *outcomes
}

func newCollisionFixture(t *testing.T) *collisionFixture {
	t.Helper()
	h := newHarness(t)
	sensor := func(pos mgl64.Vec3) physics.ColliderHandle {
		return h.world.CreateCollider(physics.ColliderDesc{
			Shape:       physics.Cuboid,
			HalfExtents: mgl64.Vec3{1, 1, 1},
			Translation: pos,
			Sensor:      true,
		}, 0)
	}

	marker := scene.NewNode("enemy")
	marker.Position = mgl64.Vec3{10, 1, 0}
	enemy := factory.CreateEnemy(h.ecs, marker)
	_, floor := h.fixedBox(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{5, 0.5, 0.5})

	f := &collisionFixture{
		harness: h,
		own:     components.Body.Get(h.player).Collider,
		goal:    sensor(mgl64.Vec3{20, 1, 0}),
		danger:  sensor(mgl64.Vec3{-20, 1, 0}),
		enemy:   components.Body.Get(enemy).Collider,
		floor:   floor,
		got:     &outcomes{},
	}
	h.withLevel(components.LevelBundle{
		GoalSensors:   []physics.ColliderHandle{f.goal},
		DangerSensors: []physics.ColliderHandle{f.danger},
	}, f.got.goal, f.got.die)
	return f
}

func TestClassifyCollision(t *testing.T) {
	f := newCollisionFixture(t)
	tests := []struct {
		name string
		ev   physics.CollisionEvent
		want cfg.OutcomeID
	}{
		{"Goal", physics.CollisionEvent{A: f.own, B: f.goal, Started: true}, cfg.OutcomePlayerHitGoal},
		{"Goal reversed", physics.CollisionEvent{A: f.goal, B: f.own, Started: true}, cfg.OutcomePlayerHitGoal},
		{"Enemy", physics.CollisionEvent{A: f.own, B: f.enemy, Started: true}, cfg.OutcomePlayerHitEnemy},
		{"Danger", physics.CollisionEvent{A: f.danger, B: f.own, Started: true}, cfg.OutcomePlayerHitDanger},
		{"Terrain", physics.CollisionEvent{A: f.own, B: f.floor, Started: true}, cfg.OutcomeNone},
		{"Stopped", physics.CollisionEvent{A: f.own, B: f.goal, Started: false}, cfg.OutcomeNone},
		{"Without the player", physics.CollisionEvent{A: f.enemy, B: f.goal, Started: true}, cfg.OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCollision(f.ecs, tt.ev); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyCollisionPriority(t *testing.T) {
	f := newCollisionFixture(t)
	level, _ := levelData(f.ecs)
	level.Bundle.DangerSensors = append(level.Bundle.DangerSensors, f.goal, f.enemy)

	if got := ClassifyCollision(f.ecs, physics.CollisionEvent{A: f.own, B: f.goal, Started: true}); got != cfg.OutcomePlayerHitGoal {
		t.Errorf("expected the goal to win over danger, got %s", got)
	}
	if got := ClassifyCollision(f.ecs, physics.CollisionEvent{A: f.own, B: f.enemy, Started: true}); got != cfg.OutcomePlayerHitEnemy {
		t.Errorf("expected the enemy to win over danger, got %s", got)
	}
}

func TestUpdateCollisions(t *testing.T) {
	tests := []struct {
		name       string
		lethal     bool
		other      func(f *collisionFixture) physics.ColliderHandle
		started    bool
		goals, die int
	}{
		{"Goal", false, func(f *collisionFixture) physics.ColliderHandle { return f.goal }, true, 1, 0},
		{"Danger", false, func(f *collisionFixture) physics.ColliderHandle { return f.danger }, true, 0, 1},
		{"Harmless enemy", false, func(f *collisionFixture) physics.ColliderHandle { return f.enemy }, true, 0, 0},
		{"Lethal enemy", true, func(f *collisionFixture) physics.ColliderHandle { return f.enemy }, true, 0, 1},
		{"Leaving the goal", false, func(f *collisionFixture) physics.ColliderHandle { return f.goal }, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := cfg.Level.EnemiesLethal
			cfg.Level.EnemiesLethal = tt.lethal
			t.Cleanup(func() { cfg.Level.EnemiesLethal = prev })

			f := newCollisionFixture(t)
			f.world.PushCollision(f.own, tt.other(f), tt.started)

			UpdateCollisions(f.ecs)

			if f.got.goals != tt.goals || f.got.deaths != tt.die {
				t.Errorf("expected %d goals and %d deaths, got %d and %d", tt.goals, tt.die, f.got.goals, f.got.deaths)
			}
		})
	}
}

func TestUpdateCollisionsDrains(t *testing.T) {
	f := newCollisionFixture(t)
	f.world.PushCollision(f.own, f.goal, true)

	UpdateCollisions(f.ecs)
	UpdateCollisions(f.ecs)

	if f.got.goals != 1 {
		t.Errorf("expected the event to fire once, got %d", f.got.goals)
	}
}
