package systems

import (
	"github.com/automoto/skyhook/audio"
	"github.com/automoto/skyhook/components"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics advances the physics world by the tick's delta.
func UpdatePhysics(ecs *ecs.ECS) {
	factory.World(ecs).Step(Delta(ecs))
}

// Delta returns the clamped delta of the current tick.
func Delta(ecs *ecs.ECS) float64 {
	e, ok := components.Tick.First(ecs.World)
	if !ok {
		return 0
	}
	return components.Tick.Get(e).Delta
}

// SetDelta stores the delta the next Update runs with.
func SetDelta(ecs *ecs.ECS, delta float64) {
	if e, ok := components.Tick.First(ecs.World); ok {
		components.Tick.Get(e).Delta = delta
	}
}

func sounds(ecs *ecs.ECS) audio.Provider {
	if e, ok := components.Audio.First(ecs.World); ok {
		return components.Audio.Get(e).Provider
	}
	return audio.Silent{}
}

func levelData(ecs *ecs.ECS) (*components.LevelData, bool) {
	e, ok := components.Level.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.Level.Get(e), true
}

// castSide reports whether anything solid other than own lies within length
// of origin along dir.
func castSide(world physics.World, origin, dir mgl64.Vec3, length float64, own physics.ColliderHandle) bool {
	ray := physics.Ray{Origin: origin, Dir: dir}
	_, hit := world.CastRay(ray, length, false, physics.ExcludeSensorsAnd(world, own))
	return hit
}
