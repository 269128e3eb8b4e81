package systems

import (
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEnemies walks every enemy back and forth, turning around when a side
// ray hits a wall.
func UpdateEnemies(ecs *ecs.ECS) {
	dt := Delta(ecs)
	world := factory.World(ecs)

	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		b := components.Body.Get(e)
		node := components.Object.Get(e).Node
		conf := enemy.Config

		pos := world.Translation(b.Body)
		node.Position = pos

		if castSide(world, pos, left, conf.RayLength, b.Collider) {
			enemy.Direction = cfg.DirectionRight
		} else if castSide(world, pos, right, conf.RayLength, b.Collider) {
			enemy.Direction = cfg.DirectionLeft
		}

		vx := world.LinearVelocity(b.Body).X()

		impulse := mgl64.Vec3{enemy.Direction * conf.HorizontalMovementForce * dt, 0, 0}
		world.ApplyImpulse(b.Body, impulse, true)

		facing := cfg.DirectionLeft
		if vx > 0 {
			facing = cfg.DirectionRight
		}

		yaw := mgl64.DegToRad(conf.YawDegrees * facing)
		enemy.Yaw = gamemath.Damp(enemy.Yaw, yaw, conf.VisualLambda, dt)
		if enemy.Model != nil {
			enemy.Model.Rotation = mgl64.QuatRotate(enemy.Yaw, mgl64.Vec3{0, 1, 0})
		}

		tilt := -facing*conf.TiltBias + vx*conf.TiltPerVelocity
		enemy.Tilt = gamemath.Damp(enemy.Tilt, tilt, conf.VisualLambda, dt)
		node.Rotation = mgl64.QuatRotate(enemy.Tilt, mgl64.Vec3{0, 0, 1})
	})
}
