package systems

import (
	"github.com/automoto/skyhook/components"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLevelTimer accumulates play time once the level has started.
func UpdateLevelTimer(ecs *ecs.ECS) {
	level, ok := levelData(ecs)
	if !ok || !level.Started {
		return
	}
	level.Elapsed += Delta(ecs)
}

// ResetLevel puts the player, enemies and blocks back at their start
// transforms at rest and drops every grapple link.
func ResetLevel(ecs *ecs.ECS) {
	world := factory.World(ecs)

	reset := func(e *donburi.Entry) {
		b := components.Body.Get(e)
		world.SetTranslation(b.Body, b.StartPosition, true)
		world.SetRotation(b.Body, b.StartRotation, true)
		world.SetLinearVelocity(b.Body, mgl64.Vec3{}, true)
		node := components.Object.Get(e).Node
		node.Position = b.StartPosition
		node.Rotation = b.StartRotation
	}

	if player, ok := tags.Player.First(ecs.World); ok {
		reset(player)
		p := components.Player.Get(player)
		p.Pending = components.Intents{}
		p.BoostRemaining = p.Config.Boost.Capacity
		world.SetColliderTranslation(p.ProximitySensor, components.Body.Get(player).StartPosition)
	}
	tags.Enemy.Each(ecs.World, reset)
	tags.Block.Each(ecs.World, reset)

	ResetGrapple(ecs)

	if level, ok := levelData(ecs); ok {
		level.Elapsed = 0
	}
}
