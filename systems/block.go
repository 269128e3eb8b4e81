package systems

import (
	"github.com/automoto/skyhook/components"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBlocks copies each block body's transform onto its node.
func UpdateBlocks(ecs *ecs.ECS) {
	world := factory.World(ecs)
	tags.Block.Each(ecs.World, func(e *donburi.Entry) {
		b := components.Body.Get(e)
		node := components.Object.Get(e).Node
		node.Position = world.Translation(b.Body)
		node.Rotation = world.Rotation(b.Body)
	})
}
