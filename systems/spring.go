package systems

import (
	"github.com/automoto/skyhook/components"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSprings re-poses every link between its two bodies. New links grow
// in along their length while their age tween runs.
func UpdateSprings(ecs *ecs.ECS) {
	dt := Delta(ecs)
	world := factory.World(ecs)

	tags.Spring.Each(ecs.World, func(e *donburi.Entry) {
		s := components.Spring.Get(e)
		node := components.Object.Get(e).Node

		if s.Age != nil {
			age, _ := s.Age.Update(float32(dt))
			s.AgeValue = float64(age)
		}

		dist := factory.PoseSpring(world, s, node)
		node.Scale[1] = gamemath.Lerp(node.Scale[1], dist, s.AgeValue)
	})
}
