package systems

import (
	"github.com/automoto/skyhook/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateIntents turns the held buttons into player intents. They are
// consumed by the player system on the next tick.
func UpdateIntents(ecs *ecs.ECS) {
	e, ok := components.Input.First(ecs.World)
	if !ok {
		return
	}
	state := components.Input.Get(e).State
	if state == nil {
		return
	}
	held := state.Held()

	if held.Left {
		MoveLeft(ecs)
	}
	if held.Right {
		MoveRight(ecs)
	}
	if held.Boost {
		Boost(ecs)
	}
}
