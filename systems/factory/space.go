package factory

import (
	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/audio"
	"github.com/automoto/skyhook/components"
	"github.com/automoto/skyhook/input"
	"github.com/automoto/skyhook/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateSpace(ecs *ecs.ECS, world physics.World) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	components.Space.Set(space, &components.SpaceData{World: world})
	return space
}

func CreateAudio(ecs *ecs.ECS, provider audio.Provider) *donburi.Entry {
	if provider == nil {
		provider = audio.Silent{}
	}
	e := archetypes.Audio.Spawn(ecs)
	components.Audio.Set(e, &components.AudioData{Provider: provider})
	return e
}

func CreateInput(ecs *ecs.ECS, state input.State) *donburi.Entry {
	if state == nil {
		state = input.Snapshot{}
	}
	e := archetypes.Input.Spawn(ecs)
	components.Input.Set(e, &components.InputData{State: state})
	return e
}

func CreateTick(ecs *ecs.ECS) *donburi.Entry {
	e := archetypes.Tick.Spawn(ecs)
	components.Tick.Set(e, &components.TickData{})
	return e
}

// World returns the physics world of the running level.
func World(ecs *ecs.ECS) physics.World {
	e, ok := components.Space.First(ecs.World)
	if !ok {
		panic("factory: no physics space")
	}
	return components.Space.Get(e).World
}
