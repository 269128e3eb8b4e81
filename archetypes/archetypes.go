package archetypes

import (
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Body,
		components.Animation,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Object,
		components.Body,
	)
	Block = newArchetype(
		tags.Block,
		components.Block,
		components.Object,
		components.Body,
	)
	Spring = newArchetype(
		tags.Spring,
		components.Spring,
		components.Object,
	)
	Goal = newArchetype(
		tags.Goal,
		components.Sensor,
	)
	Danger = newArchetype(
		tags.Danger,
		components.Sensor,
	)
	Terrain = newArchetype(
		tags.Terrain,
		components.Terrain,
	)
	Grapple = newArchetype(
		components.Grapple,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Audio = newArchetype(
		components.Audio,
	)
	Input = newArchetype(
		components.Input,
	)
	Tick = newArchetype(
		components.Tick,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
