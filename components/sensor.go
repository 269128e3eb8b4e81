package components

import (
	"github.com/automoto/skyhook/physics"
	"github.com/yohamta/donburi"
)

type SensorKind int

const (
	SensorGoal SensorKind = iota
	SensorDanger
)

type SensorData struct {
	Kind     SensorKind
	Collider physics.ColliderHandle
}

var Sensor = donburi.NewComponentType[SensorData]()

// TerrainData is a fixed body with an exact mesh collider.
type TerrainData struct {
	Body     physics.BodyHandle
	Collider physics.ColliderHandle
}

var Terrain = donburi.NewComponentType[TerrainData]()
