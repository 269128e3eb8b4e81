package components

import (
	"image/color"

	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/render"
	"github.com/yohamta/donburi"
)

// LevelBundle is everything the level builder produced. It is fixed for the
// lifetime of the level.
type LevelBundle struct {
	FogColor color.RGBA
	FogNear  float64
	FogFar   float64
	SkyGlow  *render.Node

	GoalSensors      []physics.ColliderHandle
	DangerSensors    []physics.ColliderHandle
	TerrainColliders []physics.ColliderHandle
	TerrainBodies    []physics.BodyHandle

	Enemies []*donburi.Entry
	Blocks  []*donburi.Entry

	// Objects are the visual nodes to add to the render graph, the batch
	// excluded.
	Objects []*render.Node
	Batch   *render.Batch
}

// IsGoal reports whether h is a goal sensor.
func (b *LevelBundle) IsGoal(h physics.ColliderHandle) bool {
	return containsCollider(b.GoalSensors, h)
}

// IsDanger reports whether h is a danger sensor.
func (b *LevelBundle) IsDanger(h physics.ColliderHandle) bool {
	return containsCollider(b.DangerSensors, h)
}

func containsCollider(hs []physics.ColliderHandle, h physics.ColliderHandle) bool {
	if h == 0 {
		return false
	}
	for _, c := range hs {
		if c == h {
			return true
		}
	}
	return false
}

type LevelData struct {
	Bundle  LevelBundle
	Elapsed float64
	Started bool

	OnReachedGoal func()
	OnPlayerDie   func()
}

var Level = donburi.NewComponentType[LevelData]()
