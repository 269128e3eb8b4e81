package components

import (
	"github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/render"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	Config    config.EnemyConfig
	Direction float64 // config.DirectionLeft or config.DirectionRight
	Model     *render.Node
	Yaw       float64
	Tilt      float64
}

var Enemy = donburi.NewComponentType[EnemyData]()
