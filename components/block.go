package components

import (
	"github.com/automoto/skyhook/config"
	"github.com/yohamta/donburi"
)

type BlockData struct {
	Config     config.BlockConfig
	HalfExtent float64
}

var Block = donburi.NewComponentType[BlockData]()
