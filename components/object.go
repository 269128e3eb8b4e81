package components

import (
	"github.com/automoto/skyhook/render"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to the visual node the systems move.
type ObjectData struct {
	*render.Node
}

var Object = donburi.NewComponentType[ObjectData]()
