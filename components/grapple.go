package components

import (
	"github.com/automoto/skyhook/config"
	"github.com/yohamta/donburi"
)

// GrappleData is the singleton grapple graph. Links are spring entries in
// insertion order, oldest first.
type GrappleData struct {
	Config config.GrappleConfig
	Links  []*donburi.Entry
	Rand   func() float64
}

var Grapple = donburi.NewComponentType[GrappleData]()
