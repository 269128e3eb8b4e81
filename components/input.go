package components

import (
	"github.com/automoto/skyhook/input"
	"github.com/yohamta/donburi"
)

// InputData exposes the host's input state to the systems (singleton
// component).
type InputData struct {
	State input.State
}

var Input = donburi.NewComponentType[InputData]()
