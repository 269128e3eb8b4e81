package components

import (
	"github.com/automoto/skyhook/audio"
	"github.com/yohamta/donburi"
)

// AudioData stores the sound provider (singleton component)
type AudioData struct {
	Provider audio.Provider
}

var Audio = donburi.NewComponentType[AudioData]()
