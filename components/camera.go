package components

import (
	"github.com/automoto/skyhook/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type CameraData struct {
	Config   config.CameraConfig
	Position mgl64.Vec3
}

var Camera = donburi.NewComponentType[CameraData]()
