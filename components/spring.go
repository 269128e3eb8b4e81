package components

import (
	"github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// SpringData is one spring link. It owns exactly one joint.
type SpringData struct {
	Config config.SpringConfig

	Joint          physics.JointHandle
	Parent         physics.BodyHandle
	Child          physics.BodyHandle
	ParentHitPoint mgl64.Vec3
	ChildHitPoint  mgl64.Vec3
	Stiffness      float64
	Jitter         float64 // visual offset of the parent end

	// Age ramps from 0 to 1 after creation and drives the stretch-in.
	Age      *gween.Tween
	AgeValue float64
}

var Spring = donburi.NewComponentType[SpringData]()
