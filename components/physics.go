package components

import (
	"github.com/automoto/skyhook/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// BodyData binds an entity to its rigid body and primary collider. The start
// transform is captured at creation for level resets.
type BodyData struct {
	Body          physics.BodyHandle
	Collider      physics.ColliderHandle
	StartPosition mgl64.Vec3
	StartRotation mgl64.Quat
}

var Body = donburi.NewComponentType[BodyData]()

// SpaceData is the singleton holding the physics world of the running level.
type SpaceData struct {
	World physics.World
}

var Space = donburi.NewComponentType[SpaceData]()
