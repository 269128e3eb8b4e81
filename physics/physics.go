// Package physics describes the rigid-body engine the simulation drives.
// Gameplay code depends only on the World interface; engines live in
// subpackages.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Handles are opaque identifiers issued by a World. Zero is never issued.
type (
	BodyHandle     uint32
	ColliderHandle uint32
	JointHandle    uint32
)

type BodyKind int

const (
	Dynamic BodyKind = iota
	Fixed
)

type ShapeKind int

const (
	Ball ShapeKind = iota
	Cuboid
	TriMesh
)

// BodyDesc describes a rigid body at creation time.
type BodyDesc struct {
	Kind             BodyKind
	Translation      mgl64.Vec3
	Rotation         mgl64.Quat
	LockTranslationZ bool
	LockRotations    bool
	AllowRotationZ   bool // re-enables z rotation when LockRotations is set
	LinearDamping    float64
	AngularDamping   float64
	Label            string
}

// ColliderDesc describes a collision shape. Translation and Rotation are
// relative to the parent body, or world space for standalone colliders.
type ColliderDesc struct {
	Shape       ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
	Vertices    []mgl64.Vec3
	Indices     []uint32

	Translation mgl64.Vec3
	Rotation    mgl64.Quat

	Sensor      bool
	Friction    float64
	Restitution float64
	Density     float64
	Mass        float64 // overrides Density when positive
	ContactSkin float64

	CollisionEvents       bool
	ContactForceEvents    bool
	ContactForceThreshold float64
}

// Volume returns the shape volume. Triangle meshes have none.
func (d ColliderDesc) Volume() float64 {
	switch d.Shape {
	case Ball:
		return 4.0 / 3.0 * math.Pi * d.Radius * d.Radius * d.Radius
	case Cuboid:
		return 8 * d.HalfExtents.X() * d.HalfExtents.Y() * d.HalfExtents.Z()
	}
	return 0
}

// ComputedMass returns the mass the collider contributes to its body.
func (d ColliderDesc) ComputedMass() float64 {
	if d.Mass > 0 {
		return d.Mass
	}
	return d.Density * d.Volume()
}

// SpringJointDesc describes a spring between two bodies. Anchors are local to
// their body.
type SpringJointDesc struct {
	Parent       BodyHandle
	Child        BodyHandle
	ParentAnchor mgl64.Vec3
	ChildAnchor  mgl64.Vec3
	RestLength   float64
	Stiffness    float64
	Damping      float64
}

// Ray is a half line. Dir is expected to be normalized.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// PointAt returns the point at distance toi along the ray.
func (r Ray) PointAt(toi float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(toi))
}

// RayHit is the nearest collider along a ray.
type RayHit struct {
	Collider ColliderHandle
	TOI      float64
}

// CollisionEvent reports two colliders starting or stopping contact.
type CollisionEvent struct {
	A, B    ColliderHandle
	Started bool
}

// Other returns the collider paired with h, if h is part of the event.
func (e CollisionEvent) Other(h ColliderHandle) (ColliderHandle, bool) {
	switch h {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return 0, false
}

// ContactForceEvent reports a contact whose force exceeded a collider's
// threshold during the last step.
type ContactForceEvent struct {
	A, B                ColliderHandle
	TotalForceMagnitude float64
	MaxForceMagnitude   float64
}

// Involves reports whether h is one of the two colliders.
func (e ContactForceEvent) Involves(h ColliderHandle) bool {
	return h != 0 && (e.A == h || e.B == h)
}

type Bodies interface {
	CreateRigidBody(desc BodyDesc) BodyHandle
	RemoveRigidBody(h BodyHandle)
	Translation(h BodyHandle) mgl64.Vec3
	SetTranslation(h BodyHandle, v mgl64.Vec3, wake bool)
	LinearVelocity(h BodyHandle) mgl64.Vec3
	SetLinearVelocity(h BodyHandle, v mgl64.Vec3, wake bool)
	Rotation(h BodyHandle) mgl64.Quat
	SetRotation(h BodyHandle, q mgl64.Quat, wake bool)
	ApplyImpulse(h BodyHandle, impulse mgl64.Vec3, wake bool)
	Mass(h BodyHandle) float64
	IsFixed(h BodyHandle) bool
	// Collider returns the i-th collider attached to the body.
	Collider(h BodyHandle, i int) (ColliderHandle, bool)
}

type Colliders interface {
	// CreateCollider attaches a collider to parent, or creates a standalone
	// collider when parent is zero.
	CreateCollider(desc ColliderDesc, parent BodyHandle) ColliderHandle
	RemoveCollider(h ColliderHandle)
	ColliderParent(h ColliderHandle) (BodyHandle, bool)
	IsSensor(h ColliderHandle) bool
	SetColliderTranslation(h ColliderHandle, v mgl64.Vec3)
}

type Joints interface {
	CreateSpringJoint(desc SpringJointDesc) JointHandle
	RemoveJoint(h JointHandle)
	JointBodies(h JointHandle) (parent, child BodyHandle, ok bool)
}

type Queries interface {
	// CastRay returns the nearest collider within maxDistance that exclude
	// does not reject.
	CastRay(ray Ray, maxDistance float64, solid bool, exclude func(ColliderHandle) bool) (RayHit, bool)
	// ContactPair reports whether two colliders are currently touching.
	ContactPair(a, b ColliderHandle) bool
}

type Stepper interface {
	Step(delta float64)
	DrainCollisionEvents(fn func(CollisionEvent))
	DrainContactForceEvents(fn func(ContactForceEvent))
}

// World is the full engine contract.
type World interface {
	Bodies
	Colliders
	Joints
	Queries
	Stepper
}

// ExcludeSensorsAnd returns a ray filter rejecting sensors and the given
// colliders.
func ExcludeSensorsAnd(c Colliders, own ...ColliderHandle) func(ColliderHandle) bool {
	return func(h ColliderHandle) bool {
		for _, o := range own {
			if h == o {
				return true
			}
		}
		return c.IsSensor(h)
	}
}

// Rot returns q, or the identity when q is the zero value.
func Rot(q mgl64.Quat) mgl64.Quat {
	if q.W == 0 && q.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return q
}

// ZAngle returns the rotation of q about the z axis.
func ZAngle(q mgl64.Quat) float64 {
	x := Rot(q).Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(x.Y(), x.X())
}
