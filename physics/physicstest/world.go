// Package physicstest provides a deterministic in-memory physics.World for
// tests. Bodies integrate velocity explicitly, ray casts test axis-aligned
// bounds, and events and contacts are scripted by the test.
package physicstest

import (
	"math"
	"sort"

	"github.com/automoto/skyhook/physics"
	"github.com/go-gl/mathgl/mgl64"
)

type body struct {
	desc        physics.BodyDesc
	translation mgl64.Vec3
	velocity    mgl64.Vec3
	rotation    mgl64.Quat
	colliders   []physics.ColliderHandle
	impulses    []mgl64.Vec3
}

type collider struct {
	desc        physics.ColliderDesc
	parent      physics.BodyHandle
	translation mgl64.Vec3
}

type pair struct{ a, b physics.ColliderHandle }

func key(a, b physics.ColliderHandle) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// World is a scripted physics.World.
type World struct {
	Gravity mgl64.Vec3
	Steps   int

	bodies    map[physics.BodyHandle]*body
	colliders map[physics.ColliderHandle]*collider
	joints    map[physics.JointHandle]physics.SpringJointDesc
	contacts  map[pair]bool

	collisions []physics.CollisionEvent
	forces     []physics.ContactForceEvent
	next       uint32
}

var _ physics.World = (*World)(nil)

func New() *World {
	return &World{
		bodies:    make(map[physics.BodyHandle]*body),
		colliders: make(map[physics.ColliderHandle]*collider),
		joints:    make(map[physics.JointHandle]physics.SpringJointDesc),
		contacts:  make(map[pair]bool),
	}
}

func (w *World) id() uint32 {
	w.next++
	return w.next
}

func (w *World) CreateRigidBody(desc physics.BodyDesc) physics.BodyHandle {
	h := physics.BodyHandle(w.id())
	w.bodies[h] = &body{
		desc:        desc,
		translation: desc.Translation,
		rotation:    physics.Rot(desc.Rotation),
	}
	return h
}

func (w *World) RemoveRigidBody(h physics.BodyHandle) {
	b, ok := w.bodies[h]
	if !ok {
		return
	}
	for _, c := range b.colliders {
		delete(w.colliders, c)
	}
	for j, d := range w.joints {
		if d.Parent == h || d.Child == h {
			delete(w.joints, j)
		}
	}
	delete(w.bodies, h)
}

func (w *World) Translation(h physics.BodyHandle) mgl64.Vec3 {
	if b, ok := w.bodies[h]; ok {
		return b.translation
	}
	return mgl64.Vec3{}
}

func (w *World) SetTranslation(h physics.BodyHandle, v mgl64.Vec3, _ bool) {
	if b, ok := w.bodies[h]; ok {
		b.translation = v
	}
}

func (w *World) LinearVelocity(h physics.BodyHandle) mgl64.Vec3 {
	if b, ok := w.bodies[h]; ok {
		return b.velocity
	}
	return mgl64.Vec3{}
}

func (w *World) SetLinearVelocity(h physics.BodyHandle, v mgl64.Vec3, _ bool) {
	if b, ok := w.bodies[h]; ok {
		b.velocity = v
	}
}

func (w *World) Rotation(h physics.BodyHandle) mgl64.Quat {
	if b, ok := w.bodies[h]; ok {
		return b.rotation
	}
	return mgl64.QuatIdent()
}

func (w *World) SetRotation(h physics.BodyHandle, q mgl64.Quat, _ bool) {
	if b, ok := w.bodies[h]; ok {
		b.rotation = physics.Rot(q)
	}
}

func (w *World) ApplyImpulse(h physics.BodyHandle, impulse mgl64.Vec3, _ bool) {
	b, ok := w.bodies[h]
	if !ok || b.desc.Kind == physics.Fixed {
		return
	}
	b.impulses = append(b.impulses, impulse)
	m := w.Mass(h)
	if m <= 0 {
		m = 1
	}
	b.velocity = b.velocity.Add(impulse.Mul(1 / m))
}

func (w *World) Mass(h physics.BodyHandle) float64 {
	b, ok := w.bodies[h]
	if !ok || b.desc.Kind == physics.Fixed {
		return 0
	}
	var m float64
	for _, c := range b.colliders {
		m += w.colliders[c].desc.ComputedMass()
	}
	return m
}

func (w *World) IsFixed(h physics.BodyHandle) bool {
	b, ok := w.bodies[h]
	return ok && b.desc.Kind == physics.Fixed
}

func (w *World) Collider(h physics.BodyHandle, i int) (physics.ColliderHandle, bool) {
	b, ok := w.bodies[h]
	if !ok || i < 0 || i >= len(b.colliders) {
		return 0, false
	}
	return b.colliders[i], true
}

func (w *World) CreateCollider(desc physics.ColliderDesc, parent physics.BodyHandle) physics.ColliderHandle {
	if parent != 0 {
		if _, ok := w.bodies[parent]; !ok {
			return 0
		}
	}
	h := physics.ColliderHandle(w.id())
	w.colliders[h] = &collider{desc: desc, parent: parent, translation: desc.Translation}
	if parent != 0 {
		b := w.bodies[parent]
		b.colliders = append(b.colliders, h)
	}
	return h
}

func (w *World) RemoveCollider(h physics.ColliderHandle) {
	c, ok := w.colliders[h]
	if !ok {
		return
	}
	if b, ok := w.bodies[c.parent]; ok {
		for i, o := range b.colliders {
			if o == h {
				b.colliders = append(b.colliders[:i], b.colliders[i+1:]...)
				break
			}
		}
	}
	delete(w.colliders, h)
}

func (w *World) ColliderParent(h physics.ColliderHandle) (physics.BodyHandle, bool) {
	c, ok := w.colliders[h]
	if !ok || c.parent == 0 {
		return 0, false
	}
	return c.parent, true
}

func (w *World) IsSensor(h physics.ColliderHandle) bool {
	c, ok := w.colliders[h]
	return ok && c.desc.Sensor
}

func (w *World) SetColliderTranslation(h physics.ColliderHandle, v mgl64.Vec3) {
	if c, ok := w.colliders[h]; ok {
		c.translation = v
	}
}

func (w *World) CreateSpringJoint(desc physics.SpringJointDesc) physics.JointHandle {
	h := physics.JointHandle(w.id())
	w.joints[h] = desc
	return h
}

func (w *World) RemoveJoint(h physics.JointHandle) {
	delete(w.joints, h)
}

func (w *World) JointBodies(h physics.JointHandle) (physics.BodyHandle, physics.BodyHandle, bool) {
	d, ok := w.joints[h]
	return d.Parent, d.Child, ok
}

// bounds returns the world-space axis-aligned box of a collider.
func (w *World) bounds(c *collider) (mgl64.Vec3, mgl64.Vec3) {
	center := c.translation
	if b, ok := w.bodies[c.parent]; ok {
		center = b.translation.Add(c.desc.Translation)
	}
	switch c.desc.Shape {
	case physics.Ball:
		r := mgl64.Vec3{c.desc.Radius, c.desc.Radius, c.desc.Radius}
		return center.Sub(r), center.Add(r)
	case physics.Cuboid:
		return center.Sub(c.desc.HalfExtents), center.Add(c.desc.HalfExtents)
	}
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	rot := physics.Rot(c.desc.Rotation)
	for _, v := range c.desc.Vertices {
		p := rot.Rotate(v)
		if _, ok := w.bodies[c.parent]; ok {
			p = p.Add(center)
		} else {
			p = p.Add(c.translation)
		}
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	return lo, hi
}

func (w *World) CastRay(ray physics.Ray, maxDistance float64, solid bool, exclude func(physics.ColliderHandle) bool) (physics.RayHit, bool) {
	handles := make([]physics.ColliderHandle, 0, len(w.colliders))
	for h := range w.colliders {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	best := physics.RayHit{TOI: math.Inf(1)}
	for _, h := range handles {
		if exclude != nil && exclude(h) {
			continue
		}
		lo, hi := w.bounds(w.colliders[h])
		toi, ok := slab(ray, lo, hi, solid)
		if ok && toi <= maxDistance && toi < best.TOI {
			best = physics.RayHit{Collider: h, TOI: toi}
		}
	}
	return best, best.Collider != 0
}

func slab(ray physics.Ray, lo, hi mgl64.Vec3, solid bool) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		o, d := ray.Origin[i], ray.Dir[i]
		if d == 0 {
			if o < lo[i] || o > hi[i] {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo[i]-o)/d, (hi[i]-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		if !solid {
			return tmax, true
		}
		return 0, true
	}
	return tmin, true
}

func (w *World) ContactPair(a, b physics.ColliderHandle) bool {
	return w.contacts[key(a, b)]
}

// Step integrates every dynamic body by delta.
func (w *World) Step(delta float64) {
	w.Steps++
	for _, b := range w.bodies {
		if b.desc.Kind == physics.Fixed {
			continue
		}
		b.velocity = b.velocity.Add(w.Gravity.Mul(delta))
		b.translation = b.translation.Add(b.velocity.Mul(delta))
		if b.desc.LockTranslationZ {
			b.translation[2] = b.desc.Translation.Z()
		}
	}
}

func (w *World) DrainCollisionEvents(fn func(physics.CollisionEvent)) {
	events := w.collisions
	w.collisions = nil
	for _, e := range events {
		fn(e)
	}
}

func (w *World) DrainContactForceEvents(fn func(physics.ContactForceEvent)) {
	events := w.forces
	w.forces = nil
	for _, e := range events {
		fn(e)
	}
}

// PushCollision queues a collision event for the next drain.
func (w *World) PushCollision(a, b physics.ColliderHandle, started bool) {
	w.collisions = append(w.collisions, physics.CollisionEvent{A: a, B: b, Started: started})
}

// PushContactForce queues a contact force event for the next drain.
func (w *World) PushContactForce(a, b physics.ColliderHandle, total, maxForce float64) {
	w.forces = append(w.forces, physics.ContactForceEvent{A: a, B: b, TotalForceMagnitude: total, MaxForceMagnitude: maxForce})
}

// SetContact marks two colliders as touching or apart.
func (w *World) SetContact(a, b physics.ColliderHandle, touching bool) {
	if touching {
		w.contacts[key(a, b)] = true
		return
	}
	delete(w.contacts, key(a, b))
}

// Impulses returns every impulse applied to h, oldest first.
func (w *World) Impulses(h physics.BodyHandle) []mgl64.Vec3 {
	if b, ok := w.bodies[h]; ok {
		return b.impulses
	}
	return nil
}

// ClearImpulses forgets the recorded impulses of h.
func (w *World) ClearImpulses(h physics.BodyHandle) {
	if b, ok := w.bodies[h]; ok {
		b.impulses = nil
	}
}

// ColliderDesc returns the descriptor a collider was created with.
func (w *World) ColliderDesc(h physics.ColliderHandle) (physics.ColliderDesc, bool) {
	c, ok := w.colliders[h]
	if !ok {
		return physics.ColliderDesc{}, false
	}
	return c.desc, true
}

// ColliderTranslation returns the world translation of a standalone collider.
func (w *World) ColliderTranslation(h physics.ColliderHandle) mgl64.Vec3 {
	if c, ok := w.colliders[h]; ok {
		return c.translation
	}
	return mgl64.Vec3{}
}

// BodyDesc returns the descriptor a body was created with.
func (w *World) BodyDesc(h physics.BodyHandle) (physics.BodyDesc, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return physics.BodyDesc{}, false
	}
	return b.desc, true
}

// Joint returns the descriptor of a live joint.
func (w *World) Joint(h physics.JointHandle) (physics.SpringJointDesc, bool) {
	d, ok := w.joints[h]
	return d, ok
}

func (w *World) LiveBodies() int    { return len(w.bodies) }
func (w *World) LiveColliders() int { return len(w.colliders) }
func (w *World) LiveJoints() int    { return len(w.joints) }
