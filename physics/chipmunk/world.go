// Package chipmunk implements physics.World on the Chipmunk2D port. The game
// plays out on the XY plane, so every body is simulated in 2D and keeps the
// depth it was created with.
package chipmunk

import (
	"math"

	"github.com/automoto/skyhook/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// All shapes share one collision type so a single handler sees every pair.
const tracked cp.CollisionType = 1

// meshRadius is the thickness given to triangle mesh edges.
const meshRadius = 0.02

type body struct {
	body      *cp.Body
	desc      physics.BodyDesc
	depth     float64
	mass      float64
	colliders []physics.ColliderHandle
}

type collider struct {
	desc    physics.ColliderDesc
	parent  physics.BodyHandle
	carrier *cp.Body // owns standalone colliders
	shapes  []*cp.Shape
	edges   [][2]cp.Vector // outline local to the owning body
	depth   float64
}

type joint struct {
	constraint    *cp.Constraint
	parent, child physics.BodyHandle
}

type pair struct{ a, b physics.ColliderHandle }

func key(a, b physics.ColliderHandle) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// World is a physics.World backed by a cp.Space.
type World struct {
	space     *cp.Space
	bodies    map[physics.BodyHandle]*body
	colliders map[physics.ColliderHandle]*collider
	joints    map[physics.JointHandle]*joint
	owners    map[*cp.Shape]physics.ColliderHandle
	contacts  map[pair]int

	stepForces map[pair]*forceSum
	forceOrder []pair

	collisions []physics.CollisionEvent
	forces     []physics.ContactForceEvent
	lastDelta  float64
	next       uint32
}

var _ physics.World = (*World)(nil)

func New(gravity mgl64.Vec3) *World {
	w := &World{
		space:     cp.NewSpace(),
		bodies:    make(map[physics.BodyHandle]*body),
		colliders: make(map[physics.ColliderHandle]*collider),
		joints:    make(map[physics.JointHandle]*joint),
		owners:    make(map[*cp.Shape]physics.ColliderHandle),
		contacts:  make(map[pair]int),

		stepForces: make(map[pair]*forceSum),
	}
	w.space.SetGravity(vec(gravity))

	handler := w.space.NewCollisionHandler(tracked, tracked)
	handler.BeginFunc = w.begin
	handler.SeparateFunc = w.separate
	handler.PostSolveFunc = w.postSolve
	return w
}

func vec(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

func (w *World) id() uint32 {
	w.next++
	return w.next
}

// Chipmunk keeps one arbiter per shape pair and a triangle mesh is made of
// many segment shapes, so contacts are counted per collider pair. Events fire
// only when the first shape pair starts touching and the last one separates.
func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b, ok := w.pairOf(arb)
	if !ok {
		return true
	}
	k := key(a, b)
	w.contacts[k]++
	if w.contacts[k] == 1 && w.wantsEvents(a, b) {
		w.collisions = append(w.collisions, physics.CollisionEvent{A: a, B: b, Started: true})
	}
	return true
}

func (w *World) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b, ok := w.pairOf(arb)
	if !ok {
		return
	}
	k := key(a, b)
	n, touching := w.contacts[k]
	if !touching {
		return
	}
	if n > 1 {
		w.contacts[k] = n - 1
		return
	}
	delete(w.contacts, k)
	if w.wantsEvents(a, b) {
		w.collisions = append(w.collisions, physics.CollisionEvent{A: a, B: b, Started: false})
	}
}

func (w *World) wantsEvents(a, b physics.ColliderHandle) bool {
	return w.colliders[a].desc.CollisionEvents || w.colliders[b].desc.CollisionEvents
}

// forceSum accumulates the contact force of one collider pair over a step.
type forceSum struct {
	a, b       physics.ColliderHandle
	total, max float64
}

func (w *World) postSolve(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	if w.lastDelta <= 0 {
		return
	}
	a, b, ok := w.pairOf(arb)
	if !ok {
		return
	}
	w.addForce(a, b, arb.TotalImpulse().Length()/w.lastDelta)
}

func (w *World) addForce(a, b physics.ColliderHandle, force float64) {
	k := key(a, b)
	sum, ok := w.stepForces[k]
	if !ok {
		sum = &forceSum{a: a, b: b}
		w.stepForces[k] = sum
		w.forceOrder = append(w.forceOrder, k)
	}
	sum.total += force
	sum.max = math.Max(sum.max, force)
}

// flushForces turns the step's per-pair sums into one event per pair.
func (w *World) flushForces() {
	for _, k := range w.forceOrder {
		sum := w.stepForces[k]
		ca, okA := w.colliders[sum.a]
		cb, okB := w.colliders[sum.b]
		if !okA || !okB {
			continue
		}
		if exceeds(ca.desc, sum.total) || exceeds(cb.desc, sum.total) {
			w.forces = append(w.forces, physics.ContactForceEvent{
				A:                   sum.a,
				B:                   sum.b,
				TotalForceMagnitude: sum.total,
				MaxForceMagnitude:   sum.max,
			})
		}
	}
	clear(w.stepForces)
	w.forceOrder = w.forceOrder[:0]
}

func exceeds(d physics.ColliderDesc, force float64) bool {
	return d.ContactForceEvents && force > d.ContactForceThreshold
}

func (w *World) pairOf(arb *cp.Arbiter) (physics.ColliderHandle, physics.ColliderHandle, bool) {
	sa, sb := arb.Shapes()
	a, okA := w.owners[sa]
	b, okB := w.owners[sb]
	if !okA || !okB || a == b {
		return 0, 0, false
	}
	return a, b, true
}

func (w *World) CreateRigidBody(desc physics.BodyDesc) physics.BodyHandle {
	var b *cp.Body
	if desc.Kind == physics.Fixed {
		b = cp.NewStaticBody()
	} else {
		b = cp.NewBody(1, math.Inf(1))
		linear := desc.LinearDamping
		b.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(body, gravity, damping*math.Exp(-linear*dt), dt)
		})
	}
	b.SetPosition(vec(desc.Translation))
	b.SetAngle(physics.ZAngle(desc.Rotation))
	w.space.AddBody(b)

	h := physics.BodyHandle(w.id())
	b.UserData = h
	w.bodies[h] = &body{body: b, desc: desc, depth: desc.Translation.Z()}
	return h
}

func (w *World) RemoveRigidBody(h physics.BodyHandle) {
	b, ok := w.bodies[h]
	if !ok {
		return
	}
	for _, c := range append([]physics.ColliderHandle(nil), b.colliders...) {
		w.RemoveCollider(c)
	}
	for jh, j := range w.joints {
		if j.parent == h || j.child == h {
			w.RemoveJoint(jh)
		}
	}
	w.space.RemoveBody(b.body)
	delete(w.bodies, h)
}

func (w *World) Translation(h physics.BodyHandle) mgl64.Vec3 {
	b, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec3{}
	}
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.depth}
}

func (w *World) SetTranslation(h physics.BodyHandle, v mgl64.Vec3, wake bool) {
	b, ok := w.bodies[h]
	if !ok {
		return
	}
	b.body.SetPosition(vec(v))
	if !b.desc.LockTranslationZ {
		b.depth = v.Z()
	}
	if wake {
		b.body.Activate()
	}
}

func (w *World) LinearVelocity(h physics.BodyHandle) mgl64.Vec3 {
	b, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec3{}
	}
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

func (w *World) SetLinearVelocity(h physics.BodyHandle, v mgl64.Vec3, wake bool) {
	b, ok := w.bodies[h]
	if !ok || b.desc.Kind == physics.Fixed {
		return
	}
	b.body.SetVelocityVector(vec(v))
	if wake {
		b.body.Activate()
	}
}

func (w *World) Rotation(h physics.BodyHandle) mgl64.Quat {
	b, ok := w.bodies[h]
	if !ok {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(b.body.Angle(), mgl64.Vec3{0, 0, 1})
}

func (w *World) SetRotation(h physics.BodyHandle, q mgl64.Quat, wake bool) {
	b, ok := w.bodies[h]
	if !ok {
		return
	}
	b.body.SetAngle(physics.ZAngle(q))
	if wake {
		b.body.Activate()
	}
}

func (w *World) ApplyImpulse(h physics.BodyHandle, impulse mgl64.Vec3, wake bool) {
	b, ok := w.bodies[h]
	if !ok || b.desc.Kind == physics.Fixed {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(vec(impulse), b.body.Position())
	if wake {
		b.body.Activate()
	}
}

func (w *World) Mass(h physics.BodyHandle) float64 {
	b, ok := w.bodies[h]
	if !ok || b.desc.Kind == physics.Fixed {
		return 0
	}
	return b.mass
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
	c := &collider{desc: desc, parent: parent}

	var owner *cp.Body
	offset, rot := mgl64.Vec3{}, mgl64.QuatIdent()
	if parent == 0 {
		owner = cp.NewKinematicBody()
		owner.SetPosition(vec(desc.Translation))
		owner.SetAngle(physics.ZAngle(desc.Rotation))
		w.space.AddBody(owner)
		c.carrier = owner
		c.depth = desc.Translation.Z()
	} else {
		b, ok := w.bodies[parent]
		if !ok {
			return 0
		}
		owner = b.body
		offset, rot = desc.Translation, physics.Rot(desc.Rotation)
		c.depth = b.depth
	}

	c.edges = outline(desc, offset, rot)
	switch desc.Shape {
	case physics.Ball:
		c.shapes = []*cp.Shape{cp.NewCircle(owner, desc.Radius, vec(offset))}
	case physics.Cuboid:
		c.shapes = []*cp.Shape{cp.NewPolyShape(owner, 4, boxCorners(desc), cp.NewTransformRigid(vec(offset), physics.ZAngle(rot)), 0)}
	case physics.TriMesh:
		for _, e := range c.edges {
			c.shapes = append(c.shapes, cp.NewSegment(owner, e[0], e[1], meshRadius))
		}
	}

	h := physics.ColliderHandle(w.id())
	for _, s := range c.shapes {
		s.SetSensor(desc.Sensor)
		s.SetFriction(desc.Friction)
		s.SetElasticity(desc.Restitution)
		s.SetCollisionType(tracked)
		s.UserData = h
		w.space.AddShape(s)
		w.owners[s] = h
	}
	w.colliders[h] = c

	if b, ok := w.bodies[parent]; ok {
		b.colliders = append(b.colliders, h)
		w.updateMass(b)
	}
	return h
}

// updateMass recomputes mass and moment from the attached colliders.
func (w *World) updateMass(b *body) {
	if b.desc.Kind == physics.Fixed {
		return
	}
	var mass, moment float64
	for _, ch := range b.colliders {
		d := w.colliders[ch].desc
		m := d.ComputedMass()
		mass += m
		switch d.Shape {
		case physics.Ball:
			moment += cp.MomentForCircle(m, 0, d.Radius, vec(d.Translation))
		case physics.Cuboid:
			off := vec(d.Translation)
			moment += cp.MomentForBox(m, 2*d.HalfExtents.X(), 2*d.HalfExtents.Y()) + m*off.LengthSq()
		}
	}
	if mass <= 0 {
		mass = 1
	}
	b.mass = mass
	b.body.SetMass(mass)
	if (b.desc.LockRotations && !b.desc.AllowRotationZ) || moment <= 0 {
		b.body.SetMoment(math.Inf(1))
		return
	}
	b.body.SetMoment(moment)
}

// outline returns the edges of a shape in the owning body's frame.
func outline(desc physics.ColliderDesc, offset mgl64.Vec3, rot mgl64.Quat) [][2]cp.Vector {
	var pts []cp.Vector
	switch desc.Shape {
	case physics.Ball:
		const segments = 12
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / segments
			pts = append(pts, cp.Vector{X: offset.X() + desc.Radius*math.Cos(a), Y: offset.Y() + desc.Radius*math.Sin(a)})
		}
	case physics.Cuboid:
		t := cp.NewTransformRigid(vec(offset), physics.ZAngle(rot))
		for _, p := range boxCorners(desc) {
			pts = append(pts, t.Point(p))
		}
	case physics.TriMesh:
		return meshEdges(desc, offset, rot)
	}
	edges := make([][2]cp.Vector, 0, len(pts))
	for i := range pts {
		edges = append(edges, [2]cp.Vector{pts[i], pts[(i+1)%len(pts)]})
	}
	return edges
}

// boxCorners returns the counter-clockwise corners of a cuboid's XY face.
func boxCorners(desc physics.ColliderDesc) []cp.Vector {
	hx, hy := desc.HalfExtents.X(), desc.HalfExtents.Y()
	return []cp.Vector{{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}}
}

// meshEdges returns the unique triangle edges of a mesh, dropping edges that
// collapse to a point once projected onto the plane.
func meshEdges(desc physics.ColliderDesc, offset mgl64.Vec3, rot mgl64.Quat) [][2]cp.Vector {
	project := func(i uint32) cp.Vector {
		return vec(rot.Rotate(desc.Vertices[i]).Add(offset))
	}
	seen := make(map[[2]uint32]bool)
	var edges [][2]cp.Vector
	for t := 0; t+2 < len(desc.Indices); t += 3 {
		tri := [3]uint32{desc.Indices[t], desc.Indices[t+1], desc.Indices[t+2]}
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if int(a) >= len(desc.Vertices) || int(b) >= len(desc.Vertices) {
				continue
			}
			if a > b {
				a, b = b, a
			}
			k := [2]uint32{a, b}
			if seen[k] {
				continue
			}
			seen[k] = true
			pa, pb := project(a), project(b)
			if pa.Distance(pb) < 1e-9 {
				continue
			}
			edges = append(edges, [2]cp.Vector{pa, pb})
		}
	}
	return edges
}

func (w *World) RemoveCollider(h physics.ColliderHandle) {
	c, ok := w.colliders[h]
	if !ok {
		return
	}
	for _, s := range c.shapes {
		w.space.RemoveShape(s)
		delete(w.owners, s)
	}
	if c.carrier != nil {
		w.space.RemoveBody(c.carrier)
	}
	delete(w.colliders, h)
	for k := range w.contacts {
		if k.a == h || k.b == h {
			delete(w.contacts, k)
		}
	}

	if b, ok := w.bodies[c.parent]; ok {
		for i, o := range b.colliders {
			if o == h {
				b.colliders = append(b.colliders[:i], b.colliders[i+1:]...)
				break
			}
		}
		w.updateMass(b)
	}
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
	c, ok := w.colliders[h]
	if !ok || c.carrier == nil {
		return
	}
	c.carrier.SetPosition(vec(v))
	c.depth = v.Z()
}

func (w *World) CreateSpringJoint(desc physics.SpringJointDesc) physics.JointHandle {
	pa, okA := w.bodies[desc.Parent]
	pb, okB := w.bodies[desc.Child]
	if !okA || !okB {
		return 0
	}
	c := cp.NewDampedSpring(pa.body, pb.body, vec(desc.ParentAnchor), vec(desc.ChildAnchor), desc.RestLength, desc.Stiffness, desc.Damping)
	w.space.AddConstraint(c)

	h := physics.JointHandle(w.id())
	w.joints[h] = &joint{constraint: c, parent: desc.Parent, child: desc.Child}
	return h
}

func (w *World) RemoveJoint(h physics.JointHandle) {
	j, ok := w.joints[h]
	if !ok {
		return
	}
	w.space.RemoveConstraint(j.constraint)
	delete(w.joints, h)
}

func (w *World) JointBodies(h physics.JointHandle) (physics.BodyHandle, physics.BodyHandle, bool) {
	j, ok := w.joints[h]
	if !ok {
		return 0, 0, false
	}
	return j.parent, j.child, true
}

// CastRay queries the plane along the ray. Sensors are reported like any
// other shape and left to exclude. Rays starting inside a shape report the
// entry point, so solid has no further effect.
func (w *World) CastRay(ray physics.Ray, maxDistance float64, _ bool, exclude func(physics.ColliderHandle) bool) (physics.RayHit, bool) {
	start := vec(ray.Origin)
	end := vec(ray.PointAt(maxDistance))
	length := start.Distance(end)

	best := physics.RayHit{TOI: math.Inf(1)}
	w.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _, _ cp.Vector, alpha float64, _ interface{}) {
		h, ok := w.owners[shape]
		if !ok || (exclude != nil && exclude(h)) {
			return
		}
		if toi := alpha * length; toi < best.TOI {
			best = physics.RayHit{Collider: h, TOI: toi}
		}
	}, nil)
	return best, best.Collider != 0
}

func (w *World) ContactPair(a, b physics.ColliderHandle) bool {
	return w.contacts[key(a, b)] > 0
}

func (w *World) Step(delta float64) {
	if delta <= 0 {
		return
	}
	w.lastDelta = delta
	w.space.Step(delta)
	w.flushForces()
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

// DebugSegments reports every collider outline in world space.
func (w *World) DebugSegments(fn func(a, b mgl64.Vec3, sensor bool)) {
	for _, c := range w.colliders {
		owner := c.carrier
		if b, ok := w.bodies[c.parent]; ok {
			owner = b.body
		}
		if owner == nil {
			continue
		}
		pos := owner.Position()
		rot := cp.ForAngle(owner.Angle())
		for _, e := range c.edges {
			a := pos.Add(e[0].Rotate(rot))
			b := pos.Add(e[1].Rotate(rot))
			fn(mgl64.Vec3{a.X, a.Y, c.depth}, mgl64.Vec3{b.X, b.Y, c.depth}, c.desc.Sensor)
		}
	}
}

// Counts returns the number of live bodies, colliders and joints.
func (w *World) Counts() (bodies, colliders, joints int) {
	return len(w.bodies), len(w.colliders), len(w.joints)
}
