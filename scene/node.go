// Package scene is the static description of a level: a tree of named nodes
// carrying transforms, optional mesh geometry and string user data. Loaders
// produce it and the level builder consumes it.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box in mesh-local space.
type Box struct {
	Min, Max mgl64.Vec3
}

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint32
	Material string
	Bounds   *Box
}

// ComputeBounds sets Bounds from the vertices. A mesh without vertices keeps
// nil bounds.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = nil
		return
	}
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	m.Bounds = &Box{Min: lo, Max: hi}
}

// Node is one element of the scene tree.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Mesh     *Mesh
	UserData map[string]string
	Children []*Node

	parent *Node
}

// NewNode returns a node with identity rotation and unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewMesh returns a mesh node and computes its bounds.
func NewMesh(name string, vertices []mgl64.Vec3, indices []uint32) *Node {
	n := NewNode(name)
	n.Mesh = &Mesh{Vertices: vertices, Indices: indices}
	n.Mesh.ComputeBounds()
	return n
}

func (n *Node) IsMesh() bool { return n.Mesh != nil }

func (n *Node) Parent() *Node { return n.parent }

// Add re-parents children under n.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Traverse visits n and its descendants depth first, parents before children.
// The child list is copied first so fn may re-parent nodes.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range append([]*Node(nil), n.Children...) {
		c.Traverse(fn)
	}
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range append([]*Node(nil), n.Children...) {
		c.Walk(fn)
	}
}

func rot(q mgl64.Quat) mgl64.Quat {
	if q.W == 0 && q.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return q
}

func scale(s mgl64.Vec3) mgl64.Vec3 {
	if s == (mgl64.Vec3{}) {
		return mgl64.Vec3{1, 1, 1}
	}
	return s
}

// WorldScale returns the accumulated scale of n.
func (n *Node) WorldScale() mgl64.Vec3 {
	s := scale(n.Scale)
	if n.parent == nil {
		return s
	}
	p := n.parent.WorldScale()
	return mgl64.Vec3{s.X() * p.X(), s.Y() * p.Y(), s.Z() * p.Z()}
}

// WorldRotation returns the accumulated rotation of n.
func (n *Node) WorldRotation() mgl64.Quat {
	r := rot(n.Rotation)
	if n.parent == nil {
		return r
	}
	return n.parent.WorldRotation().Mul(r)
}

// WorldPosition returns the position of n in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	if n.parent == nil {
		return n.Position
	}
	ps := n.parent.WorldScale()
	local := mgl64.Vec3{n.Position.X() * ps.X(), n.Position.Y() * ps.Y(), n.Position.Z() * ps.Z()}
	return n.parent.WorldPosition().Add(n.parent.WorldRotation().Rotate(local))
}

// Get returns a user data value.
func (n *Node) Get(key string) (string, bool) {
	v, ok := n.UserData[key]
	return v, ok
}

// Set stores a user data value.
func (n *Node) Set(key, value string) {
	if n.UserData == nil {
		n.UserData = make(map[string]string)
	}
	n.UserData[key] = value
}
