// Package render holds the visual side of the simulation: transform-bearing
// nodes the systems mutate each tick, the graph a host draws from, and the
// static batch built from level geometry.
package render

import (
	"github.com/automoto/skyhook/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Node is a visual object. The simulation only writes its transform.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Source   *scene.Node
	Children []*Node
}

// NewNode returns a node with identity rotation and unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// FromScene returns a visual node placed at the scene node's world transform.
func FromScene(n *scene.Node) *Node {
	return &Node{
		Name:     n.Name,
		Position: n.WorldPosition(),
		Rotation: n.WorldRotation(),
		Scale:    n.WorldScale(),
		Source:   n,
	}
}

// Add attaches children. Child transforms are relative to n.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Graph is the set of nodes a host renders, in insertion order.
type Graph struct {
	nodes []*Node
}

func (g *Graph) Add(nodes ...*Node) {
	g.nodes = append(g.nodes, nodes...)
}

// Remove drops n from the graph. Unknown nodes are ignored.
func (g *Graph) Remove(n *Node) {
	for i, o := range g.nodes {
		if o == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			return
		}
	}
}

func (g *Graph) Nodes() []*Node { return g.nodes }

func (g *Graph) Len() int { return len(g.nodes) }
