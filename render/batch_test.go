package render

import (
	"testing"

	"github.com/automoto/skyhook/scene"
	"github.com/go-gl/mathgl/mgl64"
)

func place(n *scene.Node, x, y float64) *scene.Node {
	n.Position = mgl64.Vec3{x, y, 0}
	return n
}

func testBatch() (*Batch, []*scene.Node) {
	vertices, indices := scene.Rect(1, 1, true)
	shared := scene.NewMesh("a", vertices, indices)
	twin := scene.NewNode("b")
	twin.Mesh = shared.Mesh

	nodes := []*scene.Node{
		place(shared, 0, 0),
		place(twin, 10, 0),
		place(scene.NewMesh("c", vertices, indices), 50, 0),
	}
	b := NewBatch(4)
	for _, n := range nodes {
		b.Add(n)
	}
	return b, nodes
}

func TestBatchCountsSharedGeometryOnce(t *testing.T) {
	b, _ := testBatch()
	b.Add(scene.NewNode("empty"))

	if b.GeometryCount != 2 || b.InstanceCount != 3 {
		t.Errorf("expected 2 geometries and 3 instances, got %d and %d", b.GeometryCount, b.InstanceCount)
	}
	if b.VertexCount != 8 || b.IndexCount != 12 {
		t.Errorf("expected 8 vertices and 12 indices, got %d and %d", b.VertexCount, b.IndexCount)
	}
	if len(b.Instances()) != 3 {
		t.Errorf("expected non-mesh nodes to be ignored")
	}
}

func TestBatchVisible(t *testing.T) {
	b, nodes := testBatch()

	tests := []struct {
		name     string
		min, max mgl64.Vec2
		want     []*scene.Node
	}{
		{"Around the origin", mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 1}, nodes[:1]},
		{"Far right", mgl64.Vec2{45, -1}, mgl64.Vec2{55, 1}, nodes[2:]},
		{"Empty stretch", mgl64.Vec2{20, -1}, mgl64.Vec2{30, 1}, nil},
		{"Degenerate", mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Visible(tt.min, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d visible, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %s, got %s", tt.want[i].Name, got[i].Name)
				}
			}
		})
	}
}

func TestBatchAddAfterQuery(t *testing.T) {
	b, _ := testBatch()
	b.Visible(mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 1})

	vertices, indices := scene.Rect(1, 1, true)
	late := place(scene.NewMesh("late", vertices, indices), 20, 0)
	b.Add(late)

	got := b.Visible(mgl64.Vec2{19, -1}, mgl64.Vec2{21, 1})
	if len(got) != 1 || got[0] != late {
		t.Errorf("expected the late instance to be indexed, got %v", got)
	}
}

func TestEmptyBatch(t *testing.T) {
	if got := NewBatch(0).Visible(mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 1}); got != nil {
		t.Errorf("expected nothing visible, got %v", got)
	}
}

func TestGraph(t *testing.T) {
	g := &Graph{}
	a, b := NewNode("a"), NewNode("b")
	g.Add(a, b)
	g.Remove(NewNode("stranger"))
	if g.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.Len())
	}

	g.Remove(a)
	if g.Len() != 1 || g.Nodes()[0] != b {
		t.Errorf("expected only b left")
	}
}

func TestFromScene(t *testing.T) {
	parent := scene.NewNode("parent")
	parent.Position = mgl64.Vec3{1, 2, 3}
	child := scene.NewNode("child")
	child.Position = mgl64.Vec3{1, 0, 0}
	parent.Add(child)

	n := FromScene(child)
	if n.Position != (mgl64.Vec3{2, 2, 3}) || n.Source != child || n.Name != "child" {
		t.Errorf("unexpected node %+v", n)
	}
}
