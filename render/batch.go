package render

import (
	"math"

	"github.com/automoto/skyhook/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

const instanceTag = "instance"

// Batch merges static meshes into a single draw target. It keeps the
// geometry bookkeeping a renderer needs to allocate buffers and indexes each
// instance's bounds on the XY plane for culling queries.
type Batch struct {
	Material      string
	GeometryCount int
	InstanceCount int
	VertexCount   int
	IndexCount    int

	cellSize   int
	geometries map[*scene.Mesh]int
	instances  []*scene.Node

	space  *resolv.Space
	origin mgl64.Vec2
}

// NewBatch returns an empty batch whose culling grid uses square cells of
// cellSize world units.
func NewBatch(cellSize int) *Batch {
	if cellSize < 1 {
		cellSize = 1
	}
	return &Batch{
		cellSize:   cellSize,
		geometries: make(map[*scene.Mesh]int),
	}
}

// Add registers a mesh node as a batch instance. Shared meshes count as one
// geometry.
func (b *Batch) Add(n *scene.Node) {
	if !n.IsMesh() {
		return
	}
	if _, ok := b.geometries[n.Mesh]; !ok {
		b.geometries[n.Mesh] = len(b.geometries)
		b.GeometryCount++
		b.VertexCount += len(n.Mesh.Vertices)
		b.IndexCount += len(n.Mesh.Indices)
	}
	b.instances = append(b.instances, n)
	b.InstanceCount++
	b.space = nil
}

// Instances returns the batched nodes in insertion order.
func (b *Batch) Instances() []*scene.Node {
	return b.instances
}

// Finalize builds the culling index. Visible calls it on demand.
func (b *Batch) Finalize() {
	if len(b.instances) == 0 {
		b.space = nil
		return
	}

	type rect struct{ min, max mgl64.Vec2 }
	rects := make([]rect, len(b.instances))
	lo := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for i, n := range b.instances {
		mn, mx := worldBounds(n)
		rects[i] = rect{mn, mx}
		lo = mgl64.Vec2{math.Min(lo.X(), mn.X()), math.Min(lo.Y(), mn.Y())}
		hi = mgl64.Vec2{math.Max(hi.X(), mx.X()), math.Max(hi.Y(), mx.Y())}
	}

	b.origin = lo
	w := int(math.Ceil(hi.X()-lo.X())) + b.cellSize
	h := int(math.Ceil(hi.Y()-lo.Y())) + b.cellSize
	b.space = resolv.NewSpace(w, h, b.cellSize, b.cellSize)

	for i, r := range rects {
		obj := resolv.NewObject(
			r.min.X()-lo.X(), r.min.Y()-lo.Y(),
			math.Max(r.max.X()-r.min.X(), 0.001), math.Max(r.max.Y()-r.min.Y(), 0.001),
			instanceTag,
		)
		obj.Data = b.instances[i]
		b.space.Add(obj)
	}
}

// Visible returns the instances whose XY bounds overlap the given world
// rectangle.
func (b *Batch) Visible(min, max mgl64.Vec2) []*scene.Node {
	if b.space == nil {
		b.Finalize()
	}
	if b.space == nil {
		return nil
	}

	x := min.X() - b.origin.X()
	y := min.Y() - b.origin.Y()
	w := max.X() - min.X()
	h := max.Y() - min.Y()
	if w <= 0 || h <= 0 {
		return nil
	}

	query := resolv.NewObject(x, y, w, h)
	b.space.Add(query)
	defer b.space.Remove(query)

	check := query.Check(0, 0, instanceTag)
	if check == nil {
		return nil
	}

	var out []*scene.Node
	for _, obj := range check.ObjectsByTags(instanceTag) {
		if obj.X > x+w || obj.X+obj.W < x || obj.Y > y+h || obj.Y+obj.H < y {
			continue
		}
		if n, ok := obj.Data.(*scene.Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// worldBounds returns the XY extent of a mesh node's bounding box after its
// world transform.
func worldBounds(n *scene.Node) (mgl64.Vec2, mgl64.Vec2) {
	pos := n.WorldPosition()
	if n.Mesh.Bounds == nil {
		n.Mesh.ComputeBounds()
	}
	if n.Mesh.Bounds == nil {
		p := mgl64.Vec2{pos.X(), pos.Y()}
		return p, p
	}

	rot := n.WorldRotation()
	s := n.WorldScale()
	bmin, bmax := n.Mesh.Bounds.Min, n.Mesh.Bounds.Max
	lo := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for i := 0; i < 8; i++ {
		c := mgl64.Vec3{bmin.X(), bmin.Y(), bmin.Z()}
		if i&1 != 0 {
			c[0] = bmax.X()
		}
		if i&2 != 0 {
			c[1] = bmax.Y()
		}
		if i&4 != 0 {
			c[2] = bmax.Z()
		}
		c = mgl64.Vec3{c.X() * s.X(), c.Y() * s.Y(), c.Z() * s.Z()}
		w := pos.Add(rot.Rotate(c))
		lo = mgl64.Vec2{math.Min(lo.X(), w.X()), math.Min(lo.Y(), w.Y())}
		hi = mgl64.Vec2{math.Max(hi.X(), w.X()), math.Max(hi.Y(), w.Y())}
	}
	return lo, hi
}
