package scene

import "github.com/go-gl/mathgl/mgl64"

// MergeVertices collapses vertices with identical positions and remaps the
// index buffer onto the survivors. Unindexed geometry is treated as a plain
// triangle list.
func MergeVertices(vertices []mgl64.Vec3, indices []uint32) ([]mgl64.Vec3, []uint32) {
	if len(indices) == 0 {
		indices = make([]uint32, len(vertices))
		for i := range vertices {
			indices[i] = uint32(i)
		}
	}

	seen := make(map[mgl64.Vec3]uint32, len(vertices))
	remap := make([]uint32, len(vertices))
	merged := make([]mgl64.Vec3, 0, len(vertices))
	for i, v := range vertices {
		if j, ok := seen[v]; ok {
			remap[i] = j
			continue
		}
		j := uint32(len(merged))
		seen[v] = j
		remap[i] = j
		merged = append(merged, v)
	}

	out := make([]uint32, 0, len(indices))
	for _, i := range indices {
		if int(i) < len(remap) {
			out = append(out, remap[i])
		}
	}
	return merged, out
}

// ScaleVertices multiplies every vertex by s component-wise.
func ScaleVertices(vertices []mgl64.Vec3, s mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = mgl64.Vec3{v.X() * s.X(), v.Y() * s.Y(), v.Z() * s.Z()}
	}
	return out
}

// Rect returns a flat quad in the XY plane spanning [0,w]x[0,h], centred on
// the origin when centred is set.
func Rect(w, h float64, centred bool) ([]mgl64.Vec3, []uint32) {
	x0, y0 := 0.0, 0.0
	if centred {
		x0, y0 = -w/2, -h/2
	}
	return []mgl64.Vec3{
			{x0, y0, 0},
			{x0 + w, y0, 0},
			{x0 + w, y0 + h, 0},
			{x0, y0 + h, 0},
		}, []uint32{
			0, 1, 2,
			0, 2, 3,
		}
}

// Fan triangulates a convex outline as a fan around its first point.
func Fan(points []mgl64.Vec3) []uint32 {
	var idx []uint32
	for i := 1; i+1 < len(points); i++ {
		idx = append(idx, 0, uint32(i), uint32(i+1))
	}
	return idx
}
