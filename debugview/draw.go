package debugview

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/scene"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

var (
	staticColor = color.RGBA{60, 60, 70, 255}
	objectColor = colornames.Slategray
)

func (g *Game) Draw(screen *ebiten.Image) {
	if g.level == nil {
		screen.Fill(color.Black)
		return
	}
	bundle := g.level.Bundle()
	screen.Fill(bundle.FogColor)

	camera := g.level.Camera()
	conf := cfg.Camera
	vp := gamemath.Viewport{
		Width:  float64(screen.Bounds().Dx()),
		Height: float64(screen.Bounds().Dy()),
	}
	project := func(p mgl64.Vec3) (float32, float32, bool) {
		s, ok := gamemath.Project(p, camera, conf.Fov, conf.Near, conf.RenderDistance, vp)
		return float32(s.X()), float32(s.Y()), ok
	}

	if bundle.Batch != nil {
		min, max := viewRect(camera, conf.Fov, vp)
		for _, n := range bundle.Batch.Visible(min, max) {
			drawMesh(screen, n.Mesh, n.WorldPosition(), n.WorldRotation(), n.WorldScale(), staticColor, project)
		}
	}

	for _, n := range g.graph.Nodes() {
		drawNode(screen, n, mgl64.Vec3{}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1}, project)
	}

	g.level.Draw(screen)

	player := g.level.Player()
	p := components.Player.Get(player)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  time %.2fs  boost %3.0f%%  links %d  fps %.0f",
		g.names[g.index], g.level.Elapsed(), p.BoostFraction()*100,
		systems.GrappleCount(g.level.ECS()), ebiten.ActualFPS(),
	))
}

// drawNode outlines a node's source mesh and recurses into its children.
// Nodes without a mesh only pass their transform on.
func drawNode(screen *ebiten.Image, n *render.Node, pos mgl64.Vec3, rot mgl64.Quat, scale mgl64.Vec3, project func(mgl64.Vec3) (float32, float32, bool)) {
	wpos := pos.Add(rot.Rotate(mul(n.Position, scale)))
	wrot := rot.Mul(n.Rotation)
	wscale := mul(scale, n.Scale)
	if n.Source != nil && n.Source.IsMesh() {
		drawMesh(screen, n.Source.Mesh, wpos, wrot, wscale, objectColor, project)
	}
	for _, c := range n.Children {
		drawNode(screen, c, wpos, wrot, wscale, project)
	}
}

func drawMesh(screen *ebiten.Image, m *scene.Mesh, pos mgl64.Vec3, rot mgl64.Quat, scale mgl64.Vec3, c color.Color, project func(mgl64.Vec3) (float32, float32, bool)) {
	world := func(i uint32) mgl64.Vec3 {
		return pos.Add(rot.Rotate(mul(m.Vertices[i], scale)))
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		for k := 0; k < 3; k++ {
			a, b := m.Indices[t+k], m.Indices[t+(k+1)%3]
			if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) {
				continue
			}
			ax, ay, okA := project(world(a))
			bx, by, okB := project(world(b))
			if okA && okB {
				vector.StrokeLine(screen, ax, ay, bx, by, 1, c, false)
			}
		}
	}
}

// viewRect returns the world rectangle the camera sees on the z=0 plane.
func viewRect(camera mgl64.Vec3, fov float64, vp gamemath.Viewport) (mgl64.Vec2, mgl64.Vec2) {
	halfH := camera.Z() * math.Tan(mgl64.DegToRad(fov)/2)
	halfW := halfH * vp.Width / vp.Height
	return mgl64.Vec2{camera.X() - halfW, camera.Y() - halfH},
		mgl64.Vec2{camera.X() + halfW, camera.Y() + halfH}
}

func mul(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
