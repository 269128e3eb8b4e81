package systems

import (
	"image/color"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/colornames"
)

// segmentDrawer is implemented by physics worlds that can outline their
// shapes.
type segmentDrawer interface {
	DebugSegments(fn func(a, b mgl64.Vec3, sensor bool))
}

func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.DebugView.ShowPhysics {
		return
	}

	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)
	conf := camera.Config
	vp := gamemath.Viewport{
		Width:  float64(screen.Bounds().Dx()),
		Height: float64(screen.Bounds().Dy()),
	}
	project := func(p mgl64.Vec3) (float32, float32, bool) {
		s, ok := gamemath.Project(p, camera.Position, conf.Fov, conf.Near, conf.RenderDistance, vp)
		return float32(s.X()), float32(s.Y()), ok
	}

	spaceEntry, ok := components.Space.First(ecs.World)
	if ok {
		if drawer, ok := components.Space.Get(spaceEntry).World.(segmentDrawer); ok {
			drawer.DebugSegments(func(a, b mgl64.Vec3, sensor bool) {
				ax, ay, okA := project(a)
				bx, by, okB := project(b)
				if !okA || !okB {
					return
				}
				c := color.RGBA{100, 100, 100, 255} // Grey
				if sensor {
					c = colornames.Cyan
				}
				vector.StrokeLine(screen, ax, ay, bx, by, 1, c, false)
			})
		}
	}

	// Springs
	tags.Spring.Each(ecs.World, func(e *donburi.Entry) {
		node := components.Object.Get(e).Node
		s := components.Spring.Get(e)
		end := node.Position.Add(node.Rotation.Rotate(mgl64.Vec3{0, node.Scale.Y(), 0}))
		ax, ay, okA := project(node.Position)
		bx, by, okB := project(end)
		if !okA || !okB {
			return
		}
		c := colornames.Orange
		if s.Stiffness < cfg.Grapple.FixedStiffness {
			c = colornames.Yellow
		}
		vector.StrokeLine(screen, ax, ay, bx, by, 2, c, false)
	})

	marker := func(e *donburi.Entry, c color.Color) {
		x, y, ok := project(components.Object.Get(e).Position)
		if !ok {
			return
		}
		vector.FillRect(screen, x-3, y-3, 6, 6, c, false)
	}
	tags.Player.Each(ecs.World, func(e *donburi.Entry) { marker(e, colornames.Blue) })
	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) { marker(e, colornames.Red) })
	tags.Block.Each(ecs.World, func(e *donburi.Entry) { marker(e, colornames.Saddlebrown) })
}
