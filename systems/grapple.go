package systems

import (
	"log"
	"math"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ReleaseOrder selects which link Release drops.
type ReleaseOrder int

const (
	ReleaseLast ReleaseOrder = iota
	ReleaseFirst
)

func grapple(ecs *ecs.ECS) (*components.GrappleData, bool) {
	e, ok := components.Grapple.First(ecs.World)
	if !ok {
		return nil, false
	}
	return components.Grapple.Get(e), true
}

// Grapple casts a ray from the body along dir on the XY plane and links the
// body to whatever it hits. The oldest link is dropped when the graph is
// full. It reports whether a link was made.
func Grapple(ecs *ecs.ECS, from physics.BodyHandle, dir mgl64.Vec2) bool {
	g, ok := grapple(ecs)
	if !ok || dir.Len() == 0 {
		return false
	}
	world := factory.World(ecs)
	conf := g.Config

	own, _ := world.Collider(from, 0)
	ray := physics.Ray{
		Origin: world.Translation(from),
		Dir:    mgl64.Vec3{dir.X(), dir.Y(), 0}.Normalize(),
	}
	hit, ok := world.CastRay(ray, conf.Range, true, physics.ExcludeSensorsAnd(world, own))
	if !ok {
		return false
	}
	target, ok := world.ColliderParent(hit.Collider)
	if !ok || target == from {
		return false
	}

	var stiffness float64
	var childHitPoint mgl64.Vec3
	if world.IsFixed(target) {
		stiffness = conf.FixedStiffness
		childHitPoint = ray.PointAt(hit.TOI)
	} else {
		stiffness = math.Min(world.Mass(target)*conf.MassStiffnessFactor+conf.MassStiffnessBias, conf.FixedStiffness)
	}

	if conf.MaxInstances > 0 && len(g.Links) >= conf.MaxInstances {
		factory.DestroySpring(ecs, g.Links[0])
		g.Links = g.Links[1:]
	}

	link := factory.CreateSpring(ecs, factory.SpringOptions{
		Parent:        from,
		Child:         target,
		ChildHitPoint: childHitPoint,
		Stiffness:     stiffness,
		Jitter:        jitter(g),
	})
	g.Links = append(g.Links, link)

	log.Printf("grapple: linked body %d to %d (stiffness %.2f, %d links)", from, target, stiffness, len(g.Links))
	return true
}

// Release drops one link. It does nothing when the graph is empty.
func Release(ecs *ecs.ECS, order ReleaseOrder) {
	g, ok := grapple(ecs)
	if !ok || len(g.Links) == 0 {
		return
	}
	var link *donburi.Entry
	if order == ReleaseFirst {
		link = g.Links[0]
		g.Links = g.Links[1:]
	} else {
		link = g.Links[len(g.Links)-1]
		g.Links = g.Links[:len(g.Links)-1]
	}
	factory.DestroySpring(ecs, link)
}

// Escape detaches from from the graph. Links not anchored on from are kept.
// Links anchored on from are taken in order and joined pairwise: each pair
// becomes one link between their two targets, with the mean stiffness. A link
// to the same target as the pending one is skipped. Every link anchored on
// from is then removed.
func Escape(ecs *ecs.ECS, from physics.BodyHandle) {
	g, ok := grapple(ecs)
	if !ok || len(g.Links) == 0 {
		return
	}

	var kept, detached []*donburi.Entry
	var pending *components.SpringData
	for _, link := range g.Links {
		s := components.Spring.Get(link)
		if s.Parent != from {
			kept = append(kept, link)
			continue
		}
		detached = append(detached, link)

		if pending == nil {
			p := *s
			pending = &p
			continue
		}
		if s.Child == pending.Child {
			continue
		}

		joined := factory.CreateSpring(ecs, factory.SpringOptions{
			Parent:         s.Child,
			Child:          pending.Child,
			ParentHitPoint: s.ChildHitPoint,
			ChildHitPoint:  pending.ChildHitPoint,
			Stiffness:      (s.Stiffness + pending.Stiffness) / 2,
		})
		kept = append(kept, joined)
		pending = nil
	}

	for _, link := range detached {
		factory.DestroySpring(ecs, link)
	}
	g.Links = kept
}

// ResetGrapple removes every link.
func ResetGrapple(ecs *ecs.ECS) {
	g, ok := grapple(ecs)
	if !ok {
		return
	}
	for _, link := range g.Links {
		factory.DestroySpring(ecs, link)
	}
	g.Links = nil
}

// GrappleCount returns the number of live links.
func GrappleCount(ecs *ecs.ECS) int {
	g, ok := grapple(ecs)
	if !ok {
		return 0
	}
	return len(g.Links)
}

// FireGrapple aims from the player's on-screen position toward look and
// grapples. A successful link plays the grapple sound with a randomised
// pitch.
func FireGrapple(ecs *ecs.ECS, look mgl64.Vec2, vp gamemath.Viewport) bool {
	player, ok := tags.Player.First(ecs.World)
	if !ok {
		return false
	}
	g, ok := grapple(ecs)
	if !ok {
		return false
	}
	world := factory.World(ecs)
	body := components.Body.Get(player).Body

	camera := cfg.Camera
	cameraPos := camera.Start
	if e, ok := components.Camera.First(ecs.World); ok {
		c := components.Camera.Get(e)
		camera = c.Config
		cameraPos = c.Position
	}

	screen, ok := gamemath.Project(world.Translation(body), cameraPos, camera.Fov, camera.Near, camera.RenderDistance, vp)
	if !ok {
		return false
	}
	dir, ok := gamemath.AimDirection(screen, look)
	if !ok {
		return false
	}
	if !Grapple(ecs, body, dir) {
		return false
	}

	conf := cfg.ContactAudio
	sound := sounds(ecs).Play(cfg.SoundGrapple)
	sound.SetVolume(conf.GrappleVolume)
	sound.SetDetune(g.Rand() * conf.GrappleDetune)
	sound.SetPlaybackRate(conf.GrappleRateMin + g.Rand()*conf.GrappleRateRange)
	return true
}

func jitter(g *components.GrappleData) float64 {
	return g.Rand()*g.Config.OriginJitter - g.Config.OriginJitter/2
}
