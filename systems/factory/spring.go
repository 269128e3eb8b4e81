package factory

import (
	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpringOptions describes a link between two bodies. Hit points are offsets
// from each body's translation and double as the joint anchors.
type SpringOptions struct {
	Parent         physics.BodyHandle
	Child          physics.BodyHandle
	ParentHitPoint mgl64.Vec3
	ChildHitPoint  mgl64.Vec3
	Stiffness      float64
	Jitter         float64
}

func CreateSpring(ecs *ecs.ECS, opts SpringOptions) *donburi.Entry {
	conf := cfg.Spring
	world := World(ecs)

	joint := world.CreateSpringJoint(physics.SpringJointDesc{
		Parent:       opts.Parent,
		Child:        opts.Child,
		ParentAnchor: opts.ParentHitPoint,
		ChildAnchor:  opts.ChildHitPoint,
		RestLength:   conf.RestLength,
		Stiffness:    opts.Stiffness,
		Damping:      conf.Damping,
	})

	spring := archetypes.Spring.Spawn(ecs)
	data := components.SpringData{
		Config:         conf,
		Joint:          joint,
		Parent:         opts.Parent,
		Child:          opts.Child,
		ParentHitPoint: opts.ParentHitPoint,
		ChildHitPoint:  opts.ChildHitPoint,
		Stiffness:      opts.Stiffness,
		Jitter:         opts.Jitter,
		Age:            gween.New(0, 1, float32(conf.GrowDuration), ease.Linear),
	}
	node := render.NewNode("spring")
	PoseSpring(world, &data, node)

	components.Spring.SetValue(spring, data)
	components.Object.SetValue(spring, components.ObjectData{Node: node})
	return spring
}

// PoseSpring points the link's node from its parent end toward its child end
// and returns the distance between the two.
func PoseSpring(world physics.Bodies, s *components.SpringData, node *render.Node) float64 {
	from := world.Translation(s.Parent).
		Add(s.ParentHitPoint).
		Add(mgl64.Vec3{s.Jitter, s.Jitter, 0})
	to := world.Translation(s.Child).Add(s.ChildHitPoint)

	node.Position = from
	d := to.Sub(from)
	dist := d.Len()
	if dist > 0 {
		node.Rotation = mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, d.Mul(1/dist))
	}
	node.Scale[2] = gamemath.Clamp(1-dist*s.Config.ThicknessFalloff, s.Config.MinThickness, 1)
	return dist
}

// DestroySpring removes the link's joint and entity. Destroying a link twice
// is not supported.
func DestroySpring(ecs *ecs.ECS, spring *donburi.Entry) {
	s := components.Spring.Get(spring)
	World(ecs).RemoveJoint(s.Joint)
	ecs.World.Remove(spring.Entity())
}
