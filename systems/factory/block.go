package factory

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrMissingBoundingBox is returned when a block mesh has no bounds to size
// its collider from.
var ErrMissingBoundingBox = errors.New("mesh has no bounding box")

// CreateBlock turns a mesh into a pushable cube. The collider half extent
// comes from the mesh's x bounds.
func CreateBlock(ecs *ecs.ECS, mesh *scene.Node) (*donburi.Entry, error) {
	if !mesh.IsMesh() || mesh.Mesh.Bounds == nil {
		return nil, fmt.Errorf("moveable block %q: %w", mesh.Name, ErrMissingBoundingBox)
	}

	conf := cfg.Block
	world := World(ecs)

	bounds := mesh.Mesh.Bounds
	scale := mesh.WorldScale()
	half := math.Max(conf.MinHalfExtent, (math.Abs(bounds.Max.X())+math.Abs(bounds.Min.X()))*scale.X()*0.5-conf.Inset)
	start := mesh.WorldPosition().Add(mgl64.Vec3{0, conf.StartLift, 0})
	rotation := mesh.WorldRotation()

	block := archetypes.Block.Spawn(ecs)

	body := world.CreateRigidBody(physics.BodyDesc{
		Kind:             physics.Dynamic,
		Translation:      start,
		Rotation:         rotation,
		LockTranslationZ: true,
		LockRotations:    true,
		AllowRotationZ:   true,
		LinearDamping:    conf.LinearDamping,
		AngularDamping:   conf.AngularDamping,
		Label:            "MoveableBlock",
	})
	collider := world.CreateCollider(physics.ColliderDesc{
		Shape:                 physics.Cuboid,
		HalfExtents:           mgl64.Vec3{half, half, half},
		Friction:              conf.Friction,
		Restitution:           conf.Restitution,
		Density:               conf.Density,
		CollisionEvents:       true,
		ContactForceEvents:    true,
		ContactForceThreshold: conf.ContactForceThreshold,
	}, body)

	node := render.NewNode(mesh.Name)
	node.Position = start
	node.Rotation = rotation
	model := render.FromScene(mesh)
	model.Position = mgl64.Vec3{}
	model.Rotation = mgl64.QuatIdent()
	node.Add(model)

	components.Object.SetValue(block, components.ObjectData{Node: node})
	components.Body.SetValue(block, components.BodyData{
		Body:          body,
		Collider:      collider,
		StartPosition: start,
		StartRotation: rotation,
	})
	components.Block.SetValue(block, components.BlockData{
		Config:     conf,
		HalfExtent: half,
	})

	return block, nil
}

// DestroyBody removes an entity's collider, then its body, then the entity.
func DestroyBody(ecs *ecs.ECS, e *donburi.Entry) {
	world := World(ecs)
	b := components.Body.Get(e)
	world.RemoveCollider(b.Collider)
	world.RemoveRigidBody(b.Body)
	ecs.World.Remove(e.Entity())
}
