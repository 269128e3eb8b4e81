package factory

import (
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

// CreateEnemy turns a scene marker into a patrolling enemy starting at the
// marker's world position.
func CreateEnemy(ecs *ecs.ECS, marker *scene.Node) *donburi.Entry {
	conf := cfg.Enemy
	world := World(ecs)
	start := marker.WorldPosition()

	enemy := archetypes.Enemy.Spawn(ecs)

	body := world.CreateRigidBody(physics.BodyDesc{
		Kind:             physics.Dynamic,
		Translation:      start,
		LockTranslationZ: true,
		LockRotations:    true,
		LinearDamping:    conf.LinearDamping,
		Label:            "Enemy",
	})
	collider := world.CreateCollider(physics.ColliderDesc{
		Shape:           physics.Ball,
		Radius:          conf.Radius,
		Friction:        conf.Friction,
		Mass:            conf.Mass,
		CollisionEvents: true,
	}, body)

	node := render.NewNode(marker.Name)
	node.Position = start
	model := render.FromScene(marker)
	model.Position = mgl64.Vec3{}
	node.Add(model)

	components.Object.SetValue(enemy, components.ObjectData{Node: node})
	components.Body.SetValue(enemy, components.BodyData{
		Body:          body,
		Collider:      collider,
		StartPosition: start,
		StartRotation: mgl64.QuatIdent(),
	})
	components.Enemy.SetValue(enemy, components.EnemyData{
		Config:    conf,
		Direction: cfg.DirectionRight,
		Model:     model,
	})

	return enemy
}
