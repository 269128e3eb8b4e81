package factory

import (
	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/scene"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// trimesh builds an exact mesh collider at the node's world transform.
// Duplicate vertices are merged and the geometry is scaled by the node's
// world scale.
func trimesh(node *scene.Node) physics.ColliderDesc {
	vertices, indices := scene.MergeVertices(node.Mesh.Vertices, node.Mesh.Indices)
	return physics.ColliderDesc{
		Shape:       physics.TriMesh,
		Vertices:    scene.ScaleVertices(vertices, node.WorldScale()),
		Indices:     indices,
		Translation: node.WorldPosition(),
		Rotation:    node.WorldRotation(),
	}
}

// CreateSensor makes a standalone trimesh sensor from a mesh node.
func CreateSensor(ecs *ecs.ECS, node *scene.Node, kind components.SensorKind) *donburi.Entry {
	world := World(ecs)

	desc := trimesh(node)
	desc.Sensor = true
	desc.CollisionEvents = true
	collider := world.CreateCollider(desc, 0)

	var sensor *donburi.Entry
	switch kind {
	case components.SensorGoal:
		sensor = archetypes.Goal.Spawn(ecs)
	default:
		sensor = archetypes.Danger.Spawn(ecs)
	}
	components.Sensor.SetValue(sensor, components.SensorData{Kind: kind, Collider: collider})
	return sensor
}

// CreateTerrain makes a fixed body at the origin carrying a high friction
// trimesh collider.
func CreateTerrain(ecs *ecs.ECS, node *scene.Node) *donburi.Entry {
	world := World(ecs)

	body := world.CreateRigidBody(physics.BodyDesc{Kind: physics.Fixed, Label: node.Name})
	desc := trimesh(node)
	desc.Friction = cfg.Level.TerrainFriction
	collider := world.CreateCollider(desc, body)

	terrain := archetypes.Terrain.Spawn(ecs)
	components.Terrain.SetValue(terrain, components.TerrainData{Body: body, Collider: collider})
	return terrain
}
