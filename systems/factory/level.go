package factory

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/render"
	"github.com/automoto/skyhook/scene"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/colornames"
)

// Node name markers. A node is classified by the first marker its name
// contains, in this order.
const (
	MarkerUserData      = "user-data"
	MarkerTextured      = "textured"
	MarkerLight         = "light"
	MarkerGlow          = "glow"
	MarkerEnemy         = "enemy"
	MarkerMoveableBlock = "moveable-block"
	MarkerGoalSensor    = "goal_sensor"
	MarkerDanger        = "danger"
	MarkerGround        = "ground"

	BackgroundColourKey = "backgroundColour"
)

// BuildLevel walks the scene once and creates the level's sensors, terrain,
// enemies and blocks. Plain static meshes go into one batch. On error every
// physics resource created so far is removed again.
func BuildLevel(ecs *ecs.ECS, root *scene.Node) (components.LevelBundle, error) {
	camera := cfg.Camera
	bundle := components.LevelBundle{
		FogColor: cfg.Level.DefaultFog,
		FogNear:  camera.FollowDistance - cfg.Level.FogNearOffset,
		FogFar:   camera.RenderDistance,
		Batch:    render.NewBatch(cfg.Level.CullCellSize),
	}

	var enemyMarkers, blockMeshes []*scene.Node

	root.Walk(func(n *scene.Node) bool {
		name := n.Name

		if strings.Contains(name, MarkerUserData) {
			if v, ok := n.Get(BackgroundColourKey); ok {
				c, err := ParseColour(v)
				if err != nil {
					log.Printf("level: %v", err)
				} else {
					bundle.FogColor = c
				}
			}
			return true
		}

		if strings.Contains(name, MarkerTextured) {
			bundle.Objects = append(bundle.Objects, render.FromScene(n))
			return false
		}

		if !n.IsMesh() {
			return true
		}

		switch {
		case strings.Contains(name, MarkerLight):
			bundle.Objects = append(bundle.Objects, render.FromScene(n))
			return true
		case strings.Contains(name, MarkerGlow):
			glow := render.FromScene(n)
			bundle.Objects = append(bundle.Objects, glow)
			bundle.SkyGlow = glow
			return true
		}

		if strings.Contains(n.Mesh.Material, cfg.Level.BatchMaterial) {
			bundle.Batch.Material = n.Mesh.Material
		}

		switch {
		case strings.Contains(name, MarkerEnemy):
			enemyMarkers = append(enemyMarkers, n)
		case strings.Contains(name, MarkerMoveableBlock):
			blockMeshes = append(blockMeshes, n)
		case strings.Contains(name, MarkerGoalSensor):
			s := CreateSensor(ecs, n, components.SensorGoal)
			bundle.GoalSensors = append(bundle.GoalSensors, components.Sensor.Get(s).Collider)
		case strings.Contains(name, MarkerDanger):
			s := CreateSensor(ecs, n, components.SensorDanger)
			bundle.DangerSensors = append(bundle.DangerSensors, components.Sensor.Get(s).Collider)
			bundle.Objects = append(bundle.Objects, render.FromScene(n))
		default:
			bundle.Batch.Add(n)
			if strings.Contains(name, MarkerGround) {
				t := components.Terrain.Get(CreateTerrain(ecs, n))
				bundle.TerrainBodies = append(bundle.TerrainBodies, t.Body)
				bundle.TerrainColliders = append(bundle.TerrainColliders, t.Collider)
			}
		}
		return true
	})

	for _, marker := range enemyMarkers {
		enemy := CreateEnemy(ecs, marker)
		bundle.Enemies = append(bundle.Enemies, enemy)
		bundle.Objects = append(bundle.Objects, components.Object.Get(enemy).Node)
	}

	for _, mesh := range blockMeshes {
		block, err := CreateBlock(ecs, mesh)
		if err != nil {
			DestroyLevel(ecs, &bundle)
			return components.LevelBundle{}, fmt.Errorf("build level: %w", err)
		}
		bundle.Blocks = append(bundle.Blocks, block)
		bundle.Objects = append(bundle.Objects, components.Object.Get(block).Node)
	}

	bundle.Batch.Finalize()

	log.Printf("level built: %d goal, %d danger, %d terrain, %d enemies, %d blocks, %d batched",
		len(bundle.GoalSensors), len(bundle.DangerSensors), len(bundle.TerrainColliders),
		len(bundle.Enemies), len(bundle.Blocks), bundle.Batch.InstanceCount)

	return bundle, nil
}

// DestroyLevel removes every physics resource the bundle owns: terrain
// bodies and colliders, sensors, enemies and blocks.
func DestroyLevel(ecs *ecs.ECS, bundle *components.LevelBundle) {
	world := World(ecs)

	for _, c := range bundle.TerrainColliders {
		world.RemoveCollider(c)
	}
	for _, b := range bundle.TerrainBodies {
		world.RemoveRigidBody(b)
	}
	for _, c := range bundle.GoalSensors {
		world.RemoveCollider(c)
	}
	for _, c := range bundle.DangerSensors {
		world.RemoveCollider(c)
	}
	for _, e := range bundle.Enemies {
		DestroyBody(ecs, e)
	}
	for _, e := range bundle.Blocks {
		DestroyBody(ecs, e)
	}

	removeAll(ecs, components.Terrain)
	removeAll(ecs, components.Sensor)

	*bundle = components.LevelBundle{}
}

func removeAll[T any](ecs *ecs.ECS, c *donburi.ComponentType[T]) {
	var entries []*donburi.Entry
	c.Each(ecs.World, func(e *donburi.Entry) {
		entries = append(entries, e)
	})
	for _, e := range entries {
		ecs.World.Remove(e.Entity())
	}
}

// ParseColour reads "#rrggbb" hex colours and CSS colour names.
func ParseColour(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// CreateLevel spawns the level singleton holding the built bundle and the
// outcome handlers.
func CreateLevel(ecs *ecs.ECS, bundle components.LevelBundle, onReachedGoal, onPlayerDie func()) *donburi.Entry {
	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, &components.LevelData{
		Bundle:        bundle,
		OnReachedGoal: onReachedGoal,
		OnPlayerDie:   onPlayerDie,
	})
	return level
}
