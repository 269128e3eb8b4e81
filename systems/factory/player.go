package factory

import (
	"fmt"

	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/render"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreatePlayer(ecs *ecs.ECS) (*donburi.Entry, error) {
	conf := cfg.Player

	animData, err := GenerateAnimations("player")
	if err != nil {
		return nil, err
	}
	if _, ok := animData.Clips[conf.WalkClip]; !ok {
		return nil, fmt.Errorf("player clip %q: %w", conf.WalkClip, ErrMissingAnimation)
	}

	world := World(ecs)
	player := archetypes.Player.Spawn(ecs)

	body := world.CreateRigidBody(physics.BodyDesc{
		Kind:             physics.Dynamic,
		Translation:      conf.Spawn,
		LockTranslationZ: true,
		LockRotations:    true,
		LinearDamping:    conf.LinearDamping,
		Label:            "Player",
	})
	collider := world.CreateCollider(physics.ColliderDesc{
		Shape:                 physics.Ball,
		Radius:                conf.Radius,
		Friction:              conf.Friction,
		Mass:                  conf.Mass,
		ContactSkin:           conf.ContactSkin,
		CollisionEvents:       true,
		ContactForceEvents:    true,
		ContactForceThreshold: conf.ContactForceThreshold,
	}, body)
	sensor := world.CreateCollider(physics.ColliderDesc{
		Shape:           physics.Ball,
		Radius:          conf.ProximitySensorRadius,
		Translation:     conf.Spawn,
		Sensor:          true,
		CollisionEvents: true,
	}, 0)

	node := render.NewNode("player")
	node.Position = conf.Spawn
	model := render.NewNode("player-model")
	model.Position = mgl64.Vec3{0, -0.45, 0}
	indicator := render.NewNode("boost-indicator")
	indicator.Position = mgl64.Vec3{0, 0.3, -0.4}
	model.Add(indicator)
	node.Add(model)

	components.Object.SetValue(player, components.ObjectData{Node: node})
	components.Body.SetValue(player, components.BodyData{
		Body:          body,
		Collider:      collider,
		StartPosition: conf.Spawn,
		StartRotation: mgl64.QuatIdent(),
	})
	components.Player.SetValue(player, components.PlayerData{
		Config:          conf,
		Facing:          cfg.DirectionRight,
		BoostRemaining:  conf.Boost.Capacity,
		ProximitySensor: sensor,
		Model:           model,
		Indicator:       indicator,
	})
	components.Animation.Set(player, animData)

	return player, nil
}

// DestroyPlayer removes the proximity sensor, the collider and then the body.
func DestroyPlayer(ecs *ecs.ECS, player *donburi.Entry) {
	world := World(ecs)
	p := components.Player.Get(player)
	b := components.Body.Get(player)
	world.RemoveCollider(p.ProximitySensor)
	world.RemoveCollider(b.Collider)
	world.RemoveRigidBody(b.Body)
	ecs.World.Remove(player.Entity())
}
