package systems

import (
	"math"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBlockDrag plays the scrape loop while any block slides along the
// terrain. Its volume follows the fastest sliding block.
func UpdateBlockDrag(ecs *ecs.ECS) {
	level, ok := levelData(ecs)
	if !ok {
		return
	}
	world := factory.World(ecs)
	conf := cfg.ContactAudio
	drag := sounds(ecs).Play(cfg.SoundBlockDrag)

	target := 0.0
	for _, terrain := range level.Bundle.TerrainColliders {
		for _, block := range level.Bundle.Blocks {
			b := components.Body.Get(block)
			if !world.ContactPair(terrain, b.Collider) {
				continue
			}
			speed := math.Abs(world.LinearVelocity(b.Body).X())
			if speed > conf.DragMinSpeed {
				target = math.Min(speed*conf.DragScale, 1)
			}
		}
	}

	volume := gamemath.Damp(drag.Volume(), target, conf.DragLambda, Delta(ecs))
	if volume > conf.SilenceThreshold {
		drag.SetVolume(volume)
	} else {
		drag.Stop()
	}
}

// ClassifyContact maps a contact force event to the body kind it concerns.
// The player is checked first.
func ClassifyContact(ecs *ecs.ECS, ev physics.ContactForceEvent) (cfg.ContactID, *donburi.Entry) {
	if player, ok := tags.Player.First(ecs.World); ok {
		if ev.Involves(components.Body.Get(player).Collider) {
			return cfg.ContactPlayer, player
		}
	}

	var found *donburi.Entry
	tags.Block.Each(ecs.World, func(e *donburi.Entry) {
		if found == nil && ev.Involves(components.Body.Get(e).Collider) {
			found = e
		}
	})
	if found != nil {
		return cfg.ContactBlock, found
	}
	return cfg.ContactNone, nil
}

// UpdateContactForces plays impact sounds scaled by the force of each hard
// contact reported by the last step.
func UpdateContactForces(ecs *ecs.ECS) {
	world := factory.World(ecs)
	provider := sounds(ecs)
	conf := cfg.ContactAudio

	world.DrainContactForceEvents(func(ev physics.ContactForceEvent) {
		kind, _ := ClassifyContact(ecs, ev)
		switch kind {
		case cfg.ContactPlayer:
			provider.Play(cfg.SoundPlayerHit).SetVolume(math.Min(ev.TotalForceMagnitude*conf.PlayerHitScale, 1))
		case cfg.ContactBlock:
			provider.Play(cfg.SoundWoodHit).SetVolume(math.Min(ev.MaxForceMagnitude*conf.WoodHitScale, 1))
		}
	})
}
