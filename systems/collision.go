package systems

import (
	"log"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ClassifyCollision maps a collision event to a game outcome. Only started
// contacts involving the player count. A goal wins over an enemy, which wins
// over danger.
func ClassifyCollision(ecs *ecs.ECS, ev physics.CollisionEvent) cfg.OutcomeID {
	if !ev.Started {
		return cfg.OutcomeNone
	}
	player, ok := tags.Player.First(ecs.World)
	if !ok {
		return cfg.OutcomeNone
	}
	other, ok := ev.Other(components.Body.Get(player).Collider)
	if !ok {
		return cfg.OutcomeNone
	}

	level, ok := levelData(ecs)
	if !ok {
		return cfg.OutcomeNone
	}
	switch {
	case level.Bundle.IsGoal(other):
		return cfg.OutcomePlayerHitGoal
	case isEnemy(ecs, other):
		return cfg.OutcomePlayerHitEnemy
	case level.Bundle.IsDanger(other):
		return cfg.OutcomePlayerHitDanger
	}
	return cfg.OutcomeNone
}

func isEnemy(ecs *ecs.ECS, h physics.ColliderHandle) bool {
	found := false
	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		if components.Body.Get(e).Collider == h {
			found = true
		}
	})
	return found
}

// UpdateCollisions drains the collision events of the last step and fires
// the level's outcome handlers.
func UpdateCollisions(ecs *ecs.ECS) {
	world := factory.World(ecs)
	level, ok := levelData(ecs)

	world.DrainCollisionEvents(func(ev physics.CollisionEvent) {
		if !ok {
			return
		}
		outcome := ClassifyCollision(ecs, ev)
		switch outcome {
		case cfg.OutcomePlayerHitGoal:
			log.Printf("level: %s after %.2fs", outcome, level.Elapsed)
			if level.OnReachedGoal != nil {
				level.OnReachedGoal()
			}
		case cfg.OutcomePlayerHitEnemy:
			if cfg.Level.EnemiesLethal && level.OnPlayerDie != nil {
				level.OnPlayerDie()
			}
		case cfg.OutcomePlayerHitDanger:
			log.Printf("level: %s", outcome)
			if level.OnPlayerDie != nil {
				level.OnPlayerDie()
			}
		}
	})
}
