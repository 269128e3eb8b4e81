package factory

import (
	"math/rand"

	"github.com/automoto/skyhook/archetypes"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateGrapple spawns the grapple graph singleton. rnd defaults to
// math/rand.
func CreateGrapple(ecs *ecs.ECS, rnd func() float64) *donburi.Entry {
	if rnd == nil {
		rnd = rand.Float64
	}
	grapple := archetypes.Grapple.Spawn(ecs)
	components.Grapple.Set(grapple, &components.GrappleData{
		Config: cfg.Grapple,
		Rand:   rnd,
	})
	return grapple
}
