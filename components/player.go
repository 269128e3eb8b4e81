package components

import (
	"github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/physics"
	"github.com/automoto/skyhook/render"
	"github.com/yohamta/donburi"
)

// Intents collects the movement requests made during one tick. The player
// system takes it once and starts the next tick from zero.
type Intents struct {
	ImpulseX float64
	ImpulseY float64
	Boost    bool
}

type PlayerData struct {
	Config  config.PlayerConfig
	Facing  float64 // config.DirectionLeft or config.DirectionRight
	Pending Intents

	BoostRemaining float64

	// Contact state from the most recent ray casts.
	Grounded bool
	HitLeft  bool
	HitRight bool

	ProximitySensor physics.ColliderHandle

	Model     *render.Node // yawed toward the facing direction
	Indicator *render.Node // boost gauge
	Yaw       float64
	Tilt      float64
}

// TakeIntents returns the pending intents and clears them.
func (p *PlayerData) TakeIntents() Intents {
	i := p.Pending
	p.Pending = Intents{}
	return i
}

// BoostFraction returns the remaining boost as a fraction of capacity.
func (p *PlayerData) BoostFraction() float64 {
	if p.Config.Boost.Capacity <= 0 {
		return 0
	}
	return p.BoostRemaining / p.Config.Boost.Capacity
}

var Player = donburi.NewComponentType[PlayerData]()
