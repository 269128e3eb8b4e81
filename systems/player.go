package systems

import (
	"math"

	"github.com/automoto/skyhook/audio"
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/systems/factory"
	"github.com/automoto/skyhook/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	down  = mgl64.Vec3{0, -1, 0}
	left  = mgl64.Vec3{-1, 0, 0}
	right = mgl64.Vec3{1, 0, 0}
)

func withPlayer(ecs *ecs.ECS, fn func(e *donburi.Entry, p *components.PlayerData)) {
	e, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	fn(e, components.Player.Get(e))
}

// MoveLeft adds a leftward push to this tick's intents and faces left.
func MoveLeft(ecs *ecs.ECS) {
	withPlayer(ecs, func(_ *donburi.Entry, p *components.PlayerData) {
		p.Pending.ImpulseX -= p.Config.HorizontalMovementForce
		p.Facing = cfg.DirectionLeft
	})
}

// MoveRight adds a rightward push to this tick's intents and faces right.
func MoveRight(ecs *ecs.ECS) {
	withPlayer(ecs, func(_ *donburi.Entry, p *components.PlayerData) {
		p.Pending.ImpulseX += p.Config.HorizontalMovementForce
		p.Facing = cfg.DirectionRight
	})
}

// Boost requests the jetpack for this tick.
func Boost(ecs *ecs.ECS) {
	withPlayer(ecs, func(_ *donburi.Entry, p *components.PlayerData) {
		p.Pending.Boost = true
	})
}

// Jump applies an immediate vertical impulse based on the contact state of
// the previous tick: full force when grounded, the wall-jump force when
// airborne against a wall, nothing otherwise.
func Jump(ecs *ecs.ECS) {
	withPlayer(ecs, func(e *donburi.Entry, p *components.PlayerData) {
		sounds(ecs).Play(cfg.SoundJetpackBurst)

		// Wall jumps do not push off horizontally.
		horizontal := 0.0

		var vertical float64
		switch {
		case p.Grounded:
			vertical = p.Config.JumpForce
		case p.HitLeft || p.HitRight:
			vertical = p.Config.WallJumpForce
		}

		body := components.Body.Get(e).Body
		factory.World(ecs).ApplyImpulse(body, mgl64.Vec3{horizontal, vertical, 0}, true)
	})
}

func UpdatePlayer(ecs *ecs.ECS) {
	withPlayer(ecs, func(e *donburi.Entry, p *components.PlayerData) {
		dt := Delta(ecs)
		world := factory.World(ecs)
		provider := sounds(ecs)
		b := components.Body.Get(e)
		node := components.Object.Get(e).Node
		anim := components.Animation.Get(e)
		conf := p.Config

		intents := p.TakeIntents()

		anim.Update(dt)

		pos := world.Translation(b.Body)
		node.Position = pos
		world.SetColliderTranslation(p.ProximitySensor, pos)

		p.Grounded = castSide(world, pos, down, conf.RayLength, b.Collider)
		p.HitLeft = castSide(world, pos, left, conf.RayLength, b.Collider)
		p.HitRight = castSide(world, pos, right, conf.RayLength, b.Collider)

		impulse := mgl64.Vec3{intents.ImpulseX, intents.ImpulseY, 0}
		impulse[1] += updateBoost(p, intents.Boost, dt, provider)

		if impulse.X() != 0 || impulse.Y() != 0 {
			world.ApplyImpulse(b.Body, impulse.Mul(dt), true)
		}

		velocity := world.LinearVelocity(b.Body)
		speedX := math.Abs(velocity.X())

		walk := anim.Action(conf.WalkClip)
		footsteps := provider.Play(cfg.SoundFootsteps)
		var walkScale, walkRate float64
		switch {
		case p.Grounded && speedX > 0:
			walk.Play()
			walkScale = speedX * conf.WalkTimeScale
			walkRate = walkScale
		case !p.Grounded:
			footsteps.Stop()
			walkScale = math.Min(speedX*conf.AirTimeScale, conf.AirTimeScaleMax)
		default:
			footsteps.Stop()
		}
		walk.TimeScale = gamemath.Damp(walk.TimeScale, walkScale, conf.VisualLambda, dt)
		footsteps.SetPlaybackRate(walkRate)

		if speedX > conf.VelocityLimit {
			velocity[0] *= conf.VelocityDamping
			world.SetLinearVelocity(b.Body, velocity, true)
		}

		yaw := mgl64.DegToRad(conf.YawDegrees * p.Facing)
		p.Yaw = gamemath.Damp(p.Yaw, yaw, conf.VisualLambda, dt)
		p.Model.Rotation = mgl64.QuatRotate(p.Yaw, mgl64.Vec3{0, 1, 0})

		tilt := -p.Facing*conf.TiltBias + velocity.X()*conf.TiltPerVelocity
		p.Tilt = gamemath.Damp(p.Tilt, tilt, conf.VisualLambda, dt)
		node.Rotation = mgl64.QuatRotate(p.Tilt, mgl64.Vec3{0, 0, 1})
	})
}

// updateBoost spends or regenerates fuel and returns the upward force to add
// this tick. The gauge and the jetpack loop follow the remaining fuel.
func updateBoost(p *components.PlayerData, boosting bool, dt float64, provider audio.Provider) float64 {
	conf := p.Config.Boost
	full := p.BoostRemaining == conf.Capacity
	empty := p.BoostRemaining == 0
	fraction := p.BoostFraction()

	loop := provider.Play(cfg.SoundJetpackLoop)

	var lift float64
	switch {
	case boosting && !empty:
		lift = conf.Force
		p.BoostRemaining = math.Max(p.BoostRemaining-conf.UsageRate*dt, 0)
	case !boosting:
		p.BoostRemaining = math.Min(p.BoostRemaining+conf.RegenerationRate*dt, conf.Capacity)
	}

	var gauge float64
	switch {
	case full && boosting:
		gauge = p.Config.IndicatorFull
	case full:
		gauge = p.Config.IndicatorIdle
	case boosting:
		gauge = fraction
	}
	scale := gamemath.Damp(p.Indicator.Scale.X(), gauge, p.Config.VisualLambda, dt)
	scaleY := 1.0
	if full && !boosting {
		scaleY = 0.5
	}
	p.Indicator.Scale = mgl64.Vec3{scale, scaleY, scale}

	target := 0.0
	if boosting && !empty {
		target = 1
	}
	volume := gamemath.Damp(loop.Volume(), target, p.Config.JetpackLambda, dt)
	loop.SetVolume(volume)
	if volume < p.Config.JetpackSilenceVol {
		loop.Stop()
	}

	return lift
}
