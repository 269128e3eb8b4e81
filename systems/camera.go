package systems

import (
	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/shared/gamemath"
	"github.com/automoto/skyhook/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi/ecs"
)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	target := components.Object.Get(playerEntry).Position

	conf := camera.Config
	camera.Position = gamemath.FollowStep(camera.Position, target, conf.FollowDistance, conf.VerticalOffset, Delta(e))

	// The sky glow hangs behind the level and tracks the camera.
	level, ok := levelData(e)
	if !ok || level.Bundle.SkyGlow == nil {
		return
	}
	level.Bundle.SkyGlow.Position = mgl64.Vec3{
		camera.Position.X(),
		camera.Position.Y() + cfg.Level.SkyGlowHeight,
		cfg.Level.SkyGlowDepth,
	}
}
