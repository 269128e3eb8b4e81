package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FollowStep advances a follow camera one tick. Each axis is damped with a
// rate equal to the squared distance from its target, so the camera lags
// little moves and catches up quickly on big ones. Depth uses the vertical
// rate.
func FollowStep(camera, target mgl64.Vec3, followDistance, verticalOffset, dt float64) mgl64.Vec3 {
	dx := camera.X() - target.X()
	dy := camera.Y() - target.Y() + verticalOffset
	lambdaX := dx * dx
	lambdaY := dy * dy
	return mgl64.Vec3{
		Damp(camera.X(), target.X(), lambdaX, dt),
		Damp(camera.Y(), target.Y()+verticalOffset, lambdaY, dt),
		Damp(camera.Z(), target.Z()+followDistance, lambdaY, dt),
	}
}

// Viewport is a screen area in pixels.
type Viewport struct {
	Width, Height float64
}

// Project maps a world point to screen pixels for an unrotated perspective
// camera looking down -z. Screen y grows downward.
func Project(point, camera mgl64.Vec3, fovDegrees, near, far float64, vp Viewport) (mgl64.Vec2, bool) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return mgl64.Vec2{}, false
	}
	proj := mgl64.Perspective(mgl64.DegToRad(fovDegrees), vp.Width/vp.Height, near, far)
	view := mgl64.Translate3D(-camera.X(), -camera.Y(), -camera.Z())
	clip := proj.Mul4(view).Mul4x1(point.Vec4(1))
	if clip.W() <= 0 || math.IsNaN(clip.W()) {
		return mgl64.Vec2{}, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return mgl64.Vec2{
		(ndcX + 1) * vp.Width / 2,
		(1 - ndcY) * vp.Height / 2,
	}, true
}

// AimDirection returns the normalized world-plane direction from a screen
// point toward the look position. Screen y is flipped into world y.
func AimDirection(from, look mgl64.Vec2) (mgl64.Vec2, bool) {
	d := mgl64.Vec2{look.X() - from.X(), from.Y() - look.Y()}
	if d.Len() == 0 {
		return mgl64.Vec2{}, false
	}
	return d.Normalize(), true
}
