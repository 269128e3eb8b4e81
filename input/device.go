package input

import (
	cfg "github.com/automoto/skyhook/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Device polls keyboard, mouse and gamepads into a Buffer.
type Device struct {
	Buffer
	gamepadIDs []ebiten.GamepadID
}

// Poll samples every binding. Call once per tick before reading actions.
func (d *Device) Poll() {
	d.Swap()

	d.gamepadIDs = ebiten.AppendGamepadIDs(d.gamepadIDs[:0])

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				d.Current[actionID] = true
			}
		}
		for _, btn := range binding.MouseButtons {
			if ebiten.IsMouseButtonPressed(btn) {
				d.Current[actionID] = true
			}
		}
		for _, gpID := range d.gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					d.Current[actionID] = true
				}
			}
		}
	}

	left, right, up, down := analogStick(d.gamepadIDs)
	d.Current[cfg.ActionMoveLeft] = d.Current[cfg.ActionMoveLeft] || left
	d.Current[cfg.ActionMoveRight] = d.Current[cfg.ActionMoveRight] || right
	d.Current[cfg.ActionMoveUp] = d.Current[cfg.ActionMoveUp] || up
	d.Current[cfg.ActionMoveDown] = d.Current[cfg.ActionMoveDown] || down

	x, y := ebiten.CursorPosition()
	d.Pointer = mgl64.Vec2{float64(x), float64(y)}
	if look, ok := stickLook(d.gamepadIDs); ok {
		d.Pointer = look
	}
}

// analogStick reads the left analog stick from all gamepads
func analogStick(gamepads []ebiten.GamepadID) (left, right, up, down bool) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

		left = left || horizontal < -deadzone
		right = right || horizontal > deadzone
		up = up || vertical < -deadzone
		down = down || vertical > deadzone
	}
	return
}

// stickLook turns the right stick into a look point around the screen centre.
func stickLook(gamepads []ebiten.GamepadID) (mgl64.Vec2, bool) {
	deadzone := cfg.Input.AnalogDeadzone
	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickVertical)
		if h*h+v*v < deadzone*deadzone {
			continue
		}
		r := cfg.Input.StickLookRadius
		return mgl64.Vec2{
			float64(cfg.C.Width)/2 + h*r,
			float64(cfg.C.Height)/2 + v*r,
		}, true
	}
	return mgl64.Vec2{}, false
}
