// Package input describes the held-button state the simulation samples each
// tick and the edge-triggered actions the host forwards as events.
package input

import (
	cfg "github.com/automoto/skyhook/config"
	"github.com/go-gl/mathgl/mgl64"
)

// Buttons is the held state of the movement controls.
type Buttons struct {
	Left, Right, Up, Down bool
	Boost                 bool
}

// State is sampled once per tick.
type State interface {
	Held() Buttons
	// Look is the pointer position in screen pixels.
	Look() mgl64.Vec2
}

// Snapshot is a fixed State.
type Snapshot struct {
	Buttons Buttons
	Pointer mgl64.Vec2
}

func (s Snapshot) Held() Buttons    { return s.Buttons }
func (s Snapshot) Look() mgl64.Vec2 { return s.Pointer }

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this tick
	JustReleased bool // Released this tick
}

// Buffer stores the current and previous tick's pressed state for all
// actions. It implements State.
type Buffer struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
	Pointer  mgl64.Vec2
}

// Swap makes the current tick the previous one and clears the current.
func (b *Buffer) Swap() {
	b.Previous = b.Current
	b.Current = [cfg.ActionCount]bool{}
}

// Action returns the full ActionState for an action ID.
func (b *Buffer) Action(id cfg.ActionID) ActionState {
	curr := b.Current[id]
	prev := b.Previous[id]
	return ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

func (b *Buffer) Held() Buttons {
	return Buttons{
		Left:  b.Current[cfg.ActionMoveLeft],
		Right: b.Current[cfg.ActionMoveRight],
		Up:    b.Current[cfg.ActionMoveUp],
		Down:  b.Current[cfg.ActionMoveDown],
		Boost: b.Current[cfg.ActionMoveUp],
	}
}

func (b *Buffer) Look() mgl64.Vec2 { return b.Pointer }
