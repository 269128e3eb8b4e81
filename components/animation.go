package components

import (
	"math"

	"github.com/yohamta/donburi"
)

// Clip is a named, looping animation of a fixed duration in seconds.
type Clip struct {
	Name     string
	Duration float64
}

// Action is the playback state of one clip.
type Action struct {
	Clip      Clip
	Time      float64
	TimeScale float64
	Playing   bool
}

func (a *Action) Play() {
	a.Playing = true
}

func (a *Action) advance(dt float64) {
	if !a.Playing {
		return
	}
	a.Time += dt * a.TimeScale
	if a.Clip.Duration > 0 {
		a.Time = math.Mod(a.Time, a.Clip.Duration)
		if a.Time < 0 {
			a.Time += a.Clip.Duration
		}
	}
}

type AnimationData struct {
	Clips   map[string]Clip
	Actions map[string]*Action
}

// Action returns the action for a clip, creating it on first use. It returns
// nil for unknown clips.
func (a *AnimationData) Action(name string) *Action {
	if act, ok := a.Actions[name]; ok {
		return act
	}
	clip, ok := a.Clips[name]
	if !ok {
		return nil
	}
	if a.Actions == nil {
		a.Actions = make(map[string]*Action)
	}
	act := &Action{Clip: clip, TimeScale: 1}
	a.Actions[name] = act
	return act
}

// Update advances every playing action.
func (a *AnimationData) Update(dt float64) {
	for _, act := range a.Actions {
		act.advance(dt)
	}
}

var Animation = donburi.NewComponentType[AnimationData]()
