package components

import "github.com/yohamta/donburi"

// TickData carries the clamped delta of the tick being simulated.
type TickData struct {
	Delta float64
}

var Tick = donburi.NewComponentType[TickData]()
