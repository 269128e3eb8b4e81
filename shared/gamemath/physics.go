// Package gamemath holds the frame-rate independent smoothing and small
// numeric helpers shared by the simulation systems.
package gamemath

import "math"

// Lerp interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Damp moves x toward y with exponential smoothing. lambda is the decay rate
// per second, so the result is independent of the tick length.
func Damp(x, y, lambda, dt float64) float64 {
	return Lerp(x, y, 1-math.Exp(-lambda*dt))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
