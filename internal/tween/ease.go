// Package tween provides time-based property interpolation with easing.
//
// Tweens are keyed by the property they drive. Starting a tween on a key that
// already has one replaces it, so the last writer always wins.
package tween

import "math"

// EaseFunc maps linear progress in [0, 1] to eased progress.
type EaseFunc func(t float64) float64

// Linear performs no easing.
func Linear(t float64) float64 {
	return t
}

// Power2Out decelerates towards the end: 1 - (1-t)².
func Power2Out(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// SineInOut follows half a cosine wave, slow at both ends.
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// CubicInOut accelerates for the first half and decelerates for the second.
//
//	t < 0.5:  4t³
//	t >= 0.5: (t-1)(2t-2)² + 1
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}

// Lerp interpolates between a and b.
func Lerp(a, b float32, t float64) float32 {
	return a + (b-a)*float32(t)
}
