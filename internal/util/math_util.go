package util

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampScore bounds a component score to the 0-100 scale.
func ClampScore(v float64) float64 {
	return Clamp(v, 0, 100)
}

// Round2 rounds to 2 decimal places, the precision scores are reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
