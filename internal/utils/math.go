package utils

import "math"

// Clamp restricts v to the inclusive range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds v to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EWMA blends a new observation into a running score with the given weight
// on the old value. weight 0.8 means the history dominates.
func EWMA(old, observation, oldWeight float64) float64 {
	return old*oldWeight + observation*(1-oldWeight)
}
