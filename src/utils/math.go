package utils

import "math"

// RoundQuantity rounds a target quantity to a whole number of shares or
// contracts, half away from zero. NaN rounds to 0.
func RoundQuantity(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(v)
}

// Clip bounds v to [min, max].
func Clip(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
