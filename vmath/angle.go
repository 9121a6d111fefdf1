package vmath

import "math"

// TwoPi is a full rotation in radians
const TwoPi = 2 * math.Pi

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapAngle maps any angle into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of a tiny negative can round back up to 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDiff returns the minimal signed difference a - b, normalized to (-π, π]
func AngleDiff(a, b float64) float64 {
	d := WrapAngle(a - b)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}
