package mathutil

import "math"

// Epsilon is the smallest magnitude any shading denominator is allowed to take.
// Every division in the lighting and fog code goes through SafeDenom.
const Epsilon = 1e-5

// LogFloor is the smallest argument handed to log2. Matches the LogLuv clamp.
const LogFloor = 1e-6

// SafeDenom clamps a non-negative denominator away from zero.
// Negative inputs are treated as zero.
func SafeDenom(x float64) float64 {
	if x < Epsilon || math.IsNaN(x) {
		return Epsilon
	}
	return x
}

// SafePow is pow with the base clamped to [0, inf). 0^0 is 1, as in GLSL on
// every driver we care about.
func SafePow(base, exp float64) float64 {
	if base <= 0 || math.IsNaN(base) {
		if exp == 0 {
			return 1
		}
		return 0
	}
	return math.Pow(base, exp)
}

// SafeLog2 is log2 with its argument clamped to LogFloor.
func SafeLog2(x float64) float64 {
	if x < LogFloor || math.IsNaN(x) {
		x = LogFloor
	}
	return math.Log2(x)
}
