package vmath

const TwoPi = 6.283185307179586

// Clamp01 clamps x to [0, 1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Lerp interpolates between a and b, t=0 gives a, t=1 gives b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the Hermite ramp: 0 for x <= edge0, 1 for x >= edge1,
// smooth cubic in between. Undefined for edge0 >= edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Remap maps x from [lo, hi] onto [0, 1], clamped
func Remap(x, lo, hi float64) float64 {
	return Clamp01((x - lo) / (hi - lo))
}
