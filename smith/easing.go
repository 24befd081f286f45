package smith

// Clamp01 clamps a value to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutQuart eases t in [0, 1] with a quartic out curve: fast start,
// long settle. Inputs outside the range are clamped first.
func EaseOutQuart(t float64) float64 {
	t = Clamp01(t)
	u := 1 - t
	return 1 - u*u*u*u
}
