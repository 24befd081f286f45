// Package smith implements the bilinear impedance-to-reflection transform
// and the small math helpers shared by the phase and target code.
package smith

// singularEps guards the transform denominator. Below this squared magnitude
// the input sits on the Z = -1 pole and the edge point (1, 0) is returned.
const singularEps = 1e-4

// Gamma maps a normalized impedance (r, x) to the reflection coefficient
// Gamma = (Z-1)/(Z+1) via explicit complex division. Always returns a finite
// pair; the Z = -1 singularity collapses to the unit-circle edge point (1, 0).
func Gamma(r, x float64) (float64, float64) {
	denom := (r+1)*(r+1) + x*x
	if denom < singularEps {
		return 1, 0
	}
	re := ((r-1)*(r+1) + x*x) / denom
	im := (2 * x) / denom
	return re, im
}

// GammaComplex is the textbook complex-division form of Gamma. It is kept
// alongside the expanded form so the two can be checked against each other
// numerically; they must agree to float tolerance everywhere off the pole.
func GammaComplex(r, x float64) (float64, float64) {
	z := complex(r, x)
	denom := z + 1
	if real(denom)*real(denom)+imag(denom)*imag(denom) < singularEps {
		return 1, 0
	}
	g := (z - 1) / denom
	return real(g), imag(g)
}
