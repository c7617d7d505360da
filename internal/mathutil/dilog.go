package mathutil

import (
	"math"
)

// Li2 computes the real dilogarithm Li₂(x) = -∫₀ˣ ln(1-t)/t dt for x ≤ 1.
//
// The antiderivative of x·tanh(x) involves Li₂(-e⁻²ˣ), so second-order
// antialiased tanh shaping needs this function with arguments in [-1, 0].
// Arguments above 1 have a complex-valued dilogarithm and return NaN.
//
// The argument is reduced into [0, 1/2], where the power series
// Σ zᵏ/k² converges geometrically, using the standard identities:
//
//	Li₂(x) = -π²/6 - ln²(-x)/2 - Li₂(1/x)          x < -1  (inversion)
//	Li₂(x) = -Li₂(x/(x-1)) - ln²(1-x)/2            -1 ≤ x < 0  (Landen)
//	Li₂(x) = π²/6 - ln(x)·ln(1-x) - Li₂(1-x)       1/2 < x < 1  (reflection)
func Li2(x float64) float64 {
	switch {
	case x > 1:
		return math.NaN()
	case x == 1:
		return piSquaredOver6
	case x > 0.5:
		return piSquaredOver6 - math.Log(x)*math.Log1p(-x) - li2Series(1-x)
	case x >= 0:
		return li2Series(x)
	case x >= -1:
		l := math.Log1p(-x)
		return -li2Series(x/(x-1)) - 0.5*l*l
	default:
		l := math.Log(-x)
		return -piSquaredOver6 - 0.5*l*l - Li2(1/x)
	}
}

// li2Series evaluates the defining power series Σₖ zᵏ/k².
// Callers must reduce the argument to [0, 1/2] first.
func li2Series(z float64) float64 {
	if z == 0 {
		return 0
	}

	sum := 0.0
	term := z
	for k := 1; k <= li2SeriesMaxTerms; k++ {
		sum += term / float64(k*k)
		term *= z
		if term < li2SeriesEps {
			break
		}
	}

	return sum
}
