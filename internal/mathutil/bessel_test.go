package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBesselI0KnownValues(t *testing.T) {
	// Reference values from Abramowitz & Stegun tables.
	cases := []struct {
		x        float64
		expected float64
	}{
		{0.0, 1.0},
		{0.5, 1.0634834},
		{1.0, 1.2660659},
		{2.0, 2.2795853},
		{3.75, 9.1189458},
		{5.0, 27.239872},
		{10.0, 2815.7167},
	}

	for _, tc := range cases {
		got := BesselI0(tc.x)
		assert.InEpsilon(t, tc.expected, got, 1e-5, "I0(%g)", tc.x)
	}
}

func TestBesselI0Symmetric(t *testing.T) {
	for _, x := range []float64{0.1, 1.0, 3.0, 7.5} {
		assert.Equal(t, BesselI0(x), BesselI0(-x), "I0 must be even at %g", x)
	}
}

func TestKaiserBetaRegions(t *testing.T) {
	assert.Equal(t, 0.0, KaiserBeta(10), "below 21 dB the window is rectangular")

	// High-attenuation branch: β = 0.1102(att − 8.7)
	assert.InDelta(t, 0.1102*(100-8.7), KaiserBeta(100), 1e-12)

	// Medium branch at 40 dB
	expected := 0.5842*math.Pow(40-21, 0.4) + 0.07886*(40-21)
	assert.InDelta(t, expected, KaiserBeta(40), 1e-12)
}

func TestKaiserAttenuationInvertsBeta(t *testing.T) {
	for _, att := range []float64{60.0, 80.0, 100.0, 120.0} {
		beta := KaiserBeta(att)
		assert.InDelta(t, att, KaiserAttenuation(beta), 1e-9, "att %g", att)
	}
}

func TestEstimateFilterLength(t *testing.T) {
	// Higher attenuation or narrower transition needs more taps.
	short := EstimateFilterLength(60, 0.2)
	long := EstimateFilterLength(100, 0.2)
	assert.Greater(t, long, short)

	narrow := EstimateFilterLength(100, 0.05)
	assert.Greater(t, narrow, long)

	// Always odd, always within bounds.
	for _, att := range []float64{10, 60, 100, 500} {
		n := EstimateFilterLength(att, 0.1)
		assert.Equal(t, 1, n%2, "length must be odd for att %g", att)
		assert.GreaterOrEqual(t, n, minFilterLength)
		assert.LessOrEqual(t, n, maxFilterLength)
	}
}
