// Package testutil provides reusable test helper functions for DSP tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	DesignTolerance  = 1e-6
	ShaperTolerance  = 1e-2
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// AssertMatchesTable verifies each element of got against a table of
// expected values, within tolerance. The slices must have equal length.
func AssertMatchesTable(t *testing.T, expected, got []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, got, len(expected)) {
		return false
	}
	ok := true
	for i := range expected {
		if !assert.InDelta(t, expected[i], got[i], tolerance,
			"mismatch at index %d: got %g, want %g", i, got[i], expected[i]) {
			ok = false
		}
	}
	return ok
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%f > center s[%d]=%f", i, v, centerIdx, centerValue)
		}
	}
	return true
}

// Impulse returns a unit impulse of the given length.
func Impulse(length int) []float64 {
	s := make([]float64, length)
	s[0] = 1
	return s
}

// Sine returns length samples of sin(2π·freq·n), freq in cycles per sample.
func Sine(length int, freq float64) []float64 {
	s := make([]float64, length)
	for n := range length {
		s[n] = math.Sin(2 * math.Pi * freq * float64(n))
	}
	return s
}
