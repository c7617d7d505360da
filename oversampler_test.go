package jdsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsquie/jdsp/internal/testutil"
	"github.com/jsquie/jdsp/window"
)

func TestNewOversamplerRejectsBadFactors(t *testing.T) {
	for _, factor := range []int{0, 1, 3, 6, 32, -2} {
		_, err := NewOversampler[float64](factor)
		assert.ErrorIs(t, err, ErrInvalidFactor, "factor %d", factor)
	}
}

func TestNewOversamplerTapsRejectsBadKernel(t *testing.T) {
	_, err := NewOversamplerTaps[float64](2, []float64{1, 0, 1})
	assert.ErrorIs(t, err, ErrInvalidTapLength)

	_, err = NewOversamplerTaps[float64](2, make([]float64, 62))
	assert.ErrorIs(t, err, ErrInvalidTapLength)
}

func TestOversamplerLatency(t *testing.T) {
	cases := []struct {
		factor  int
		exact   float64
		rounded int
	}{
		{2, 31, 31},
		{4, 46.5, 47},
		{8, 54.25, 54},
		{16, 58.125, 58},
	}

	for _, tc := range cases {
		os, err := NewOversampler[float64](tc.factor)
		require.NoError(t, err)

		assert.InDelta(t, tc.exact, os.LatencyExact(), 1e-12, "factor %d", tc.factor)
		assert.Equal(t, tc.rounded, os.Latency(), "factor %d", tc.factor)
	}
}

func TestOversamplerLatencyStableAcrossProcessing(t *testing.T) {
	os, err := NewOversampler[float64](4)
	require.NoError(t, err)

	before := os.Latency()
	for n := range 1000 {
		os.Downsample(os.Upsample(math.Sin(float64(n))))
	}
	assert.Equal(t, before, os.Latency())

	os.Reset()
	assert.Equal(t, before, os.Latency())
}

func TestOversamplerUpsampleWidth(t *testing.T) {
	for _, factor := range []int{2, 4, 8, 16} {
		os, err := NewOversampler[float64](factor)
		require.NoError(t, err)
		assert.Equal(t, factor, os.Factor())
		assert.Len(t, os.Upsample(1.0), factor)
	}
}

func TestOversamplerRoundTripDC(t *testing.T) {
	// The kernel has unit DC gain, so a constant input must come back as
	// the same constant once the cascade settles, at any factor.
	for _, factor := range []int{2, 4, 8, 16} {
		os, err := NewOversampler[float64](factor)
		require.NoError(t, err)

		var out float64
		for range 400 {
			out = os.Downsample(os.Upsample(1.0))
		}
		assert.InDelta(t, 1.0, out, 1e-6, "factor %d", factor)
	}
}

func TestOversamplerRoundTripSine(t *testing.T) {
	os, err := NewOversampler[float64](2)
	require.NoError(t, err)

	const n = 512
	delay := os.Latency()
	input := testutil.Sine(n, 0.01)

	out := make([]float64, n)
	for i, x := range input {
		out[i] = os.Downsample(os.Upsample(x))
	}

	for i := 2 * delay; i < n; i++ {
		assert.InDelta(t, input[i-delay], out[i], 1e-3, "sample %d", i)
	}
}

func TestOversamplerDeterministic(t *testing.T) {
	os, err := NewOversampler[float64](8)
	require.NoError(t, err)

	input := testutil.Sine(200, 0.037)

	run := func() []float64 {
		out := make([]float64, len(input))
		for i, x := range input {
			out[i] = os.Downsample(os.Upsample(x))
		}
		return out
	}

	first := run()
	os.Reset()
	second := run()

	assert.Equal(t, first, second, "same input after Reset must be bit-identical")
}

func TestOversamplerSetFactor(t *testing.T) {
	os, err := NewOversampler[float64](2)
	require.NoError(t, err)

	require.NoError(t, os.SetFactor(8))
	assert.Equal(t, 8, os.Factor())
	assert.Len(t, os.Upsample(1.0), 8)

	// A rejected factor must leave the oversampler untouched.
	err = os.SetFactor(5)
	assert.ErrorIs(t, err, ErrInvalidFactor)
	assert.Equal(t, 8, os.Factor())
	assert.Len(t, os.Upsample(1.0), 8)
}

func TestOversamplerDownsampleCopiesForeignBlock(t *testing.T) {
	// Downsample must accept a caller-owned block, not only the scratch
	// slice returned by Upsample.
	os, err := NewOversampler[float64](2)
	require.NoError(t, err)

	var out float64
	for range 400 {
		block := []float64{1, 1}
		out = os.Downsample(block)
	}
	assert.InDelta(t, 1.0, out, 1e-6)
}

func TestOversamplerCustomKernel(t *testing.T) {
	kernel, err := window.HalfbandTaps(31, 8.0)
	require.NoError(t, err)

	os, err := NewOversamplerTaps[float64](2, kernel)
	require.NoError(t, err)
	assert.Equal(t, 15, os.Latency())

	var out float64
	for range 200 {
		out = os.Downsample(os.Upsample(0.5))
	}
	assert.InDelta(t, 0.5, out, 1e-5)
}

func TestOversamplerFloat32(t *testing.T) {
	os, err := NewOversampler[float32](4)
	require.NoError(t, err)

	var out float32
	for range 400 {
		out = os.Downsample(os.Upsample(float32(1.0)))
	}
	assert.InDelta(t, 1.0, float64(out), 1e-4)
}
