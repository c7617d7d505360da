package jdsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDCBlockerRemovesConstantOffset(t *testing.T) {
	b := NewDCBlocker[float64]()

	var out float64
	for range 5000 {
		out = b.Process(1.0)
	}
	assert.InDelta(t, 0.0, out, 1e-4)
}

func TestDCBlockerPassesAudioBand(t *testing.T) {
	// A mid-band sine rides through nearly untouched even with a DC offset
	// added; after settling, the output oscillates around zero with close
	// to the original amplitude.
	b := NewDCBlocker[float64]()

	const n = 20000
	var minOut, maxOut float64
	for i := range n {
		x := 2.0 + math.Sin(2*math.Pi*0.01*float64(i))
		y := b.Process(x)
		if i > n/2 {
			minOut = math.Min(minOut, y)
			maxOut = math.Max(maxOut, y)
		}
	}

	assert.InDelta(t, 1.0, maxOut, 0.05)
	assert.InDelta(t, -1.0, minOut, 0.05)
}

func TestDCBlockerCustomRadius(t *testing.T) {
	b, err := NewDCBlockerR[float64](0.9)
	require.NoError(t, err)

	var out float64
	for range 1000 {
		out = b.Process(1.0)
	}
	assert.InDelta(t, 0.0, out, 1e-4)
}

func TestDCBlockerRejectsBadRadius(t *testing.T) {
	for _, r := range []float64{0, -0.5, 1, 1.5} {
		_, err := NewDCBlockerR[float64](r)
		assert.ErrorIs(t, err, ErrInvalidConfig, "r = %g", r)
	}
}

func TestDCBlockerReset(t *testing.T) {
	b := NewDCBlocker[float64]()
	for range 100 {
		b.Process(1.0)
	}
	b.Reset()

	// First sample after reset behaves like a fresh filter: y = x.
	assert.Equal(t, 0.5, b.Process(0.5))
}

func TestDCBlockerProcessBlock(t *testing.T) {
	b := NewDCBlocker[float64]()
	c := NewDCBlocker[float64]()

	buf := []float64{1, 1, 1, 0.5, -0.5, 0}
	expected := make([]float64, len(buf))
	for i, x := range buf {
		expected[i] = c.Process(x)
	}

	b.ProcessBlock(buf)
	assert.Equal(t, expected, buf)
}
