package jdsp

import (
	"fmt"

	"github.com/jsquie/jdsp/internal/simdops"
)

// DCBlocker removes slowly drifting offsets with the one-pole highpass
//
//	y[n] = x[n] − x[n−1] + R·y[n−1]
//
// Asymmetric waveshaping introduces a DC component; running this after the
// downsampler keeps it out of the output. State is float64 regardless of F.
type DCBlocker[F simdops.Float] struct {
	r  float64
	x1 float64
	y1 float64
}

// NewDCBlocker creates a blocker with the default pole radius.
func NewDCBlocker[F simdops.Float]() *DCBlocker[F] {
	return &DCBlocker[F]{r: DefaultDCBlockerR}
}

// NewDCBlockerR creates a blocker with a custom pole radius in (0, 1).
func NewDCBlockerR[F simdops.Float](r float64) (*DCBlocker[F], error) {
	if r <= 0 || r >= 1 {
		return nil, fmt.Errorf("%w: DC blocker pole radius must be in (0, 1), got %g", ErrInvalidConfig, r)
	}
	return &DCBlocker[F]{r: r}, nil
}

// Process filters one sample.
func (b *DCBlocker[F]) Process(x F) F {
	y := float64(x) - b.x1 + b.r*b.y1
	b.x1 = float64(x)
	b.y1 = y
	return F(y)
}

// ProcessBlock filters a buffer in place.
func (b *DCBlocker[F]) ProcessBlock(buf []F) {
	for i, v := range buf {
		buf[i] = b.Process(v)
	}
}

// Reset clears the filter state.
func (b *DCBlocker[F]) Reset() {
	b.x1 = 0
	b.y1 = 0
}
