package jdsp

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/jsquie/jdsp/internal/engine"
	"github.com/jsquie/jdsp/internal/simdops"
	"github.com/jsquie/jdsp/window"
)

// Oversampler raises the sample rate by a power-of-two factor through a
// cascade of polyphase halfband stages, and lowers it back through the same
// stages in reverse. It processes one base-rate sample at a time and never
// allocates after construction, so it is safe on real-time audio threads.
type Oversampler[F simdops.Float] struct {
	factor int
	stages []*engine.HalfbandStage[F]
	kernel []float64

	// Ping-pong scratch for the cascade, sized for the largest factor.
	bufA []F
	bufB []F
}

// NewOversampler creates an oversampler with the default 63-tap halfband
// design. The factor must be one of 2, 4, 8 or 16.
func NewOversampler[F simdops.Float](factor int) (*Oversampler[F], error) {
	return NewOversamplerTaps[F](factor, window.Default())
}

// NewOversamplerTaps creates an oversampler whose stages all share the given
// halfband kernel, typically from window.HalfbandTaps.
func NewOversamplerTaps[F simdops.Float](factor int, kernel []float64) (*Oversampler[F], error) {
	stages, err := buildStages[F](factor, kernel)
	if err != nil {
		return nil, err
	}

	return &Oversampler[F]{
		factor: factor,
		stages: stages,
		kernel: kernel,
		bufA:   make([]F, MaxFactor),
		bufB:   make([]F, MaxFactor),
	}, nil
}

// buildStages validates the factor and kernel and constructs the cascade.
// It touches no existing state, so callers can swap in the result only
// after every stage constructed successfully.
func buildStages[F simdops.Float](factor int, kernel []float64) ([]*engine.HalfbandStage[F], error) {
	if !validFactor(factor) {
		return nil, fmt.Errorf("%w: factor must be 2, 4, 8 or 16, got %d", ErrInvalidFactor, factor)
	}

	numStages := bits.TrailingZeros(uint(factor))
	stages := make([]*engine.HalfbandStage[F], numStages)
	for i := range stages {
		stage, err := engine.NewHalfbandStage[F](kernel)
		if err != nil {
			return nil, err
		}
		stages[i] = stage
	}
	return stages, nil
}

func validFactor(factor int) bool {
	switch factor {
	case 2, 4, 8, 16:
		return true
	}
	return false
}

// Factor returns the current oversampling factor.
func (o *Oversampler[F]) Factor() int {
	return o.factor
}

// Upsample converts one base-rate sample into factor samples at the raised
// rate. The returned slice is internal scratch, valid until the next call
// to Upsample or Downsample.
func (o *Oversampler[F]) Upsample(x F) []F {
	a, b := o.bufA, o.bufB
	a[0] = x
	width := 1

	for _, stage := range o.stages {
		for i := range width {
			even, odd := stage.Upsample(a[i])
			b[2*i] = even
			b[2*i+1] = odd
		}
		a, b = b, a
		width *= 2
	}

	return a[:width]
}

// Downsample folds factor samples at the raised rate back into one
// base-rate sample, running the stages in reverse order. block must hold
// exactly Factor samples; passing the slice returned by Upsample is the
// intended use.
func (o *Oversampler[F]) Downsample(block []F) F {
	a, b := o.bufA, o.bufB
	if &block[0] != &a[0] {
		copy(a, block[:o.factor])
	}
	width := o.factor

	for s := len(o.stages) - 1; s >= 0; s-- {
		stage := o.stages[s]
		width /= 2
		for i := range width {
			b[i] = stage.Downsample(a[2*i], a[2*i+1])
		}
		a, b = b, a
	}

	return a[0]
}

// SetFactor rebuilds the cascade for a new factor. On error the oversampler
// is left exactly as it was; on success all filter state starts from zero.
func (o *Oversampler[F]) SetFactor(factor int) error {
	if factor == o.factor {
		return nil
	}
	stages, err := buildStages[F](factor, o.kernel)
	if err != nil {
		return err
	}
	o.stages = stages
	o.factor = factor
	return nil
}

// Latency returns the base-rate group delay of an upsample/downsample round
// trip, rounded to the nearest sample. It depends only on the kernel length
// and factor, so it is stable across processing and resets.
func (o *Oversampler[F]) Latency() int {
	return int(math.Round(o.LatencyExact()))
}

// LatencyExact returns the round-trip group delay in base-rate samples
// without rounding. Factors above 2 have fractional group delay because
// each deeper stage contributes at a rate the base grid cannot express.
func (o *Oversampler[F]) LatencyExact() float64 {
	total := 0.0
	rate := 1.0
	for _, stage := range o.stages {
		rate *= 2
		total += float64(stage.RoundTripDelay()) / rate
	}
	return total
}

// Reset zeroes all stage state in both directions.
func (o *Oversampler[F]) Reset() {
	for _, stage := range o.stages {
		stage.Reset()
	}
}
