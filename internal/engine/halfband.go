package engine

import (
	"errors"
	"fmt"

	"github.com/jsquie/jdsp/internal/simdops"
)

// ErrInvalidTapLength indicates a filter kernel that cannot drive a
// polyphase halfband stage.
var ErrInvalidTapLength = errors.New("invalid filter tap length")

// Minimum halfband kernel length a stage accepts. Shorter kernels leave the
// polyphase branch with fewer taps than the SIMD dot product needs to be
// worthwhile, and a 3-tap halfband is just the center tap.
const minStageKernelTaps = 7

// HalfbandStage is one 2× rate conversion step, built as the two-branch
// polyphase decomposition of an odd-length halfband lowpass kernel.
//
// A halfband kernel has zeros at every odd offset from the center except the
// center itself, so one polyphase branch collapses to a pure delay scaled by
// the center tap. Per input sample the stage does one dot product over the
// surviving branch taps plus one delayed multiply, instead of a full-length
// convolution at the doubled rate.
//
// Upsampling and downsampling hold separate ring and delay state, so a
// single stage instance can serve both directions of a round trip.
type HalfbandStage[F simdops.Float] struct {
	branch   []F // even-index kernel taps, newest-first
	upBranch []F // branch scaled by 2 for interpolation gain
	center   F
	upCenter F

	upConv    *ConvRing[F]
	upDelay   *DelayLine[F]
	downConv  *ConvRing[F]
	downDelay *DelayLine[F]

	kernelLen int
}

// NewHalfbandStage builds a stage from an odd-length halfband kernel,
// typically produced by window.HalfbandTaps. Kernels shorter than 7 taps or
// of even length are rejected.
func NewHalfbandStage[F simdops.Float](kernel []float64) (*HalfbandStage[F], error) {
	n := len(kernel)
	if n < minStageKernelTaps {
		return nil, fmt.Errorf("%w: halfband stage needs at least %d taps, got %d", ErrInvalidTapLength, minStageKernelTaps, n)
	}
	if n%2 == 0 {
		return nil, fmt.Errorf("%w: halfband stage needs an odd tap count, got %d", ErrInvalidTapLength, n)
	}

	branchLen := (n + 1) / 2

	// The surviving branch is the even-index kernel taps, stored reversed
	// so taps[0] lines up with the newest ring sample.
	branch := make([]F, branchLen)
	for i := range branchLen {
		branch[i] = F(kernel[2*(branchLen-1-i)])
	}

	ops := simdops.For[F]()
	upBranch := make([]F, branchLen)
	ops.Scale(upBranch, branch, 2)

	center := F(kernel[n/2])

	return &HalfbandStage[F]{
		branch:    branch,
		upBranch:  upBranch,
		center:    center,
		upCenter:  2 * center,
		upConv:    NewConvRing[F](branchLen),
		upDelay:   NewDelayLine[F](branchLen/2 - 1),
		downConv:  NewConvRing[F](branchLen),
		downDelay: NewDelayLine[F](branchLen / 2),
		kernelLen: n,
	}, nil
}

// Upsample produces the even- and odd-phase outputs of the doubled rate for
// one input sample. The even phase is the branch convolution; the odd phase
// is the delayed input scaled by the center tap. Both carry the factor-2
// interpolation gain.
func (s *HalfbandStage[F]) Upsample(x F) (even, odd F) {
	s.upConv.Push(x)
	even = s.upConv.Convolve(s.upBranch)
	odd = s.upCenter * s.upDelay.Process(x)
	return even, odd
}

// Downsample folds one even/odd sample pair from the doubled rate into a
// single output sample: the even phase feeds the branch convolution, the odd
// phase takes the scaled delay path, and the two sums reassemble the full
// halfband response.
func (s *HalfbandStage[F]) Downsample(even, odd F) F {
	s.downConv.Push(even)
	return s.downConv.Convolve(s.branch) + s.downDelay.Process(odd*s.center)
}

// KernelLen returns the length of the designing kernel.
func (s *HalfbandStage[F]) KernelLen() int {
	return s.kernelLen
}

// RoundTripDelay returns the group delay of an upsample plus downsample pass
// through this stage, in samples of the stage's doubled rate.
func (s *HalfbandStage[F]) RoundTripDelay() int {
	return s.kernelLen - 1
}

// Reset zeroes all convolution and delay state in both directions.
func (s *HalfbandStage[F]) Reset() {
	s.upConv.Reset()
	s.upDelay.Reset()
	s.downConv.Reset()
	s.downDelay.Reset()
}
