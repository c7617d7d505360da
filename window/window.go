// Package window generates the window functions and halfband filter kernels
// used by the oversampling cascade.
//
// All generators return float64 slices. The composite halfband designer
// multiplies a half-rate sinc by Hann and Kaiser windows and normalizes the
// result to unit DC gain, which places exactly 0.5 at the center tap and
// zeros at every other odd-offset tap.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/jsquie/jdsp/internal/mathutil"
)

// Design constraints for halfband kernels.
const (
	// Minimum halfband kernel length. Below this the polyphase branch
	// degenerates to fewer than four taps.
	MinHalfbandTaps = 7

	// DefaultHalfbandTaps is the kernel length used by the default
	// oversampler design.
	DefaultHalfbandTaps = 63

	// DefaultKaiserBeta is the Kaiser β for the default design,
	// giving roughly 100 dB of stopband attenuation.
	DefaultKaiserBeta = 10.0

	// halfbandCutoff is the normalized cutoff of the prototype sinc.
	// Halfband filters always cut at a quarter of the doubled rate.
	halfbandCutoff = 0.5
)

// ErrInvalidSize indicates a window or kernel size that cannot be generated.
var ErrInvalidSize = errors.New("invalid window size")

// Sinc returns size samples of the normalized sinc function sin(πxc)/(πxc),
// evaluated at integer offsets centered on zero. For odd sizes the center
// sample is exactly 1.
func Sinc(size int, cutoff float64) []float64 {
	half := size / 2
	out := make([]float64, 0, size)

	for i := -half; i <= half; i++ {
		if i == 0 {
			out = append(out, 1.0)
			continue
		}
		x := math.Pi * float64(i) * cutoff
		out = append(out, math.Sin(x)/x)
	}

	return out
}

// Hann returns a size-sample Hann window: sin²(πn/(size−1)).
// Endpoints are zero.
func Hann(size int) []float64 {
	out := make([]float64, size)
	denom := float64(size - 1)

	for n := range size {
		s := math.Sin(math.Pi * float64(n) / denom)
		out[n] = s * s
	}

	return out
}

// Kaiser returns a size-sample Kaiser window with shape parameter beta.
// Larger β narrows the window and deepens the stopband of filters
// designed with it.
func Kaiser(size int, beta float64) []float64 {
	oneOverDenom := 1.0 / mathutil.BesselI0(beta)
	nRecip := 1.0 / float64(size-1)
	out := make([]float64, size)

	for n := range size {
		k := 2.0*float64(n)*nRecip - 1.0
		arg := math.Sqrt(1.0 - k*k)
		out[n] = mathutil.BesselI0(beta*arg) * oneOverDenom
	}

	return out
}

// HalfbandTaps designs a halfband lowpass kernel of the given odd length:
// a half-rate sinc shaped by Hann and Kaiser windows, normalized so the
// taps sum to exactly 1. The normalized kernel has 0.5 at its center and
// zeros at the remaining odd-offset taps, which is what the polyphase
// stage decomposition relies on.
func HalfbandTaps(length int, beta float64) ([]float64, error) {
	if length < MinHalfbandTaps {
		return nil, fmt.Errorf("%w: halfband kernel needs at least %d taps, got %d", ErrInvalidSize, MinHalfbandTaps, length)
	}
	if length%2 == 0 {
		return nil, fmt.Errorf("%w: halfband kernel length must be odd, got %d", ErrInvalidSize, length)
	}

	taps := Sinc(length, halfbandCutoff)
	hann := Hann(length)
	kaiser := Kaiser(length, beta)

	for i := range taps {
		taps[i] *= hann[i] * kaiser[i]
	}

	// Normalize to unit DC gain
	sum := f64.Sum(taps)
	f64.Scale(taps, taps, 1.0/sum)

	return taps, nil
}

// Default returns the standard oversampling kernel: 63 taps, β = 10.
func Default() []float64 {
	taps, err := HalfbandTaps(DefaultHalfbandTaps, DefaultKaiserBeta)
	if err != nil {
		// Unreachable: the default parameters always validate.
		panic(err)
	}
	return taps
}
