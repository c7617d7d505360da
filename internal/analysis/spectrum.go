// Package analysis provides frequency-domain measurement helpers used by the
// filter analysis tool and the antialiasing tests. It is measurement code,
// not part of the processing path.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Floor applied when converting magnitudes to decibels, so silent bins
	// do not produce -Inf.
	dbFloor = -300.0

	// log10ToDB converts a log10 magnitude ratio to decibels.
	log10ToDB = 20.0
)

// MagnitudeSpectrum returns the magnitude of the real FFT of signal,
// zero-padded to fftSize. The result has fftSize/2 + 1 bins covering DC
// through Nyquist. fftSize is rounded up to a power of two.
func MagnitudeSpectrum(signal []float64, fftSize int) []float64 {
	size := 1
	for size < fftSize || size < len(signal) {
		size <<= 1
	}

	padded := make([]float64, size)
	copy(padded, signal)

	fft := fourier.NewFFT(size)
	coeffs := fft.Coefficients(nil, padded)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// ToDB converts magnitudes to decibels relative to ref, clamped at the
// silence floor.
func ToDB(mags []float64, ref float64) []float64 {
	out := make([]float64, len(mags))
	for i, m := range mags {
		if m <= 0 || ref <= 0 {
			out[i] = dbFloor
			continue
		}
		db := log10ToDB * math.Log10(m/ref)
		if db < dbFloor {
			db = dbFloor
		}
		out[i] = db
	}
	return out
}

// PeakBin returns the index of the largest magnitude bin.
func PeakBin(mags []float64) int {
	peak := 0
	for i, m := range mags {
		if m > mags[peak] {
			peak = i
		}
	}
	return peak
}

// BandPeak returns the largest magnitude over bins [lo, hi], clamped to the
// slice bounds.
func BandPeak(mags []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi >= len(mags) {
		hi = len(mags) - 1
	}
	peak := 0.0
	for i := lo; i <= hi; i++ {
		if mags[i] > peak {
			peak = mags[i]
		}
	}
	return peak
}

// FilterResponseDB returns the magnitude response of an FIR kernel in
// decibels relative to its DC response, evaluated on fftSize/2 + 1 bins.
func FilterResponseDB(taps []float64, fftSize int) []float64 {
	mags := MagnitudeSpectrum(taps, fftSize)
	return ToDB(mags, mags[0])
}
