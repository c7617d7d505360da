package jdsp

import (
	"fmt"
	"math"

	"github.com/jsquie/jdsp/internal/simdops"
)

// FilterType selects the biquad response shape.
type FilterType int

const (
	// Lowpass passes frequencies below the cutoff.
	Lowpass FilterType = iota

	// Highpass passes frequencies above the cutoff.
	Highpass
)

// FilterOrder selects how many biquad sections the filter cascades.
type FilterOrder int

const (
	// FilterOrderFirst runs a single Butterworth section (12 dB/oct).
	FilterOrderFirst FilterOrder = iota

	// FilterOrderSecond cascades two sections with spread Q values for a
	// maximally flat combined response (24 dB/oct).
	FilterOrderSecond
)

// biquadCoefs holds one section's coefficients, already normalized by a0.
type biquadCoefs struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// BiquadFilter is a cascade of up to two RBJ-cookbook biquad sections in
// transposed direct form II. Coefficients regenerate in place on cutoff or
// type changes; no allocation happens after construction.
type BiquadFilter[F simdops.Float] struct {
	coefs  [biquadSections]biquadCoefs
	w1     [biquadSections]float64
	w2     [biquadSections]float64
	ftype  FilterType
	order  FilterOrder
	cutoff float64
	rate   float64
}

// NewBiquadFilter creates a filter for the given sample rate and cutoff.
func NewBiquadFilter[F simdops.Float](ftype FilterType, order FilterOrder, sampleRate, cutoff float64) (*BiquadFilter[F], error) {
	if ftype != Lowpass && ftype != Highpass {
		return nil, fmt.Errorf("%w: unknown filter type %d", ErrInvalidConfig, ftype)
	}
	if order != FilterOrderFirst && order != FilterOrderSecond {
		return nil, fmt.Errorf("%w: unknown filter order %d", ErrInvalidConfig, order)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %g", ErrInvalidConfig, sampleRate)
	}
	if cutoff <= 0 || cutoff >= sampleRate/2 {
		return nil, fmt.Errorf("%w: cutoff %g Hz outside (0, %g)", ErrInvalidConfig, cutoff, sampleRate/2)
	}

	f := &BiquadFilter[F]{ftype: ftype, order: order, cutoff: cutoff, rate: sampleRate}
	f.genCoefficients()
	return f, nil
}

// SetCutoff moves the cutoff frequency, regenerating coefficients in place.
// Filter state is preserved so sweeps stay click-free.
func (f *BiquadFilter[F]) SetCutoff(cutoff float64) error {
	if cutoff <= 0 || cutoff >= f.rate/2 {
		return fmt.Errorf("%w: cutoff %g Hz outside (0, %g)", ErrInvalidConfig, cutoff, f.rate/2)
	}
	f.cutoff = cutoff
	f.genCoefficients()
	return nil
}

// SetFilterType switches between lowpass and highpass, keeping state.
func (f *BiquadFilter[F]) SetFilterType(ftype FilterType) error {
	if ftype != Lowpass && ftype != Highpass {
		return fmt.Errorf("%w: unknown filter type %d", ErrInvalidConfig, ftype)
	}
	f.ftype = ftype
	f.genCoefficients()
	return nil
}

// Cutoff returns the current cutoff frequency in Hz.
func (f *BiquadFilter[F]) Cutoff() float64 {
	return f.cutoff
}

func (f *BiquadFilter[F]) genCoefficients() {
	switch f.order {
	case FilterOrderFirst:
		f.coefs[0] = section(f.ftype, f.cutoff, f.rate, firstOrderQ)
		f.coefs[1] = biquadCoefs{}
	case FilterOrderSecond:
		f.coefs[0] = section(f.ftype, f.cutoff, f.rate, secondOrderQLow)
		f.coefs[1] = section(f.ftype, f.cutoff, f.rate, secondOrderQHigh)
	}
}

// section computes one RBJ-cookbook biquad section normalized by a0.
func section(ftype FilterType, fc, fs, q float64) biquadCoefs {
	omega := 2 * math.Pi * fc / fs
	alpha := math.Sin(omega) / (2 * q)
	cosw := math.Cos(omega)
	a0 := 1 + alpha

	c := biquadCoefs{
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}

	switch ftype {
	case Lowpass:
		c.b0 = (1 - cosw) / 2 / a0
		c.b1 = (1 - cosw) / a0
		c.b2 = c.b0
	case Highpass:
		c.b0 = (1 + cosw) / 2 / a0
		c.b1 = -(1 + cosw) / a0
		c.b2 = c.b0
	}

	return c
}

func (f *BiquadFilter[F]) sections() int {
	if f.order == FilterOrderSecond {
		return biquadSections
	}
	return 1
}

// ProcessSample filters one sample through the section cascade.
func (f *BiquadFilter[F]) ProcessSample(sample F) F {
	x := float64(sample)
	for i := range f.sections() {
		c := f.coefs[i]
		y := c.b0*x + f.w1[i]
		f.w1[i] = c.b1*x - c.a1*y + f.w2[i]
		f.w2[i] = c.b2*x - c.a2*y
		x = y
	}
	return F(x)
}

// ProcessBlock filters a buffer in place.
func (f *BiquadFilter[F]) ProcessBlock(buf []F) {
	for i, v := range buf {
		buf[i] = f.ProcessSample(v)
	}
}

// Reset clears the section states.
func (f *BiquadFilter[F]) Reset() {
	f.w1 = [biquadSections]float64{}
	f.w2 = [biquadSections]float64{}
}
