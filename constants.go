package jdsp

// Oversampling factor limits.
const (
	// MinFactor is the smallest supported oversampling factor.
	MinFactor = 2

	// MaxFactor is the largest supported oversampling factor (four
	// cascaded halfband stages).
	MaxFactor = 16
)

// Shaper defaults.
const (
	// DefaultFadeLength is the crossfade length in samples applied when
	// the waveshaper changes style or order.
	DefaultFadeLength = 5000
)

// DC blocker defaults.
const (
	// DefaultDCBlockerR is the pole radius of the DC blocking highpass.
	// Closer to 1 means a lower corner frequency and slower settling.
	DefaultDCBlockerR = 0.995
)

// Biquad defaults and section tuning.
const (
	// firstOrderQ is the Butterworth quality factor for a single section.
	firstOrderQ = 0.7071067811865476

	// Cascaded-section quality factors for the steeper filter order.
	// The spread keeps the combined response maximally flat.
	secondOrderQLow  = 0.54
	secondOrderQHigh = 1.31

	// biquadSections is the maximum section count of the cascade.
	biquadSections = 2
)
