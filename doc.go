// Package jdsp provides real-time-safe oversampled waveshaping in pure Go.
//
// The core chain raises the sample rate through a cascade of polyphase
// halfband filters, applies an antiderivative-antialiased nonlinearity at
// the raised rate, and folds the signal back down through the same filters.
// Running the shaper oversampled pushes its aliasing products above the
// original Nyquist frequency, where the downsampling filters remove them.
//
// # Features
//
//   - 2×/4×/8×/16× oversampling via cascaded polyphase halfband stages
//   - First- and second-order antiderivative antialiasing (ADAA) around
//     hard clip, tanh, and soft clip nonlinearities
//   - Click-free crossfade when the shaper style or order changes
//   - Per-sample processing with zero allocation after construction,
//     suitable for real-time audio threads
//   - Optional SIMD acceleration (AVX2/SSE) via github.com/tphakala/simd
//   - Generic over float32 and float64 sample streams
//   - Supporting blocks: halfband kernel designer, RBJ biquad cascade,
//     DC blocker, linear and exponential envelopes
//
// # Quick Start
//
// For a complete per-channel chain:
//
//	cfg := jdsp.Config{
//	    Factor: 4,
//	    Shaper: jdsp.ShaperConfig{Style: jdsp.StyleTanh, Order: jdsp.OrderSecond},
//	}
//	proc, err := jdsp.NewProcessor[float32](cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := range buf {
//	    buf[i] = proc.Process(buf[i])
//	}
//
// The building blocks are also usable on their own. An [Oversampler] round
// trip with no shaping reproduces its input delayed by [Oversampler.Latency]
// samples:
//
//	os, _ := jdsp.NewOversampler[float64](2)
//	for _, x := range input {
//	    y := os.Downsample(os.Upsample(x))
//	    // y trails x by os.Latency() samples
//	}
//
// # Latency
//
// Each halfband stage contributes its group delay at its own rate, so total
// round-trip latency in base-rate samples is fixed by the kernel length and
// factor alone: 31 samples at 2× with the default kernel, approaching 62 as
// the factor grows. [Oversampler.Latency] reports it without processing.
//
// # Precision
//
// Filter state follows the stream type F, while the shaper recurrences
// always run in float64: divided differences of nearly equal
// antiderivatives lose too much precision in float32.
package jdsp
