package jdsp

import (
	"fmt"

	"github.com/jsquie/jdsp/internal/engine"
	"github.com/jsquie/jdsp/internal/simdops"
)

// Style selects the waveshaper nonlinearity.
type Style int

const (
	// StyleHardClip clamps to [-1, 1].
	StyleHardClip Style = iota

	// StyleTanh applies the hyperbolic tangent.
	StyleTanh

	// StyleSoftClipX2 applies a symmetric 1/(x+1)² knee that saturates at ±1.
	StyleSoftClipX2
)

// String returns the display name of the style.
func (s Style) String() string {
	switch s {
	case StyleHardClip:
		return "hard clip"
	case StyleTanh:
		return "tanh"
	case StyleSoftClipX2:
		return "soft clip x2"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// Order selects the antiderivative antialiasing order.
type Order int

const (
	// OrderFirst differences the first antiderivative.
	OrderFirst Order = iota

	// OrderSecond differences the second antiderivative for stronger alias
	// suppression at higher cost and an extra half sample of delay.
	OrderSecond
)

// String returns the display name of the order.
func (o Order) String() string {
	switch o {
	case OrderFirst:
		return "first order"
	case OrderSecond:
		return "second order"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// ShaperConfig configures a Waveshaper.
type ShaperConfig struct {
	// Style is the nonlinearity to apply.
	Style Style

	// Order is the antialiasing order.
	Order Order

	// Epsilon is the ill-conditioning threshold for the divided
	// differences. Zero selects the default of 1e-5.
	Epsilon float64

	// FadeLength is the crossfade length in samples used when the shape
	// changes mid-stream. Zero selects DefaultFadeLength.
	FadeLength int
}

// Validate checks the configuration.
func (c *ShaperConfig) Validate() error {
	if c.Style < StyleHardClip || c.Style > StyleSoftClipX2 {
		return fmt.Errorf("%w: unknown style %d", ErrInvalidShaper, int(c.Style))
	}
	if c.Order != OrderFirst && c.Order != OrderSecond {
		return fmt.Errorf("%w: unknown order %d", ErrInvalidShaper, int(c.Order))
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: negative epsilon %g", ErrInvalidShaper, c.Epsilon)
	}
	if c.FadeLength < 0 {
		return fmt.Errorf("%w: negative fade length %d", ErrInvalidShaper, c.FadeLength)
	}
	return nil
}

// Waveshaper applies an antiderivative-antialiased nonlinearity, one sample
// at a time. Changing the style or order mid-stream does not switch
// abruptly: the old shaper fades out over the fade length, the recurrence
// state swaps while the output is silent, and the new shaper fades back in.
//
// Internal arithmetic is float64 regardless of F.
type Waveshaper[F simdops.Float] struct {
	cfg  ShaperConfig
	proc *engine.ADAA

	pending *engine.ADAA
	fadeOut *LinearEnvelope
	fadeIn  *LinearEnvelope
}

// NewWaveshaper creates a shaper. A freshly constructed shaper runs at
// unity gain immediately, with no fade-in.
func NewWaveshaper[F simdops.Float](cfg ShaperConfig) (*Waveshaper[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FadeLength == 0 {
		cfg.FadeLength = DefaultFadeLength
	}

	proc, err := newADAA(cfg)
	if err != nil {
		return nil, err
	}

	return &Waveshaper[F]{cfg: cfg, proc: proc}, nil
}

func newADAA(cfg ShaperConfig) (*engine.ADAA, error) {
	style, err := engineStyle(cfg.Style)
	if err != nil {
		return nil, err
	}
	order := engine.OrderFirst
	if cfg.Order == OrderSecond {
		order = engine.OrderSecond
	}
	return engine.NewADAA(style, order, cfg.Epsilon)
}

func engineStyle(s Style) (engine.Style, error) {
	switch s {
	case StyleHardClip:
		return engine.StyleHardClip, nil
	case StyleTanh:
		return engine.StyleTanh, nil
	case StyleSoftClipX2:
		return engine.StyleSoftClip, nil
	}
	return 0, fmt.Errorf("%w: unknown style %d", ErrInvalidShaper, int(s))
}

// Style returns the target style, including one still fading in.
func (w *Waveshaper[F]) Style() Style {
	return w.cfg.Style
}

// Order returns the target order, including one still fading in.
func (w *Waveshaper[F]) Order() Order {
	return w.cfg.Order
}

// SetShape requests a new style and order. If they differ from the current
// shape the change is staged behind a fade-out; on error nothing changes.
func (w *Waveshaper[F]) SetShape(style Style, order Order) error {
	if style == w.cfg.Style && order == w.cfg.Order {
		return nil
	}

	next := w.cfg
	next.Style = style
	next.Order = order
	if err := next.Validate(); err != nil {
		return err
	}

	pending, err := newADAA(next)
	if err != nil {
		return err
	}

	w.cfg = next
	w.pending = pending
	w.fadeOut = FadeOut(w.cfg.FadeLength)
	w.fadeIn = nil
	return nil
}

// Process shapes one sample.
func (w *Waveshaper[F]) Process(x F) F {
	out := w.proc.Process(float64(x))

	if w.fadeOut != nil {
		out *= w.fadeOut.Consume()
		if w.fadeOut.TargetReached() {
			w.proc = w.pending
			w.pending = nil
			w.fadeOut = nil
			w.fadeIn = FadeIn(w.cfg.FadeLength)
		}
	}

	if w.fadeIn != nil {
		out *= w.fadeIn.Consume()
		if w.fadeIn.TargetReached() {
			w.fadeIn = nil
		}
	}

	return F(out)
}

// Fading reports whether a shape crossfade is in progress.
func (w *Waveshaper[F]) Fading() bool {
	return w.fadeOut != nil || w.fadeIn != nil
}

// Reset clears the recurrence state and cancels any crossfade, keeping the
// most recently requested shape.
func (w *Waveshaper[F]) Reset() {
	if w.pending != nil {
		w.proc = w.pending
		w.pending = nil
	}
	w.fadeOut = nil
	w.fadeIn = nil
	w.proc.Reset()
}
