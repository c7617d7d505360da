package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsquie/jdsp/internal/mathutil"
)

// ErrInvalidShaper indicates an unknown shaper style or antialiasing order.
var ErrInvalidShaper = errors.New("invalid shaper configuration")

// Style selects the memoryless nonlinearity.
type Style int

const (
	// StyleHardClip clamps to [-1, 1].
	StyleHardClip Style = iota

	// StyleTanh applies the hyperbolic tangent.
	StyleTanh

	// StyleSoftClip applies a symmetric 1/(x+1)² knee that saturates at ±1.
	StyleSoftClip
)

// Order selects how many antiderivative levels the recurrence uses.
type Order int

const (
	// OrderFirst differences the first antiderivative.
	OrderFirst Order = iota

	// OrderSecond differences the second antiderivative for stronger
	// alias suppression at higher cost and an extra half sample of delay.
	OrderSecond
)

// DefaultEpsilon is the ill-conditioning threshold below which the divided
// differences switch to midpoint evaluation.
const DefaultEpsilon = 1e-5

const (
	oneSixth   = 1.0 / 6.0
	piSqOver24 = math.Pi * math.Pi / 24.0
)

// shaperFuncs bundles a nonlinearity with its first and second
// antiderivatives, all normalized so AD1(0) = AD2(0) = 0.
type shaperFuncs struct {
	f   func(float64) float64
	ad1 func(float64) float64
	ad2 func(float64) float64
}

// ADAA runs the antiderivative-antialiasing recurrence around one shaper.
// All state is float64 regardless of the stream sample type; callers widen
// on the way in and narrow on the way out.
//
// First order output is (AD1(x) − AD1(x₁)) / (x − x₁); second order uses the
// divided-difference recurrence over AD2. Whenever a difference falls under
// the epsilon threshold the recurrence evaluates the shaper (or AD1) at the
// midpoint instead, which keeps the output finite and continuous. The
// fallback is silent: it is expected behavior on steady inputs, not a fault.
type ADAA struct {
	style Style
	order Order
	eps   float64
	funcs shaperFuncs

	x1    float64
	x2    float64
	d2    float64
	ad1x1 float64
	ad2x1 float64
}

// NewADAA creates a shaper kernel. An eps of zero selects DefaultEpsilon.
func NewADAA(style Style, order Order, eps float64) (*ADAA, error) {
	if order != OrderFirst && order != OrderSecond {
		return nil, fmt.Errorf("%w: unknown order %d", ErrInvalidShaper, order)
	}
	if eps < 0 {
		return nil, fmt.Errorf("%w: negative epsilon %g", ErrInvalidShaper, eps)
	}
	if eps == 0 {
		eps = DefaultEpsilon
	}

	var funcs shaperFuncs
	switch style {
	case StyleHardClip:
		funcs = shaperFuncs{f: hardClip, ad1: hardClipAD1, ad2: hardClipAD2}
	case StyleTanh:
		funcs = shaperFuncs{f: math.Tanh, ad1: logCosh, ad2: tanhAD2}
	case StyleSoftClip:
		funcs = shaperFuncs{f: softClip, ad1: softClipAD1, ad2: softClipAD2}
	default:
		return nil, fmt.Errorf("%w: unknown style %d", ErrInvalidShaper, style)
	}

	a := &ADAA{style: style, order: order, eps: eps, funcs: funcs}
	a.Reset()
	return a, nil
}

// Style returns the configured nonlinearity.
func (a *ADAA) Style() Style { return a.style }

// Order returns the configured antialiasing order.
func (a *ADAA) Order() Order { return a.order }

// Process shapes one sample.
func (a *ADAA) Process(x float64) float64 {
	if a.order == OrderFirst {
		return a.processFirst(x)
	}
	return a.processSecond(x)
}

func (a *ADAA) processFirst(x float64) float64 {
	diff := x - a.x1
	ad1x0 := a.funcs.ad1(x)

	var out float64
	if math.Abs(diff) < a.eps {
		out = a.funcs.f(0.5 * (x + a.x1))
	} else {
		out = (ad1x0 - a.ad1x1) / diff
	}

	a.x1 = x
	a.ad1x1 = ad1x0
	return out
}

func (a *ADAA) processSecond(x float64) float64 {
	ad2x0 := a.funcs.ad2(x)

	var d1 float64
	if math.Abs(x-a.x1) < a.eps {
		d1 = a.funcs.ad1(0.5 * (x + a.x1))
	} else {
		d1 = (ad2x0 - a.ad2x1) / (x - a.x1)
	}

	var out float64
	if math.Abs(x-a.x2) < a.eps {
		xbar := 0.5 * (x + a.x2)
		delta := xbar - a.x1
		if math.Abs(delta) < a.eps {
			out = a.funcs.f(0.5 * (xbar + a.x1))
		} else {
			out = (2.0 / delta) * (a.funcs.ad1(xbar) + (a.ad2x1-a.funcs.ad2(xbar))/delta)
		}
	} else {
		out = (2.0 / (x - a.x2)) * (d1 - a.d2)
	}

	a.d2 = d1
	a.x2 = a.x1
	a.x1 = x
	a.ad2x1 = ad2x0
	return out
}

// Reset primes the recurrence as if silence preceded. The antiderivative
// seeds must be the functions' own values at zero: the soft clip AD1 carries
// a constant offset, and seeding it with a literal zero makes the first
// samples after a reset blow up.
func (a *ADAA) Reset() {
	a.x1 = 0
	a.x2 = 0
	a.ad1x1 = a.funcs.ad1(0)
	a.ad2x1 = a.funcs.ad2(0)
	a.d2 = a.funcs.ad1(0)
}

// hardClip clamps to [-1, 1].
func hardClip(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

func hardClipAD1(x float64) float64 {
	ax := math.Abs(x)
	clip := math.Max(ax-1, 0)
	return 0.5 * (x*x - clip*clip)
}

func hardClipAD2(x float64) float64 {
	if math.Abs(x) <= 1 {
		return x * x * x * oneSixth
	}
	return math.Copysign(x*x*0.5+oneSixth, x) - x*0.5
}

// logCosh is ln(cosh(x)), the antiderivative of tanh, computed as
// |x| + log1p(e^(−2|x|)) − ln 2 so large inputs cannot overflow cosh.
func logCosh(x float64) float64 {
	ax := math.Abs(x)
	return ax + math.Log1p(math.Exp(-2*ax)) - math.Ln2
}

// tanhAD2 is the second antiderivative of tanh, expressed through the real
// dilogarithm. Evaluated at |x| and mirrored, since the function is odd and
// the e^(−2x) form overflows for large negative arguments.
func tanhAD2(x float64) float64 {
	ax := math.Abs(x)
	e := math.Exp(-2 * ax)
	v := 0.5*(mathutil.Li2(-e)-ax*(ax+2*math.Log1p(e)-2*logCosh(ax))) + piSqOver24
	return math.Copysign(v, x)
}

// softClip is the x² soft knee: 1 − 1/(x+1)² for x ≥ 0, odd-mirrored.
func softClip(x float64) float64 {
	if x >= 0 {
		d := x + 1
		return 1 - 1/(d*d)
	}
	d := 1 - x
	return 1/(d*d) - 1
}

func softClipAD1(x float64) float64 {
	if x >= 0 {
		return 1/(x+1) + x
	}
	return 1/(1-x) - x
}

func softClipAD2(x float64) float64 {
	if x >= 0 {
		return math.Log(x+1) + 0.5*x*x
	}
	return -math.Log(1-x) - 0.5*x*x
}
