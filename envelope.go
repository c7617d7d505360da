package jdsp

import (
	"math"
)

// Env is a finite gain ramp consumed one sample at a time.
type Env interface {
	// Consume advances the ramp and returns the next gain value.
	// Past the end it keeps returning the target.
	Consume() float64

	// TargetReached reports whether the ramp has arrived at its target.
	TargetReached() bool
}

// LinearEnvelope ramps from a start value to a target in equal steps.
// The waveshaper uses a pair of these for its crossfade on shape changes.
type LinearEnvelope struct {
	current float64
	target  float64
	step    float64
	steps   int
}

// NewLinearEnvelope creates a ramp covering start→end in the given number
// of steps. The first Consume already moves one step away from start, and
// the last lands exactly on end.
func NewLinearEnvelope(start, end float64, steps int) *LinearEnvelope {
	return &LinearEnvelope{
		current: start,
		target:  end,
		step:    (end - start) / float64(steps),
		steps:   steps,
	}
}

// FadeIn returns a 0→1 ramp of the given length.
func FadeIn(steps int) *LinearEnvelope {
	return NewLinearEnvelope(0, 1, steps)
}

// FadeOut returns a 1→0 ramp of the given length.
func FadeOut(steps int) *LinearEnvelope {
	return NewLinearEnvelope(1, 0, steps)
}

// Consume advances one step. The final step snaps to the target exactly so
// accumulated rounding cannot leave the ramp hovering next to it.
func (e *LinearEnvelope) Consume() float64 {
	if e.steps <= 0 {
		return e.target
	}
	e.steps--
	if e.steps == 0 {
		e.current = e.target
	} else {
		e.current += e.step
	}
	return e.current
}

// TargetReached reports whether the ramp has arrived at its target.
func (e *LinearEnvelope) TargetReached() bool {
	return e.current == e.target
}

// ExponentialEnvelope ramps from start to target along a power curve:
// higher curve values spend longer near the start and move fast at the end.
type ExponentialEnvelope struct {
	start    float64
	current  float64
	target   float64
	delta    float64
	curve    float64
	totSteps int
	currStep int
}

// NewExponentialEnvelope creates a power-curve ramp from start to end over
// the given number of steps. A curve of 1 is linear; 2 is quadratic ease-in.
func NewExponentialEnvelope(start, end float64, steps int, curve float64) *ExponentialEnvelope {
	return &ExponentialEnvelope{
		start:    start,
		current:  start,
		target:   end,
		delta:    end - start,
		curve:    curve,
		totSteps: steps,
	}
}

// Consume advances one step. The first value is the start itself; the ramp
// lands exactly on the target at the final step.
func (e *ExponentialEnvelope) Consume() float64 {
	if e.currStep <= e.totSteps {
		t := float64(e.currStep) / float64(e.totSteps-1)
		e.current = e.delta*math.Pow(t, e.curve) + e.start
		e.currStep++
		return e.current
	}
	return e.target
}

// TargetReached reports whether the ramp has arrived at its target.
func (e *ExponentialEnvelope) TargetReached() bool {
	return e.current == e.target
}
