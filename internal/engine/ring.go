// Package engine implements the sample-level DSP kernels behind the public
// API: convolution ring buffers, polyphase halfband stages, and the
// antiderivative-antialiased shaper recurrences.
package engine

import (
	"github.com/jsquie/jdsp/internal/simdops"
)

// ConvRing is a fixed-capacity circular buffer specialized for FIR
// convolution against its own recent history.
//
// The backing store is mirrored at twice the capacity: every push writes the
// sample at the cursor and again one capacity above it, so the newest
// `capacity` samples are always readable as one contiguous slice starting at
// the cursor. Convolve is then a single SIMD dot product with no wrap
// handling and no branches.
//
// The cursor decrements on push, which keeps the window ordered newest
// first: taps[0] multiplies the most recent sample.
type ConvRing[F simdops.Float] struct {
	data []F // length 2*capacity, mirrored halves
	mask int
	w    int
	ops  *simdops.Ops[F]
}

// NewConvRing creates a ring holding at least capacity samples of history.
// Capacity is rounded up to a power of two so index wrap is a bitmask.
func NewConvRing[F simdops.Float](capacity int) *ConvRing[F] {
	c := nextPowerOfTwo(capacity)
	return &ConvRing[F]{
		data: make([]F, 2*c),
		mask: c - 1,
		ops:  simdops.For[F](),
	}
}

// Push records one sample as the newest history entry.
func (r *ConvRing[F]) Push(x F) {
	r.w = (r.w - 1) & r.mask
	r.data[r.w] = x
	r.data[r.w+r.mask+1] = x
}

// Convolve computes the dot product of taps against the most recent
// len(taps) samples, newest first. len(taps) must not exceed Capacity;
// consumers enforce that once at construction so this path stays
// branch-free.
func (r *ConvRing[F]) Convolve(taps []F) F {
	return r.ops.DotProductUnsafe(r.data[r.w:r.w+len(taps)], taps)
}

// Capacity returns the usable history length.
func (r *ConvRing[F]) Capacity() int {
	return r.mask + 1
}

// Reset zeroes the history.
func (r *ConvRing[F]) Reset() {
	clear(r.data)
	r.w = 0
}

// DelayLine delays its input by a fixed whole number of samples.
type DelayLine[F simdops.Float] struct {
	data []F
	pos  int
}

// NewDelayLine creates a delay of the given length. A zero-length delay
// passes samples through unchanged.
func NewDelayLine[F simdops.Float](delay int) *DelayLine[F] {
	return &DelayLine[F]{data: make([]F, delay)}
}

// Process pushes one sample in and returns the sample from delay steps ago.
func (d *DelayLine[F]) Process(x F) F {
	if len(d.data) == 0 {
		return x
	}
	out := d.data[d.pos]
	d.data[d.pos] = x
	d.pos++
	if d.pos == len(d.data) {
		d.pos = 0
	}
	return out
}

// Len returns the delay length in samples.
func (d *DelayLine[F]) Len() int {
	return len(d.data)
}

// Reset zeroes the delay contents.
func (d *DelayLine[F]) Reset() {
	clear(d.data)
	d.pos = 0
}

// nextPowerOfTwo rounds n up to the nearest power of two, minimum 1.
func nextPowerOfTwo(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}
