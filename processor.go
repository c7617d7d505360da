package jdsp

import (
	"fmt"

	"github.com/jsquie/jdsp/internal/simdops"
)

// Config configures a Processor.
type Config struct {
	// Factor is the oversampling factor: 2, 4, 8 or 16.
	Factor int

	// Shaper configures the nonlinearity applied at the raised rate.
	Shaper ShaperConfig

	// Taps optionally replaces the default halfband kernel shared by all
	// stages. Nil selects the standard 63-tap design.
	Taps []float64

	// BlockDC enables a DC blocker after the downsampler. Asymmetric
	// shaping styles generate offsets this removes.
	BlockDC bool
}

// DefaultConfig returns a 2× hard clip processor configuration.
func DefaultConfig() Config {
	return Config{
		Factor: MinFactor,
		Shaper: ShaperConfig{Style: StyleHardClip, Order: OrderFirst},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !validFactor(c.Factor) {
		return fmt.Errorf("%w: factor must be 2, 4, 8 or 16, got %d", ErrInvalidFactor, c.Factor)
	}
	return c.Shaper.Validate()
}

// Processor is the per-channel processing chain: upsample, shape each
// sample at the raised rate, downsample, and optionally block DC. It
// processes one sample at a time with no allocation, so it is safe to call
// from a real-time audio thread.
//
// A Processor owns per-channel filter state. For multichannel audio create
// one Processor per channel, or use NewMultiChannel.
type Processor[F simdops.Float] struct {
	os      *Oversampler[F]
	shaper  *Waveshaper[F]
	dc      *DCBlocker[F]
	blockDC bool
}

// NewProcessor creates a processor from the configuration.
func NewProcessor[F simdops.Float](cfg Config) (*Processor[F], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var os *Oversampler[F]
	var err error
	if cfg.Taps != nil {
		os, err = NewOversamplerTaps[F](cfg.Factor, cfg.Taps)
	} else {
		os, err = NewOversampler[F](cfg.Factor)
	}
	if err != nil {
		return nil, err
	}

	shaper, err := NewWaveshaper[F](cfg.Shaper)
	if err != nil {
		return nil, err
	}

	return &Processor[F]{
		os:      os,
		shaper:  shaper,
		dc:      NewDCBlocker[F](),
		blockDC: cfg.BlockDC,
	}, nil
}

// NewMultiChannel creates one independent processor per channel from the
// same configuration. The processors share the kernel design but none of
// the filter state.
func NewMultiChannel[F simdops.Float](cfg Config, channels int) ([]*Processor[F], error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be at least 1, got %d", ErrInvalidConfig, channels)
	}

	procs := make([]*Processor[F], channels)
	for ch := range procs {
		p, err := NewProcessor[F](cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
		procs[ch] = p
	}
	return procs, nil
}

// Process runs one base-rate sample through the chain and returns one
// base-rate sample, delayed by Latency.
func (p *Processor[F]) Process(x F) F {
	block := p.os.Upsample(x)
	for i, v := range block {
		block[i] = p.shaper.Process(v)
	}
	out := p.os.Downsample(block)

	if p.blockDC {
		out = p.dc.Process(out)
	}
	return out
}

// ProcessBlock runs a buffer through the chain in place.
func (p *Processor[F]) ProcessBlock(buf []F) {
	for i, v := range buf {
		buf[i] = p.Process(v)
	}
}

// Latency returns the chain's base-rate latency in samples.
func (p *Processor[F]) Latency() int {
	return p.os.Latency()
}

// Factor returns the current oversampling factor.
func (p *Processor[F]) Factor() int {
	return p.os.Factor()
}

// SetFactor rebuilds the oversampling cascade. On error the processor is
// unchanged. On success the oversampler state restarts from zero; the
// shaper state is left alone.
func (p *Processor[F]) SetFactor(factor int) error {
	return p.os.SetFactor(factor)
}

// SetShape requests a new shaper style and order, crossfaded in.
func (p *Processor[F]) SetShape(style Style, order Order) error {
	return p.shaper.SetShape(style, order)
}

// Reset clears all filter and shaper state.
func (p *Processor[F]) Reset() {
	p.os.Reset()
	p.shaper.Reset()
	p.dc.Reset()
}
