package jdsp

import (
	"errors"

	"github.com/jsquie/jdsp/internal/engine"
)

// Common errors returned by the toolkit.
var (
	// ErrInvalidFactor indicates an oversampling factor outside {2, 4, 8, 16}.
	ErrInvalidFactor = errors.New("invalid oversampling factor")

	// ErrInvalidConfig indicates invalid processor or filter configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTapLength indicates a filter kernel that cannot drive a
	// polyphase halfband stage.
	ErrInvalidTapLength = engine.ErrInvalidTapLength

	// ErrInvalidShaper indicates an unknown shaper style or order.
	ErrInvalidShaper = engine.ErrInvalidShaper
)
