package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates missing or malformed caller input, such as an
	// ingredient-constrained recipe mode with an empty pantry.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoExtractableText indicates the uploaded PDF yielded no text at all.
	ErrNoExtractableText = errors.New("no text extracted from the invoice")
)

// MalformedOutputError indicates a model response could not be normalized into
// the shape a pipeline stage expects. Raw carries the offending text verbatim.
type MalformedOutputError struct {
	Stage string
	Raw   string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("stage %q produced malformed output: %.200s", e.Stage, e.Raw)
}

// UpstreamError indicates a completion, search, or store call failed at the
// transport level.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
