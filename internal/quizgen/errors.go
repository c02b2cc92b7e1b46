package quizgen

import "fmt"

// ErrGeneration indicates content generation failed: the upstream call
// errored, returned nothing, or returned a payload that does not match
// the expected schema. Malformed entries are never repaired into
// defaults; the whole generation fails and the caller decides whether
// to re-invoke.
type ErrGeneration struct {
	Reason string
	Err    error
}

func (e *ErrGeneration) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return "generation failed: " + e.Reason
}

func (e *ErrGeneration) Unwrap() error { return e.Err }

// ErrBadRequest indicates the generation request itself was invalid.
// Detected locally, before any network call.
type ErrBadRequest struct {
	Reason string
}

func (e *ErrBadRequest) Error() string {
	return "invalid generation request: " + e.Reason
}
