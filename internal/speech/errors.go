package speech

import "errors"

// ErrUnavailable signals that no speech recognizer is present on this
// system. Callers treat it as a cue to stay with text input.
var ErrUnavailable = errors.New("speech recognition is not available")
