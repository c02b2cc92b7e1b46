// Package speech defines the speech-to-text boundary for conversation
// practice. Recognition is optional: when no recognizer is available
// the caller falls back to typed input.
package speech

import "context"

// Result is a finished transcription.
type Result struct {
	// Text is the recognized utterance.
	Text string
	// Final reports whether the recognizer considers the utterance
	// complete. Interim results carry Final == false.
	Final bool
}

// Recognizer captures audio and streams transcriptions. Start begins a
// session and delivers results until Stop is called or ctx is done.
type Recognizer interface {
	// Available reports whether recognition can be started at all.
	Available() bool
	// Start begins recognition. Results arrive on the returned
	// channel, which is closed when the session ends.
	Start(ctx context.Context) (<-chan Result, error)
	// Stop ends the current session. Safe to call when no session is
	// running.
	Stop()
}

// Unavailable is the default Recognizer. It reports unavailability so
// the conversation screen keeps its text input path.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Start(ctx context.Context) (<-chan Result, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Stop() {}
