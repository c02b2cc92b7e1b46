package session

import (
	"github.com/minhvu/hoctot/internal/quizgen"
)

// quizReadyMsg is sent when quiz generation finishes. RequestID ties
// the result to the generation request that produced it so a stale
// result can be discarded.
type quizReadyMsg struct {
	RequestID string
	Questions []quizgen.Question
	Err       error
}

// attemptDoneMsg is sent when the attempt reaches its terminal phase
// and the summary should take over.
type attemptDoneMsg struct{}
