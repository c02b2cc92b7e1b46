package quiz

import (
	"errors"
	"strconv"
	"time"

	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/store"
)

// ErrNotCompleted is returned when a history entry is requested for an
// attempt that has not reached PhaseCompleted.
var ErrNotCompleted = errors.New("attempt is not completed")

// HistoryEntry synthesizes the append-only record of a completed
// attempt. Abandoned attempts never produce one.
func (a *Attempt) HistoryEntry(feedback string) (store.HistoryEntry, error) {
	if a.Phase != PhaseCompleted {
		return store.HistoryEntry{}, ErrNotCompleted
	}

	entry := store.HistoryEntry{
		Date:       time.Now().UTC(),
		Score:      a.Score,
		Difficulty: string(a.Difficulty),
		Topic:      a.Topic,
		Answers:    make(map[string]string, len(a.Answers)),
		Feedback:   feedback,
	}

	for _, q := range a.Questions {
		entry.Questions = append(entry.Questions, questionRecord(q))
		if ans, ok := a.Answers[q.ID]; ok {
			entry.Answers[strconv.Itoa(q.ID)] = q.FormatAnswer(ans)
		}
	}

	return entry, nil
}

func questionRecord(q quizgen.Question) store.QuestionRecord {
	return store.QuestionRecord{
		ID:            q.ID,
		Type:          string(q.Type),
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectAnswer: q.CorrectDisplay(),
		Explanation:   q.Explanation,
	}
}
