package summary

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quiz"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/router"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

// feedbackMsg carries the async tutor feedback result. AttemptID guards
// against a late result for a previous attempt.
type feedbackMsg struct {
	AttemptID string
	Feedback  *quizgen.TutorFeedback
	Err       error
}

// SummaryScreen shows the result of a completed attempt, fetches tutor
// feedback and persists the outcome.
type SummaryScreen struct {
	attempt   *quiz.Attempt
	generator quizgen.Generator
	store     *store.Store
	userID    string

	feedback    *quizgen.TutorFeedback
	feedbackErr error
	waiting     bool

	// historyID is the persisted row for this attempt, written the
	// moment the summary opens. Zero means the write failed.
	historyID int64

	unlocked progression.Difficulty
	newTier  bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary screen for a completed attempt.
func New(attempt *quiz.Attempt, generator quizgen.Generator, st *store.Store, userID string) *SummaryScreen {
	return &SummaryScreen{
		attempt:   attempt,
		generator: generator,
		store:     st,
		userID:    userID,
		waiting:   true,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	s.applyProgression()
	s.persistHistory()
	return s.fetchFeedback()
}

func (s *SummaryScreen) Title() string {
	return "Kết quả"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter/Esc", Description: "Về trang chủ"}}
}

// applyProgression evaluates the unlock policy against the attempt
// score and persists a tier change.
func (s *SummaryScreen) applyProgression() {
	ctx := context.Background()
	a := s.attempt

	current, err := s.store.Unlocks().Get(ctx, s.userID, a.Grade, a.Subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: read unlock progress: %v\n", err)
		return
	}

	progress := progression.Progress{}
	if current != "" {
		progress = progression.Progress{a.Grade: {a.Subject: progression.Difficulty(current)}}
	}

	updated, unlocked, changed := progression.Apply(progress, a.Grade, a.Subject, a.Difficulty, a.Score)
	s.unlocked = updated.Unlocked(a.Grade, a.Subject)
	s.newTier = changed

	if changed {
		if err := s.store.Unlocks().Set(ctx, s.userID, a.Grade, a.Subject, string(unlocked)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: save unlock progress: %v\n", err)
		}
	}
}

// fetchFeedback requests tutor feedback asynchronously. One request per
// summary; a perfect score resolves without a service call.
func (s *SummaryScreen) fetchFeedback() tea.Cmd {
	attemptID := s.attempt.ID
	summary := s.attempt.Summary()
	gen := s.generator

	return func() tea.Msg {
		fb, err := gen.Feedback(context.Background(), summary)
		return feedbackMsg{AttemptID: attemptID, Feedback: fb, Err: err}
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackMsg:
		if msg.AttemptID != s.attempt.ID {
			return s, nil
		}
		s.waiting = false
		s.feedback = msg.Feedback
		s.feedbackErr = msg.Err
		s.backfillFeedback()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// persistHistory appends the attempt record as soon as the summary
// opens, before feedback resolves. Leaving the screen early must not
// lose the completed attempt.
func (s *SummaryScreen) persistHistory() {
	entry, err := s.attempt.HistoryEntry("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: build history entry: %v\n", err)
		return
	}

	a := s.attempt
	id, err := s.store.History().Append(context.Background(), s.userID, a.Grade, a.Subject, entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: save history: %v\n", err)
		return
	}
	s.historyID = id
}

// backfillFeedback writes resolved feedback onto the stored entry.
func (s *SummaryScreen) backfillFeedback() {
	if s.historyID == 0 || s.feedback == nil {
		return
	}
	if err := s.store.History().SetFeedback(context.Background(), s.historyID, s.feedback.Content); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save feedback: %v\n", err)
	}
}

func (s *SummaryScreen) View(width, height int) string {
	a := s.attempt

	correct := 0
	for _, ok := range a.Correct {
		if ok {
			correct++
		}
	}

	scoreStyle := theme.Incorrect
	if a.Score >= progression.PassingScore {
		scoreStyle = theme.Correct
	}

	body := theme.Title.Render("Hoàn thành!") + "\n\n" +
		scoreStyle.Render(fmt.Sprintf("Điểm: %d/100", a.Score)) + "\n" +
		theme.Body.Render(fmt.Sprintf("Đúng %d/%d câu · %s · %s", correct, len(a.Questions), a.Topic, a.Difficulty)) + "\n\n"

	if s.newTier {
		body += theme.Correct.Render(fmt.Sprintf("Đã mở khóa độ khó: %s", s.unlocked)) + "\n\n"
	}

	switch {
	case s.waiting:
		body += theme.Hint.Render("Đang nhận xét bài làm...")
	case s.feedbackErr != nil:
		body += theme.Hint.Render("Không nhận được nhận xét: " + s.feedbackErr.Error())
	case s.feedback != nil:
		body += theme.Selected.Render(s.feedback.Title) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-8, 70)).Render(s.feedback.Content)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
