package session

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quiz"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/router"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/screens/summary"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/ui/components"
	"github.com/minhvu/hoctot/internal/ui/layout"
)

// defaultQuestionCount is how many questions a TUI quiz requests.
const defaultQuestionCount = 10

type step int

const (
	stepTopic step = iota
	stepDifficulty
	stepGenerating
	stepPlaying
	stepQuitConfirm
)

// SessionScreen runs one quiz attempt: setup, generation, play.
type SessionScreen struct {
	generator quizgen.Generator
	store     *store.Store
	userID    string
	grade     string
	subject   string

	step       step
	topic      string
	difficulty progression.Difficulty
	topicInput components.TextInput
	diffMenu   components.Menu

	// requestID identifies the in-flight generation; a quizReadyMsg
	// with any other ID is stale and dropped. Empty means no request
	// is outstanding.
	requestID string

	attempt *quiz.Attempt

	// Per-question answer widgets.
	mc        components.MultiChoice
	mcActive  bool
	textInput components.TextInput

	errMsg string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a quiz session screen in the setup step.
func New(generator quizgen.Generator, st *store.Store, userID, grade, subject string) *SessionScreen {
	return &SessionScreen{
		generator:  generator,
		store:      st,
		userID:     userID,
		grade:      grade,
		subject:    subject,
		step:       stepTopic,
		topicInput: components.NewTextInput("Chủ đề muốn luyện, ví dụ: Phân số", 80),
	}
}

// NewFromQuestions starts a session already in play over prebuilt
// questions, e.g. a quiz assembled from flashcards. The attempt runs
// through the same phases, summary and persistence as a generated one.
func NewFromQuestions(generator quizgen.Generator, st *store.Store, userID, grade, subject, topic string, difficulty progression.Difficulty, questions []quizgen.Question) (*SessionScreen, error) {
	attempt, err := quiz.Begin(topic, grade, subject, difficulty, questions)
	if err != nil {
		return nil, err
	}

	s := New(generator, st, userID, grade, subject)
	s.topic = topic
	s.difficulty = difficulty
	s.attempt = attempt
	s.step = stepPlaying
	return s, nil
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.step == stepPlaying {
		return s.setupQuestion()
	}
	return s.topicInput.Init()
}

func (s *SessionScreen) Title() string {
	return "Luyện đề"
}

// ConsumesEsc keeps escape inside the screen while an attempt is live
// so abandoning always goes through the confirmation dialog.
func (s *SessionScreen) ConsumesEsc() bool {
	return s.step == stepPlaying || s.step == stepQuitConfirm
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Dừng làm bài"},
			{Key: "N", Description: "Tiếp tục"},
		}
	case stepPlaying:
		if s.attempt != nil && s.attempt.Phase == quiz.PhaseFeedback {
			return []layout.KeyHint{{Key: "phím bất kỳ", Description: "Tiếp tục"}}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Trả lời"},
			{Key: "Esc", Description: "Dừng"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Tiếp tục"},
			{Key: "Esc", Description: "Quay lại"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)
	case attemptDoneMsg:
		return s.handleAttemptDone()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

// forward routes non-key messages to the active input widget.
func (s *SessionScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.step {
	case stepTopic:
		s.topicInput, cmd = s.topicInput.Update(msg)
	case stepPlaying:
		if !s.mcActive && s.attempt != nil && s.attempt.Phase == quiz.PhaseInProgress {
			s.textInput, cmd = s.textInput.Update(msg)
		}
	}
	return s, cmd
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		// Generation failed; any key returns to setup so nothing
		// partial survives.
		s.errMsg = ""
		s.step = stepTopic
		return s, s.topicInput.Init()
	}

	switch s.step {
	case stepTopic:
		if key == "enter" {
			topic := s.topicInput.Value()
			if topic == "" {
				return s, nil
			}
			s.topic = topic
			s.step = stepDifficulty
			s.diffMenu = s.buildDifficultyMenu()
			return s, nil
		}
		var cmd tea.Cmd
		s.topicInput, cmd = s.topicInput.Update(msg)
		return s, cmd

	case stepDifficulty:
		var cmd tea.Cmd
		s.diffMenu, cmd = s.diffMenu.Update(msg)
		return s, cmd

	case stepGenerating:
		return s, nil

	case stepQuitConfirm:
		switch key {
		case "y", "Y":
			if s.attempt != nil {
				s.attempt.Abandon()
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.step = stepPlaying
		}
		return s, nil

	case stepPlaying:
		return s.handlePlayKey(msg)
	}

	return s, nil
}

func (s *SessionScreen) handlePlayKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.attempt == nil {
		return s, nil
	}
	key := msg.String()

	if s.attempt.Phase == quiz.PhaseFeedback {
		// Any key dismisses per-question feedback.
		if s.attempt.Advance() {
			return s, s.setupQuestion()
		}
		return s, func() tea.Msg { return attemptDoneMsg{} }
	}

	if key == "esc" {
		s.step = stepQuitConfirm
		return s, nil
	}

	q := s.attempt.CurrentQuestion()
	if q == nil {
		return s, nil
	}

	if s.mcActive {
		if key == "enter" {
			s.submit(quizgen.Answer{OptionIndex: s.mc.Selected, Bool: s.mc.Selected == 0})
			return s, nil
		}
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	}

	if key == "enter" {
		text := s.textInput.Value()
		if text == "" {
			return s, nil
		}
		s.submit(quizgen.Answer{Text: text})
		return s, nil
	}

	var cmd tea.Cmd
	s.textInput, cmd = s.textInput.Update(msg)
	return s, cmd
}

func (s *SessionScreen) submit(ans quizgen.Answer) {
	q := s.attempt.CurrentQuestion()
	if q == nil {
		return
	}
	if _, accepted := s.attempt.Submit(ans); accepted && s.mcActive {
		s.mc.Submitted = true
		s.mc.ChosenIndex = s.mc.Selected
	}
}

func (s *SessionScreen) buildDifficultyMenu() components.Menu {
	unlocked := progression.DifficultyEasy
	if d, err := s.store.Unlocks().Get(context.Background(), s.userID, s.grade, s.subject); err == nil && d != "" {
		unlocked = progression.Difficulty(d)
	}

	var items []components.MenuItem
	for _, tier := range progression.Tiers() {
		tier := tier
		locked := progression.Rank(tier) > progression.Rank(unlocked)
		detail := ""
		if locked {
			detail = "chưa mở khóa"
		}
		items = append(items, components.MenuItem{
			Label:    string(tier),
			Detail:   detail,
			Disabled: locked,
			Action: func() tea.Cmd {
				s.difficulty = tier
				return s.startGeneration()
			},
		})
	}
	return components.NewMenu(items)
}

// startGeneration kicks off async quiz generation. At most one request
// is outstanding; its ID guards against stale results.
func (s *SessionScreen) startGeneration() tea.Cmd {
	if s.requestID != "" {
		return nil
	}

	s.step = stepGenerating
	requestID := uuid.NewString()
	s.requestID = requestID

	req := quizgen.Request{
		Topic:      s.topic,
		Grade:      s.grade,
		Subject:    s.subject,
		Difficulty: string(s.difficulty),
		Count:      defaultQuestionCount,
	}
	gen := s.generator

	return func() tea.Msg {
		questions, err := gen.Generate(context.Background(), req)
		return quizReadyMsg{RequestID: requestID, Questions: questions, Err: err}
	}
}

func (s *SessionScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.RequestID != s.requestID {
		return s, nil // stale result from an earlier request
	}
	s.requestID = ""

	if msg.Err != nil {
		// Stay out of the attempt; setup state is untouched.
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	attempt, err := quiz.Begin(s.topic, s.grade, s.subject, s.difficulty, msg.Questions)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.attempt = attempt
	s.step = stepPlaying
	return s, s.setupQuestion()
}

// setupQuestion prepares the answer widget for the current question.
func (s *SessionScreen) setupQuestion() tea.Cmd {
	q := s.attempt.CurrentQuestion()
	if q == nil {
		return nil
	}

	switch q.Type {
	case quizgen.TypeMultipleChoice:
		s.mcActive = true
		s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
		return nil
	case quizgen.TypeTrueFalse:
		s.mcActive = true
		correct := 1
		if q.CorrectBool {
			correct = 0
		}
		s.mc = components.NewMultiChoice(q.Prompt, []string{"Đúng", "Sai"}, correct)
		return nil
	default:
		s.mcActive = false
		s.textInput = components.NewTextInput("Điền câu trả lời...", 60)
		return s.textInput.Init()
	}
}

func (s *SessionScreen) handleAttemptDone() (screen.Screen, tea.Cmd) {
	attempt := s.attempt
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(attempt, s.generator, s.store, s.userID),
		}
	}
}
