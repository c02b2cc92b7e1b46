package flashcards

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/flashcards"
	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/router"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/screens/session"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/ui/components"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

type mode int

const (
	modeMenu mode = iota
	modeReview
	modeAddFront
	modeAddBack
)

// cardQuizCount caps how many cards one practice quiz draws.
const cardQuizCount = 10

// FlashcardsScreen reviews and edits the learner's deck for the
// current grade and subject.
type FlashcardsScreen struct {
	generator quizgen.Generator
	store     *store.Store
	userID    string
	grade     string
	subject   string

	deck *flashcards.Deck
	mode mode
	menu components.Menu

	// Review state over a selected subset. Indexes refer back into the
	// full deck so status updates land on the right card.
	subset  []flashcards.Card
	indexes []int
	current int
	flipped bool

	input    components.TextInput
	newFront string

	notice string
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates the flashcards screen, loading the persisted deck.
func New(generator quizgen.Generator, st *store.Store, userID, grade, subject string) *FlashcardsScreen {
	f := &FlashcardsScreen{
		generator: generator,
		store:     st,
		userID:    userID,
		grade:     grade,
		subject:   subject,
	}

	records, err := st.Decks().Load(context.Background(), userID, grade, subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: load deck: %v\n", err)
	}
	f.deck = flashcards.FromRecords(records)
	f.menu = f.buildMenu()
	return f
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (f *FlashcardsScreen) Title() string {
	return "Thẻ ghi nhớ"
}

// ConsumesEsc keeps escape inside the screen while reviewing or adding
// a card; from those modes escape returns to the deck menu.
func (f *FlashcardsScreen) ConsumesEsc() bool {
	return f.mode != modeMenu
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	switch f.mode {
	case modeReview:
		if !f.flipped {
			return []layout.KeyHint{
				{Key: "Space", Description: "Lật thẻ"},
				{Key: "Esc", Description: "Quay lại"},
			}
		}
		return []layout.KeyHint{
			{Key: "1", Description: "Cần ôn lại"},
			{Key: "2", Description: "Đã thuộc"},
			{Key: "Space", Description: "Thẻ tiếp"},
			{Key: "Esc", Description: "Quay lại"},
		}
	case modeAddFront, modeAddBack:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Xác nhận"},
			{Key: "Esc", Description: "Hủy"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Di chuyển"},
			{Key: "Enter", Description: "Chọn"},
			{Key: "Esc", Description: "Quay lại"},
		}
	}
}

func (f *FlashcardsScreen) buildMenu() components.Menu {
	counts := make(map[flashcards.Status]int)
	for _, c := range f.deck.Cards {
		counts[c.Status]++
	}
	total := len(f.deck.Cards)

	review := func(strategy flashcards.Strategy) func() tea.Cmd {
		return func() tea.Cmd {
			f.startReview(strategy)
			return nil
		}
	}

	return components.NewMenu([]components.MenuItem{
		{Label: "Ôn tất cả", Detail: fmt.Sprintf("%d thẻ", total), Action: review(flashcards.SelectAll)},
		{Label: "Cần ôn lại", Detail: fmt.Sprintf("%d thẻ", counts[flashcards.StatusNeedsReview]), Action: review(flashcards.SelectNeedsReview)},
		{Label: "Chưa thuộc", Detail: fmt.Sprintf("%d thẻ", total-counts[flashcards.StatusMastered]), Action: review(flashcards.SelectNotMastered)},
		{Label: "Luyện từ thẻ", Detail: "trắc nghiệm từ thẻ chưa thuộc", Action: func() tea.Cmd {
			return f.startCardQuiz()
		}},
		{Label: "Thêm thẻ mới", Action: func() tea.Cmd {
			f.mode = modeAddFront
			f.input = components.NewTextInput("Mặt trước (câu hỏi / thuật ngữ)", 120)
			return f.input.Init()
		}},
	})
}

// startCardQuiz turns the not-mastered cards into a multiple-choice
// attempt running through the regular quiz screens.
func (f *FlashcardsScreen) startCardQuiz() tea.Cmd {
	subset, err := f.deck.SelectSubset(flashcards.SelectNotMastered)
	if err != nil {
		f.notice = "Không còn thẻ nào để luyện."
		return nil
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	questions := flashcards.ToQuiz(subset, cardQuizCount, rng)

	quizScreen, err := session.NewFromQuestions(
		f.generator, f.store, f.userID, f.grade, f.subject,
		"Thẻ ghi nhớ", progression.DifficultyEasy, questions)
	if err != nil {
		f.notice = "Không tạo được bài luyện: " + err.Error()
		return nil
	}

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quizScreen}
	}
}

// startReview selects a subset and enters review mode. An empty
// selection keeps the menu up with a notice.
func (f *FlashcardsScreen) startReview(strategy flashcards.Strategy) {
	subset, err := f.deck.SelectSubset(strategy)
	if err != nil {
		f.notice = "Không có thẻ nào trong nhóm này."
		return
	}

	// Map subset positions back to deck indexes for status updates.
	f.indexes = f.indexes[:0]
	used := make(map[int]bool)
	for _, card := range subset {
		for i, deckCard := range f.deck.Cards {
			if !used[i] && deckCard.Front == card.Front && deckCard.Back == card.Back {
				f.indexes = append(f.indexes, i)
				used[i] = true
				break
			}
		}
	}

	f.subset = subset
	f.current = 0
	f.flipped = false
	f.notice = ""
	f.mode = modeReview
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch f.mode {
	case modeMenu:
		var cmd tea.Cmd
		f.menu, cmd = f.menu.Update(msg)
		return f, cmd

	case modeReview:
		if !isKey {
			return f, nil
		}
		return f.handleReviewKey(kmsg.String())

	case modeAddFront, modeAddBack:
		if isKey {
			switch kmsg.String() {
			case "esc":
				f.mode = modeMenu
				return f, nil
			case "enter":
				return f.handleAddSubmit()
			}
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, cmd
	}

	return f, nil
}

func (f *FlashcardsScreen) handleReviewKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		f.mode = modeMenu
		f.menu = f.buildMenu()
		return f, nil

	case "space", " ":
		if !f.flipped {
			f.flipped = true
			return f, nil
		}
		f.nextCard()
		return f, nil

	case "1":
		if f.flipped {
			f.markCurrent(flashcards.StatusNeedsReview)
			f.nextCard()
		}
		return f, nil

	case "2":
		if f.flipped {
			f.markCurrent(flashcards.StatusMastered)
			f.nextCard()
		}
		return f, nil
	}
	return f, nil
}

func (f *FlashcardsScreen) nextCard() {
	f.flipped = false
	f.current++
	if f.current >= len(f.subset) {
		f.mode = modeMenu
		f.menu = f.buildMenu()
		f.notice = "Đã ôn xong!"
	}
}

func (f *FlashcardsScreen) markCurrent(status flashcards.Status) {
	if f.current >= len(f.indexes) {
		return
	}
	if err := f.deck.SetStatus(f.indexes[f.current], status); err != nil {
		fmt.Fprintf(os.Stderr, "warning: set card status: %v\n", err)
		return
	}
	f.saveDeck()
}

func (f *FlashcardsScreen) handleAddSubmit() (screen.Screen, tea.Cmd) {
	value := f.input.Value()
	if value == "" {
		return f, nil
	}

	if f.mode == modeAddFront {
		f.newFront = value
		f.mode = modeAddBack
		f.input = components.NewTextInput("Mặt sau (câu trả lời / định nghĩa)", 120)
		return f, f.input.Init()
	}

	f.deck.Cards = append(f.deck.Cards, flashcards.Card{
		Front:  f.newFront,
		Back:   value,
		Status: flashcards.StatusNew,
	})
	f.saveDeck()
	f.mode = modeMenu
	f.menu = f.buildMenu()
	f.notice = "Đã thêm thẻ mới."
	return f, nil
}

func (f *FlashcardsScreen) saveDeck() {
	ctx := context.Background()
	if err := f.store.Decks().Save(ctx, f.userID, f.grade, f.subject, f.deck.ToRecords()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save deck: %v\n", err)
	}
}

func (f *FlashcardsScreen) View(width, height int) string {
	var body string

	switch f.mode {
	case modeReview:
		body = f.renderCard(width)
	case modeAddFront, modeAddBack:
		label := "Mặt trước"
		if f.mode == modeAddBack {
			label = "Mặt sau"
		}
		body = theme.Title.Render("Thêm thẻ mới") + "\n\n" +
			theme.Body.Render(label) + "\n\n" + f.input.View()
	default:
		body = theme.Title.Render("Thẻ ghi nhớ") + "\n\n" + f.menu.View()
		if f.notice != "" {
			body += "\n" + theme.Hint.Render(f.notice)
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (f *FlashcardsScreen) renderCard(width int) string {
	if f.current >= len(f.subset) {
		return ""
	}
	card := f.subset[f.current]

	face := card.Front
	side := "Mặt trước"
	if f.flipped {
		face = card.Back
		side = "Mặt sau"
	}

	cardWidth := min(width-8, 60)
	box := theme.Card.Width(cardWidth).Align(lipgloss.Center).Render(face)

	return theme.Hint.Render(fmt.Sprintf("Thẻ %d/%d · %s", f.current+1, len(f.subset), side)) +
		"\n\n" + box
}
