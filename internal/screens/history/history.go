package history

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

// pageSize is how many attempts are listed per page.
const pageSize = 10

// HistoryScreen lists past quiz attempts, newest first.
type HistoryScreen struct {
	store   *store.Store
	userID  string
	grade   string
	subject string

	entries  []store.HistoryEntry
	selected int
	detail   bool
	loadErr  error
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen for one grade and subject.
func New(st *store.Store, userID, grade, subject string) *HistoryScreen {
	h := &HistoryScreen{
		store:   st,
		userID:  userID,
		grade:   grade,
		subject: subject,
	}
	h.entries, h.loadErr = st.History().List(context.Background(), userID, grade, subject, 100)
	return h
}

func (h *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (h *HistoryScreen) Title() string {
	return "Lịch sử làm bài"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	if h.detail {
		return []layout.KeyHint{{Key: "Esc", Description: "Danh sách"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Xem chi tiết"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	if h.detail {
		if kmsg.String() == "esc" || kmsg.String() == "enter" {
			h.detail = false
		}
		return h, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < len(h.entries)-1 {
			h.selected++
		}
	case "enter":
		if len(h.entries) > 0 {
			h.detail = true
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	var body string

	switch {
	case h.loadErr != nil:
		body = theme.Incorrect.Render("Không đọc được lịch sử: " + h.loadErr.Error())
	case len(h.entries) == 0:
		body = theme.Subtitle.Render("Chưa có bài làm nào. Hãy bắt đầu luyện đề!")
	case h.detail:
		body = h.renderDetail(width)
	default:
		body = h.renderList()
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (h *HistoryScreen) renderList() string {
	start := (h.selected / pageSize) * pageSize
	end := start + pageSize
	if end > len(h.entries) {
		end = len(h.entries)
	}

	s := theme.Title.Render(fmt.Sprintf("Lịch sử · %s · %s", h.grade, h.subject)) + "\n\n"
	for i := start; i < end; i++ {
		e := h.entries[i]
		line := fmt.Sprintf("%s  %3d điểm  %-10s  %s",
			e.Date.Local().Format("02/01/2006"), e.Score, e.Difficulty, e.Topic)
		if i == h.selected {
			s += theme.Selected.Render("  ▸ "+line) + "\n"
		} else {
			s += theme.Unselected.Render("    "+line) + "\n"
		}
	}
	s += "\n" + theme.Hint.Render(fmt.Sprintf("%d/%d bài", h.selected+1, len(h.entries)))
	return s
}

func (h *HistoryScreen) renderDetail(width int) string {
	e := h.entries[h.selected]
	textWidth := min(width-8, 70)

	s := theme.Title.Render(e.Topic) + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("%s · %s · %d điểm",
			e.Date.Local().Format("02/01/2006 15:04"), e.Difficulty, e.Score)) + "\n\n"

	for i, q := range e.Questions {
		given := e.Answers[fmt.Sprint(q.ID)]
		s += theme.Body.Render(fmt.Sprintf("%d. %s", i+1, q.Prompt)) + "\n"
		if given == q.CorrectAnswer {
			s += theme.Correct.Render("   ✓ "+given) + "\n"
		} else {
			s += theme.Incorrect.Render("   ✗ "+given) + "\n" +
				theme.Correct.Render("   → "+q.CorrectAnswer) + "\n"
		}
	}

	if e.Feedback != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Width(textWidth).Render(e.Feedback)
	}
	return s
}
