package path

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

// pathReadyMsg carries the async generation result.
type pathReadyMsg struct {
	Path *quizgen.LearningPath
	Err  error
}

// PathScreen shows the learner's 4-week learning path.
type PathScreen struct {
	generator quizgen.Generator
	store     *store.Store
	userID    string
	grade     string
	subject   string

	weeks   []store.WeekPlanRecord
	waiting bool
	errMsg  string
}

var _ screen.Screen = (*PathScreen)(nil)
var _ screen.KeyHintProvider = (*PathScreen)(nil)

// New creates the learning path screen, loading any stored path.
func New(generator quizgen.Generator, st *store.Store, userID, grade, subject string) *PathScreen {
	p := &PathScreen{
		generator: generator,
		store:     st,
		userID:    userID,
		grade:     grade,
		subject:   subject,
	}

	weeks, err := st.Paths().Load(context.Background(), userID, grade, subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: load learning path: %v\n", err)
	}
	p.weeks = weeks
	return p
}

func (p *PathScreen) Init() tea.Cmd {
	return nil
}

func (p *PathScreen) Title() string {
	return "Lộ trình học"
}

func (p *PathScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "g", Description: "Tạo lộ trình mới"}}
	if len(p.weeks) > 0 {
		hints = append(hints, layout.KeyHint{Key: "d", Description: "Xóa"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quay lại"})
}

func (p *PathScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pathReadyMsg:
		p.waiting = false
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			return p, nil
		}
		p.save(msg.Path)
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "g":
			return p, p.generate()
		case "d":
			p.delete()
			return p, nil
		}
	}
	return p, nil
}

// generate starts async path generation. One request at a time.
func (p *PathScreen) generate() tea.Cmd {
	if p.waiting {
		return nil
	}
	p.waiting = true
	p.errMsg = ""

	gen := p.generator
	grade, subject := p.grade, p.subject
	return func() tea.Msg {
		path, err := gen.GeneratePath(context.Background(), grade, subject)
		return pathReadyMsg{Path: path, Err: err}
	}
}

func (p *PathScreen) save(path *quizgen.LearningPath) {
	records := make([]store.WeekPlanRecord, len(path.Weeks))
	for i, w := range path.Weeks {
		records[i] = store.WeekPlanRecord{
			Week:      w.Week,
			Title:     w.Title,
			Topics:    w.Topics,
			Objective: w.Objective,
		}
	}

	if err := p.store.Paths().Save(context.Background(), p.userID, p.grade, p.subject, records); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save learning path: %v\n", err)
	}
	p.weeks = records
}

func (p *PathScreen) delete() {
	if err := p.store.Paths().Delete(context.Background(), p.userID, p.grade, p.subject); err != nil {
		fmt.Fprintf(os.Stderr, "warning: delete learning path: %v\n", err)
		return
	}
	p.weeks = nil
}

func (p *PathScreen) View(width, height int) string {
	textWidth := min(width-8, 70)
	var body string

	switch {
	case p.waiting:
		body = theme.Hint.Render("Đang lập lộ trình học...")
	case p.errMsg != "":
		body = theme.Incorrect.Render("Không tạo được lộ trình: " + p.errMsg)
	case len(p.weeks) == 0:
		body = theme.Subtitle.Render("Chưa có lộ trình học.\nNhấn g để tạo kế hoạch 4 tuần cho " + p.subject + ".")
	default:
		body = theme.Title.Render(fmt.Sprintf("Lộ trình 4 tuần · %s · %s", p.grade, p.subject)) + "\n\n"
		for _, w := range p.weeks {
			body += theme.Selected.Render(fmt.Sprintf("Tuần %d: %s", w.Week, w.Title)) + "\n"
			body += lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).
				Render("  "+strings.Join(w.Topics, " · ")) + "\n"
			body += theme.Hint.Render("  Mục tiêu: "+w.Objective) + "\n\n"
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
