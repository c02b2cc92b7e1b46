package explain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/tutor"
	"github.com/minhvu/hoctot/internal/ui/components"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

// explainedMsg carries the async explanation result.
type explainedMsg struct {
	Explanation *tutor.Explanation
	ImagePath   string
	Err         error
}

// ExplainScreen answers science questions with an illustration.
type ExplainScreen struct {
	explainer *tutor.Explainer
	input     components.TextInput

	waiting   bool
	result    *tutor.Explanation
	imagePath string
	errMsg    string
}

var _ screen.Screen = (*ExplainScreen)(nil)
var _ screen.KeyHintProvider = (*ExplainScreen)(nil)

// New creates the science explanation screen.
func New(explainer *tutor.Explainer) *ExplainScreen {
	return &ExplainScreen{
		explainer: explainer,
		input:     components.NewTextInput("Ví dụ: Tại sao bầu trời có màu xanh?", 200),
	}
}

func (e *ExplainScreen) Init() tea.Cmd {
	return e.input.Init()
}

func (e *ExplainScreen) Title() string {
	return "Hỏi khoa học"
}

func (e *ExplainScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Hỏi"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (e *ExplainScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		e.waiting = false
		if msg.Err != nil {
			e.errMsg = msg.Err.Error()
			return e, nil
		}
		e.result = msg.Explanation
		e.imagePath = msg.ImagePath
		return e, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return e.ask()
		}
	}

	if e.waiting {
		return e, nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e *ExplainScreen) ask() (screen.Screen, tea.Cmd) {
	if e.waiting {
		return e, nil
	}
	question := e.input.Value()
	if question == "" {
		return e, nil
	}

	e.waiting = true
	e.errMsg = ""
	e.result = nil
	e.imagePath = ""
	e.input.Reset()
	explainer := e.explainer

	return e, func() tea.Msg {
		exp, err := explainer.Explain(context.Background(), question)
		if err != nil {
			return explainedMsg{Err: err}
		}

		// The terminal cannot show the illustration inline; save it
		// so the learner can open it.
		imagePath := ""
		if len(exp.Image) > 0 {
			imagePath = filepath.Join(os.TempDir(), fmt.Sprintf("hoctot-minh-hoa-%d.png", time.Now().Unix()))
			if werr := os.WriteFile(imagePath, exp.Image, 0o600); werr != nil {
				imagePath = ""
			}
		}
		return explainedMsg{Explanation: exp, ImagePath: imagePath}
	}
}

func (e *ExplainScreen) View(width, height int) string {
	textWidth := min(width-8, 76)

	body := theme.Title.Render("Hỏi khoa học") + "\n\n"

	switch {
	case e.waiting:
		body += theme.Hint.Render("Đang suy nghĩ...") + "\n\n"
	case e.errMsg != "":
		body += theme.Incorrect.Render(e.errMsg) + "\n\n"
	case e.result != nil:
		body += lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).Render(e.result.Text) + "\n\n"
		switch {
		case e.result.ImageBlocked:
			body += theme.Hint.Render("Hình minh họa không phù hợp để hiển thị cho nội dung này.") + "\n\n"
		case e.imagePath != "":
			body += theme.Hint.Render("Hình minh họa đã lưu tại: "+e.imagePath) + "\n\n"
		}
	}

	body += e.input.View()

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(body)
}
