// Package app hosts the root Bubble Tea model that frames every screen
// with the shared header and footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/audio"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/router"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/screens/home"
	"github.com/minhvu/hoctot/internal/speech"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/tutor"
	"github.com/minhvu/hoctot/internal/ui/layout"
)

// Options carries the wired services the TUI runs on.
type Options struct {
	Store      *store.Store
	Generator  quizgen.Generator
	Chat       *tutor.Chat
	Explainer  *tutor.Explainer
	Speaker    *audio.Speaker
	Recognizer speech.Recognizer
	UserID     string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	home   *home.HomeScreen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Store:      opts.Store,
		Generator:  opts.Generator,
		Chat:       opts.Chat,
		Explainer:  opts.Explainer,
		Speaker:    opts.Speaker,
		Recognizer: opts.Recognizer,
		UserID:     opts.UserID,
	})
	return AppModel{
		router: router.New(homeScreen),
		home:   homeScreen,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && !m.activeConsumesEsc() {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// activeConsumesEsc reports whether the active screen handles escape
// itself instead of being popped.
func (m AppModel) activeConsumesEsc() bool {
	if ec, ok := m.router.Active().(screen.EscCapturer); ok {
		return ec.ConsumesEsc()
	}
	return false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	grade, subject := m.home.CurrentProfile()
	header := layout.RenderHeader(title, grade, subject, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Di chuyển"},
			{Key: "Enter", Description: "Chọn"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
