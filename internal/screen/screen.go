package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/minhvu/hoctot/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init runs when the screen first becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content between header and footer.
	View(width, height int) string

	// Title is shown in the header bar.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscCapturer is an optional interface for screens that handle the
// escape key themselves, e.g. to confirm before discarding a quiz
// attempt. When ConsumesEsc reports true the app does not pop the
// screen on escape.
type EscCapturer interface {
	ConsumesEsc() bool
}
