package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar, used for quiz position.
type ProgressBar struct {
	Label    string
	Fraction float64
	Width    int
}

// NewProgressBar creates a bar filled to fraction of its width.
func NewProgressBar(label string, fraction float64, width int) ProgressBar {
	return ProgressBar{Label: label, Fraction: fraction, Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	cells := p.Width - lipgloss.Width(b.String())
	if cells < 4 {
		cells = 4
	}
	filled := min(max(int(float64(cells)*p.Fraction), 0), cells)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat("█", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("░", cells-filled)))
	return b.String()
}
