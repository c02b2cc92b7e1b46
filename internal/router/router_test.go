package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/minhvu/hoctot/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "session"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "session" {
		t.Errorf("active = %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("Init() did not run on the pushed screen")
	}

	r.Pop()
	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Errorf("after pop: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth = %d after pop at bottom, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "session"})

	summary := &stubScreen{title: "summary"}
	r.Replace(summary)

	if r.Depth() != 2 {
		t.Errorf("depth = %d after replace, want 2", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("active = %q", r.Active().Title())
	}
	if !summary.initRan {
		t.Error("Init() did not run on the replacement screen")
	}

	// Popping the replacement lands back on the original bottom.
	r.Pop()
	if r.Active().Title() != "home" {
		t.Errorf("after pop: active = %q", r.Active().Title())
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	pushed := &stubScreen{title: "session"}
	r.Update(PushScreenMsg{Screen: pushed})
	if r.Active().Title() != "session" || !pushed.initRan {
		t.Errorf("push message: active = %q, init %v", r.Active().Title(), pushed.initRan)
	}

	replaced := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: replaced})
	if r.Active().Title() != "summary" || r.Depth() != 2 {
		t.Errorf("replace message: active = %q, depth %d", r.Active().Title(), r.Depth())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "home" {
		t.Errorf("pop message: active = %q", r.Active().Title())
	}
}

func TestView(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if got := r.View(80, 24); got != "home" {
		t.Errorf("View = %q", got)
	}
}
