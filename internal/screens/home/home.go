package home

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/audio"
	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/router"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/screens/chat"
	"github.com/minhvu/hoctot/internal/screens/explain"
	"github.com/minhvu/hoctot/internal/screens/flashcards"
	"github.com/minhvu/hoctot/internal/screens/history"
	"github.com/minhvu/hoctot/internal/screens/path"
	"github.com/minhvu/hoctot/internal/screens/session"
	"github.com/minhvu/hoctot/internal/speech"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/tutor"
	"github.com/minhvu/hoctot/internal/ui/components"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

// Grades and Subjects are the selectable learner profile values.
var (
	Grades   = []string{"Lớp 6", "Lớp 7", "Lớp 8", "Lớp 9"}
	Subjects = []string{"Toán", "Ngữ văn", "Tiếng Anh", "Khoa học tự nhiên", "Lịch sử và Địa lí"}
)

// Profile is the learner's persisted grade/subject selection.
type Profile struct {
	Grade   string `json:"grade"`
	Subject string `json:"subject"`
}

// Deps bundles the services the home screen hands to feature screens.
type Deps struct {
	Store      *store.Store
	Generator  quizgen.Generator
	Chat       *tutor.Chat
	Explainer  *tutor.Explainer
	Speaker    *audio.Speaker
	Recognizer speech.Recognizer
	UserID     string
}

const profileKey = "profile"

type mode int

const (
	modeMenu mode = iota
	modePickGrade
	modePickSubject
)

// HomeScreen is the landing screen with the feature menu.
type HomeScreen struct {
	deps    Deps
	profile Profile
	mode    mode
	menu    components.Menu
	picker  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen, loading the persisted learner profile.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	ns := store.Namespace(deps.UserID)
	found, err := deps.Store.KV().GetJSON(context.Background(), ns, profileKey, &h.profile)
	if err != nil || !found || h.profile.Grade == "" || h.profile.Subject == "" {
		h.profile = Profile{}
	}

	if h.profile.Grade == "" {
		h.mode = modePickGrade
		h.picker = gradePicker(h)
	} else {
		h.menu = h.buildMenu()
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}

// CurrentProfile returns the learner's grade and subject for the header.
func (h *HomeScreen) CurrentProfile() (grade, subject string) {
	return h.profile.Grade, h.profile.Subject
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.mode != modeMenu {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Chọn"},
			{Key: "Enter", Description: "Xác nhận"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Chọn"},
		{Key: "p", Description: "Đổi lớp/môn"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && h.mode == modeMenu && kmsg.String() == "p" {
		h.mode = modePickGrade
		h.picker = gradePicker(h)
		return h, nil
	}

	var cmd tea.Cmd
	switch h.mode {
	case modeMenu:
		h.menu, cmd = h.menu.Update(msg)
	default:
		h.picker, cmd = h.picker.Update(msg)
	}
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var body string
	switch h.mode {
	case modePickGrade:
		body = theme.Title.Render("Em đang học lớp mấy?") + "\n\n" + h.picker.View()
	case modePickSubject:
		body = theme.Title.Render("Em muốn học môn gì?") + "\n\n" + h.picker.View()
	default:
		unlocked := h.unlockedDifficulty()
		body = theme.Title.Render("Học Tốt") + "\n" +
			theme.Subtitle.Render("Trợ lý học tập cho học sinh THCS") + "\n\n" +
			h.menu.View() + "\n" +
			theme.Hint.Render(fmt.Sprintf("Độ khó đã mở: %s", unlocked))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (h *HomeScreen) unlockedDifficulty() string {
	ctx := context.Background()
	d, err := h.deps.Store.Unlocks().Get(ctx, h.deps.UserID, h.profile.Grade, h.profile.Subject)
	if err != nil || d == "" {
		return string(progression.DifficultyEasy)
	}
	return string(d)
}

func gradePicker(h *HomeScreen) components.Menu {
	items := make([]components.MenuItem, len(Grades))
	for i, g := range Grades {
		grade := g
		items[i] = components.MenuItem{
			Label: grade,
			Action: func() tea.Cmd {
				h.profile.Grade = grade
				h.mode = modePickSubject
				h.picker = subjectPicker(h)
				return nil
			},
		}
	}
	return components.NewMenu(items)
}

func subjectPicker(h *HomeScreen) components.Menu {
	items := make([]components.MenuItem, len(Subjects))
	for i, s := range Subjects {
		subject := s
		items[i] = components.MenuItem{
			Label: subject,
			Action: func() tea.Cmd {
				h.profile.Subject = subject
				h.saveProfile()
				h.mode = modeMenu
				h.menu = h.buildMenu()
				return nil
			},
		}
	}
	return components.NewMenu(items)
}

func (h *HomeScreen) saveProfile() {
	ns := store.Namespace(h.deps.UserID)
	if err := h.deps.Store.KV().SetJSON(context.Background(), ns, profileKey, h.profile); err != nil {
		// Non-fatal; the selection still applies for this run.
		fmt.Fprintf(os.Stderr, "warning: save profile: %v\n", err)
	}
}

func (h *HomeScreen) buildMenu() components.Menu {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	d := h.deps
	p := h.profile

	return components.NewMenu([]components.MenuItem{
		{Label: "Luyện đề", Detail: "trắc nghiệm theo chủ đề", Action: push(func() screen.Screen {
			return session.New(d.Generator, d.Store, d.UserID, p.Grade, p.Subject)
		})},
		{Label: "Thẻ ghi nhớ", Detail: "ôn tập với flashcard", Action: push(func() screen.Screen {
			return flashcards.New(d.Generator, d.Store, d.UserID, p.Grade, p.Subject)
		})},
		{Label: "Luyện nói tiếng Anh", Detail: "hội thoại với AI", Action: push(func() screen.Screen {
			return chat.New(d.Chat, d.Speaker, d.Recognizer)
		})},
		{Label: "Hỏi khoa học", Detail: "giải thích kèm minh họa", Action: push(func() screen.Screen {
			return explain.New(d.Explainer)
		})},
		{Label: "Lộ trình học", Detail: "kế hoạch 4 tuần", Action: push(func() screen.Screen {
			return path.New(d.Generator, d.Store, d.UserID, p.Grade, p.Subject)
		})},
		{Label: "Lịch sử làm bài", Action: push(func() screen.Screen {
			return history.New(d.Store, d.UserID, p.Grade, p.Subject)
		})},
	})
}
