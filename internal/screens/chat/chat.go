package chat

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minhvu/hoctot/internal/audio"
	"github.com/minhvu/hoctot/internal/llm"
	"github.com/minhvu/hoctot/internal/screen"
	"github.com/minhvu/hoctot/internal/speech"
	"github.com/minhvu/hoctot/internal/tutor"
	"github.com/minhvu/hoctot/internal/ui/components"
	"github.com/minhvu/hoctot/internal/ui/layout"
	"github.com/minhvu/hoctot/internal/ui/theme"
)

// replyMsg carries the assistant's reply or the send failure.
type replyMsg struct {
	Reply string
	Err   error
}

// spokenMsg reports that text-to-speech playback finished.
type spokenMsg struct {
	Err error
}

// ChatScreen is the English conversation practice screen.
type ChatScreen struct {
	chat       *tutor.Chat
	speaker    *audio.Speaker
	recognizer speech.Recognizer
	input      components.TextInput

	lastReply string
	waiting   bool
	speaking  bool
	errMsg    string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the conversation screen. speaker may be nil when speech
// synthesis is unavailable; recognizer may be nil, which is treated as
// recognition being unavailable and keeps typed input.
func New(chat *tutor.Chat, speaker *audio.Speaker, recognizer speech.Recognizer) *ChatScreen {
	if recognizer == nil {
		recognizer = speech.Unavailable{}
	}
	return &ChatScreen{
		chat:       chat,
		speaker:    speaker,
		recognizer: recognizer,
		input:      components.NewTextInput("Say something in English...", 200),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	return "Luyện nói tiếng Anh"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Gửi"},
	}
	if c.speaker != nil && c.lastReply != "" {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Nghe câu trả lời"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quay lại"})
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
		} else {
			c.lastReply = msg.Reply
		}
		return c, nil

	case spokenMsg:
		c.speaking = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
		}
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return c.send()
		case "ctrl+s":
			return c.speak()
		}
	}

	if c.waiting {
		return c, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send dispatches the typed message. While a reply is pending the
// input is frozen; the chat itself also refuses overlapping sends.
func (c *ChatScreen) send() (screen.Screen, tea.Cmd) {
	if c.waiting {
		return c, nil
	}
	text := c.input.Value()
	if text == "" {
		return c, nil
	}

	c.waiting = true
	c.errMsg = ""
	c.input.Reset()
	chat := c.chat

	return c, func() tea.Msg {
		reply, err := chat.Send(context.Background(), text)
		return replyMsg{Reply: reply, Err: err}
	}
}

// speak plays the last reply aloud. Repeated plays of the same text
// reuse the cached waveform.
func (c *ChatScreen) speak() (screen.Screen, tea.Cmd) {
	if c.speaker == nil || c.speaking || c.lastReply == "" {
		return c, nil
	}

	c.speaking = true
	speaker := c.speaker
	text := c.lastReply

	return c, func() tea.Msg {
		return spokenMsg{Err: speaker.Say(context.Background(), text)}
	}
}

func (c *ChatScreen) View(width, height int) string {
	textWidth := min(width-8, 76)

	var body string
	history := c.chat.History()
	if len(history) == 0 {
		body = theme.Subtitle.Render("Chat in English with your practice partner.\nThey will gently correct your mistakes.") + "\n\n"
		if !c.recognizer.Available() {
			body += theme.Hint.Render("Voice input is not available on this system; type instead.") + "\n\n"
		}
	}

	for _, m := range history {
		if m.Role == llm.RoleUser {
			body += theme.Selected.Render("Em: ") +
				lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).Render(m.Content) + "\n\n"
		} else {
			body += theme.Correct.Render("AI: ") +
				lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).Render(m.Content) + "\n\n"
		}
	}

	if c.waiting {
		body += theme.Hint.Render("Đang trả lời...") + "\n\n"
	}
	if c.speaking {
		body += theme.Hint.Render("Đang phát âm thanh...") + "\n\n"
	}
	if c.errMsg != "" {
		body += theme.Incorrect.Render(c.errMsg) + "\n\n"
	}

	body += c.input.View()

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(body)
}
