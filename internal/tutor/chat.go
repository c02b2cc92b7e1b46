// Package tutor provides the conversational features: English practice
// chat and science explanations with illustrations.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/minhvu/hoctot/internal/llm"
)

const chatSystemPrompt = `You are a patient English conversation partner for a Vietnamese secondary-school student.

Rules:
- Reply in simple, natural English suitable for the student's level.
- Keep replies to 2-3 sentences and always end with a question to keep the conversation going.
- When the student makes a grammar mistake, gently show the corrected sentence before continuing.
- If the student writes in Vietnamese, answer in English and encourage them to try English.`

// maxChatHistory bounds the rolling conversation window sent upstream.
const maxChatHistory = 20

// Chat is an English practice conversation. One reply may be in flight
// at a time; Send refuses concurrent calls.
type Chat struct {
	provider llm.Provider

	mu       sync.Mutex
	history  []llm.Message
	inFlight bool
}

// NewChat creates an empty conversation.
func NewChat(provider llm.Provider) *Chat {
	return &Chat{provider: provider}
}

// History returns a copy of the conversation so far.
func (c *Chat) History() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llm.Message, len(c.history))
	copy(out, c.history)
	return out
}

// Send submits the student's message and returns the tutor's reply,
// appending both to the history. A failed call leaves the history
// unchanged.
func (c *Chat) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty message")
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return "", fmt.Errorf("a reply is already being generated")
	}
	c.inFlight = true
	messages := append(c.windowLocked(), llm.Message{Role: llm.RoleUser, Content: text})
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	ctx = llm.WithPurpose(ctx, "english-chat")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      chatSystemPrompt,
		Messages:    messages,
		MaxTokens:   512,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}

	reply := decodeText(resp.Content)
	if reply == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty reply")}
	}

	c.mu.Lock()
	c.history = append(c.history,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
	c.mu.Unlock()

	return reply, nil
}

// windowLocked returns the most recent slice of history to send
// upstream. Caller holds c.mu.
func (c *Chat) windowLocked() []llm.Message {
	history := c.history
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out
}

// decodeText unwraps a raw response that may be a JSON string.
func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
