package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests. Responses are
// served FIFO and every request is recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// ImageData / ImageErr and SpeechData / SpeechErr drive the media
	// operations when set.
	ImageData  []byte
	ImageErr   error
	SpeechData []byte
	SpeechErr  error

	ImageCalls  []string
	SpeechCalls []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response, or ErrProviderUnavailable
// when the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// GenerateImage returns the canned image bytes or error.
func (m *MockProvider) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageCalls = append(m.ImageCalls, prompt)
	if m.ImageErr != nil {
		return nil, m.ImageErr
	}
	return m.ImageData, nil
}

// GenerateSpeech returns the canned PCM bytes or error.
func (m *MockProvider) GenerateSpeech(_ context.Context, text string) (*PCMAudio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SpeechCalls = append(m.SpeechCalls, text)
	if m.SpeechErr != nil {
		return nil, m.SpeechErr
	}
	return &PCMAudio{Data: m.SpeechData, SampleRate: speechSampleRate}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
