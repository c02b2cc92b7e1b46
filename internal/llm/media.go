package llm

import "context"

// ImageGenerator produces an illustration for a prompt. Implemented by
// providers that support image output (currently Gemini only).
type ImageGenerator interface {
	// GenerateImage returns the raw image bytes for the prompt.
	// A generation refused by the upstream safety filter returns
	// *ErrContentBlocked so callers can show the distinct
	// "could not be generated for safety reasons" condition.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// PCMAudio is raw speech audio as returned by the upstream service:
// 16-bit signed little-endian samples, mono.
type PCMAudio struct {
	Data       []byte
	SampleRate int
}

// SpeechGenerator synthesizes spoken audio for a text. Implemented by
// providers that support audio output (currently Gemini only).
type SpeechGenerator interface {
	// GenerateSpeech returns PCM audio reading the given text aloud.
	GenerateSpeech(ctx context.Context, text string) (*PCMAudio, error)
}
