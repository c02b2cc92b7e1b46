package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhvu/hoctot/internal/llm"
)

const explainSystemPrompt = `You are a science teacher for Vietnamese secondary-school students.

Rules:
- Explain the asked phenomenon in Vietnamese, in simple words, 3-5 short paragraphs.
- Use everyday comparisons a 12-15 year old knows.
- End with one fun fact.`

// Explanation is a science answer, optionally with an illustration.
type Explanation struct {
	Text string

	// Image is the illustration bytes, nil when unavailable.
	Image []byte

	// ImageBlocked is set when the illustration specifically was
	// refused by the safety filter. The text is still usable and the
	// UI shows the distinct safety message instead of a generic error.
	ImageBlocked bool
}

// Explainer answers science questions with an illustration when the
// provider supports image output.
type Explainer struct {
	provider llm.Provider
	images   llm.ImageGenerator // nil when the provider has no image support
}

// NewExplainer creates an Explainer. images may be nil.
func NewExplainer(provider llm.Provider, images llm.ImageGenerator) *Explainer {
	return &Explainer{provider: provider, images: images}
}

// Explain answers the question. A failed or blocked illustration never
// fails the explanation itself.
func (e *Explainer) Explain(ctx context.Context, question string) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, "science-explain")

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      explainSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		MaxTokens:   1024,
		Temperature: 0.6,
	})
	if err != nil {
		return nil, err
	}

	text := decodeText(resp.Content)
	if text == "" {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty explanation")}
	}

	out := &Explanation{Text: text}

	if e.images != nil {
		prompt := fmt.Sprintf("A simple, colorful educational illustration for students explaining: %s. No text in the image.", question)
		img, imgErr := e.images.GenerateImage(ctx, prompt)
		switch {
		case imgErr == nil:
			out.Image = img
		default:
			var blocked *llm.ErrContentBlocked
			if errors.As(imgErr, &blocked) {
				out.ImageBlocked = true
			}
			// Other illustration failures degrade to text-only.
		}
	}

	return out, nil
}
