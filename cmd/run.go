package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minhvu/hoctot/internal/app"
	"github.com/minhvu/hoctot/internal/audio"
	"github.com/minhvu/hoctot/internal/credential"
	"github.com/minhvu/hoctot/internal/extract"
	"github.com/minhvu/hoctot/internal/llm"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/speech"
	"github.com/minhvu/hoctot/internal/store"
	"github.com/minhvu/hoctot/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := context.Background()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Store:  st,
		UserID: defaultUserID,
	}

	provider, images, err := buildProvider(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
		opts.Chat = tutor.NewChat(provider)
		opts.Explainer = tutor.NewExplainer(provider, images)
		if sg := speechGenerator(provider); sg != nil {
			opts.Speaker = audio.NewSpeaker(sg, audio.ExternalPlayer{})
		}
	}
	opts.Recognizer = speech.Unavailable{}

	return app.Run(opts)
}

// buildProvider assembles the LLM provider from env config, falling
// back to a key persisted through the credential manager. Every
// provider is wrapped so a rejected key clears the persisted copy,
// whichever feature hits it first. The returned image generator is nil
// for providers without image support.
func buildProvider(ctx context.Context, st *store.Store) (llm.Provider, llm.ImageGenerator, error) {
	events := st.LLMEvents()
	creds := credential.Load(ctx, st.KV(), defaultUserID)

	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		// Fall back to a previously entered key.
		key := creds.Key()
		if key == "" {
			return nil, nil, err
		}
		cfg := llm.DefaultConfig()
		cfg.Gemini.APIKey = key
		provider, err = llm.NewProvider(ctx, cfg, events)
		if err != nil {
			return nil, nil, err
		}
	}

	provider = credential.Watch(provider, creds)
	return provider, imageGenerator(provider), nil
}

// imageGenerator unwraps the middleware chain looking for image
// support on the base provider.
func imageGenerator(p llm.Provider) llm.ImageGenerator {
	for p != nil {
		if ig, ok := p.(llm.ImageGenerator); ok {
			return ig
		}
		unwrapper, ok := p.(interface{ Unwrap() llm.Provider })
		if !ok {
			return nil
		}
		p = unwrapper.Unwrap()
	}
	return nil
}

// speechGenerator unwraps the middleware chain looking for speech
// synthesis on the base provider.
func speechGenerator(p llm.Provider) llm.SpeechGenerator {
	for p != nil {
		if sg, ok := p.(llm.SpeechGenerator); ok {
			return sg
		}
		unwrapper, ok := p.(interface{ Unwrap() llm.Provider })
		if !ok {
			return nil
		}
		p = unwrapper.Unwrap()
	}
	return nil
}

// textExtractor unwraps the middleware chain looking for document
// extraction on the base provider.
func textExtractor(p llm.Provider) extract.Extractor {
	for p != nil {
		if ex, ok := p.(extract.Extractor); ok {
			return ex
		}
		unwrapper, ok := p.(interface{ Unwrap() llm.Provider })
		if !ok {
			return nil
		}
		p = unwrapper.Unwrap()
	}
	return nil
}

// loadProfile reads the learner's saved grade/subject, letting flags
// override it.
func loadProfile(cmd *cobra.Command, st *store.Store) (grade, subject string, err error) {
	var profile struct {
		Grade   string `json:"grade"`
		Subject string `json:"subject"`
	}
	ns := store.Namespace(defaultUserID)
	if _, err := st.KV().GetJSON(context.Background(), ns, "profile", &profile); err != nil {
		return "", "", err
	}

	grade, subject = profile.Grade, profile.Subject
	if g, _ := cmd.Flags().GetString("grade"); g != "" {
		grade = g
	}
	if s, _ := cmd.Flags().GetString("subject"); s != "" {
		subject = s
	}

	if grade == "" || subject == "" {
		return "", "", fmt.Errorf("no grade/subject configured: pass --grade and --subject, or run hoctot once to set up a profile")
	}
	return grade, subject, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
