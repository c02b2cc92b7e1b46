package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ExternalPlayer shells out to the platform's audio player. Best
// effort: when no player is installed, Unavailable reports it and the
// caller degrades to silent operation.
type ExternalPlayer struct{}

// command returns the player binary and its arguments for a WAV file.
func (ExternalPlayer) command() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "afplay", nil
	default:
		return "aplay", []string{"-q"}
	}
}

// Unavailable reports whether no player binary can be found.
func (p ExternalPlayer) Unavailable() bool {
	bin, _ := p.command()
	_, err := exec.LookPath(bin)
	return err != nil
}

// Play writes the waveform to a temp file and plays it once.
func (p ExternalPlayer) Play(ctx context.Context, wav []byte) error {
	bin, args := p.command()
	if _, err := exec.LookPath(bin); err != nil {
		return nil // no player installed; stay silent
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("hoctot-%d.wav", os.Getpid()))
	if err := os.WriteFile(tmp, wav, 0o600); err != nil {
		return fmt.Errorf("write waveform: %w", err)
	}
	defer os.Remove(tmp)

	cmd := exec.CommandContext(ctx, bin, append(args, tmp)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play waveform: %w", err)
	}
	return nil
}
