// Package audio turns the raw PCM buffers returned by the speech
// service into playable WAV data, caching decoded buffers so repeated
// playback of the same text never re-requests generation.
package audio

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/minhvu/hoctot/internal/llm"
)

// pcmBitsPerSample matches the upstream service output: 16-bit signed
// little-endian mono samples.
const (
	pcmBitsPerSample = 16
	pcmChannels      = 1
)

// WAV wraps raw PCM in a RIFF/WAVE container so any player can decode it.
func WAV(pcm *llm.PCMAudio) []byte {
	dataLen := len(pcm.Data)
	byteRate := pcm.SampleRate * pcmChannels * pcmBitsPerSample / 8
	blockAlign := pcmChannels * pcmBitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(pcmChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(pcm.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(pcmBitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(pcm.Data)

	return buf.Bytes()
}

// Player plays one decoded waveform. Implementations are best-effort:
// a missing audio device degrades to a no-op, never a crash.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// Speaker reads texts aloud, caching decoded buffers per text.
type Speaker struct {
	speech llm.SpeechGenerator
	player Player

	mu    sync.Mutex
	cache map[[32]byte][]byte
}

// NewSpeaker creates a Speaker. player may be nil to only decode.
func NewSpeaker(speech llm.SpeechGenerator, player Player) *Speaker {
	return &Speaker{
		speech: speech,
		player: player,
		cache:  make(map[[32]byte][]byte),
	}
}

// Say synthesizes and plays the text once. Identical text reuses the
// cached waveform instead of calling the service again.
func (s *Speaker) Say(ctx context.Context, text string) error {
	wav, err := s.waveform(ctx, text)
	if err != nil {
		return err
	}
	if s.player == nil {
		return nil
	}
	return s.player.Play(ctx, wav)
}

func (s *Speaker) waveform(ctx context.Context, text string) ([]byte, error) {
	key := sha256.Sum256([]byte(text))

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	if s.speech == nil {
		return nil, fmt.Errorf("speech generation not available")
	}

	pcm, err := s.speech.GenerateSpeech(ctx, text)
	if err != nil {
		return nil, err
	}
	wav := WAV(pcm)

	s.mu.Lock()
	s.cache[key] = wav
	s.mu.Unlock()

	return wav, nil
}
