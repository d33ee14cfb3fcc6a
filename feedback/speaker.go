package feedback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/benjamonnguyen/puttempo-go"
)

const SampleRate = 44100

// Speaker plays <dir>/<sound>.wav on the local audio device.
type Speaker struct {
	audio *audio.Context
	clips *ClipCache[[]byte]

	mu      sync.Mutex
	players map[puttempo.SoundID]*audio.Player
}

// NewSpeaker wraps ctx, which must be the process's only audio context and
// run at SampleRate.
func NewSpeaker(ctx *audio.Context, dir string) *Speaker {
	return &Speaker{
		audio: ctx,
		clips: NewClipCache(func(id puttempo.SoundID) ([]byte, error) {
			return loadWAV(ctx.SampleRate(), filepath.Join(dir, string(id)+".wav"))
		}),
		players: make(map[puttempo.SoundID]*audio.Player),
	}
}

func (s *Speaker) Preload(ids ...puttempo.SoundID) error {
	return s.clips.Preload(ids...)
}

// Play restarts the clip from the beginning. It returns once playback has begun.
func (s *Speaker) Play(ctx context.Context, id puttempo.SoundID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pcm, err := s.clips.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		p = s.audio.NewPlayerFromBytes(pcm)
		s.players[id] = p
	}
	if err := p.SetPosition(0); err != nil {
		return fmt.Errorf("rewinding %s: %w", id, err)
	}
	p.Play()
	return nil
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.players {
		if err := p.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", id, err)
		}
		delete(s.players, id)
	}
	return nil
}

// loadWAV decodes the WAV at path into 16-bit stereo PCM at sampleRate.
func loadWAV(sampleRate int, path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("wav %q has no audio data", path)
	}
	return pcm, nil
}
