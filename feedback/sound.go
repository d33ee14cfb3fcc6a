// Package feedback turns metronome phases into sound and haptic output.
package feedback

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/metrics"
)

// Player plays one sound on some output device.
type Player interface {
	Play(ctx context.Context, id puttempo.SoundID) error
}

// SoundEmitter plays sounds on a Player without blocking the caller.
// Playback errors are logged and counted, never returned.
type SoundEmitter struct {
	ctx    context.Context
	player Player
	l      *log.Logger
	wg     sync.WaitGroup
}

func NewSoundEmitter(ctx context.Context, player Player, l *log.Logger) *SoundEmitter {
	if l == nil {
		l = log.Default()
	}
	return &SoundEmitter{
		ctx:    ctx,
		player: player,
		l:      l,
	}
}

func (s *SoundEmitter) PlaySound(id puttempo.SoundID) {
	if id == puttempo.SoundSilent || s.ctx.Err() != nil {
		return
	}
	s.wg.Go(func() {
		if err := s.player.Play(s.ctx, id); err != nil {
			metrics.FeedbackErrors.WithLabelValues("sound").Inc()
			s.l.Warn("failed to play sound", "sound", id, "err", err)
		}
	})
}

// Wait blocks until every sound started so far has returned.
func (s *SoundEmitter) Wait() {
	s.wg.Wait()
}
