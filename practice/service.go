// Package practice persists finished metronome sessions and reports practice stats.
package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/metrics"
)

// ErrTooShort is returned by Save for sessions under the minimum duration.
var ErrTooShort = errors.New("session too short to save")

type Bounds struct {
	MinSeconds int
	MaxSeconds int
}

func DefaultBounds() Bounds {
	return Bounds{
		MinSeconds: puttempo.MinSessionSeconds,
		MaxSeconds: puttempo.MaxSessionSeconds,
	}
}

type Service struct {
	repo   puttempo.SessionRepo
	tx     transactor.Transactor
	bounds Bounds
	l      *log.Logger
	now    func() time.Time
}

func NewService(repo puttempo.SessionRepo, tx transactor.Transactor, bounds Bounds, l *log.Logger) *Service {
	if l == nil {
		l = log.Default()
	}
	return &Service{
		repo:   repo,
		tx:     tx,
		bounds: bounds,
		l:      l,
		now:    time.Now,
	}
}

// Save stores a finished session once. Sessions shorter than the minimum are
// skipped with ErrTooShort; longer than the maximum are capped at it.
// Failures are not retried.
func (s *Service) Save(ctx context.Context, record puttempo.SessionRecord) (puttempo.ExistingSessionRecord, error) {
	if record.DurationSeconds < s.bounds.MinSeconds {
		metrics.SessionsSkipped.WithLabelValues("too_short").Inc()
		s.l.Debug("skipping short session", "duration", record.DurationSeconds, "min", s.bounds.MinSeconds)
		return puttempo.ExistingSessionRecord{}, ErrTooShort
	}
	if s.bounds.MaxSeconds > 0 && record.DurationSeconds > s.bounds.MaxSeconds {
		s.l.Warn("capping session duration", "duration", record.DurationSeconds, "max", s.bounds.MaxSeconds)
		record.DurationSeconds = s.bounds.MaxSeconds
	}

	var saved puttempo.ExistingSessionRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.InsertSession(ctx, record)
		return err
	})
	if err != nil {
		metrics.SessionsSkipped.WithLabelValues("error").Inc()
		return puttempo.ExistingSessionRecord{}, fmt.Errorf("failed to save session: %w", err)
	}
	metrics.SessionsSaved.Inc()
	s.l.Info("saved session", "id", saved.ID, "duration", saved.DurationSeconds, "preset", saved.PresetName)
	return saved, nil
}

// Stats aggregates the sessions of the last days days.
func (s *Service) Stats(ctx context.Context, days int) (puttempo.PracticeStats, error) {
	now := s.now()
	existing, err := s.repo.ListSessionsSince(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		return puttempo.PracticeStats{}, fmt.Errorf("failed to list sessions: %w", err)
	}
	records := make([]puttempo.SessionRecord, 0, len(existing))
	for _, e := range existing {
		records = append(records, e.SessionRecord)
	}
	return puttempo.ComputeStats(records, now, days), nil
}
