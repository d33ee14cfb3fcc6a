package puttempo

import (
	"context"
	"time"
)

const (
	MinSessionSeconds = 10
	MaxSessionSeconds = 7200
)

type SessionID string

// PresetRef identifies the preset a session was practised with. ID is empty
// for ad-hoc settings.
type PresetRef struct {
	ID   string
	Name string
}

type SessionRecord struct {
	PresetID, PresetName string

	//
	BPM          float64
	BackRatio    float64
	ForwardRatio float64

	//
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
}

type ExistingSessionRecord struct {
	ExistingRecord[SessionID]
	SessionRecord
}

type SessionRepo interface {
	InsertSession(context.Context, SessionRecord) (ExistingSessionRecord, error)
	GetSession(ctx context.Context, id SessionID) (ExistingSessionRecord, error)
	DeleteSession(ctx context.Context, id SessionID) (ExistingSessionRecord, error)
	ListSessionsSince(ctx context.Context, since time.Time) ([]ExistingSessionRecord, error)
}
