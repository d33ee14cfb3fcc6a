// Package sqlite implements repo interfaces
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/puttempo-go"
)

const SelectAllSessions = "SELECT id, preset_id, preset_name, bpm, back_ratio, forward_ratio, started_at, ended_at, duration_seconds, created_at, updated_at FROM practice_sessions"

type sessionEntity struct {
	ID              string
	PresetID        string
	PresetName      string
	BPM             float64
	BackRatio       float64
	ForwardRatio    float64
	StartedAt       int64
	EndedAt         int64
	DurationSeconds int
	CreatedAt       int64
	UpdatedAt       int64
}

// sessionRepo stores finished practice sessions.
type sessionRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
	now      func() time.Time
}

func NewSessionRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *sessionRepo {
	if logger == nil {
		logger = log.Default()
	}
	return &sessionRepo{
		dbGetter: dbGetter,
		l:        logger,
		now:      time.Now,
	}
}

func (r *sessionRepo) InsertSession(ctx context.Context, session puttempo.SessionRecord) (puttempo.ExistingSessionRecord, error) {
	db := r.dbGetter(ctx)
	existingRecord := puttempo.ExistingSessionRecord{
		SessionRecord:  session,
		ExistingRecord: puttempo.NewExistingRecord(puttempo.SessionID(uuid.NewString()), r.now()),
	}
	e := mapToSessionEntity(existingRecord)

	args := []any{
		e.ID,
		e.PresetID,
		e.PresetName,
		e.BPM,
		e.BackRatio,
		e.ForwardRatio,
		e.StartedAt,
		e.EndedAt,
		e.DurationSeconds,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO practice_sessions (id, preset_id, preset_name, bpm, back_ratio, forward_ratio, started_at, ended_at, duration_seconds, created_at, updated_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating session", "query", query, "args", args)
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return puttempo.ExistingSessionRecord{}, err
	}

	return existingRecord, nil
}

func (r *sessionRepo) DeleteSession(ctx context.Context, id puttempo.SessionID) (puttempo.ExistingSessionRecord, error) {
	existing, err := r.GetSession(ctx, id)
	if err != nil {
		return puttempo.ExistingSessionRecord{}, err
	}

	query := "DELETE FROM practice_sessions WHERE id = ?"
	r.l.Debug("deleting session", "query", query, "id", id)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, id); err != nil {
		return puttempo.ExistingSessionRecord{}, err
	}

	return existing, nil
}

func (r *sessionRepo) GetSession(ctx context.Context, id puttempo.SessionID) (puttempo.ExistingSessionRecord, error) {
	if id == "" {
		return puttempo.ExistingSessionRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllSessions), id,
	)
	return extractSession(row)
}

// ListSessionsSince returns sessions started at or after since, oldest first.
func (r *sessionRepo) ListSessionsSince(ctx context.Context, since time.Time) ([]puttempo.ExistingSessionRecord, error) {
	query := fmt.Sprintf("%s WHERE started_at >= ? ORDER BY started_at", SelectAllSessions)
	r.l.Debug("listing sessions", "query", query, "since", since)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var sessions []puttempo.ExistingSessionRecord
	for rows.Next() {
		session, err := extractSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func extractSession(s scannable) (puttempo.ExistingSessionRecord, error) {
	var e sessionEntity
	if err := s.Scan(&e.ID, &e.PresetID, &e.PresetName, &e.BPM, &e.BackRatio, &e.ForwardRatio, &e.StartedAt, &e.EndedAt, &e.DurationSeconds, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return puttempo.ExistingSessionRecord{}, ErrNotFound
		}
		return puttempo.ExistingSessionRecord{}, err
	}

	return mapToExistingSessionRecord(e), nil
}

func mapToSessionEntity(session puttempo.ExistingSessionRecord) sessionEntity {
	return sessionEntity{
		ID:              string(session.ID),
		PresetID:        session.PresetID,
		PresetName:      session.PresetName,
		BPM:             session.BPM,
		BackRatio:       session.BackRatio,
		ForwardRatio:    session.ForwardRatio,
		StartedAt:       session.StartedAt.Unix(),
		EndedAt:         session.EndedAt.Unix(),
		DurationSeconds: session.DurationSeconds,
		CreatedAt:       session.CreatedAt.Unix(),
		UpdatedAt:       session.UpdatedAt.Unix(),
	}
}

func mapToExistingSessionRecord(e sessionEntity) puttempo.ExistingSessionRecord {
	return puttempo.ExistingSessionRecord{
		ExistingRecord: puttempo.ExistingRecord[puttempo.SessionID]{
			ID:        puttempo.SessionID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		SessionRecord: puttempo.SessionRecord{
			PresetID:        e.PresetID,
			PresetName:      e.PresetName,
			BPM:             e.BPM,
			BackRatio:       e.BackRatio,
			ForwardRatio:    e.ForwardRatio,
			StartedAt:       time.Unix(e.StartedAt, 0),
			EndedAt:         time.Unix(e.EndedAt, 0),
			DurationSeconds: e.DurationSeconds,
		},
	}
}
