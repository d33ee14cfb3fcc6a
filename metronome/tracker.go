package metronome

import (
	"sync"
	"time"

	"github.com/benjamonnguyen/puttempo-go"
)

// Tracker measures one engine start/stop span and hands the resulting
// session record to onSessionEnd. It does not filter short sessions.
type Tracker struct {
	mu           sync.Mutex
	engine       *Engine
	preset       puttempo.PresetRef
	onSessionEnd func(puttempo.SessionRecord)
	sessionStart time.Time
}

func NewTracker(engine *Engine, preset puttempo.PresetRef, onSessionEnd func(puttempo.SessionRecord)) *Tracker {
	return &Tracker{
		engine:       engine,
		preset:       preset,
		onSessionEnd: onSessionEnd,
	}
}

func (t *Tracker) Engine() *Engine {
	return t.engine
}

// SetPreset changes the preset reference written into the next record.
func (t *Tracker) SetPreset(preset puttempo.PresetRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.preset = preset
}

// SessionStart returns the start of the active session, if any.
func (t *Tracker) SessionStart() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionStart, !t.sessionStart.IsZero()
}

// StartSession records the session start and starts the engine. A session
// that is already running keeps its original start.
func (t *Tracker) StartSession() {
	t.mu.Lock()
	if t.sessionStart.IsZero() || !t.engine.Running() {
		t.sessionStart = t.engine.now()
	}
	t.mu.Unlock()
	t.engine.Start()
}

// StopSession stops the engine and returns the finished session. ok is false
// when no session was started.
func (t *Tracker) StopSession() (record puttempo.SessionRecord, ok bool) {
	t.engine.Stop()

	t.mu.Lock()
	if t.sessionStart.IsZero() {
		t.mu.Unlock()
		return puttempo.SessionRecord{}, false
	}
	endedAt := t.engine.now()
	cfg := t.engine.Config()
	record = puttempo.SessionRecord{
		PresetID:        t.preset.ID,
		PresetName:      t.preset.Name,
		BPM:             cfg.BPM,
		BackRatio:       cfg.BackRatio,
		ForwardRatio:    cfg.ForwardRatio,
		StartedAt:       t.sessionStart,
		EndedAt:         endedAt,
		DurationSeconds: int(endedAt.Sub(t.sessionStart) / time.Second),
	}
	t.sessionStart = time.Time{}
	onSessionEnd := t.onSessionEnd
	t.mu.Unlock()

	if onSessionEnd != nil {
		onSessionEnd(record)
	}
	return record, true
}

// ToggleSession stops a running session, returning its record, or starts one.
func (t *Tracker) ToggleSession() (puttempo.SessionRecord, bool) {
	if t.engine.Running() {
		return t.StopSession()
	}
	t.StartSession()
	return puttempo.SessionRecord{}, false
}
