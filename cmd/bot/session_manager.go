package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/feedback"
	"github.com/benjamonnguyen/puttempo-go/metronome"
)

var (
	ErrSessionExists = errors.New("a metronome is already running")
	ErrNoSession     = errors.New("no metronome is running")
)

type startSessionRequest struct {
	guildID, textCID, voiceCID string
	preset                     puttempo.PresetRef
	cfg                        puttempo.TempoConfig
}

func (r startSessionRequest) key() sessionKey {
	return sessionKey{guildID: r.guildID, channelID: r.voiceCID}
}

// SessionManager runs at most one metronome per process.
type SessionManager interface {
	ActiveSession() (Session, bool)
	StartSession(context.Context, startSessionRequest) (Session, error)
	// UpdateSession retunes the running metronome without restarting it.
	UpdateSession(context.Context, startSessionRequest) (Session, error)
	EndSession(context.Context) (Session, puttempo.SessionRecord, error)

	OnSessionEnd(func(context.Context, Session, puttempo.SessionRecord))
	Shutdown() error
}

type sessionKey struct {
	guildID, channelID string
}

func (k sessionKey) String() string {
	return fmt.Sprintf("%s:%s", k.guildID, k.channelID)
}

func (k sessionKey) validate() error {
	if k.guildID == "" || k.channelID == "" {
		return fmt.Errorf("sessionKey requires guild and voice channel IDs")
	}
	return nil
}

type voiceOutput interface {
	feedback.Player
	Close() error
}

type joinVoiceFunc func(guildID, channelID string) (voiceOutput, error)

type activeSession struct {
	Session
	tracker *metronome.Tracker
	voice   voiceOutput
	sound   *feedback.SoundEmitter
	cancel  context.CancelFunc
}

type sessionManager struct {
	mu        sync.Mutex
	active    *activeSession
	joinVoice joinVoiceFunc
	scheduler metronome.Scheduler
	onTick    func(puttempo.Phase)
	parentCtx context.Context
	l         *log.Logger

	onSessionEnd func(context.Context, Session, puttempo.SessionRecord)
}

// NewSessionManager plays metronomes through joinVoice. scheduler may be nil
// for the real clock and onTick may be nil.
func NewSessionManager(ctx context.Context, joinVoice joinVoiceFunc, scheduler metronome.Scheduler, onTick func(puttempo.Phase), l *log.Logger) SessionManager {
	if l == nil {
		l = log.Default()
	}
	return &sessionManager{
		joinVoice: joinVoice,
		scheduler: scheduler,
		onTick:    onTick,
		parentCtx: ctx,
		l:         l,
	}
}

func (m *sessionManager) OnSessionEnd(handler func(context.Context, Session, puttempo.SessionRecord)) {
	m.onSessionEnd = handler
}

func (m *sessionManager) ActiveSession() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Session{}, false
	}
	return m.active.Session, true
}

func (m *sessionManager) StartSession(ctx context.Context, req startSessionRequest) (Session, error) {
	if err := req.key().validate(); err != nil {
		return Session{}, err
	}
	cfg := voiceConfig(req.cfg)
	if err := cfg.Validate(); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return Session{}, ErrSessionExists
	}

	voice, err := m.joinVoice(req.guildID, req.voiceCID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to start session: %w", err)
	}

	sessionCtx, cancel := context.WithCancel(m.parentCtx)
	sound := feedback.NewSoundEmitter(sessionCtx, voice, m.l)
	engine := metronome.New(cfg, metronome.Options{
		Scheduler: m.scheduler,
		Sound:     sound,
		OnTick:    m.onTick,
		Logger:    m.l,
	})
	a := &activeSession{
		Session: Session{
			guildID:  req.guildID,
			textCID:  req.textCID,
			voiceCID: req.voiceCID,
			preset:   req.preset,
			cfg:      cfg,
		},
		voice:  voice,
		sound:  sound,
		cancel: cancel,
	}
	a.tracker = metronome.NewTracker(engine, req.preset, func(record puttempo.SessionRecord) {
		if m.onSessionEnd != nil {
			// saving must outlive a shutdown of the parent context
			m.onSessionEnd(context.WithoutCancel(m.parentCtx), a.Session, record)
		}
	})
	a.tracker.StartSession()
	a.startedAt, _ = a.tracker.SessionStart()
	m.active = a

	m.l.Info("started session", "key", a.key().String(), "bpm", cfg.BPM, "preset", req.preset.ID)
	return a.Session, nil
}

func (m *sessionManager) UpdateSession(ctx context.Context, req startSessionRequest) (Session, error) {
	cfg := voiceConfig(req.cfg)
	if err := cfg.Validate(); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Session{}, ErrNoSession
	}
	if m.active.key() != req.key() {
		return Session{}, ErrSessionExists
	}

	m.active.tracker.SetPreset(req.preset)
	m.active.tracker.Engine().Reconfigure(cfg)
	m.active.cfg = cfg
	m.active.preset = req.preset
	m.active.textCID = req.textCID
	m.l.Info("updated session", "key", m.active.key().String(), "bpm", cfg.BPM, "preset", req.preset.ID)
	return m.active.Session, nil
}

func (m *sessionManager) EndSession(ctx context.Context) (Session, puttempo.SessionRecord, error) {
	m.mu.Lock()
	a := m.active
	m.active = nil
	m.mu.Unlock()
	if a == nil {
		return Session{}, puttempo.SessionRecord{}, ErrNoSession
	}

	record, _ := a.tracker.StopSession()
	a.cancel()
	a.sound.Wait()
	if err := a.voice.Close(); err != nil {
		m.l.Error("failed to leave voice channel", "key", a.key().String(), "err", err)
	}
	m.l.Info("ended session", "key", a.key().String(), "duration", record.DurationSeconds)
	return a.Session, record, nil
}

func (m *sessionManager) Shutdown() error {
	_, _, err := m.EndSession(m.parentCtx)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	return err
}

// voiceConfig forces sound output. Voice channels cannot vibrate.
func voiceConfig(cfg puttempo.TempoConfig) puttempo.TempoConfig {
	cfg.Output = puttempo.OutputSound
	cfg.Model = puttempo.FullModel
	return cfg
}
