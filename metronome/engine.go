// Package metronome drives the putting metronome: a self-rescheduling phase
// loop with a single pending timer, and a tracker that turns one start/stop
// span into a practice session record.
package metronome

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/metrics"
)

// MaxCatchUp is how late a phase boundary may fire and still keep the loop
// anchored to its schedule. Later callbacks re-anchor to the current time.
const MaxCatchUp = 50 * time.Millisecond

// Summary describes one completed start/stop span of the engine.
type Summary struct {
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
}

// Options contains the collaborators of an Engine. Nil fields get no-op defaults.
type Options struct {
	Scheduler Scheduler
	Sound     SoundEmitter
	Haptics   HapticEmitter
	// OnTick is called once per phase entered, after feedback is emitted.
	// It may call back into the Engine.
	OnTick func(puttempo.Phase)
	Logger *log.Logger
}

type Engine struct {
	mu      sync.Mutex
	cfg     puttempo.TempoConfig
	sched   Scheduler
	sound   SoundEmitter
	haptics HapticEmitter
	onTick  func(puttempo.Phase)
	l       *log.Logger

	running   bool
	phase     puttempo.Phase
	startedAt time.Time
	phaseDue  time.Time
	timer     Timer
	// gen invalidates callbacks and in-flight transitions. It changes on every
	// start, stop, reconfigure and transition.
	gen uint64
}

// New creates an idle Engine. cfg must already be validated.
func New(cfg puttempo.TempoConfig, options Options) *Engine {
	if options.Scheduler == nil {
		options.Scheduler = NewClockScheduler(clockwork.NewRealClock())
	}
	if options.Sound == nil {
		options.Sound = nopSound{}
	}
	if options.Haptics == nil {
		options.Haptics = nopHaptics{}
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	return &Engine{
		cfg:     cfg,
		sched:   options.Scheduler,
		sound:   options.Sound,
		haptics: options.Haptics,
		onTick:  options.OnTick,
		l:       options.Logger,
		phase:   puttempo.PhaseIdle,
	}
}

// Start enters the first phase of the cycle and begins the timer loop.
// Calling Start on a running engine does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	now := e.sched.Now()
	e.running = true
	e.startedAt = now
	e.phase = puttempo.FirstPhase(e.cfg.Model)
	e.gen++
	token, phase, cfg := e.gen, e.phase, e.cfg
	e.mu.Unlock()

	metrics.MetronomeRunning.Set(1)
	e.l.Debug("metronome started", "bpm", cfg.BPM, "back", cfg.BackRatio, "forward", cfg.ForwardRatio, "model", cfg.Model)
	e.enter(token, phase, cfg, now)
}

// Stop cancels the pending timer and returns the span since Start.
// ok is false if the engine was not running.
func (e *Engine) Stop() (summary Summary, ok bool) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return Summary{}, false
	}
	e.cancelLocked()
	e.running = false
	e.phase = puttempo.PhaseIdle
	e.gen++

	end := e.sched.Now()
	summary = Summary{
		StartedAt:       e.startedAt,
		EndedAt:         end,
		DurationSeconds: int(end.Sub(e.startedAt) / time.Second),
	}
	e.startedAt = time.Time{}
	e.mu.Unlock()

	metrics.MetronomeRunning.Set(0)
	e.l.Debug("metronome stopped", "duration", summary.DurationSeconds)
	return summary, true
}

// Toggle stops a running engine, returning its summary, or starts an idle one.
func (e *Engine) Toggle() (Summary, bool) {
	if e.Running() {
		return e.Stop()
	}
	e.Start()
	return Summary{}, false
}

// Reconfigure replaces the tempo config. A running engine stays in its
// current phase and reschedules the phase boundary from now using the new
// durations. No feedback is emitted.
func (e *Engine) Reconfigure(cfg puttempo.TempoConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	if !e.running {
		return
	}
	e.cancelLocked()
	e.gen++
	e.scheduleLocked(e.sched.Now())
	e.l.Debug("metronome reconfigured", "phase", e.phase, "bpm", cfg.BPM, "back", cfg.BackRatio, "forward", cfg.ForwardRatio)
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) Phase() puttempo.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Engine) Config() puttempo.TempoConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Steps returns the current cycle for display.
func (e *Engine) Steps() []puttempo.Step {
	return puttempo.Schedule(e.Config())
}

// now reads the scheduler clock. Tracker uses it so session records share the
// engine's time base, including fake clocks in tests.
func (e *Engine) now() time.Time {
	return e.sched.Now()
}

// advance is the timer callback for the boundary scheduled under token.
func (e *Engine) advance(token uint64) {
	e.mu.Lock()
	if !e.running || token != e.gen {
		e.mu.Unlock()
		return
	}
	now := e.sched.Now()
	anchor := e.phaseDue
	lateness := now.Sub(anchor)
	if lateness > MaxCatchUp {
		anchor = now
		metrics.Reanchors.Inc()
	}
	e.timer = nil
	e.phase = puttempo.NextPhase(e.cfg.Model, e.phase)
	e.gen++
	next, phase, cfg := e.gen, e.phase, e.cfg
	e.mu.Unlock()

	if lateness > 0 {
		metrics.TimerLateness.Observe(lateness.Seconds())
	}
	e.enter(next, phase, cfg, anchor)
}

// enter emits feedback for phase and then schedules its end, unless a stop or
// reconfigure happened while emitting.
func (e *Engine) enter(token uint64, phase puttempo.Phase, cfg puttempo.TempoConfig, enteredAt time.Time) {
	metrics.PhaseTransitions.WithLabelValues(phase.String()).Inc()
	e.emit(phase, cfg)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running || token != e.gen {
		return
	}
	e.scheduleLocked(enteredAt)
}

func (e *Engine) scheduleLocked(anchor time.Time) {
	e.phaseDue = anchor.Add(puttempo.StepDuration(e.cfg, e.phase))
	delay := e.phaseDue.Sub(e.sched.Now())
	if delay < 0 {
		delay = 0
	}
	token := e.gen
	e.timer = e.sched.AfterFunc(delay, func() {
		e.advance(token)
	})
}

func (e *Engine) cancelLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) emit(phase puttempo.Phase, cfg puttempo.TempoConfig) {
	profile := phase.Profile()
	if profile.Sound && cfg.Output.PlaysSound() && cfg.Sound != puttempo.SoundSilent {
		e.safely("sound", func() { e.sound.PlaySound(cfg.Sound) })
	}
	if profile.Haptic && cfg.Output.Vibrates() {
		e.safely("haptic", func() { e.haptics.Vibrate(profile.Intensity) })
	}
	if e.onTick != nil {
		e.safely("tick", func() { e.onTick(phase) })
	}
}

// safely keeps a misbehaving collaborator from stalling the loop.
func (e *Engine) safely(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FeedbackErrors.WithLabelValues(name).Inc()
			e.l.Error("feedback panicked", "emitter", name, "err", fmt.Sprint(r))
		}
	}()
	fn()
}
