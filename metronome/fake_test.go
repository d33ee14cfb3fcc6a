package metronome

import (
	"sync"
	"time"

	"github.com/benjamonnguyen/puttempo-go"
)

// fakeScheduler runs callbacks synchronously from Advance, in due order.
type fakeScheduler struct {
	mu        sync.Mutex
	now       time.Time
	lag       time.Duration // added to the clock when a timer fires
	timers    []*fakeTimer
	scheduled int
}

type fakeTimer struct {
	s       *fakeScheduler
	due     time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (s *fakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, due: s.now.Add(d), f: f}
	s.timers = append(s.timers, t)
	s.scheduled++
	return t
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending counts timers that have neither fired nor been stopped.
func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *fakeTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.due.After(target) {
				continue
			}
			if next == nil || t.due.Before(next.due) {
				next = t
			}
		}
		if next == nil {
			if target.After(s.now) {
				s.now = target
			}
			s.mu.Unlock()
			return
		}
		next.fired = true
		fireAt := next.due.Add(s.lag)
		if fireAt.After(s.now) {
			s.now = fireAt
		}
		s.mu.Unlock()
		next.f()
	}
}

type tick struct {
	phase puttempo.Phase
	at    time.Time
}

// recorder captures everything the engine emits along with the engine phase
// at the time of the call.
type recorder struct {
	mu     sync.Mutex
	sched  *fakeScheduler
	phase  func() puttempo.Phase
	sounds []puttempo.Phase
	vibes  []puttempo.Intensity
	ticks  []tick
	ids    []puttempo.SoundID
}

func (r *recorder) PlaySound(id puttempo.SoundID) {
	p := r.phase()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds = append(r.sounds, p)
	r.ids = append(r.ids, id)
}

func (r *recorder) Vibrate(i puttempo.Intensity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vibes = append(r.vibes, i)
}

func (r *recorder) OnTick(p puttempo.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, tick{phase: p, at: r.sched.Now()})
}

func (r *recorder) Ticks() []tick {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tick(nil), r.ticks...)
}

func (r *recorder) Phases() []puttempo.Phase {
	var phases []puttempo.Phase
	for _, t := range r.Ticks() {
		phases = append(phases, t.phase)
	}
	return phases
}

func newTestEngine(cfg puttempo.TempoConfig) (*Engine, *fakeScheduler, *recorder) {
	sched := newFakeScheduler()
	rec := &recorder{sched: sched}
	e := New(cfg, Options{
		Scheduler: sched,
		Sound:     rec,
		Haptics:   rec,
		OnTick:    rec.OnTick,
	})
	rec.phase = e.Phase
	return e, sched, rec
}

func tempo(bpm, back, forward, interval float64) puttempo.TempoConfig {
	cfg := puttempo.DefaultTempoConfig()
	cfg.BPM = bpm
	cfg.BackRatio = back
	cfg.ForwardRatio = forward
	cfg.IntervalSeconds = interval
	cfg.Output = puttempo.OutputBoth
	return cfg
}
