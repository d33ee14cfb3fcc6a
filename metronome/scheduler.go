package metronome

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a pending deferred callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Scheduler is the relative-delay primitive phase boundaries are scheduled on.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct {
	clock clockwork.Clock
}

// NewClockScheduler schedules on clock. Pass clockwork.NewRealClock() outside tests.
func NewClockScheduler(clock clockwork.Clock) Scheduler {
	return clockScheduler{clock: clock}
}

func (s clockScheduler) Now() time.Time {
	return s.clock.Now()
}

func (s clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.clock.AfterFunc(d, f)
}
