package feedback

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/puttempo-go"
	"github.com/benjamonnguyen/puttempo-go/metrics"
)

// Actuator drives a vibration device.
type Actuator interface {
	Pulse(puttempo.Intensity) error
}

// HapticEmitter forwards pulses to an Actuator while enabled, without
// blocking the caller. Devices without haptics report errors that are logged
// at debug and dropped.
type HapticEmitter struct {
	actuator Actuator
	enabled  atomic.Bool
	l        *log.Logger
	wg       sync.WaitGroup
}

func NewHapticEmitter(actuator Actuator, l *log.Logger) *HapticEmitter {
	if l == nil {
		l = log.Default()
	}
	h := &HapticEmitter{
		actuator: actuator,
		l:        l,
	}
	h.enabled.Store(true)
	return h
}

func (h *HapticEmitter) SetEnabled(enabled bool) {
	h.enabled.Store(enabled)
}

func (h *HapticEmitter) Enabled() bool {
	return h.enabled.Load()
}

func (h *HapticEmitter) Vibrate(intensity puttempo.Intensity) {
	if !h.enabled.Load() {
		return
	}
	h.wg.Go(func() {
		if err := h.actuator.Pulse(intensity); err != nil {
			metrics.FeedbackErrors.WithLabelValues("haptic").Inc()
			h.l.Debug("haptic pulse not supported", "intensity", intensity, "err", err)
		}
	})
}

// Wait blocks until every pulse started so far has returned.
func (h *HapticEmitter) Wait() {
	h.wg.Wait()
}

// LogActuator stands in for a vibration motor on hosts that have none.
type LogActuator struct {
	L *log.Logger
}

func (a LogActuator) Pulse(intensity puttempo.Intensity) error {
	l := a.L
	if l == nil {
		l = log.Default()
	}
	l.Info("pulse", "intensity", intensity)
	return nil
}
