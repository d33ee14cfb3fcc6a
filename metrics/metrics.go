// Package metrics holds the prometheus collectors shared by the engine and its emitters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MetronomeRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "metronome_running",
		Help: "1 while the metronome loop is running",
	})

	PhaseTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metronome_phase_transitions_total",
		Help: "Phases entered, by phase",
	}, []string{"phase"})

	TimerLateness = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "metronome_timer_lateness_seconds",
		Help:    "Delay between a phase's scheduled boundary and the callback firing",
		Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25, 1.0},
	})

	Reanchors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metronome_reanchors_total",
		Help: "Transitions that fired too late to catch up and were re-anchored to now",
	})

	FeedbackErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_errors_total",
		Help: "Failed sound or haptic emissions",
	}, []string{"emitter"})

	SessionsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "practice_sessions_saved_total",
		Help: "Practice sessions persisted",
	})

	SessionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "practice_sessions_skipped_total",
		Help: "Practice sessions not persisted, by reason",
	}, []string{"reason"})

	TickClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tickstream_clients",
		Help: "Connected tick stream websocket clients",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
