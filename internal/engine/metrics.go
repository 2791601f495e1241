package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts simulated work for a scheduler.
type Metrics struct {
	pulses  *prometheus.CounterVec
	presses prometheus.Counter
}

// NewMetrics creates the scheduler counters and registers them with reg.
// A nil reg creates unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// pulses counts delivered pulses by level
		pulses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsenet_pulses_total",
			Help: "Total pulses delivered by level",
		}, []string{"level"}),

		// presses counts completed button presses
		presses: factory.NewCounter(prometheus.CounterOpts{
			Name: "pulsenet_presses_total",
			Help: "Total button presses driven to quiescence",
		}),
	}
}

func (m *Metrics) observePress(c Counts) {
	m.presses.Inc()
	m.pulses.WithLabelValues("low").Add(float64(c.Low))
	m.pulses.WithLabelValues("high").Add(float64(c.High))
}
