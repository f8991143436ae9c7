package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/vendsim/pkg/domain"
)

// Metrics holds the collectors for machine activity.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Dispenses   *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendsim_transitions_total",
				Help: "Total number of machine transitions",
			},
			[]string{"kind", "symbol"},
		),
		Dispenses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendsim_dispenses_total",
				Help: "Total number of dispensed products",
			},
			[]string{"kind", "product"},
		),
	}
	reg.MustRegister(m.Transitions, m.Dispenses)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
// Chain them with any other hooks before handing them to a machine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.Kind), string(e.Symbol)).Inc()
		},
		OnDispense: func(e domain.DispenseEvent) {
			m.Dispenses.WithLabelValues(string(e.Kind), string(e.Product)).Inc()
		},
	}
}
