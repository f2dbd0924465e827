package observability

import (
	"fmt"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by build lifecycle hooks.
type Metrics struct {
	EntitiesBuilt *prometheus.CounterVec
	Collisions    prometheus.Counter
	BuildFailures prometheus.Counter
	BuildDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		EntitiesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datatree_entities_built_total",
				Help: "Total number of entities inserted into data trees",
			},
			[]string{"kind"},
		),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datatree_name_collisions_total",
			Help: "Total number of entity name collisions",
		}),
		BuildFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datatree_build_failures_total",
			Help: "Total number of aborted tree builds",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "datatree_build_duration_seconds",
			Help:    "Duration of successful tree builds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.EntitiesBuilt, m.Collisions, m.BuildFailures, m.BuildDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEntityBuilt: func(e *domain.EntityEvent) {
			m.EntitiesBuilt.WithLabelValues(string(e.Kind)).Inc()
		},
		OnCollision: func(*domain.CollisionWarning) {
			m.Collisions.Inc()
		},
		OnTreeBuilt: func(e *domain.TreeEvent) {
			m.BuildDuration.Observe(e.Duration.Seconds())
		},
		OnBuildError: func(*domain.BuildErrorEvent) {
			m.BuildFailures.Inc()
		},
	}
}

// Combine fans every event out to each of the given hook sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEntityBuilt: func(e *domain.EntityEvent) {
			for _, h := range sets {
				if h.OnEntityBuilt != nil {
					h.OnEntityBuilt(e)
				}
			}
		},
		OnCollision: func(w *domain.CollisionWarning) {
			for _, h := range sets {
				if h.OnCollision != nil {
					h.OnCollision(w)
				}
			}
		},
		OnTreeBuilt: func(e *domain.TreeEvent) {
			for _, h := range sets {
				if h.OnTreeBuilt != nil {
					h.OnTreeBuilt(e)
				}
			}
		},
		OnBuildError: func(e *domain.BuildErrorEvent) {
			for _, h := range sets {
				if h.OnBuildError != nil {
					h.OnBuildError(e)
				}
			}
		},
	}
}
