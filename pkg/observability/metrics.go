package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the presenter collectors.
type Metrics struct {
	SlideVisits *prometheus.CounterVec
	Rejected    *prometheus.CounterVec
	Dwell       prometheus.Histogram
	Position    prometheus.Gauge

	mu      sync.Mutex
	entered time.Time
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SlideVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matrixdeck_slide_visits_total",
				Help: "Total number of slide entries",
			},
			[]string{"position", "trigger"},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matrixdeck_navigation_rejected_total",
				Help: "Navigation requests that changed nothing",
			},
			[]string{"trigger"},
		),
		Dwell: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "matrixdeck_slide_dwell_seconds",
				Help:    "Time spent on a slide before leaving it",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		Position: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "matrixdeck_current_slide",
				Help: "1-based position of the slide on screen",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.SlideVisits, m.Rejected, m.Dwell, m.Position)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(_ context.Context, e *domain.SlideEvent) {
			m.SlideVisits.WithLabelValues(strconv.Itoa(e.Position), string(e.Trigger)).Inc()
			m.Position.Set(float64(e.Position))
			m.mu.Lock()
			m.entered = e.Timestamp
			m.mu.Unlock()
		},
		OnSlideLeave: func(_ context.Context, e *domain.SlideEvent) {
			m.mu.Lock()
			entered := m.entered
			m.mu.Unlock()
			if entered.IsZero() || e.Timestamp.Before(entered) {
				return
			}
			m.Dwell.Observe(e.Timestamp.Sub(entered).Seconds())
		},
		OnNavigationRejected: func(_ context.Context, e *domain.RejectedEvent) {
			m.Rejected.WithLabelValues(string(e.Trigger)).Inc()
		},
	}
}
