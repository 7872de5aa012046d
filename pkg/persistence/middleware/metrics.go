package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

type metricsMiddleware struct {
	next     ports.BookmarkStore
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware counts and times store calls by operation and result.
// The collectors are registered on reg when it is non-nil.
func NewMetricsMiddleware(reg prometheus.Registerer) Middleware {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matrixdeck_bookmark_operations_total",
		Help: "Bookmark store calls by operation and result.",
	}, []string{"op", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matrixdeck_bookmark_operation_seconds",
		Help:    "Latency of bookmark store calls.",
		Buckets: []float64{.001, .005, .025, .1, .5, 2},
	}, []string{"op"})
	if reg != nil {
		reg.MustRegister(ops, duration)
	}
	return func(next ports.BookmarkStore) ports.BookmarkStore {
		return &metricsMiddleware{next: next, ops: ops, duration: duration}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrBookmarkNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.ops.WithLabelValues(op, result).Inc()
}

func (m *metricsMiddleware) Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error {
	start := time.Now()
	err := m.next.Save(ctx, deckID, bookmark)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, deckID string) (domain.Bookmark, error) {
	start := time.Now()
	bm, err := m.next.Load(ctx, deckID)
	m.observe("load", start, err)
	return bm, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, deckID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, deckID)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
