package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics is the engine's observability surface, registered only
// against the registerer the caller supplies via WithRegisterer; a nil
// registerer means no metric exists at all, keeping the hot path free
// of observation cost by default.
type metrics struct {
	multiplySeconds prometheus.Histogram
	balancingMoves  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)

	return &metrics{
		multiplySeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "symspmv",
			Name:      "multiply_duration_seconds",
			Help:      "Wall time of one y = A*x multiply.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		balancingMoves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "symspmv",
			Name:      "colorer_balancing_moves_total",
			Help:      "Vertices recolored by the load-balancing pass during tuning.",
		}),
	}
}
