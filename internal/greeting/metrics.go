package greeting

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records greet call outcomes.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the greet collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greetdeck",
			Name:      "greet_calls_total",
			Help:      "Greet calls by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "greetdeck",
			Name:      "greet_duration_seconds",
			Help:      "Latency of greet calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Instrument wraps g so every call is counted and timed.
func Instrument(g Greeter, m *Metrics) Greeter {
	return GreeterFunc(func(ctx context.Context, name string) (string, error) {
		start := time.Now()
		greeting, err := g.Greet(ctx, name)
		m.duration.Observe(time.Since(start).Seconds())

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.calls.WithLabelValues(outcome).Inc()
		return greeting, err
	})
}
