package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gesturify/internal/dispatcher"
)

// Metrics holds the server's Prometheus collectors on a private registry
type Metrics struct {
	registry          *prometheus.Registry
	commands          *prometheus.CounterVec
	injectionDuration prometheus.Histogram
	injectionFailures prometheus.Counter
	gesturesMapped    prometheus.Gauge
}

// NewMetrics creates the collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gesturify",
			Name:      "commands_total",
			Help:      "Gesture commands handled, by result.",
		}, []string{"result"}),
		injectionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gesturify",
			Name:      "injection_duration_seconds",
			Help:      "Time spent injecting a key for a mapped gesture.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2},
		}),
		injectionFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gesturify",
			Name:      "injection_failures_total",
			Help:      "Key injections that reported a failure.",
		}),
		gesturesMapped: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gesturify",
			Name:      "gestures_configured",
			Help:      "Number of gestures in the mapping table.",
		}),
	}
}

// ObserveInjection is a dispatcher.InjectHook
func (m *Metrics) ObserveInjection(action string, elapsed time.Duration, err error) {
	m.injectionDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.injectionFailures.Inc()
	}
}

func (m *Metrics) observeResult(res dispatcher.Result) {
	m.commands.WithLabelValues(res.Kind.String()).Inc()
}

func (m *Metrics) setGestures(n int) {
	m.gesturesMapped.Set(float64(n))
}

func (m *Metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
