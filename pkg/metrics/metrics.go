package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder instruments outgoing gateway calls and exposes them for scraping
// through the local status server.
type Recorder struct {
	registry     *prometheus.Registry
	handler      http.Handler
	callDuration *prometheus.HistogramVec
	callTotal    *prometheus.CounterVec
}

// NewRecorder registers the gateway collectors on a private registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	callDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_call_duration_seconds",
		Help:    "Duration of admin API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	callTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_calls_total",
		Help: "Total admin API calls by outcome",
	}, []string{"operation", "outcome"})

	registry.MustRegister(callDuration, callTotal)

	return &Recorder{
		registry:     registry,
		handler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		callDuration: callDuration,
		callTotal:    callTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveCall records one gateway call. Outcome is "ok" or the error code.
func (r *Recorder) ObserveCall(operation, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.callDuration.WithLabelValues(operation).Observe(duration.Seconds())
	r.callTotal.WithLabelValues(operation, outcome).Inc()
}
