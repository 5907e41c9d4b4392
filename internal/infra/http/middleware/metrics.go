package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sclayai/proposal-intake/internal/entity"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_submissions_total",
			Help: "Form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	forwardsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_forwards_total",
			Help: "Webhook forwards by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_mutations_total",
			Help: "Dashboard mutations by kind, action and outcome",
		},
		[]string{"kind", "action", "outcome"},
	)

	sessionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_events_total",
			Help: "Sign-in and sign-out transitions",
		},
		[]string{"event"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics records request counts and latency, labelled by route pattern so
// record ids do not explode label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// PrometheusRecorder implements usecase.MetricsRecorder.
type PrometheusRecorder struct{}

func (PrometheusRecorder) RecordSubmission(kind entity.Kind, outcome string) {
	submissionsTotal.WithLabelValues(string(kind), outcome).Inc()
}

func (PrometheusRecorder) RecordForward(kind entity.Kind, outcome string) {
	forwardsTotal.WithLabelValues(string(kind), outcome).Inc()
}

func (PrometheusRecorder) RecordMutation(kind entity.Kind, action, outcome string) {
	mutationsTotal.WithLabelValues(string(kind), action, outcome).Inc()
}

func RecordSessionEvent(event string) {
	sessionEventsTotal.WithLabelValues(event).Inc()
}
