// Package telemetry exposes Prometheus instrumentation for the HTTP
// surface and the import pipeline.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zenbu_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zenbu_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ImportedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zenbu_imported_messages_total",
		Help: "Messages accepted by the import pipeline.",
	})

	SkippedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zenbu_skipped_messages_total",
		Help: "Messages dropped as noise during import.",
	})

	ImportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zenbu_import_failures_total",
		Help: "Uploaded files that failed to parse or persist.",
	})

	AnalysisRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zenbu_analysis_runs_total",
		Help: "Completed analysis computations.",
	})

	StoredConversations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zenbu_stored_conversations",
		Help: "Conversations currently held in the store.",
	})

	RetentionPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zenbu_retention_purged_messages_total",
		Help: "Messages removed by the retention job.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler { return promhttp.Handler() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency per method and route.
// It must be registered on the mux router (Use) so the matched route is
// available; the route label is the path template, keeping metric
// cardinality bounded regardless of path parameters or probe traffic.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
