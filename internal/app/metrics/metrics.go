package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "nemesis",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nemesis",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nemesis",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	habitToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nemesis",
			Subsystem: "habits",
			Name:      "toggles_total",
			Help:      "Total number of habit completion toggles by outcome.",
		},
		[]string{"outcome"},
	)

	insightRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nemesis",
			Subsystem: "insights",
			Name:      "generations_total",
			Help:      "Total number of narrative insight generations.",
		},
		[]string{"status"},
	)

	insightDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nemesis",
			Subsystem: "insights",
			Name:      "generation_duration_seconds",
			Help:      "Duration of narrative insight generations.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~50s
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		habitToggles,
		insightRequests,
		insightDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordHabitToggle counts a completion toggle by its outcome.
func RecordHabitToggle(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	habitToggles.WithLabelValues(outcome).Inc()
}

// RecordInsightGeneration records one narrative generation attempt.
func RecordInsightGeneration(status string, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	insightRequests.WithLabelValues(status).Inc()
	insightDuration.WithLabelValues(status).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses entity ids so the path label stays low-cardinality.
// Routes look like /api/<domain>[/<id>[/<action>]].
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] != "api" {
		return "/" + parts[0]
	}
	if len(parts) == 1 {
		return "/api"
	}
	domain := parts[1]
	switch len(parts) {
	case 2:
		return "/api/" + domain
	case 3:
		// Fixed sub-resources keep their names; everything else is an id.
		switch parts[2] {
		case "stats", "summary", "history", "latest", "today", "config", "state",
			"register", "login", "profile", "password", "export", "account", "insights":
			return "/api/" + domain + "/" + parts[2]
		}
		return "/api/" + domain + "/:id"
	default:
		return "/api/" + domain + "/:id/" + parts[3]
	}
}
