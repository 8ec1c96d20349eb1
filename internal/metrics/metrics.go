package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chirp"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	postsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "posts",
			Name:      "created_total",
			Help:      "Total number of posts accepted and stored.",
		},
	)

	postsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "posts",
			Name:      "rejected_total",
			Help:      "Post creations rejected, by reason.",
		},
		[]string{"reason"},
	)

	rateLimitDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Sliding-window rate limit decisions.",
		},
		[]string{"decision"},
	)

	directoryLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "lookups_total",
			Help:      "Identity directory lookups, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	directoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of identity directory lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		postsCreated,
		postsRejected,
		rateLimitDecisions,
		directoryLookups,
		directoryDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// RecordHTTPRequest records a finished HTTP request. route should be the router pattern,
// not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPostCreated counts a stored post.
func RecordPostCreated() {
	postsCreated.Inc()
}

// RecordPostRejected counts a rejected post creation ("validation", "rate_limited", "unauthenticated").
func RecordPostRejected(reason string) {
	postsRejected.WithLabelValues(reason).Inc()
}

// PostsRejected returns the rejection counter for reason.
func PostsRejected(reason string) prometheus.Counter {
	return postsRejected.WithLabelValues(reason)
}

// RecordRateLimitDecision counts an allow/deny decision from the shared limiter.
func RecordRateLimitDecision(allowed bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	rateLimitDecisions.WithLabelValues(decision).Inc()
}

// RecordDirectoryLookup records an identity directory call.
func RecordDirectoryLookup(kind string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	directoryLookups.WithLabelValues(kind, outcome).Inc()
	directoryDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
