package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	completionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "neurofit",
		Subsystem: "progress",
		Name:      "completions_logged_total",
		Help:      "Number of workout completions recorded.",
	})

	coachRepliesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neurofit",
		Subsystem: "coach",
		Name:      "replies_total",
		Help:      "Coach replies labeled by detected intent and outcome (ok, empty, fallback).",
	}, []string{"intent", "outcome"})

	catalogCacheCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neurofit",
		Subsystem: "catalog",
		Name:      "cache_lookups_total",
		Help:      "Workout catalog cache lookups labeled by result (hit, miss, error).",
	}, []string{"result"})

	eventsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "neurofit",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Completion events handed to the broker, labeled by outcome.",
	}, []string{"outcome"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "neurofit",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, route template and status code.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(completionsCounter, coachRepliesCounter, catalogCacheCounter, eventsCounter, httpDuration)
}

func RecordCompletion() {
	completionsCounter.Inc()
}

func RecordCoachReply(intent, outcome string) {
	coachRepliesCounter.WithLabelValues(intent, outcome).Inc()
}

func RecordCatalogCache(result string) {
	catalogCacheCounter.WithLabelValues(result).Inc()
}

func RecordEventPublish(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	eventsCounter.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest records one request. route should be the matched route
// template so that path parameters do not explode label cardinality.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
