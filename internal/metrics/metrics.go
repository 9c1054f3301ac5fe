package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webhealth"

var (
	// Registry holds the application collectors; it is separate from the global default.
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
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "route"},
	)

	tinnitusLogsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tinnitus",
			Name:      "logs_created_total",
			Help:      "Total number of tinnitus logs stored.",
		},
	)

	reminderPreferences = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "preferences_total",
			Help:      "Reminder preference writes by outcome.",
		},
		[]string{"outcome"},
	)

	profileUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profiles",
			Name:      "updates_total",
			Help:      "Total number of profile replacements.",
		},
	)

	seedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "records_total",
			Help:      "Catalog records reconciled by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		tinnitusLogsCreated,
		reminderPreferences,
		profileUpdates,
		seedRecords,
		loginAttempts,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

func ObserveHTTPRequest(method string, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordTinnitusLogCreated() {
	tinnitusLogsCreated.Inc()
}

func RecordReminderPreference(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	reminderPreferences.WithLabelValues(outcome).Inc()
}

func RecordProfileUpdate() {
	profileUpdates.Inc()
}

func RecordSeed(kind string, created int, updated int, unchanged int) {
	seedRecords.WithLabelValues(kind, "created").Add(float64(created))
	seedRecords.WithLabelValues(kind, "updated").Add(float64(updated))
	seedRecords.WithLabelValues(kind, "unchanged").Add(float64(unchanged))
}

func RecordLoginAttempt(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}
