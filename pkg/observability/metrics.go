package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics
	LoginsTotal       *prometheus.CounterVec
	PermissionDenials *prometheus.CounterVec

	// Business metrics, refreshed by the analytics collector
	UsersTotal       prometheus.Gauge
	ModulesTotal     prometheus.Gauge
	ProgramsTotal    prometheus.Gauge
	SessionsTotal    prometheus.Gauge
	UpcomingSessions prometheus.Gauge
}

// NewMetrics creates and registers all collectors on the given registry.
// A nil registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coachdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coachdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coachdesk_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"outcome"},
		),
		PermissionDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coachdesk_permission_denials_total",
				Help: "Total number of forbidden responses",
			},
			[]string{"path"},
		),
		UsersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coachdesk_users_total",
			Help: "Number of user accounts in the store",
		}),
		ModulesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coachdesk_modules_total",
			Help: "Number of content modules in the store",
		}),
		ProgramsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coachdesk_programs_total",
			Help: "Number of programs in the store",
		}),
		SessionsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coachdesk_sessions_total",
			Help: "Number of sessions in the store",
		}),
		UpcomingSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coachdesk_sessions_upcoming",
			Help: "Number of sessions starting in the future",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginsTotal,
		m.PermissionDenials,
		m.UsersTotal,
		m.ModulesTotal,
		m.ProgramsTotal,
		m.SessionsTotal,
		m.UpcomingSessions,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware instruments a handler with request counters and durations.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		if rw.status == http.StatusForbidden {
			m.PermissionDenials.WithLabelValues(r.URL.Path).Inc()
		}
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/auth/login") {
			outcome := "success"
			if rw.status >= http.StatusBadRequest {
				outcome = "failure"
			}
			m.LoginsTotal.WithLabelValues(outcome).Inc()
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
