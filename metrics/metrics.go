package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for login and refresh counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the client's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Tracks the number of outbound API calls by method and status code.
	RequestsTotal *prometheus.CounterVec
	// Measures duration of API requests, including the retried attempt after a refresh.
	RequestDuration *prometheus.HistogramVec
	LoginsTotal     *prometheus.CounterVec
	RefreshesTotal  *prometheus.CounterVec
}

// NewMetrics registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openclass_api_requests_total",
				Help: "Total number of OpenClass API requests made (by method and status).",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "openclass_api_request_duration_seconds",
				Help:    "Duration of OpenClass API requests in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms → ~10s
			},
			[]string{"method"},
		),
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openclass_auth_logins_total",
				Help: "Number of credential logins against the identity endpoint.",
			},
			[]string{"outcome"},
		),
		RefreshesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openclass_auth_refreshes_total",
				Help: "Number of auth token refreshes.",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveRequest counts one HTTP exchange. status is the numeric code, or "error" when no response arrived.
func (m *Metrics) ObserveRequest(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRefresh(outcome string) {
	if m == nil {
		return
	}
	m.RefreshesTotal.WithLabelValues(outcome).Inc()
}

// Outcome maps an error to a counter label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
