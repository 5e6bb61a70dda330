package appsscript

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK           = "ok"
	OutcomeNetworkError = "network_error"
	OutcomeAPIError     = "api_error"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Portal API requests by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Portal API request latency by action.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register gateway metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(action domain.Action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(string(action), outcome).Inc()
	m.duration.WithLabelValues(string(action)).Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	var apiErr *domain.APIError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	default:
		return OutcomeNetworkError
	}
}
