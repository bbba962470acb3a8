// Package metrics holds the Prometheus collectors of the CoA client and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portbounce"

// CoAMetrics counts CoA exchanges. A nil *CoAMetrics records nothing.
type CoAMetrics struct {
	Requests  *prometheus.CounterVec
	Responses *prometheus.CounterVec
	Errors    *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
}

// NewCoAMetrics creates the CoA collectors and registers them with reg
func NewCoAMetrics(reg prometheus.Registerer) *CoAMetrics {
	m := &CoAMetrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coa_requests_total",
				Help:      "CoA requests sent",
			},
			[]string{"code"}),

		Responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coa_responses_total",
				Help:      "CoA responses received and verified",
			},
			[]string{"code"}),

		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coa_errors_total",
				Help:      "CoA exchanges that failed, by error kind",
			},
			[]string{"kind"}),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "coa_exchange_duration_seconds",
				Help:      "Duration of CoA exchanges",
				Buckets:   []float64{.005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
			[]string{"outcome"}),
	}

	reg.MustRegister(m.Requests)
	reg.MustRegister(m.Responses)
	reg.MustRegister(m.Errors)
	reg.MustRegister(m.Duration)

	return m
}

// RequestSent records an outbound request
func (m *CoAMetrics) RequestSent(code string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(code).Inc()
}

// ResponseReceived records a verified response
func (m *CoAMetrics) ResponseReceived(code string) {
	if m == nil {
		return
	}
	m.Responses.WithLabelValues(code).Inc()
}

// ExchangeFailed records a failed exchange
func (m *CoAMetrics) ExchangeFailed(kind string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(kind).Inc()
}

// ObserveDuration records how long an exchange took
func (m *CoAMetrics) ObserveDuration(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(outcome).Observe(d.Seconds())
}

// HTTPMetrics counts API requests. A nil *HTTPMetrics records nothing.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTPMetrics creates the HTTP collectors and registers them with reg
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests handled",
			},
			[]string{"method", "route", "status"}),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"}),
	}

	reg.MustRegister(m.Requests)
	reg.MustRegister(m.Duration)

	return m
}

// ObserveRequest records a handled HTTP request
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.Duration.WithLabelValues(method, route).Observe(d.Seconds())
}
