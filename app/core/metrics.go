package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/markstyle-ai/markstyle/pkg/metrics"
)

type Metrics struct {
	apiResponseTime       *prometheus.HistogramVec
	apiErrorCounter       *prometheus.CounterVec
	completionRequestTime *prometheus.HistogramVec
	completionError       *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:       metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:       metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		completionRequestTime: metrics.NewHistogramVec("completion_request_time", []string{"usage"}),
		completionError:       metrics.NewCounterVec("completion_error", []string{"type"}),
	}

	return m
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

// CompletionRequestTimer tracks one model call; usage is extract, convert or merge.
func (m *Metrics) CompletionRequestTimer(usage string) *prometheus.Timer {
	return prometheus.NewTimer(m.completionRequestTime.WithLabelValues(usage))
}

func (m *Metrics) CompletionErrorInc(errType string) {
	m.completionError.WithLabelValues(errType).Inc()
}
