package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	parseRequests       *prometheus.CounterVec
	parseDuration       prometheus.Histogram
	expensesExtracted   *prometheus.GaugeVec
	needsReviewTotal    *prometheus.CounterVec
	ocrRequests         *prometheus.CounterVec
	ocrDuration         prometheus.Histogram
	circuitBreakerState *prometheus.GaugeVec
	authEventsTotal     *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		parseRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parse_requests_total",
				Help: "Total number of parse invocations by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		parseDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "parse_duration_milliseconds",
				Help:    "Text and receipt parse duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
			},
		),
		expensesExtracted: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "expenses_extracted_last",
				Help: "Number of expenses extracted by the most recent parse",
			},
			[]string{"source"},
		),
		needsReviewTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenses_needs_review_total",
				Help: "Total number of parsed expenses flagged for review",
			},
			[]string{"source"},
		),
		ocrRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ocr_requests_total",
				Help: "Total number of OCR engine calls by outcome",
			},
			[]string{"outcome"},
		),
		ocrDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ocr_duration_milliseconds",
				Help:    "OCR engine call duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		circuitBreakerState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "status"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "parse_requests":
		m.parseRequests.With(prometheus.Labels{
			"source":  tags["source"],
			"outcome": tags["outcome"],
		}).Inc()
	case "expenses_needs_review":
		m.needsReviewTotal.With(prometheus.Labels{"source": tags["source"]}).Inc()
	case "ocr_requests":
		m.ocrRequests.With(prometheus.Labels{"outcome": tags["outcome"]}).Inc()
	case "auth_events":
		m.authEventsTotal.With(prometheus.Labels{
			"event":  tags["event"],
			"status": tags["status"],
		}).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	ms := float64(duration.Microseconds()) / 1000.0
	switch name {
	case "parse_duration":
		m.parseDuration.Observe(ms)
	case "ocr_duration":
		m.ocrDuration.Observe(ms)
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "expenses_extracted":
		m.expensesExtracted.With(prometheus.Labels{"source": tags["source"]}).Set(value)
	case "circuit_breaker_state":
		m.circuitBreakerState.With(prometheus.Labels{"service": tags["service"]}).Set(value)
	}
}
