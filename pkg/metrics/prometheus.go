package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal     *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	scores        *prometheus.GaugeVec
	notifications *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_analysis_runs_total",
				Help: "Total number of analysis runs per instrument",
			},
			[]string{"code", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldpulse_last_price",
				Help: "Last recorded price for an instrument",
			},
			[]string{"code"},
		),
		scores: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldpulse_score",
				Help: "Latest score per instrument and score kind",
			},
			[]string{"code", "kind"},
		),
		notifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_notifications_total",
				Help: "Webhook delivery attempts by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRun records a completed analysis run.
func (r *Recorder) RecordRun(code, result string) {
	r.runsTotal.WithLabelValues(code, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for an instrument.
func (r *Recorder) RecordLastPrice(code string, price float64) {
	r.lastPrice.WithLabelValues(code).Set(price)
}

// RecordScore records a score value for an instrument.
func (r *Recorder) RecordScore(code, kind string, value float64) {
	r.scores.WithLabelValues(code, kind).Set(value)
}

// RecordNotification records a webhook delivery result.
func (r *Recorder) RecordNotification(result string) {
	r.notifications.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
