package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchAttempts    *prometheus.CounterVec
	fetchErrors      *prometheus.CounterVec
	pointsParsed     *prometheus.CounterVec
	percentChange    *prometheus.GaugeVec
	analysisDuration prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btcwave_fetch_attempts_total",
				Help: "Total number of fetch attempts per provider",
			},
			[]string{"source"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btcwave_fetch_errors_total",
				Help: "Total number of failed fetch attempts per provider",
			},
			[]string{"source"},
		),
		pointsParsed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "btcwave_points_parsed_total",
				Help: "Total number of data points parsed per series",
			},
			[]string{"series"},
		),
		percentChange: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "btcwave_percent_change",
				Help: "Last computed percent change per series",
			},
			[]string{"series"},
		),
		analysisDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "btcwave_analysis_duration_seconds",
				Help:    "Duration of full analysis runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordFetchAttempt records one fetch attempt against a provider.
func (r *Recorder) RecordFetchAttempt(source string) {
	r.fetchAttempts.WithLabelValues(source).Inc()
}

// RecordFetchError records a failed fetch attempt.
func (r *Recorder) RecordFetchError(source string) {
	r.fetchErrors.WithLabelValues(source).Inc()
}

// RecordPointsParsed records how many points a series yielded.
func (r *Recorder) RecordPointsParsed(series string, n int) {
	r.pointsParsed.WithLabelValues(series).Add(float64(n))
}

// RecordPercentChange records the classifier's computed change for a series.
func (r *Recorder) RecordPercentChange(series string, pct float64) {
	r.percentChange.WithLabelValues(series).Set(pct)
}

// RecordAnalysisDuration records a full pipeline run duration in seconds.
func (r *Recorder) RecordAnalysisDuration(seconds float64) {
	r.analysisDuration.Observe(seconds)
}
