package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	lookupsTotal     *prometheus.CounterVec
	searchResults    prometheus.Histogram
	reloadsTotal     *prometheus.CounterVec
	reloadDuration   prometheus.Histogram
	datasetSize      *prometheus.GaugeVec
	validationsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		lookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcc_lookups_total",
				Help: "Total number of MCC lookup operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		searchResults: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mcc_search_results",
				Help:    "Result counts of MCC substring searches",
				Buckets: prometheus.ExponentialBuckets(1, 4, 7),
			},
		),
		reloadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcc_dataset_reloads_total",
				Help: "Total number of MCC dataset loads and reloads by status",
			},
			[]string{"status"},
		),
		reloadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mcc_dataset_reload_duration_milliseconds",
				Help:    "MCC dataset load duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		datasetSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mcc_dataset_records",
				Help: "Record counts in the currently loaded MCC dataset",
			},
			[]string{"kind"},
		),
		validationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcc_validations_total",
				Help: "Total number of MCC validations by result",
			},
			[]string{"result"},
		),
	}
}

func (m *PrometheusMetrics) RecordLookup(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookupsTotal.WithLabelValues(operation, result).Inc()
}

func (m *PrometheusMetrics) RecordSearch(results int) {
	m.searchResults.Observe(float64(results))
}

func (m *PrometheusMetrics) RecordReload(status string, durationMs int64) {
	m.reloadsTotal.WithLabelValues(status).Inc()
	m.reloadDuration.Observe(float64(durationMs))
}

func (m *PrometheusMetrics) SetDatasetSize(codes, ranges, categories int) {
	m.datasetSize.WithLabelValues("codes").Set(float64(codes))
	m.datasetSize.WithLabelValues("ranges").Set(float64(ranges))
	m.datasetSize.WithLabelValues("categories").Set(float64(categories))
}

func (m *PrometheusMetrics) RecordValidation(result string) {
	m.validationsTotal.WithLabelValues(result).Inc()
}
