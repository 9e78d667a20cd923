package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// metric pipeline.
type Metrics struct {
	SelectionsTotal prometheus.Counter
	EmptySelections prometheus.Counter
	ComputeDuration prometheus.Histogram

	// OutOfRangeValues counts suspect values found at startup scan,
	// labelled by field (free_lunch_pct, esb_adoption_rate).
	OutOfRangeValues *prometheus.CounterVec

	// ResultCache counts selection cache lookups, labelled result={hit,miss}.
	ResultCache *prometheus.CounterVec

	DatasetRows   prometheus.Gauge
	DatasetLoaded prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SelectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "esb_metrics",
			Name:      "selections_total",
			Help:      "Total state/city selections computed.",
		}),
		EmptySelections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "esb_metrics",
			Name:      "empty_selections_total",
			Help:      "Selections whose city scope matched no districts.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "esb_metrics",
			Name:      "compute_duration_seconds",
			Help:      "Duration of one selection's filter and aggregate pass.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		OutOfRangeValues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esb_metrics",
			Name:      "out_of_range_values_total",
			Help:      "Values outside their expected domain after normalization, by field.",
		}, []string{"field"}),
		ResultCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esb_metrics",
			Name:      "result_cache_total",
			Help:      "Selection result cache lookups by result.",
		}, []string{"result"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "esb_metrics",
			Name:      "dataset_rows",
			Help:      "District rows held in the loaded snapshot.",
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "esb_metrics",
			Name:      "dataset_loaded",
			Help:      "1 when a dataset snapshot is loaded, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.SelectionsTotal,
		m.EmptySelections,
		m.ComputeDuration,
		m.OutOfRangeValues,
		m.ResultCache,
		m.DatasetRows,
		m.DatasetLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SelectionsTotal:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "esb_metrics", Name: "selections_total"}),
		EmptySelections:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "esb_metrics", Name: "empty_selections_total"}),
		ComputeDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "esb_metrics", Name: "compute_duration_seconds"}),
		OutOfRangeValues: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "esb_metrics", Name: "out_of_range_values_total"}, []string{"field"}),
		ResultCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "esb_metrics", Name: "result_cache_total"}, []string{"result"}),
		DatasetRows:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "esb_metrics", Name: "dataset_rows"}),
		DatasetLoaded:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "esb_metrics", Name: "dataset_loaded"}),
	}
}
