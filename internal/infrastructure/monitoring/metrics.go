package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type StoreMetrics struct {
	WriteDuration *prometheus.HistogramVec
	WritesTotal   *prometheus.CounterVec
}

type BusinessMetrics struct {
	RecordsSavedTotal      *prometheus.CounterVec
	RecordsDeletedTotal    *prometheus.CounterVec
	StatusTransitionsTotal *prometheus.CounterVec
	ExtractionTotal        *prometheus.CounterVec
}

type PortfolioMetrics struct {
	Customers    prometheus.Gauge
	GrossPlafon  prometheus.Gauge
	AveragePlafon prometheus.Gauge
}

var (
	Store = StoreMetrics{
		WriteDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lending_desk_store_write_duration_seconds",
				Help:    "Histogram of blob store write latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"key", "status"},
		),
		WritesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_desk_store_writes_total",
				Help: "Total number of blob store writes.",
			},
			[]string{"key", "status"},
		),
	}

	Business = BusinessMetrics{
		RecordsSavedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_desk_records_saved_total",
				Help: "Total number of records upserted, by aggregate kind.",
			},
			[]string{"kind"},
		),
		RecordsDeletedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_desk_records_deleted_total",
				Help: "Total number of records deleted, by aggregate kind.",
			},
			[]string{"kind"},
		),
		StatusTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_desk_status_transitions_total",
				Help: "Total number of loan lifecycle transitions applied.",
			},
			[]string{"from", "to"},
		),
		ExtractionTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_desk_extraction_requests_total",
				Help: "Total number of free-text extraction calls.",
			},
			[]string{"status"},
		),
	}

	Portfolio = PortfolioMetrics{
		Customers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lending_desk_portfolio_customers",
				Help: "Number of customer records in the repository.",
			},
		),
		GrossPlafon: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lending_desk_portfolio_gross_plafon",
				Help: "Sum of loan principal across all customer records.",
			},
		),
		AveragePlafon: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lending_desk_portfolio_average_plafon",
				Help: "Average loan principal across all customer records.",
			},
		),
	}
)

func RecordStoreWrite(key, status string, duration time.Duration) {
	Store.WritesTotal.WithLabelValues(key, status).Inc()
	Store.WriteDuration.WithLabelValues(key, status).Observe(duration.Seconds())
}

func RecordRecordSaved(kind string) {
	Business.RecordsSavedTotal.WithLabelValues(kind).Inc()
}

func RecordRecordDeleted(kind string) {
	Business.RecordsDeletedTotal.WithLabelValues(kind).Inc()
}

func RecordStatusTransition(from, to string) {
	Business.StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordExtraction(status string) {
	Business.ExtractionTotal.WithLabelValues(status).Inc()
}

func SetPortfolioGauges(customers int, grossPlafon, averagePlafon float64) {
	Portfolio.Customers.Set(float64(customers))
	Portfolio.GrossPlafon.Set(grossPlafon)
	Portfolio.AveragePlafon.Set(averagePlafon)
}
