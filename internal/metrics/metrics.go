package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion metrics.
var (
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gurmukhi_conversions_total",
		Help: "Successful conversions by output style and input encoding",
	}, []string{"style", "encoding"})

	ConversionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gurmukhi_conversion_errors_total",
		Help: "Rejected conversion requests by reason",
	}, []string{"reason"})

	InputBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gurmukhi_input_bytes",
		Help:    "Size of conversion input in bytes",
		Buckets: prometheus.ExponentialBuckets(16, 4, 7),
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gurmukhi_batch_duration_seconds",
		Help:    "Duration of a batch conversion",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)

// History metrics.
var (
	HistoryWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gurmukhi_history_writes_total",
		Help: "Conversions written to the history store by result",
	}, []string{"result"})

	HistoryPrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gurmukhi_history_pruned_total",
		Help: "History rows removed by retention",
	})
)

// WriteTextfile writes every registered metric to path in the text format
// read by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
