package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Matching and upload metrics.
var (
	MatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_total",
			Help:      "Total number of match invocations by query mode, scope and outcome",
		},
		[]string{"mode", "scope", "outcome"},
	)

	WordsScanned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "words_scanned",
			Help:      "Words normalized per match invocation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	MatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Decode plus match duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"mode"},
	)

	MalformedDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_documents_total",
			Help:      "OCR documents recovered as empty because of a missing page list or bad fields",
		},
	)

	BatchQueries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_queries",
			Help:      "Number of queries per batch request",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Upload attempts by status",
		},
		[]string{"status"}, // "ok" / "invalid" / "error"
	)
)

var registerOnce sync.Once

// RegisterHighlightMetrics registers matching and upload metrics. Called from main.
func RegisterHighlightMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(MatchTotal)
		prometheus.MustRegister(WordsScanned)
		prometheus.MustRegister(MatchDuration)
		prometheus.MustRegister(MalformedDocumentsTotal)
		prometheus.MustRegister(BatchQueries)
		prometheus.MustRegister(UploadsTotal)
	})
}
