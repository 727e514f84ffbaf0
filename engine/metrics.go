package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the build-time operational counters named in the domain
// stack: process health, not ranking-quality evaluation (selling power,
// cheapest precision are explicitly out of scope).
type Metrics struct {
	DocumentsIngested    prometheus.Counter
	PostingsPushed       prometheus.Counter
	SegmentsFlushed      prometheus.Counter
	PostingsBytesWritten prometheus.Counter
	QuantizationSeconds  prometheus.Histogram
}

// NewMetrics registers a fresh counter/histogram set against registry. A
// nil registry is fine: the metrics still work, they just aren't scraped.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impactindex",
			Name:      "documents_ingested_total",
			Help:      "Documents accepted by Engine.IndexTokens.",
		}),
		PostingsPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impactindex",
			Name:      "postings_pushed_total",
			Help:      "Term occurrences pushed into a shard's postings accumulator.",
		}),
		SegmentsFlushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impactindex",
			Name:      "segments_flushed_total",
			Help:      "Impact segments written to the postings blob during Build.",
		}),
		PostingsBytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impactindex",
			Name:      "postings_bytes_written_total",
			Help:      "Bytes written to the postings blob during Build.",
		}),
		QuantizationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impactindex",
			Name:      "quantization_seconds",
			Help:      "Wall time spent in the quantizer's observe+emit passes during Build.",
		}),
	}
	if registry != nil {
		registry.MustRegister(
			m.DocumentsIngested,
			m.PostingsPushed,
			m.SegmentsFlushed,
			m.PostingsBytesWritten,
			m.QuantizationSeconds,
		)
	}
	return m
}
