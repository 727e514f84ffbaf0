// Package quantize implements the two-pass impact quantizer from §4.4: a
// first pass observes every (term, doc) score to find the global
// [smallest_rsv, largest_rsv] range, then a second pass maps each score
// into the fixed 8-bit impact domain. The two passes are globally ordered —
// Finalize is the happens-before barrier between them — matching
// quantize.h's use of a single get_bounds() call after one full
// index.iterate(quantizer) pass.
package quantize

import (
	"math"

	"github.com/arborwake/impactindex/ierrors"
	"github.com/arborwake/impactindex/ranking"
	"github.com/arborwake/impactindex/types"
)

// Quantizer observes scores across an entire collection before it will
// emit any impact. It is not safe for concurrent use by multiple
// goroutines without external synchronization; the build's single-threaded
// reduction phase owns it.
type Quantizer struct {
	ranker                ranking.Ranker
	documentsInCollection uint32

	smallestRSV float64
	largestRSV  float64
	observed    bool
	finalized   bool

	impactRange float64
}

// New creates a Quantizer that scores against documentsInCollection total
// documents using ranker.
func New(ranker ranking.Ranker, documentsInCollection uint32) *Quantizer {
	return &Quantizer{
		ranker:                ranker,
		documentsInCollection: documentsInCollection,
		smallestRSV:           math.Inf(1),
		largestRSV:            math.Inf(-1),
		impactRange:           types.ImpactRange,
	}
}

// Observe is pass A: for one term's postings, compute every document's
// score and fold it into the running [smallest, largest] bounds. It does
// not mutate termFrequencies; call Emit for that once Finalize has run.
func (q *Quantizer) Observe(documentFrequency uint32, docIDs []uint32, termFrequencies []uint16) error {
	q.ranker.IDFComponent(documentFrequency, q.documentsInCollection)
	for i, doc := range docIDs {
		tf := termFrequencies[i]
		q.ranker.TFComponent(tf)
		score := q.ranker.Score(doc-1, tf)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return ierrors.New(ierrors.RankerDomain, "ranker produced a NaN or infinite score")
		}
		if score < q.smallestRSV {
			q.smallestRSV = score
		}
		if score > q.largestRSV {
			q.largestRSV = score
		}
		q.observed = true
	}
	return nil
}

// Finalize closes pass A. It must run before any call to Emit, and after
// it runs, Observe must not be called again — that ordering barrier is
// what lets Emit divide by a range that is guaranteed final. If no score
// was ever observed, the range collapses to [0, 0] so Emit's range == 0
// edge case fires rather than dividing by an undefined bound.
func (q *Quantizer) Finalize() {
	if !q.observed {
		q.smallestRSV = 0
		q.largestRSV = 0
	}
	q.finalized = true
}

// Bounds returns the observed [smallest, largest] rsv, valid only after
// Finalize.
func (q *Quantizer) Bounds() (smallest, largest float64) {
	return q.smallestRSV, q.largestRSV
}

// Emit is pass B: given one term's document frequency and postings,
// overwrite termFrequencies in place with quantized impacts in
// [types.SmallestImpact, types.LargestImpact]. It must run after Finalize.
// When the observed range is zero (every score in the collection was
// equal), every impact is types.SmallestImpact rather than dividing by
// zero, per §4.4's pinned edge case.
func (q *Quantizer) Emit(documentFrequency uint32, docIDs []uint32, termFrequencies []uint16) {
	if !q.finalized {
		panic("quantize: Emit called before Finalize")
	}
	q.ranker.IDFComponent(documentFrequency, q.documentsInCollection)
	rangeRSV := q.largestRSV - q.smallestRSV

	for i, doc := range docIDs {
		tf := termFrequencies[i]
		if rangeRSV == 0 {
			termFrequencies[i] = uint16(types.SmallestImpact)
			continue
		}
		q.ranker.TFComponent(tf)
		score := q.ranker.Score(doc-1, tf)
		impact := uint8((score-q.smallestRSV)/rangeRSV*q.impactRange) + types.SmallestImpact
		termFrequencies[i] = uint16(impact)
	}
}

// EmitImpacts is the QuantizedPostingsList-shaped variant of Emit: it
// produces a fresh []uint8 of impacts rather than overwriting uint16 term
// frequencies in place, for callers (the index writer) that keep the
// original term frequencies around for other purposes.
func (q *Quantizer) EmitImpacts(documentFrequency uint32, docIDs []uint32, termFrequencies []uint16) []uint8 {
	if !q.finalized {
		panic("quantize: EmitImpacts called before Finalize")
	}
	q.ranker.IDFComponent(documentFrequency, q.documentsInCollection)
	rangeRSV := q.largestRSV - q.smallestRSV

	impacts := make([]uint8, len(docIDs))
	for i, doc := range docIDs {
		if rangeRSV == 0 {
			impacts[i] = types.SmallestImpact
			continue
		}
		tf := termFrequencies[i]
		q.ranker.TFComponent(tf)
		score := q.ranker.Score(doc-1, tf)
		impacts[i] = uint8((score-q.smallestRSV)/rangeRSV*q.impactRange) + types.SmallestImpact
	}
	return impacts
}
