// Package ranking defines the opaque scorer capability the quantizer
// depends on. The ranking function's math is explicitly out of scope for
// this module (spec non-goal); only the interface shape matters, plus one
// reference implementation used by tests and the quantizer's own worked
// example.
package ranking

import "math"

// Ranker computes relevance scores for quantization. Per quantize.h's
// calling convention, IDFComponent is invoked once per term (idf depends
// only on document frequency, not on the document being scored), then
// Score is invoked once per (document, term-frequency) pair for that term.
// Implementations may be stateful across the IDFComponent/Score pair within
// one term's scoring pass, but must not retain that state across terms
// without a fresh IDFComponent call.
type Ranker interface {
	IDFComponent(documentFrequency, documentsInCollection uint32) float64
	TFComponent(tf uint16) float64
	Score(docIndex uint32, tf uint16) float64
}

// BM25 is a reference Ranker implementing Okapi BM25, adapted from the
// term-frequency/document-length balancing the teacher's core.Ranker.Rank
// computed inline for a single query. Here it is reshaped into the
// two-call-per-term convention quantize.h expects: IDFComponent sets the
// idf once, then Score is called per posting.
type BM25 struct {
	K1 float64
	B  float64

	// DocumentLength maps an internal (0-based) document index to its
	// total token length, used to normalize term frequency against the
	// collection's average document length.
	DocumentLength []float64
	AverageLength  float64

	idf float64
}

// NewBM25 builds a BM25 ranker over documentLengths (indexed the same way
// docIndex is passed to Score: 0-based).
func NewBM25(k1, b float64, documentLengths []float64) *BM25 {
	var sum float64
	for _, l := range documentLengths {
		sum += l
	}
	avg := 0.0
	if len(documentLengths) > 0 {
		avg = sum / float64(len(documentLengths))
	}
	return &BM25{K1: k1, B: b, DocumentLength: documentLengths, AverageLength: avg}
}

// IDFComponent computes and caches idf for the current term; it must be
// called before Score for each new term.
func (r *BM25) IDFComponent(documentFrequency, documentsInCollection uint32) float64 {
	if documentFrequency == 0 {
		r.idf = 0
		return r.idf
	}
	r.idf = math.Log2(float64(documentsInCollection)/float64(documentFrequency) + 1)
	return r.idf
}

// TFComponent is exposed for callers that want the raw tf weighting term
// without a full Score call; BM25's Score folds it in directly.
func (r *BM25) TFComponent(tf uint16) float64 {
	return float64(tf)
}

// Score returns this document/term pair's BM25 contribution using the idf
// cached by the most recent IDFComponent call.
func (r *BM25) Score(docIndex uint32, tf uint16) float64 {
	if tf == 0 || r.AverageLength == 0 {
		return 0
	}
	f := float64(tf)
	d := r.AverageLength
	if int(docIndex) < len(r.DocumentLength) {
		d = r.DocumentLength[docIndex]
	}
	return r.idf * f * (r.K1 + 1) / (f + r.K1*(1-r.B+r.B*d/r.AverageLength))
}
