package dispatch

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/arborwake/impactindex/types"
)

// RoaringSink is the bitmap-backed alternative to ScalarSink: alongside the
// same <doc, impact> score accumulation, it keeps one Roaring bitmap per
// impact tier, so a caller can cheaply intersect/union "documents at impact
// >= k" across terms without re-walking every posting.
type RoaringSink struct {
	scores       map[uint32]float64
	byImpact     map[uint8]*roaring.Bitmap
	currentScore uint8
}

// NewRoaringSink returns an empty sink ready to be passed to DecodeAndProcess.
func NewRoaringSink() *RoaringSink {
	return &RoaringSink{
		scores:   make(map[uint32]float64),
		byImpact: make(map[uint8]*roaring.Bitmap),
	}
}

func (s *RoaringSink) bitmapFor(impact uint8) *roaring.Bitmap {
	bm := s.byImpact[impact]
	if bm == nil {
		bm = roaring.New()
		s.byImpact[impact] = bm
	}
	return bm
}

func (s *RoaringSink) SetScore(impact uint8) { s.currentScore = impact }

func (s *RoaringSink) PushBack(docIDs []uint32) {
	bm := s.bitmapFor(s.currentScore)
	for _, doc := range docIDs {
		bm.Add(doc)
		s.scores[doc] += float64(s.currentScore)
	}
}

func (s *RoaringSink) AddRsv(doc uint32, impact uint8) {
	s.bitmapFor(impact).Add(doc)
	s.scores[doc] += float64(impact)
}

// DocsAtImpact returns the bitmap of docids seen at exactly impact across
// every segment processed so far.
func (s *RoaringSink) DocsAtImpact(impact uint8) *roaring.Bitmap {
	return s.bitmapFor(impact)
}

// Results drains the accumulator the same way ScalarSink.Results does.
func (s *RoaringSink) Results() types.ScoredDocuments {
	out := make(types.ScoredDocuments, 0, len(s.scores))
	for doc, score := range s.scores {
		out = append(out, types.ScoredDocument{DocID: doc, Score: score})
	}
	return out
}
