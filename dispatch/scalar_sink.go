package dispatch

import "github.com/arborwake/impactindex/types"

// ScalarSink accumulates <doc, impact> pairs across however many segments
// decode_and_process feeds it — one query term contributes one segment per
// matching impact tier, and a multi-term query contributes one sink shared
// across every term's segments, so scores naturally sum across terms.
type ScalarSink struct {
	scores       map[uint32]float64
	currentScore uint8
}

// NewScalarSink returns an empty sink ready to be passed to DecodeAndProcess.
func NewScalarSink() *ScalarSink {
	return &ScalarSink{scores: make(map[uint32]float64)}
}

func (s *ScalarSink) SetScore(impact uint8) { s.currentScore = impact }

func (s *ScalarSink) PushBack(docIDs []uint32) {
	for _, doc := range docIDs {
		s.scores[doc] += float64(s.currentScore)
	}
}

func (s *ScalarSink) AddRsv(doc uint32, impact uint8) {
	s.scores[doc] += float64(impact)
}

// Results drains the accumulator into a types.ScoredDocuments, unsorted —
// callers rank it with sort.Sort and types.RankOptions's pagination.
func (s *ScalarSink) Results() types.ScoredDocuments {
	out := make(types.ScoredDocuments, 0, len(s.scores))
	for doc, score := range s.scores {
		out = append(out, types.ScoredDocument{DocID: doc, Score: score})
	}
	return out
}
