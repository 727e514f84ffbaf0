// Package dispatch implements §4.6's decode_and_process execution loop:
// it decodes one segment's payload, reconstructs absolute docids according
// to the segment's d-ness, and streams the result through a Sink in
// SIMD-sized groups. It is the query-time counterpart to the postings
// package's build-time accumulation.
package dispatch

import (
	"github.com/arborwake/impactindex/codec"
	"github.com/arborwake/impactindex/types"
)

// vectorLane is the width, in docids, of the vectorized push path: eight
// 32-bit docids fill one 256-bit lane, matching the dispatcher's vector
// group size independently of whichever codec (and whatever internal lane
// width, e.g. the SIMD Elias-gamma codec's 16-wide frames) produced them.
const vectorLane = 8

// Sink is the capability decode_and_process drives: a consumer that wants
// docids and impacts without caring how they were encoded on disk. Queries,
// index dumpers, and evaluators are all sinks.
type Sink interface {
	// SetScore is called once per segment, before any PushBack/AddRsv
	// calls for that segment, with the segment's quantized impact.
	SetScore(impact uint8)
	// PushBack delivers one vector-lane's worth of docids (already
	// filtered of zero padding) at the segment's current score.
	PushBack(docIDs []uint32)
	// AddRsv delivers a single docid from the scalar tail, with its
	// impact passed explicitly rather than implied by the last SetScore.
	AddRsv(doc uint32, impact uint8)
}

// DecodeAndProcess decodes n docids from payload using c, reconstructs
// absolute docids per dness, and streams them to sink: full vector lanes
// via PushBack, the remainder scalarly via AddRsv. Only the first n decoded
// values are streamed; anything a codec writes into its overscan lanes is
// never passed on. Zero docids are dropped from both paths since a docid
// of 0 is never a legal posting.
func DecodeAndProcess(impact uint8, sink Sink, c codec.Codec, dness types.Dness, n int, payload []byte) {
	buf := make([]uint32, n+c.Overscan())
	c.Decode(buf, n, payload)
	docIDs := buf[:n]
	codec.Reconstruct(dness, docIDs)

	sink.SetScore(impact)

	i := 0
	for ; i+vectorLane <= len(docIDs); i += vectorLane {
		group := docIDs[i : i+vectorLane]
		nonzero := make([]uint32, 0, vectorLane)
		for _, doc := range group {
			if doc != 0 {
				nonzero = append(nonzero, doc)
			}
		}
		if len(nonzero) > 0 {
			sink.PushBack(nonzero)
		}
	}
	for ; i < len(docIDs); i++ {
		if docIDs[i] != 0 {
			sink.AddRsv(docIDs[i], impact)
		}
	}
}
