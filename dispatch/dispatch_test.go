package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborwake/impactindex/codec"
	"github.com/arborwake/impactindex/types"
)

func encodeNone(t *testing.T, docIDs []uint32) []byte {
	t.Helper()
	c := codec.None{}
	dst := make([]byte, len(docIDs)*4)
	written := c.Encode(dst, docIDs, len(docIDs))
	require.Equal(t, len(dst), written)
	return dst
}

func TestDecodeAndProcessSplitsVectorAndScalarTail(t *testing.T) {
	docIDs := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	payload := encodeNone(t, docIDs)

	sink := NewScalarSink()
	DecodeAndProcess(42, sink, codec.None{}, types.DGap0, len(docIDs), payload)

	results := sink.Results()
	require.Len(t, results, 10)
	for _, r := range results {
		require.Equal(t, float64(42), r.Score)
	}
}

func TestDecodeAndProcessReconstructsDGap1(t *testing.T) {
	absolute := []uint32{3, 5, 8, 8, 20}
	deltas := make([]uint32, len(absolute))
	var prev uint32
	for i, doc := range absolute {
		deltas[i] = doc - prev
		prev = doc
	}
	payload := encodeNone(t, deltas)

	sink := NewScalarSink()
	DecodeAndProcess(7, sink, codec.None{}, types.DGap1, len(deltas), payload)

	seen := map[uint32]bool{}
	for _, r := range sink.Results() {
		seen[r.DocID] = true
	}
	for _, doc := range absolute {
		require.True(t, seen[doc], "expected reconstructed docid %d in results", doc)
	}
}

func TestDecodeAndProcessFiltersZeroPaddingDocids(t *testing.T) {
	docIDs := []uint32{1, 2, 3, 0, 5}
	payload := encodeNone(t, docIDs)

	sink := NewScalarSink()
	DecodeAndProcess(1, sink, codec.None{}, types.DGap0, len(docIDs), payload)

	results := sink.Results()
	for _, r := range results {
		require.NotZero(t, r.DocID)
	}
	require.Len(t, results, 4)
}

func TestRoaringSinkTracksBitmapPerImpact(t *testing.T) {
	docIDs := []uint32{10, 20, 30}
	payload := encodeNone(t, docIDs)

	sink := NewRoaringSink()
	DecodeAndProcess(9, sink, codec.None{}, types.DGap0, len(docIDs), payload)

	bm := sink.DocsAtImpact(9)
	for _, doc := range docIDs {
		require.True(t, bm.Contains(doc))
	}
	require.False(t, bm.Contains(999))
}

func TestDecodeAndProcessAccumulatesAcrossSegments(t *testing.T) {
	sink := NewScalarSink()

	first := encodeNone(t, []uint32{1, 2, 3})
	DecodeAndProcess(2, sink, codec.None{}, types.DGap0, 3, first)

	second := encodeNone(t, []uint32{2, 4})
	DecodeAndProcess(5, sink, codec.None{}, types.DGap0, 2, second)

	byDoc := map[uint32]float64{}
	for _, r := range sink.Results() {
		byDoc[r.DocID] = r.Score
	}
	require.Equal(t, float64(2), byDoc[1])
	require.Equal(t, float64(7), byDoc[2])
	require.Equal(t, float64(5), byDoc[4])
}
