package codec

import (
	"testing"

	"github.com/arborwake/impactindex/types"
	"github.com/stretchr/testify/require"
)

func TestReconstructDGap0LeavesAbsoluteDocidsUntouched(t *testing.T) {
	docIDs := []uint32{5, 7, 9}
	Reconstruct(types.DGap0, docIDs)
	require.Equal(t, []uint32{5, 7, 9}, docIDs)
}

func TestReconstructDNoneLeavesPayloadUntouched(t *testing.T) {
	docIDs := []uint32{5, 1, 9}
	Reconstruct(types.DNone, docIDs)
	require.Equal(t, []uint32{5, 1, 9}, docIDs)
}

func TestReconstructDGap1PrefixSums(t *testing.T) {
	docIDs := []uint32{1, 2, 3, 4}
	Reconstruct(types.DGap1, docIDs)
	require.Equal(t, []uint32{1, 3, 6, 10}, docIDs)
}

// TestReconstructDGapEquivalence checks testable property 6: decoding a
// d1 (delta) stream and reconstructing it must equal decoding the
// equivalent d0 (absolute) stream directly, for any ascending docid run.
func TestReconstructDGapEquivalence(t *testing.T) {
	absolute := []uint32{3, 5, 8, 8, 12}
	deltas := make([]uint32, len(absolute))
	var prev uint32
	for i, doc := range absolute {
		deltas[i] = doc - prev
		prev = doc
	}

	gap0 := append([]uint32{}, absolute...)
	Reconstruct(types.DGap0, gap0)

	gap1 := append([]uint32{}, deltas...)
	Reconstruct(types.DGap1, gap1)

	require.Equal(t, absolute, gap0)
	require.Equal(t, gap0, gap1)
}
