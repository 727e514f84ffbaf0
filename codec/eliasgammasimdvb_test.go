package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeAllowingOverscan(t *testing.T, c Codec, n int, encoded []byte) []uint32 {
	t.Helper()
	dst := make([]uint32, n+c.Overscan())
	c.Decode(dst, n, encoded)
	return dst[:n]
}

func roundTrip(t *testing.T, c Codec, src []uint32) {
	t.Helper()
	dst := make([]byte, (len(src)+lanes)*8+frameBytes)
	written := c.Encode(dst, src, len(src))
	require.NotZero(t, written, "encode must not overflow a generously sized buffer")
	got := decodeAllowingOverscan(t, c, len(src), dst[:written])
	require.Equal(t, src, got)
}

func TestEliasGammaSelectorBijectionScenarioS6(t *testing.T) {
	widths := []int{3, 2, 5, 4}
	selector := ComputeSelector(widths)
	require.Equal(t, widths, SelectorWidths(selector))
}

func TestEliasGammaSelectorSingleWidth(t *testing.T) {
	for w := 1; w <= 32; w++ {
		selector := ComputeSelector([]int{w})
		require.Equal(t, []int{w}, SelectorWidths(selector))
	}
}

func TestEliasGammaRoundTripSmall(t *testing.T) {
	roundTrip(t, EliasGammaSIMDVB{}, []uint32{1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
}

func TestEliasGammaRoundTripLessThanOneFrame(t *testing.T) {
	roundTrip(t, EliasGammaSIMDVB{}, []uint32{5, 3, 9})
}

func TestEliasGammaRoundTripMultiFrame(t *testing.T) {
	src := make([]uint32, 50)
	for i := range src {
		src[i] = uint32(i%7 + 1)
	}
	roundTrip(t, EliasGammaSIMDVB{}, src)
}

// TestEliasGammaRoundTripBrokenSequenceScenarioS3 feeds the codec a
// deliberately irregular run of small integers mixed with large outliers
// (6, 10, ... 56, ... 95) so that width selection has to flip between 2 and
// 7 bits across neighboring 16-lane slices within the same frame.
func TestEliasGammaRoundTripBrokenSequenceScenarioS3(t *testing.T) {
	brokenSequence := []uint32{
		6, 10, 2, 1, 2, 1, 1, 1, 1, 2, 2, 1, 1, 14, 1, 1,
		4, 1, 2, 1, 2, 5, 3, 4, 3, 1, 3, 4, 2, 3, 1, 1,
		6, 13, 5, 1, 2, 8, 4, 2, 5, 1, 1, 1, 2, 1, 1, 2,
		3, 1, 2, 1, 1, 2, 2, 1, 3, 1, 1, 1, 1, 1, 1, 1,
		1, 2, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 2, 3,
		1, 7, 1, 4, 5, 3, 2, 1, 10, 1, 8, 1, 2, 5, 1, 24,
		1, 1, 1, 1, 1, 1, 1, 5, 5, 2, 2, 1, 3, 4, 5, 5,
		2, 4, 2, 2, 1, 1, 1, 2, 2, 1, 2, 1, 2, 1, 3, 3,
		3, 7, 3, 2, 1, 1, 4, 5, 4, 1, 4, 8, 6, 1, 2, 1,
		1, 1, 1, 1, 1, 3, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2,

		1, 3, 2, 2, 3, 1, 2, 1, 1, 2, 1, 1, 1, 1, 1, 2,
		9, 1, 1, 4, 5, 6, 1, 4, 2, 5, 4, 6, 7, 1, 1, 2,
		1, 1, 9, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 6, 4, 1, 5, 7, 1, 1, 1, 1,
		2, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 1,
		2, 1, 1, 1, 2, 2, 1, 4, 1, 1, 4, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 2, 5, 3, 1, 3, 1, 1, 4, 1, 2, 1,
		3, 1, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 2, 2, 1, 1, 1, 8, 3, 1, 2, 56, 2,

		12, 1, 6, 70, 68, 25, 13, 44, 36, 22, 4, 95, 19, 5, 39, 8,
		25, 14, 9, 8, 27, 6, 1, 1, 8, 11, 8, 3, 4, 1, 2, 8,
		3, 23, 2, 16, 8, 2, 28, 26, 6, 11, 9, 16, 1, 1, 7, 7,
		45, 2, 33, 39, 20, 14, 2, 1, 8, 26, 1, 10, 12, 3, 16, 3,
		25, 9, 6, 9, 6, 3, 41, 17, 15, 11, 33, 8, 1, 1, 1, 1,
	}
	roundTrip(t, EliasGammaSIMDVB{}, brokenSequence)
}

// TestEliasGammaRoundTripSecondBrokenSequenceScenarioS4 contains a single
// large outlier (793) in its first slice, forcing a 10-bit width for that
// slice even though every other lane in it is tiny.
func TestEliasGammaRoundTripSecondBrokenSequenceScenarioS4(t *testing.T) {
	secondBrokenSequence := []uint32{
		1, 1, 1, 793, 1, 1, 1, 1, 2, 1, 5, 3, 2, 1, 5, 63,
		1, 2, 2, 1, 1, 1, 1, 1, 1, 1, 5, 6, 2, 4, 1, 2,
		1, 1, 1, 1, 4, 2, 1, 2, 2, 1, 1, 1, 3, 2, 2, 1,
		1, 1, 2, 3, 1, 1, 8, 1, 1, 21, 2, 9, 15, 27, 7, 4,
		2, 7, 1, 1, 2, 1, 1, 3, 2, 3, 1, 3, 3, 1, 2, 2,
		3, 1, 3, 1, 2, 1, 2, 4, 1, 1, 3, 10, 1, 2, 1, 1,
		6, 2, 1, 1, 3, 3, 7, 3, 2, 1, 2, 4, 3, 1, 2, 1,
		6, 2, 2, 1,
	}
	require.Contains(t, secondBrokenSequence, uint32(793))
	roundTrip(t, EliasGammaSIMDVB{}, secondBrokenSequence)
}

func TestEliasGammaEncodeReportsOverflow(t *testing.T) {
	src := make([]uint32, 17)
	for i := range src {
		src[i] = uint32(i + 1)
	}
	dst := make([]byte, frameBytes-1)
	require.Zero(t, EliasGammaSIMDVB{}.Encode(dst, src, len(src)))
}
