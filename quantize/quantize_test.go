package quantize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborwake/impactindex/types"
)

// fixedRanker returns a score looked up by (doc, tf) pair regardless of
// idf; it exists purely to drive the quantizer with known inputs.
type fixedRanker struct {
	scores map[[2]uint32]float64
}

func (r *fixedRanker) IDFComponent(uint32, uint32) float64 { return 0 }
func (r *fixedRanker) TFComponent(uint16) float64          { return 0 }
func (r *fixedRanker) Score(docIndex uint32, tf uint16) float64 {
	return r.scores[[2]uint32{docIndex, uint32(tf)}]
}

func TestQuantizerBoundsScenarioS2(t *testing.T) {
	// A small synthetic corpus engineered so the observed range spans
	// [0, 6], matching the testable property in §8 S2.
	r := &fixedRanker{scores: map[[2]uint32]float64{
		{0, 1}: 0.0,
		{1, 1}: 2.5,
		{2, 2}: 6.0,
		{3, 1}: 4.25,
	}}
	q := New(r, 10)
	err := q.Observe(4, []uint32{1, 2, 3, 4}, []uint16{1, 1, 2, 1})
	require.NoError(t, err)
	q.Finalize()

	smallest, largest := q.Bounds()
	require.Equal(t, 0, int(math.Floor(smallest)))
	require.Equal(t, 6, int(math.Floor(largest)))
}

func TestEmitClampsToImpactDomain(t *testing.T) {
	r := &fixedRanker{scores: map[[2]uint32]float64{
		{0, 1}: 0.0,
		{1, 2}: 6.0,
	}}
	q := New(r, 10)
	require.NoError(t, q.Observe(2, []uint32{1, 2}, []uint16{1, 2}))
	q.Finalize()

	tfs := []uint16{1, 2}
	q.Emit(2, []uint32{1, 2}, tfs)

	for _, tf := range tfs {
		impact := uint8(tf)
		require.GreaterOrEqual(t, impact, types.SmallestImpact)
		require.LessOrEqual(t, impact, types.LargestImpact)
	}
	// The smallest score maps to SmallestImpact, the largest to LargestImpact.
	require.Equal(t, types.SmallestImpact, uint8(tfs[0]))
	require.Equal(t, types.LargestImpact, uint8(tfs[1]))
}

func TestEmitZeroRangeUsesSmallestImpact(t *testing.T) {
	r := &fixedRanker{scores: map[[2]uint32]float64{
		{0, 1}: 3.0,
		{1, 1}: 3.0,
	}}
	q := New(r, 5)
	require.NoError(t, q.Observe(2, []uint32{1, 2}, []uint16{1, 1}))
	q.Finalize()

	impacts := q.EmitImpacts(2, []uint32{1, 2}, []uint16{1, 1})
	require.Equal(t, []uint8{types.SmallestImpact, types.SmallestImpact}, impacts)
}

type nanRanker struct{}

func (nanRanker) IDFComponent(uint32, uint32) float64     { return 0 }
func (nanRanker) TFComponent(uint16) float64              { return 0 }
func (nanRanker) Score(docIndex uint32, tf uint16) float64 { return math.NaN() }

func TestObserveRejectsNaNScore(t *testing.T) {
	q := New(nanRanker{}, 5)
	err := q.Observe(1, []uint32{1}, []uint16{1})
	require.Error(t, err)
}
