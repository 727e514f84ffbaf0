package engine

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arborwake/impactindex/codec"
	"github.com/arborwake/impactindex/core"
	"github.com/arborwake/impactindex/index"
	"github.com/arborwake/impactindex/ranking"
	"github.com/arborwake/impactindex/types"
)

func newTestEngine(t *testing.T, shards int) *Engine {
	t.Helper()
	var shardIDs []uint64
	for i := 0; i < shards; i++ {
		shardIDs = append(shardIDs, uint64(i))
	}
	opts := types.BuildOptions{
		Shards:         shardIDs,
		ArenaSlabBytes: 4096,
		Ranker:         ranking.NewBM25(1.2, 0.75, []float64{3, 3, 3, 3, 3}),
	}
	e, err := New(opts, zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestEngineRequiresRanker(t *testing.T) {
	_, err := New(types.BuildOptions{}, zerolog.Nop())
	require.Error(t, err)
}

func TestEngineIndexTokensRoutesAcrossShards(t *testing.T) {
	e := newTestEngine(t, 4)
	require.NoError(t, e.IndexTokens(1, []core.TermPosition{
		{Term: "apple", Position: 0},
		{Term: "pie", Position: 1},
	}))
	require.NoError(t, e.IndexTokens(2, []core.TermPosition{
		{Term: "apple", Position: 0},
	}))
	e.FlushIndex()

	var total int
	for _, idx := range e.shardIndexers {
		total += len(idx.Terms())
	}
	require.Equal(t, 2, total)
	require.NoError(t, e.Close())
}

func TestEngineBuildWritesIndex(t *testing.T) {
	e := newTestEngine(t, 2)
	require.NoError(t, e.IndexTokens(1, []core.TermPosition{{Term: "apple", Position: 0}}))
	require.NoError(t, e.IndexTokens(2, []core.TermPosition{{Term: "apple", Position: 0}, {Term: "pie", Position: 1}}))

	dir := t.TempDir()
	err := e.Build(dir, [][]byte{[]byte("doc-1"), []byte("doc-2")}, index.BuildResult{
		Codec: codec.None{},
		DGap:  types.DGap0,
	}, 2)
	require.NoError(t, err)

	reader, err := index.OpenReader(dir)
	require.NoError(t, err)
	defer reader.Close()

	vocab := reader.Vocabulary()
	require.Len(t, vocab, 2)
	require.Equal(t, "apple", string(vocab[0].Term))
	require.Equal(t, "pie", string(vocab[1].Term))

	require.Greater(t, testutil.ToFloat64(e.metrics.PostingsBytesWritten), float64(0))
}

func TestEngineCheckpointRecover(t *testing.T) {
	dir := t.TempDir()
	var shardIDs []uint64
	for i := 0; i < 2; i++ {
		shardIDs = append(shardIDs, uint64(i))
	}
	opts := types.BuildOptions{
		Shards:                  shardIDs,
		ArenaSlabBytes:          4096,
		Ranker:                  ranking.NewBM25(1.2, 0.75, []float64{3, 3}),
		UseCheckpointStorage:    true,
		CheckpointStorageFolder: filepath.Join(dir, "checkpoints"),
		StorageEngine:           "bolt",
	}
	e, err := New(opts, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, e.IndexTokens(1, []core.TermPosition{{Term: "apple", Position: 0}}))
	e.FlushIndex()
	require.NoError(t, e.Close())

	e2, err := New(opts, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, e2.Recover())
	e2.FlushIndex()

	var total int
	for _, idx := range e2.shardIndexers {
		total += len(idx.Terms())
	}
	require.Equal(t, 1, total)
	require.NoError(t, e2.Close())
}
