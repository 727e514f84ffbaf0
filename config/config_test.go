package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.yaml")
	require.NoError(t, os.WriteFile(path, []byte("numsegmenterthreads: 4\narenaslabbytes: 2048\n"), 0644))

	opts, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, opts.NumSegmenterThreads)
	require.Equal(t, 2048, opts.ArenaSlabBytes)
	require.Equal(t, []uint64{0}, opts.Shards)
	require.Equal(t, "bolt", opts.StorageEngine)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
