package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKVStorageSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_test")

	db, err := openKVStorage(path)
	require.NoError(t, err)

	require.NoError(t, db.Set([]byte("key1"), []byte("value1")))

	value, err := db.Get([]byte("key1"))
	require.NoError(t, err)
	require.Equal(t, "value1", string(value))

	require.NoError(t, db.Delete([]byte("key1")))
	value, err = db.Get([]byte("key1"))
	require.NoError(t, err)
	require.Empty(t, value)

	walFile := db.WALName()
	require.NoError(t, db.Close())
	require.NotEmpty(t, walFile)
}

func TestKVStorageCreatesThenReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_reopen")

	db, err := openKVStorage(path)
	require.NoError(t, err)
	require.NoError(t, db.Set([]byte("key1"), []byte("value1")))
	require.NoError(t, db.Close())

	db, err = openKVStorage(path)
	require.NoError(t, err)
	defer db.Close()

	value, err := db.Get([]byte("key1"))
	require.NoError(t, err)
	require.Equal(t, "value1", string(value))
}

func TestOpenRoutesToKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_routed")
	db, err := Open(path, "kv")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Set([]byte("k"), []byte("v")))
}
