package sqlitekv

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/store"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openMemory(t)
	_, err := s.Get(store.KeyTasks)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdatedAt(store.KeyTasks)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsert(t *testing.T) {
	s := openMemory(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Set(store.KeyStats, []byte(`{"a":1}`)))
	require.NoError(t, s.Set(store.KeyStats, []byte(`{"a":2}`)))

	got, err := s.Get(store.KeyStats)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	updated, err := s.UpdatedAt(store.KeyStats)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(updated))

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenDir(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(store.KeyTasks, []byte(`[]`)))
	require.NoError(t, s.Close())

	assert.FileExists(t, filepath.Join(dir, FileName))

	s, err = OpenDir(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Get(store.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
