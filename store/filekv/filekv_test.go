package filekv

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/store"
)

func TestGetMissing(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	_, err = s.Get(store.KeyTasks)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetGetMemFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := New(fsys, "/data")
	require.NoError(t, err)

	require.NoError(t, s.Set(store.KeyStats, []byte(`{"goals":{}}`)))
	require.NoError(t, s.Set(store.KeyStats, []byte(`{"goals":{"daily":3}}`)))

	got, err := s.Get(store.KeyStats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"goals":{"daily":3}}`, string(got))

	// only the value file remains, no temp files
	entries, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "taskStats.json", entries[0].Name())
}

func TestSetGetOsFs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := NewOS(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(store.KeyTasks, []byte(`[]`)))
	got, err := s.Get(store.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.FileExists(t, filepath.Join(dir, "tasks.json"))
}

func TestInvalidKey(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	assert.Error(t, s.Set("../escape", []byte("x")))
	_, err = s.Get("")
	assert.Error(t, err)
}

func TestKeyForPath(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	assert.Equal(t, "tasks", s.KeyForPath(s.Path("tasks")))
	assert.Equal(t, "", s.KeyForPath("/data/.tasks-123.tmp"))
	assert.Equal(t, "", s.KeyForPath("/other/tasks.json"))
}

func TestBacksTaskStore(t *testing.T) {
	s, err := New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	ts, err := store.NewTaskStore(s)
	require.NoError(t, err)
	assert.Empty(t, ts.All())
}
