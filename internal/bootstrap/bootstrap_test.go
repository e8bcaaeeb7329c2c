package bootstrap

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/store/filekv"
	"github.com/boolean-maybe/tock/store/sqlitekv"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelError},
		{"verbose", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	ConfigureLogging(&buf, slog.LevelWarn)
	slog.Info("hidden")
	slog.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown key=value")
}

func TestOpenKV(t *testing.T) {
	dir := t.TempDir()

	kv, closer, err := OpenKV(config.BackendFile, filepath.Join(dir, "files"))
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, &filekv.Store{}, kv)

	kv, closer, err = OpenKV(config.BackendSQLite, filepath.Join(dir, "db"))
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.IsType(t, &sqlitekv.Store{}, kv)
	assert.NoError(t, closer.Close())

	kv, closer, err = OpenKV(config.BackendMemory, "")
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, &store.MemoryKV{}, kv)
}

func TestNewServices(t *testing.T) {
	svc, err := NewServices(store.NewMemoryKV(), nil, stats.Goals{Daily: 3})
	require.NoError(t, err)

	added, err := svc.Tasks.AddTask("Finish the quarterly report")
	require.NoError(t, err)
	assert.Len(t, added.ID, 8)
	assert.Equal(t, "Work", added.Category)
	assert.Equal(t, 3, svc.Stats.Goals().Daily)
	assert.Equal(t, 25, svc.Stats.Goals().Weekly, "missing goals use defaults")
	assert.NoError(t, svc.Close())
}

func TestWatchMatcher(t *testing.T) {
	dir := t.TempDir()
	fkv, err := filekv.NewOS(dir)
	require.NoError(t, err)

	files := &Services{Backend: config.BackendFile, KV: fkv}
	match := files.WatchMatcher()
	require.NotNil(t, match)
	assert.True(t, match(fkv.Path(store.KeyTasks)))
	assert.True(t, match(fkv.Path(store.KeyStats)))
	assert.False(t, match(filepath.Join(dir, "tasks.json.tmp")))
	assert.False(t, match(filepath.Join(dir, "other.json")))

	db := &Services{Backend: config.BackendSQLite}
	match = db.WatchMatcher()
	require.NotNil(t, match)
	assert.True(t, match(filepath.Join(dir, sqlitekv.FileName)))
	assert.False(t, match(filepath.Join(dir, sqlitekv.FileName+"-wal")))

	mem := &Services{Backend: config.BackendMemory, KV: store.NewMemoryKV()}
	assert.Nil(t, mem.WatchMatcher())
}

func TestInitHeaderBaseStats(t *testing.T) {
	svc, err := NewServices(store.NewMemoryKV(), nil, stats.DefaultGoals)
	require.NoError(t, err)
	hc := model.NewHeaderConfig()

	id := InitHeaderBaseStats(hc, svc.Tasks)
	defer svc.TaskStore.RemoveListener(id)

	values := func() map[string]string {
		out := map[string]string{}
		for _, s := range hc.GetStats() {
			out[s.Name] = s.Value
		}
		return out
	}
	assert.Equal(t, "0 (0 active)", values()["Tasks"])
	assert.Equal(t, "0 (0%)", values()["Done"])

	first, err := svc.Tasks.AddTask("Water the plants")
	require.NoError(t, err)
	_, err = svc.Tasks.AddTask("Call mom")
	require.NoError(t, err)
	_, err = svc.Tasks.Toggle(first.ID)
	require.NoError(t, err)

	assert.Equal(t, "2 (1 active)", values()["Tasks"])
	assert.Equal(t, "1 (50%)", values()["Done"])
}

func TestWireNavigation(t *testing.T) {
	svc, err := NewServices(store.NewMemoryKV(), nil, stats.DefaultGoals)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	controllers := BuildControllers(ctx, nil, svc)

	lm := model.NewLayoutModel()
	controllers.Nav.SetOnViewChanged(func(viewID model.ViewID, params map[string]interface{}) {
		lm.SetContent(viewID, params)
	})
	controllers.Nav.SwitchPage(model.TimerViewID)
	assert.Equal(t, model.TimerViewID, lm.GetContentViewID())
	assert.Same(t, svc.Tasks, controllers.TaskList.Tasks())
}
