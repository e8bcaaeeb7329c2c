package background

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/timer"
)

func TestTimerStatValue(t *testing.T) {
	s := timer.NewState(25*time.Minute, 5*time.Minute)
	assert.Equal(t, "idle", TimerStatValue(s))

	s.Status = timer.StatusRunning
	assert.Equal(t, "25:00 work", TimerStatValue(s))

	s.IsBreak = true
	s.TimeLeft = 4*time.Minute + 5*time.Second
	assert.Equal(t, "04:05 break", TimerStatValue(s))

	s.Status = timer.StatusPaused
	assert.Equal(t, "04:05 paused", TimerStatValue(s))
}

func TestPublishTimerStat(t *testing.T) {
	hc := model.NewHeaderConfig()
	runner := timer.NewRunner(25*time.Minute, 5*time.Minute)

	var queued int
	PublishTimerStat(runner, hc, func(fn func()) {
		queued++
		fn()
	})

	stat := func() string {
		for _, s := range hc.GetStats() {
			if s.Name == "Timer" {
				assert.Equal(t, TimerStatOrder, s.Order)
				return s.Value
			}
		}
		return ""
	}
	assert.Equal(t, "idle", stat())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner.Start(ctx)
	runner.Pause()

	assert.Positive(t, queued)
	assert.Equal(t, "25:00 paused", stat())
}

func TestDataWatcher_ReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	w, err := startDataWatcher(ctx, dir, func(path string) bool {
		return strings.HasSuffix(path, ".json")
	}, func() { calls.Add(1) }, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load(), "non-matching files are ignored")

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[]"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst collapses into one notification")
}

func TestDataWatcher_StopDropsPending(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := startDataWatcher(context.Background(), dir, nil, func() { calls.Add(1) }, 200*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stats.json"), []byte("{}"), 0o644))
	time.Sleep(50 * time.Millisecond)
	w.Stop()
	w.Stop()

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestStartDataWatcher_MissingDir(t *testing.T) {
	_, err := StartDataWatcher(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, func() {})
	assert.Error(t, err)
}
