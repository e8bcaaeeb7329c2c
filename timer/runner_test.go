package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRunner(work, brk time.Duration) *Runner {
	r := NewRunner(work, brk)
	r.interval = time.Millisecond
	return r
}

func TestRunnerCompletesPhase(t *testing.T) {
	r := fastRunner(3*time.Second, time.Minute)

	var mu sync.Mutex
	var seen []State
	r.OnChange(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	r.Start(context.Background())

	// start + three ticks
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 4
	}, time.Second, time.Millisecond)

	s := r.State()
	assert.Equal(t, StatusIdle, s.Status)
	assert.True(t, s.IsBreak)
	assert.Equal(t, time.Minute, s.TimeLeft)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 4)
	assert.Equal(t, StatusRunning, seen[0].Status)
	assert.Equal(t, 2*time.Second, seen[1].TimeLeft)
	assert.Equal(t, time.Second, seen[2].TimeLeft)
	assert.True(t, seen[3].IsBreak)
}

func TestRunnerPauseStopsTicking(t *testing.T) {
	r := fastRunner(time.Hour, time.Minute)
	r.Start(context.Background())

	require.Eventually(t, func() bool {
		return r.State().TimeLeft < time.Hour
	}, time.Second, time.Millisecond)

	r.Pause()
	paused := r.State()
	assert.Equal(t, StatusPaused, paused.Status)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, paused.TimeLeft, r.State().TimeLeft)
}

func TestRunnerResetRestoresLength(t *testing.T) {
	r := fastRunner(time.Hour, time.Minute)
	r.Start(context.Background())
	require.Eventually(t, func() bool {
		return r.State().TimeLeft < time.Hour
	}, time.Second, time.Millisecond)

	r.Reset()
	s := r.State()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, time.Hour, s.TimeLeft)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, time.Hour, r.State().TimeLeft)
}

func TestRunnerStartIsIdempotent(t *testing.T) {
	r := NewRunner(time.Hour, time.Minute)
	starts := 0
	r.OnChange(func(s State) {
		if s.Status == StatusRunning && s.TimeLeft == time.Hour {
			starts++
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	r.Start(ctx)
	assert.Equal(t, 1, starts)
}

func TestRunnerContextCancel(t *testing.T) {
	r := fastRunner(time.Hour, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	time.Sleep(10 * time.Millisecond)
	left := r.State().TimeLeft
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, left, r.State().TimeLeft)
}

func TestRunnerToggleAndBreak(t *testing.T) {
	r := NewRunner(time.Hour, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Toggle(ctx)
	assert.True(t, r.Running())
	r.Toggle(ctx)
	assert.Equal(t, StatusPaused, r.State().Status)

	assert.ErrorIs(t, r.SetBreakMinutes(0), ErrInvalidBreak)
	require.NoError(t, r.SetBreakMinutes(15))
	assert.Equal(t, 15*time.Minute, r.State().BreakTime)
}
