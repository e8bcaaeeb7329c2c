package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState(0, 0)
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, DefaultWork, s.TimeLeft)
	assert.Equal(t, DefaultBreak, s.BreakTime)
	assert.False(t, s.IsBreak)
	assert.Equal(t, "25:00", s.Format())
}

func TestReduceStartPause(t *testing.T) {
	s := NewState(DefaultWork, DefaultBreak)
	s = Reduce(s, Action{Type: ActionStart})
	assert.Equal(t, StatusRunning, s.Status)
	assert.Equal(t, "Pause", s.StartLabel())

	s = Reduce(s, Action{Type: ActionPause})
	assert.Equal(t, StatusPaused, s.Status)
	assert.Equal(t, "Resume", s.StartLabel())
}

func TestReduceTick(t *testing.T) {
	s := Reduce(NewState(DefaultWork, DefaultBreak), Action{Type: ActionStart})
	s = Reduce(s, Action{Type: ActionTick})
	assert.Equal(t, DefaultWork-time.Second, s.TimeLeft)
	assert.Equal(t, "24:59", s.Format())
	assert.Equal(t, StatusRunning, s.Status)
}

func TestReducePhaseFlip(t *testing.T) {
	s := NewState(2*time.Second, 3*time.Minute)
	s = Reduce(s, Action{Type: ActionStart})
	s = Reduce(s, Action{Type: ActionTick})
	s = Reduce(s, Action{Type: ActionTick})

	assert.Equal(t, StatusIdle, s.Status)
	assert.True(t, s.IsBreak)
	assert.Equal(t, 3*time.Minute, s.TimeLeft)
	assert.Equal(t, "Break Time", s.Phase())

	// finishing the break returns to work length
	s.TimeLeft = time.Second
	s = Reduce(s, Action{Type: ActionTick})
	assert.False(t, s.IsBreak)
	assert.Equal(t, 2*time.Second, s.TimeLeft)
	assert.Equal(t, "Work Time", s.Phase())
}

func TestReduceReset(t *testing.T) {
	s := Reduce(NewState(DefaultWork, DefaultBreak), Action{Type: ActionStart})
	s = Reduce(s, Action{Type: ActionTick})
	s = Reduce(s, Action{Type: ActionReset})
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, DefaultWork, s.TimeLeft)

	s.IsBreak = true
	s = Reduce(s, Action{Type: ActionReset})
	assert.Equal(t, DefaultBreak, s.TimeLeft)
}

func TestSetBreakMinutes(t *testing.T) {
	_, err := SetBreakMinutes(0)
	assert.ErrorIs(t, err, ErrInvalidBreak)
	_, err = SetBreakMinutes(-5)
	assert.ErrorIs(t, err, ErrInvalidBreak)

	a, err := SetBreakMinutes(10)
	require.NoError(t, err)
	s := Reduce(NewState(DefaultWork, DefaultBreak), a)
	assert.Equal(t, 10*time.Minute, s.BreakTime)
	// current countdown is untouched
	assert.Equal(t, DefaultWork, s.TimeLeft)
}

func TestReduceUnknownAction(t *testing.T) {
	s := NewState(DefaultWork, DefaultBreak)
	assert.Equal(t, s, Reduce(s, Action{Type: "BOGUS"}))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		left time.Duration
		want string
	}{
		{left: 0, want: "00:00"},
		{left: 59 * time.Second, want: "00:59"},
		{left: 5 * time.Minute, want: "05:00"},
		{left: 90 * time.Minute, want: "90:00"},
		{left: -time.Second, want: "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, State{TimeLeft: tt.left}.Format())
		})
	}
}
