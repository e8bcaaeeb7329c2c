// Package timer implements the Pomodoro work/break countdown.
package timer

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBreak is returned when a break length is not a positive number of minutes.
var ErrInvalidBreak = errors.New("break time must be a positive number of minutes")

// Default phase lengths.
const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// Status is the run state of the countdown.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// ActionType names a state transition.
type ActionType string

const (
	ActionStart        ActionType = "START"
	ActionPause        ActionType = "PAUSE"
	ActionReset        ActionType = "RESET"
	ActionTick         ActionType = "TICK"
	ActionSetBreakTime ActionType = "SET_BREAK_TIME"
)

// Action is one input to Reduce. BreakTime is read by ActionSetBreakTime only.
type Action struct {
	Type      ActionType
	BreakTime time.Duration
}

// State is a snapshot of the countdown.
type State struct {
	Status    Status
	TimeLeft  time.Duration
	WorkTime  time.Duration
	BreakTime time.Duration
	IsBreak   bool
}

// NewState returns an idle work phase. Non-positive lengths use the defaults.
func NewState(work, brk time.Duration) State {
	if work <= 0 {
		work = DefaultWork
	}
	if brk <= 0 {
		brk = DefaultBreak
	}
	return State{
		Status:    StatusIdle,
		TimeLeft:  work,
		WorkTime:  work,
		BreakTime: brk,
	}
}

// Reduce applies a to s and returns the next state. Unknown actions return s.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionStart:
		s.Status = StatusRunning
	case ActionPause:
		s.Status = StatusPaused
	case ActionReset:
		s.Status = StatusIdle
		s.TimeLeft = s.phaseLength()
	case ActionTick:
		left := s.TimeLeft - time.Second
		if left <= 0 {
			s.Status = StatusIdle
			s.IsBreak = !s.IsBreak
			s.TimeLeft = s.phaseLength()
			return s
		}
		s.TimeLeft = left
	case ActionSetBreakTime:
		s.BreakTime = a.BreakTime
	}
	return s
}

func (s State) phaseLength() time.Duration {
	if s.IsBreak {
		return s.BreakTime
	}
	return s.WorkTime
}

// SetBreakMinutes builds a SET_BREAK_TIME action from user input.
func SetBreakMinutes(minutes int) (Action, error) {
	if minutes <= 0 {
		return Action{}, fmt.Errorf("setting break to %d: %w", minutes, ErrInvalidBreak)
	}
	return Action{Type: ActionSetBreakTime, BreakTime: time.Duration(minutes) * time.Minute}, nil
}

// Format renders the remaining time as MM:SS. Minutes are not capped at 59.
func (s State) Format() string {
	secs := int(s.TimeLeft / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Phase is the heading for the current phase.
func (s State) Phase() string {
	if s.IsBreak {
		return "Break Time"
	}
	return "Work Time"
}

// StartLabel is the label of the start control in the current state.
func (s State) StartLabel() string {
	switch s.Status {
	case StatusRunning:
		return "Pause"
	case StatusPaused:
		return "Resume"
	default:
		return "Start"
	}
}
