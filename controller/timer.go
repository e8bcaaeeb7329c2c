package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/boolean-maybe/tock/timer"
)

// BreakChoices are the break lengths, in minutes, the timer page cycles through.
var BreakChoices = []int{5, 10, 15, 20}

// TimerController handles timer page actions.
type TimerController struct {
	runner   *timer.Runner
	registry *ActionRegistry
	ctx      context.Context
}

// NewTimerController creates the timer page controller. The runner's loop
// stops when ctx is cancelled.
func NewTimerController(ctx context.Context, runner *timer.Runner) *TimerController {
	return &TimerController{
		runner:   runner,
		registry: TimerViewActions(),
		ctx:      ctx,
	}
}

// GetActionRegistry returns the actions for the timer page
func (tc *TimerController) GetActionRegistry() *ActionRegistry {
	return tc.registry
}

// Runner returns the countdown driver
func (tc *TimerController) Runner() *timer.Runner {
	return tc.runner
}

// HandleAction processes a timer action
func (tc *TimerController) HandleAction(actionID ActionID) bool {
	switch actionID {
	case ActionTimerToggle:
		tc.runner.Toggle(tc.ctx)
		return true
	case ActionTimerReset:
		tc.runner.Reset()
		return true
	case ActionBreakIncrease:
		return tc.stepBreak(1)
	case ActionBreakDecrease:
		return tc.stepBreak(-1)
	default:
		return false
	}
}

// stepBreak moves the break length to the neighbouring choice.
func (tc *TimerController) stepBreak(delta int) bool {
	current := int(tc.runner.State().BreakTime / time.Minute)
	next := nextChoice(BreakChoices, current, delta)
	if next == current {
		return false
	}
	if err := tc.runner.SetBreakMinutes(next); err != nil {
		slog.Error("failed to set break length", "minutes", next, "error", err)
		return false
	}
	return true
}

// nextChoice returns the choice adjacent to current in direction delta.
// A current value between choices snaps to the nearest one in that direction.
func nextChoice(choices []int, current, delta int) int {
	if delta > 0 {
		for _, c := range choices {
			if c > current {
				return c
			}
		}
		return current
	}
	for i := len(choices) - 1; i >= 0; i-- {
		if choices[i] < current {
			return choices[i]
		}
	}
	return current
}
