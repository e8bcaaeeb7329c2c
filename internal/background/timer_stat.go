package background

import (
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/timer"
)

// TimerStatOrder places the countdown after the task counters in the header.
const TimerStatOrder = 3

// PublishTimerStat mirrors the Pomodoro countdown into HeaderConfig.
// Runner observers fire on the ticker goroutine, so updates are handed to
// queueUpdate (app.QueueUpdateDraw); nil applies them inline.
func PublishTimerStat(runner *timer.Runner, headerConfig *model.HeaderConfig, queueUpdate func(func())) {
	if queueUpdate == nil {
		queueUpdate = func(fn func()) { fn() }
	}

	headerConfig.SetStat("Timer", TimerStatValue(runner.State()), TimerStatOrder)
	runner.OnChange(func(s timer.State) {
		value := TimerStatValue(s)
		queueUpdate(func() {
			headerConfig.SetStat("Timer", value, TimerStatOrder)
		})
	})
}

// TimerStatValue renders the header value for a timer state.
func TimerStatValue(s timer.State) string {
	switch s.Status {
	case timer.StatusRunning:
		if s.IsBreak {
			return s.Format() + " break"
		}
		return s.Format() + " work"
	case timer.StatusPaused:
		return s.Format() + " paused"
	default:
		return "idle"
	}
}
