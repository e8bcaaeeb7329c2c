package view

import (
	"fmt"
	"time"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/timer"
	"github.com/boolean-maybe/tock/util/gradient"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// timerBarWidth is the width of the phase progress bar under the clock
const timerBarWidth = 30

// TimerView is the Pomodoro page. It reads the runner state each time it is
// drawn; the app redraws on every tick.
type TimerView struct {
	root     *tview.Flex
	titleBar *GradientCaptionRow
	phase    *tview.TextView
	clock    *BigClock
	progress *tview.TextView
	status   *tview.TextView
	info     *tview.TextView

	timer    *controller.TimerController
	registry *controller.ActionRegistry
}

// NewTimerView creates the timer page
func NewTimerView(tc *controller.TimerController) *TimerView {
	tv := &TimerView{
		timer:    tc,
		registry: tc.GetActionRegistry(),
	}
	tv.build()
	return tv
}

func (tv *TimerView) build() {
	colors := config.GetColors()
	tv.titleBar = NewGradientCaptionRow([]string{"Pomodoro Timer"}, colors.PaneTitleGradient, colors.PaneTitleText)

	centered := func() *tview.TextView {
		return tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	}
	tv.phase = centered()
	tv.clock = NewBigClock()
	tv.progress = centered()
	tv.status = centered()
	tv.info = centered()

	tv.root = tview.NewFlex().SetDirection(tview.FlexRow)
	tv.root.AddItem(tv.titleBar, 1, 0, false)
	tv.root.AddItem(tview.NewBox(), 0, 1, false)
	tv.root.AddItem(tv.phase, 1, 0, false)
	tv.root.AddItem(tview.NewBox(), 1, 0, false)
	tv.root.AddItem(tv.clock, BigClockHeight, 0, false)
	tv.root.AddItem(tview.NewBox(), 1, 0, false)
	tv.root.AddItem(tv.progress, 1, 0, false)
	tv.root.AddItem(tv.status, 1, 0, false)
	tv.root.AddItem(tv.info, 1, 0, false)
	tv.root.AddItem(tview.NewBox(), 0, 1, false)

	tv.root.SetDrawFunc(func(_ tcell.Screen, x, y, width, height int) (int, int, int, int) {
		tv.sync()
		return x, y, width, height
	})
	tv.sync()
}

// sync copies the runner state into the widgets.
func (tv *TimerView) sync() {
	colors := config.GetColors()
	state := tv.timer.Runner().State()

	g := colors.TimerWorkGradient
	if state.IsBreak {
		g = colors.TimerBreakGradient
	}

	tv.phase.SetText(colors.TimerLabelColor + state.Phase() + "[-]")
	tv.clock.SetText(state.Format()).SetGradient(g).SetDimmed(state.Status == timer.StatusPaused)
	tv.progress.SetText(gradient.ProgressBar(timerBarWidth, phaseFraction(state), g, colors.ProgressTrackColor))
	tv.status.SetText(statusLine(state, colors))
	tv.info.SetText(fmt.Sprintf("%sBreak: %d min · Space %s[-]",
		colors.TimerPausedColor, int(state.BreakTime/time.Minute), state.StartLabel()))
}

// phaseFraction is how much of the current phase has elapsed.
func phaseFraction(s timer.State) float64 {
	total := s.WorkTime
	if s.IsBreak {
		total = s.BreakTime
	}
	if total <= 0 {
		return 0
	}
	return 1 - float64(s.TimeLeft)/float64(total)
}

func statusLine(s timer.State, colors *config.ColorConfig) string {
	switch s.Status {
	case timer.StatusRunning:
		return colors.TimerLabelColor + "Timer is running[-]"
	case timer.StatusPaused:
		return colors.TimerPausedColor + "Timer is paused[-]"
	default:
		return colors.TimerPausedColor + "Ready to start[-]"
	}
}

// GetPrimitive returns the root tview primitive
func (tv *TimerView) GetPrimitive() tview.Primitive {
	return tv.root
}

// GetActionRegistry returns the view's action registry
func (tv *TimerView) GetActionRegistry() *controller.ActionRegistry {
	return tv.registry
}

// GetViewID returns the view identifier
func (tv *TimerView) GetViewID() model.ViewID {
	return model.TimerViewID
}

// OnFocus is called when the view becomes active
func (tv *TimerView) OnFocus() {
	tv.sync()
}

// OnBlur is called when the view becomes inactive
func (tv *TimerView) OnBlur() {}
