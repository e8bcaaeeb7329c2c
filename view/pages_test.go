package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	taskpkg "github.com/boolean-maybe/tock/task"
	"github.com/boolean-maybe/tock/timer"
)

func TestRenderBigRows(t *testing.T) {
	rows := renderBigRows("25:00")
	// four 4-wide digits, a 1-wide colon and four gaps
	assert.Len(t, rows[0], 21)
	assert.Equal(t, "#### ####   #  # #  #", string(rows[2]))

	blank := renderBigRows("?")
	assert.Equal(t, "    ", string(blank[0]))
}

func TestBigClockDraw(t *testing.T) {
	screen := newTestScreen(t, 25, 5)
	clock := NewBigClock().SetText("10:00").SetGradient(config.DefaultColors().TimerWorkGradient)
	clock.SetRect(0, 0, 25, 5)
	clock.Draw(screen)
	screen.Show()

	// 21 columns centered in 25 leaves two blank columns each side
	assert.Equal(t, "    █  █  █   █  █ █  █  ", screenRow(screen, 2))
}

func TestTimerView_Sync(t *testing.T) {
	f := newViewFixture(t)
	tv := NewTimerView(f.timer)

	assert.Equal(t, "Ready to start", tv.status.GetText(true))
	assert.Equal(t, "Work Time", tv.phase.GetText(true))
	assert.Contains(t, tv.info.GetText(true), "Break: 5 min · Space Start")
	assert.Equal(t, "25:00", tv.clock.text)

	require.True(t, f.timer.HandleAction(controller.ActionTimerToggle))
	tv.sync()
	assert.Equal(t, "Timer is running", tv.status.GetText(true))
	assert.False(t, tv.clock.dimmed)

	require.True(t, f.timer.HandleAction(controller.ActionTimerToggle))
	require.True(t, f.timer.HandleAction(controller.ActionBreakIncrease))
	tv.sync()
	assert.Equal(t, "Timer is paused", tv.status.GetText(true))
	assert.True(t, tv.clock.dimmed)
	assert.Contains(t, tv.info.GetText(true), "Break: 10 min · Space Resume")
}

func TestPhaseFraction(t *testing.T) {
	s := timer.State{WorkTime: 20 * time.Minute, BreakTime: 5 * time.Minute, TimeLeft: 15 * time.Minute}
	assert.InDelta(t, 0.25, phaseFraction(s), 1e-9)

	s.IsBreak = true
	s.TimeLeft = 5 * time.Minute
	assert.InDelta(t, 0.0, phaseFraction(s), 1e-9)

	assert.Zero(t, phaseFraction(timer.State{}))
}

func TestAnalyticsView_Sync(t *testing.T) {
	f := newViewFixture(t)
	f.add(t, "Prepare client presentation", "Go to the gym")
	_, err := f.tasks.Toggle("task-1")
	require.NoError(t, err)

	av := NewAnalyticsView(f.analytics)

	goals := av.goals.GetText(true)
	assert.Contains(t, goals, "▸ Daily")
	assert.Contains(t, goals, "Weekly")
	assert.Contains(t, goals, "Monthly")

	categories := av.categories.GetText(true)
	assert.Contains(t, categories, "Personal")
	assert.Contains(t, categories, "Work")

	assert.Equal(t, []string{"Work", "Personal"}, av.chips.GetWords())
	require.Len(t, av.hours.Bars(), 1)
	assert.Equal(t, "10h", av.hours.Bars()[0].Label)
	assert.Equal(t, 3.0, av.hours.Bars()[0].Value, "two creations and one completion")

	history := av.history.Bars()
	require.Len(t, history, 14)
	assert.Equal(t, "15", history[13].Label)
	assert.Equal(t, 1.0, history[13].Value)

	require.True(t, f.analytics.HandleAction(controller.ActionNextGoal))
	av.sync()
	assert.Contains(t, av.goals.GetText(true), "▸ Weekly")
}

func TestAnalyticsView_Empty(t *testing.T) {
	f := newViewFixture(t)
	av := NewAnalyticsView(f.analytics)

	assert.Contains(t, av.categories.GetText(true), "no tasks recorded yet")
	assert.Contains(t, av.hoursTitle.GetText(true), "no completions yet")
	assert.Contains(t, av.suggestions.GetText(true), "complete a few tasks")
	assert.Empty(t, av.chips.GetWords())
}

func TestRenderGoalsShowsTargets(t *testing.T) {
	f := newViewFixture(t)
	engine := f.analytics.Engine()
	require.NoError(t, engine.UpdateGoal(stats.Daily, 4))

	lines := strings.Split(renderGoals(engine, stats.Monthly, config.DefaultColors()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "0/4")
	assert.Contains(t, lines[3], "▸")
}

func TestRecurringForm_Input(t *testing.T) {
	f := newViewFixture(t)
	rf := NewRecurringForm(f.taskList)

	in, err := rf.Input()
	require.NoError(t, err)
	assert.Equal(t, controller.RecurringInput{Priority: "medium", Frequency: "daily", Time: "09:00"}, in)

	rf.text.SetText("Team sync")
	rf.category.SetCurrentOption(1)
	rf.frequency.SetCurrentOption(1)
	rf.days.SetText("monday, friday")
	in, err = rf.Input()
	require.NoError(t, err)
	assert.Equal(t, "Team sync", in.Text)
	assert.NotEmpty(t, in.Category)
	assert.Equal(t, "weekly", in.Frequency)
	assert.Equal(t, []string{"monday", "friday"}, in.Days)

	rf.frequency.SetCurrentOption(2)
	rf.monthDay.SetText("15")
	in, err = rf.Input()
	require.NoError(t, err)
	assert.Equal(t, 15, in.MonthDay)
	assert.Nil(t, in.Days)
}

func TestRecurringForm_SaveShowsErrors(t *testing.T) {
	f := newViewFixture(t)
	f.nav.PushView(model.RecurringViewID, nil)
	rf := NewRecurringForm(f.taskList)

	rf.clock.SetText("25:00")
	rf.text.SetText("Stretch")
	rf.save()
	assert.NotEmpty(t, rf.errors.GetText(true))
	assert.Empty(t, f.tasks.Store().All())

	rf.clock.SetText("07:30")
	rf.save()
	assert.Empty(t, strings.TrimSpace(rf.errors.GetText(true)))
	require.Len(t, f.tasks.Store().All(), 1)
	assert.Equal(t, "task-1", f.taskList.State().SelectedID())
}

func TestErrorMessage(t *testing.T) {
	multi := taskpkg.ValidationErrors{
		{Field: "time", Message: "time must be HH:MM"},
		{Field: "days", Message: "unknown weekday"},
	}
	assert.Equal(t, "time must be HH:MM; unknown weekday", errorMessage(multi))
	assert.Equal(t, "text is required", errorMessage(&taskpkg.ValidationError{Field: "text", Message: "text is required"}))
	assert.Equal(t, "Could not save the task.", errorMessage(assert.AnError))
}
