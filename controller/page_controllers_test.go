package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/task"
	"github.com/boolean-maybe/tock/timer"
)

func newTestTaskList(t *testing.T) (*TaskListController, *NavigationController) {
	t.Helper()
	tc, _, _ := newTestTaskController()
	nav := newMockNavigationController()
	nav.PushView(model.TaskListViewID, nil)
	state := model.NewTaskListState()
	state.SetSortOrder(task.SortNameAsc)
	return NewTaskListController(context.Background(), tc, state, nav, nil), nav
}

func TestTaskList_SubmitSelectsNewTask(t *testing.T) {
	tl, _ := newTestTaskList(t)

	require.NoError(t, tl.Submit("water plants"))
	assert.Equal(t, "task-1", tl.State().SelectedID())

	assert.Error(t, tl.Submit("   "))
	assert.Len(t, tl.VisibleTasks(), 1)
}

func TestTaskList_Navigation(t *testing.T) {
	tl, _ := newTestTaskList(t)
	for _, text := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, tl.Submit(text))
	}
	tl.State().Select("task-2") // alpha

	assert.False(t, tl.HandleAction(ActionNavUp), "already at top")
	assert.True(t, tl.HandleAction(ActionNavDown))
	assert.Equal(t, "task-3", tl.State().SelectedID())
	assert.True(t, tl.HandleAction(ActionNavDown))
	assert.Equal(t, "task-1", tl.State().SelectedID())
	assert.False(t, tl.HandleAction(ActionNavDown), "already at bottom")
}

func TestTaskList_ToggleAndFilter(t *testing.T) {
	tl, _ := newTestTaskList(t)
	require.NoError(t, tl.Submit("alpha"))
	require.NoError(t, tl.Submit("bravo"))
	tl.State().Select("task-1")

	require.True(t, tl.HandleAction(ActionToggleTask))
	assert.True(t, tl.Tasks().Store().Get("task-1").Completed)
	assert.Equal(t, 1, tl.Tasks().Stats().Current(stats.Daily).Completed)

	require.True(t, tl.HandleAction(ActionCycleFilter))
	assert.Equal(t, task.FilterActive, tl.State().Filter())
	visible := tl.VisibleTasks()
	require.Len(t, visible, 1)
	assert.Equal(t, "bravo", visible[0].Text)
	// hidden selection falls back to the first visible row
	assert.Equal(t, 0, tl.SelectedIndex(visible))

	require.True(t, tl.HandleAction(ActionCycleSort))
	assert.Equal(t, task.SortNameDesc, tl.State().SortOrder())
}

func TestTaskList_DeleteMovesSelection(t *testing.T) {
	tl, _ := newTestTaskList(t)
	for _, text := range []string{"alpha", "bravo", "charlie"} {
		require.NoError(t, tl.Submit(text))
	}

	tl.State().Select("task-2")
	require.True(t, tl.HandleAction(ActionDeleteTask))
	assert.Equal(t, "task-3", tl.State().SelectedID())

	require.True(t, tl.HandleAction(ActionDeleteTask))
	assert.Equal(t, "task-1", tl.State().SelectedID())

	require.True(t, tl.HandleAction(ActionDeleteTask))
	assert.Empty(t, tl.State().SelectedID())
	assert.False(t, tl.HandleAction(ActionDeleteTask))
}

func TestTaskList_MoveReordersUnderlyingList(t *testing.T) {
	tl, _ := newTestTaskList(t)
	tl.State().SetSortOrder(task.SortNameAsc)
	for _, text := range []string{"alpha", "bravo", "charlie"} {
		require.NoError(t, tl.Submit(text))
	}

	tl.State().Select("task-3")
	require.True(t, tl.HandleAction(ActionMoveTaskUp))
	assert.Equal(t, []string{"task-1", "task-3", "task-2"}, ids(tl.Tasks().Store().All()))
	assert.Equal(t, "task-3", tl.State().SelectedID())

	tl.State().Select("task-1")
	assert.False(t, tl.HandleAction(ActionMoveTaskUp), "first row cannot move up")
}

func TestTaskList_RecurringFormNavigation(t *testing.T) {
	tl, nav := newTestTaskList(t)

	require.True(t, tl.HandleAction(ActionNewRecurring))
	assert.Equal(t, model.RecurringViewID, nav.CurrentViewID())

	err := tl.SubmitRecurring(RecurringInput{Text: "x", Frequency: "hourly"})
	require.Error(t, err)
	assert.Equal(t, model.RecurringViewID, nav.CurrentViewID(), "form stays open on error")

	require.NoError(t, tl.SubmitRecurring(RecurringInput{Text: "Stretch", Frequency: "daily"}))
	assert.Equal(t, model.TaskListViewID, nav.CurrentViewID())
	assert.Equal(t, "task-1", tl.State().SelectedID())

	tl.HandleAction(ActionNewRecurring)
	tl.CancelRecurring()
	assert.Equal(t, model.TaskListViewID, nav.CurrentViewID())
}

func TestTaskList_DictationUnavailable(t *testing.T) {
	tl, _ := newTestTaskList(t)

	require.True(t, tl.HandleAction(ActionDictate))
	assert.False(t, tl.Dictation().Listening())
	assert.NotEmpty(t, tl.Dictation().Error())
}

func TestTimerController(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tc := NewTimerController(ctx, timer.NewRunner(25*time.Minute, 5*time.Minute))

	require.True(t, tc.HandleAction(ActionTimerToggle))
	assert.Equal(t, timer.StatusRunning, tc.Runner().State().Status)
	require.True(t, tc.HandleAction(ActionTimerToggle))
	assert.Equal(t, timer.StatusPaused, tc.Runner().State().Status)
	require.True(t, tc.HandleAction(ActionTimerReset))
	assert.Equal(t, timer.StatusIdle, tc.Runner().State().Status)
	assert.Equal(t, 25*time.Minute, tc.Runner().State().TimeLeft)

	assert.True(t, tc.HandleAction(ActionBreakIncrease))
	assert.Equal(t, 10*time.Minute, tc.Runner().State().BreakTime)
	assert.True(t, tc.HandleAction(ActionBreakIncrease))
	assert.True(t, tc.HandleAction(ActionBreakIncrease))
	assert.False(t, tc.HandleAction(ActionBreakIncrease), "20 is the largest choice")
	assert.True(t, tc.HandleAction(ActionBreakDecrease))
	assert.Equal(t, 15*time.Minute, tc.Runner().State().BreakTime)

	assert.False(t, tc.HandleAction(ActionNewTask))
}

func TestNextChoice(t *testing.T) {
	tests := []struct {
		current, delta, want int
	}{
		{5, 1, 10},
		{5, -1, 5},
		{20, 1, 20},
		{12, 1, 15},
		{12, -1, 10},
		{1, 1, 5},
		{30, -1, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextChoice(BreakChoices, tt.current, tt.delta), "current=%d delta=%d", tt.current, tt.delta)
	}
}

func TestAnalyticsController(t *testing.T) {
	tc, _, _ := newTestTaskController()
	ac := NewAnalyticsController(tc.Stats())

	assert.Equal(t, stats.Daily, ac.SelectedGoal())
	require.True(t, ac.HandleAction(ActionGoalIncrease))
	assert.Equal(t, 6, tc.Stats().Goals().Daily)

	require.True(t, ac.HandleAction(ActionNextGoal))
	assert.Equal(t, stats.Weekly, ac.SelectedGoal())
	require.True(t, ac.HandleAction(ActionGoalDecrease))
	assert.Equal(t, 24, tc.Stats().Goals().Weekly)

	ac.HandleAction(ActionNextGoal)
	ac.HandleAction(ActionNextGoal)
	assert.Equal(t, stats.Daily, ac.SelectedGoal(), "cycling wraps around")

	require.NoError(t, tc.Stats().UpdateGoal(stats.Daily, 1))
	assert.False(t, ac.HandleAction(ActionGoalDecrease), "goal cannot drop below 1")
	assert.Equal(t, 1, tc.Stats().Goals().Daily)
}
