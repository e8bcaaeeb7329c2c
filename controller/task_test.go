package controller

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/task"
)

func TestAddTask_DetectsCategoryAndRecordsCreation(t *testing.T) {
	tc, _, _ := newTestTaskController()

	created, err := tc.AddTask("  Prepare client presentation  ")
	require.NoError(t, err)

	assert.Equal(t, "task-1", created.ID)
	assert.Equal(t, "Prepare client presentation", created.Text)
	assert.Equal(t, "Work", created.Category)
	assert.Equal(t, task.TypeNormal, created.Type)
	assert.Equal(t, testNow, created.CreatedAt)
	assert.False(t, created.Completed)

	assert.Equal(t, stats.Bucket{Completed: 0, Total: 1}, tc.Stats().Current(stats.Daily))
	assert.Equal(t, stats.Bucket{Completed: 0, Total: 1}, tc.Stats().Snapshot().Categories["Work"])
	assert.Len(t, tc.Store().All(), 1)
}

func TestAddTask_Validation(t *testing.T) {
	tests := []struct {
		name string
		text string
		code task.ErrorCode
	}{
		{name: "empty", text: "", code: task.ErrCodeRequired},
		{name: "whitespace", text: "   \t", code: task.ErrCodeRequired},
		{name: "too long", text: strings.Repeat("x", task.MaxTextLength+1), code: task.ErrCodeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, _, _ := newTestTaskController()

			_, err := tc.AddTask(tt.text)
			require.Error(t, err)
			var verr *task.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)

			assert.Empty(t, tc.Store().All())
			assert.Zero(t, tc.Stats().Current(stats.Daily).Total)
		})
	}
}

func TestAddTask_MaxLengthAccepted(t *testing.T) {
	tc, _, _ := newTestTaskController()

	_, err := tc.AddTask(strings.Repeat("y", task.MaxTextLength))
	assert.NoError(t, err)
}

func TestAddRecurring_Daily(t *testing.T) {
	tc, _, _ := newTestTaskController()

	created, err := tc.AddRecurring(RecurringInput{
		Text:      "Read a chapter",
		Frequency: "daily",
		Time:      "09:00",
	})
	require.NoError(t, err)

	require.True(t, created.IsRecurring())
	assert.Equal(t, "Learning", created.Category)
	assert.Equal(t, task.PriorityMedium, created.Priority)
	// 09:00 already passed at 10:30, so tomorrow
	assert.Equal(t, time.Date(2025, time.January, 16, 9, 0, 0, 0, time.Local), created.NextDue)
	assert.Equal(t, 1, tc.Stats().Current(stats.Daily).Total)
}

func TestAddRecurring_WeeklyExplicitCategory(t *testing.T) {
	tc, _, _ := newTestTaskController()

	created, err := tc.AddRecurring(RecurringInput{
		Text:      "Team sync",
		Category:  "Home",
		Priority:  "high",
		Frequency: "weekly",
		Time:      "14:00",
		Days:      []string{"monday", "friday"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Home", created.Category)
	assert.Equal(t, task.PriorityHigh, created.Priority)
	// Wednesday -> Friday
	assert.Equal(t, time.Date(2025, time.January, 17, 14, 0, 0, 0, time.Local), created.NextDue)
}

func TestAddRecurring_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		in    RecurringInput
		field string
	}{
		{name: "empty text", in: RecurringInput{Text: " ", Frequency: "daily"}, field: "text"},
		{name: "bad priority", in: RecurringInput{Text: "x", Priority: "urgent"}, field: "priority"},
		{name: "bad frequency", in: RecurringInput{Text: "x", Frequency: "hourly"}, field: "frequency"},
		{name: "bad time", in: RecurringInput{Text: "x", Frequency: "daily", Time: "25:00"}, field: "time"},
		{name: "bad weekday", in: RecurringInput{Text: "x", Frequency: "weekly", Days: []string{"funday"}}, field: "days"},
		{name: "bad month day", in: RecurringInput{Text: "x", Frequency: "monthly", MonthDay: 32}, field: "monthDay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, _, _ := newTestTaskController()

			_, err := tc.AddRecurring(tt.in)
			require.Error(t, err)

			assert.Contains(t, errorFields(err), tt.field)
			assert.Empty(t, tc.Store().All())
		})
	}
}

// errorFields lists the field names of a single or multiple validation error,
// with dive indexes stripped ("days[0]" -> "days").
func errorFields(err error) []string {
	var fields []string
	var verrs task.ValidationErrors
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verrs):
		for _, e := range verrs {
			fields = append(fields, e.Field)
		}
	case errors.As(err, &verr):
		fields = append(fields, verr.Field)
	}
	for i, f := range fields {
		if k := strings.IndexByte(f, '['); k >= 0 {
			fields[i] = f[:k]
		}
	}
	return fields
}

func TestToggle_RecordsOnlyCompletion(t *testing.T) {
	tc, clock, _ := newTestTaskController()

	created, err := tc.AddTask("Go to the gym")
	require.NoError(t, err)

	clock.Advance(3 * time.Hour) // 13:30
	toggled, err := tc.Toggle(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// creation counted the task; the toggle marks it completed
	assert.Equal(t, stats.Bucket{Completed: 1, Total: 1}, tc.Stats().Current(stats.Daily))
	assert.Equal(t, stats.Bucket{Completed: 1, Total: 1}, tc.Stats().Snapshot().Categories["Personal"])
	assert.Equal(t, []int{10, 13}, tc.Stats().ProductiveHours())

	// un-toggling records nothing
	toggled, err = tc.Toggle(created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Equal(t, stats.Bucket{Completed: 1, Total: 1}, tc.Stats().Current(stats.Daily))

	_, err = tc.Toggle("missing")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestToggle_CategoryCompletionRate(t *testing.T) {
	tc, _, _ := newTestTaskController()

	addTexts(t, tc, "Prepare client presentation", "Send the meeting notes", "Go to the gym")
	_, err := tc.Toggle("task-1")
	require.NoError(t, err)
	_, err = tc.Toggle("task-2")
	require.NoError(t, err)

	assert.Equal(t, []stats.CategoryStat{
		{Category: "Personal", Completed: 0, Total: 1, Percentage: 0},
		{Category: "Work", Completed: 2, Total: 2, Percentage: 100},
	}, tc.Stats().CategoryStats())
	assert.Equal(t, stats.Bucket{Completed: 2, Total: 3}, tc.Stats().Current(stats.Daily))
	assert.Equal(t, []string{"Work", "Personal"}, tc.Stats().SuggestedCategories())
}

func TestToggle_CompletionInLaterPeriod(t *testing.T) {
	tc, clock, _ := newTestTaskController()

	created, err := tc.AddTask("Go to the gym")
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	_, err = tc.Toggle(created.ID)
	require.NoError(t, err)

	// the completion lands in the toggle day, which had no creations
	assert.Equal(t, stats.Bucket{Completed: 1, Total: 1}, tc.Stats().Current(stats.Daily))
	assert.Equal(t, stats.Bucket{Completed: 1, Total: 1}, tc.Stats().Snapshot().Categories["Personal"])
	assert.Equal(t, stats.Bucket{Completed: 0, Total: 1}, tc.Stats().Snapshot().Daily["2025-01-15"])
}

func TestDelete_LeavesStats(t *testing.T) {
	tc, _, _ := newTestTaskController()

	created, err := tc.AddTask("Clean the kitchen")
	require.NoError(t, err)
	require.NoError(t, tc.Delete(created.ID))

	assert.Empty(t, tc.Store().All())
	assert.Equal(t, 1, tc.Stats().Current(stats.Daily).Total)
	assert.ErrorIs(t, tc.Delete(created.ID), store.ErrTaskNotFound)
}

func addTexts(t *testing.T, tc *TaskController, texts ...string) {
	t.Helper()
	for _, text := range texts {
		_, err := tc.AddTask(text)
		require.NoError(t, err)
	}
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestMove(t *testing.T) {
	tc, _, _ := newTestTaskController()
	addTexts(t, tc, "a", "b", "c", "d")

	require.NoError(t, tc.Move(0, 2))
	assert.Equal(t, []string{"task-2", "task-3", "task-1", "task-4"}, ids(tc.Store().All()))

	require.NoError(t, tc.Move(3, 0))
	assert.Equal(t, []string{"task-4", "task-2", "task-3", "task-1"}, ids(tc.Store().All()))

	assert.ErrorIs(t, tc.Move(-1, 0), ErrInvalidIndex)
	assert.ErrorIs(t, tc.Move(0, 4), ErrInvalidIndex)
}

func TestMoveToward(t *testing.T) {
	tc, _, _ := newTestTaskController()
	addTexts(t, tc, "a", "b", "c")

	require.NoError(t, tc.MoveToward("task-3", "task-1"))
	assert.Equal(t, []string{"task-3", "task-1", "task-2"}, ids(tc.Store().All()))

	require.NoError(t, tc.MoveToward("task-3", "task-2"))
	assert.Equal(t, []string{"task-1", "task-2", "task-3"}, ids(tc.Store().All()))

	assert.ErrorIs(t, tc.MoveToward("nope", "task-1"), store.ErrTaskNotFound)
	assert.ErrorIs(t, tc.MoveToward("task-1", "nope"), store.ErrTaskNotFound)
}

func TestReorder(t *testing.T) {
	tc, _, _ := newTestTaskController()
	addTexts(t, tc, "a", "b", "c")

	require.NoError(t, tc.Reorder([]string{"task-2", "task-3", "task-1"}))
	assert.Equal(t, []string{"task-2", "task-3", "task-1"}, ids(tc.Store().All()))

	assert.ErrorIs(t, tc.Reorder([]string{"task-1"}), ErrReorderMismatch)
	assert.ErrorIs(t, tc.Reorder([]string{"task-1", "task-1", "task-2"}), ErrReorderMismatch)
	assert.ErrorIs(t, tc.Reorder([]string{"task-1", "task-2", "task-9"}), ErrReorderMismatch)
}

func TestTasks_FilterAndSort(t *testing.T) {
	tc, clock, _ := newTestTaskController()
	addTexts(t, tc, "banana")
	clock.Advance(time.Minute)
	addTexts(t, tc, "apple")
	clock.Advance(time.Minute)
	addTexts(t, tc, "cherry")
	_, err := tc.Toggle("task-2")
	require.NoError(t, err)

	assert.Equal(t, []string{"task-3", "task-2", "task-1"}, ids(tc.Tasks(task.FilterAll, task.SortDateDesc)))
	assert.Equal(t, []string{"task-1", "task-3"}, ids(tc.Tasks(task.FilterActive, task.SortNameAsc)))
	assert.Equal(t, []string{"task-2"}, ids(tc.Tasks(task.FilterCompleted, task.SortDateAsc)))
}

func TestResolve(t *testing.T) {
	kv := store.NewMemoryKV()
	taskStore, err := store.NewTaskStore(kv)
	require.NoError(t, err)
	next := []string{"abc12345", "abd99999", "xyz00000"}
	tc := NewTaskController(taskStore, nil, nil, func() time.Time { return testNow }, func() string {
		id := next[0]
		next = next[1:]
		return id
	})
	addTexts(t, tc, "one", "two", "three")

	got, err := tc.Resolve("xyz00000")
	require.NoError(t, err)
	assert.Equal(t, "three", got.Text)

	got, err = tc.Resolve("abc")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Text)

	_, err = tc.Resolve("ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = tc.Resolve("q")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = tc.Resolve("")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestSummary(t *testing.T) {
	tc, _, _ := newTestTaskController()
	assert.Equal(t, stats.Summary{}, tc.Summary())

	addTexts(t, tc, "a", "b", "c")
	_, err := tc.Toggle("task-1")
	require.NoError(t, err)

	s := tc.Summary()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 33, s.PercentComplete)
}
