package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	taskpkg "github.com/boolean-maybe/tock/task"
)

var (
	// ErrInvalidIndex is returned by Move when a position is out of range.
	ErrInvalidIndex = errors.New("task position out of range")

	// ErrReorderMismatch is returned by Reorder when the IDs are not a
	// permutation of the current list.
	ErrReorderMismatch = errors.New("reorder must list every task exactly once")
)

// RecurringInput is the raw form data for a recurring task.
type RecurringInput struct {
	Text      string
	Category  string // empty means detect from text
	Priority  string
	Frequency string
	Time      string
	Days      []string
	MonthDay  int
}

// TaskController wires the task list, the stats engine and the categorizer.
type TaskController struct {
	taskStore  store.Store
	stats      *stats.Engine
	categories *taskpkg.Categorizer
	now        func() time.Time
	newID      func() string
}

// NewTaskController creates a controller. now and newID may be nil, in which
// case time.Now and a timestamp-based generator are used.
func NewTaskController(
	taskStore store.Store,
	engine *stats.Engine,
	categories *taskpkg.Categorizer,
	now func() time.Time,
	newID func() string,
) *TaskController {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = func() string { return fmt.Sprintf("%d", time.Now().UnixNano()) }
	}
	if categories == nil {
		categories = taskpkg.NewCategorizer(nil)
	}
	return &TaskController{
		taskStore:  taskStore,
		stats:      engine,
		categories: categories,
		now:        now,
		newID:      newID,
	}
}

// Store returns the underlying task store.
func (tc *TaskController) Store() store.Store {
	return tc.taskStore
}

// Stats returns the stats engine.
func (tc *TaskController) Stats() *stats.Engine {
	return tc.stats
}

// Categorizer returns the category table used for detection.
func (tc *TaskController) Categorizer() *taskpkg.Categorizer {
	return tc.categories
}

// AddTask validates text, detects its category and appends a normal task.
// Creation counts as an uncompleted stats event.
func (tc *TaskController) AddTask(text string) (*taskpkg.Task, error) {
	trimmed, err := taskpkg.ValidateText(text)
	if err != nil {
		return nil, err
	}

	t := &taskpkg.Task{
		ID:        tc.newID(),
		Text:      trimmed,
		CreatedAt: tc.now(),
		Category:  tc.categories.Detect(trimmed),
		Type:      taskpkg.TypeNormal,
	}
	if err := tc.taskStore.Add(t); err != nil {
		return nil, err
	}
	tc.recordCreation(t)
	slog.Info("task created", "task_id", t.ID, "category", t.Category)
	return t, nil
}

// AddRecurring validates the form input, computes the first due time and
// appends a recurring task.
func (tc *TaskController) AddRecurring(in RecurringInput) (*taskpkg.Task, error) {
	trimmed, err := taskpkg.ValidateText(in.Text)
	if err != nil {
		return nil, err
	}

	priority, ok := taskpkg.ParsePriority(in.Priority)
	if !ok {
		return nil, &taskpkg.ValidationError{
			Field:   "priority",
			Value:   in.Priority,
			Code:    taskpkg.ErrCodeInvalidEnum,
			Message: "priority must be low, medium or high",
		}
	}
	freq, ok := taskpkg.ParseFrequency(in.Frequency)
	if !ok && in.Frequency != "" {
		return nil, &taskpkg.ValidationError{
			Field:   "frequency",
			Value:   in.Frequency,
			Code:    taskpkg.ErrCodeInvalidEnum,
			Message: "frequency must be daily, weekly or monthly",
		}
	}

	rule := taskpkg.NewRecurrence(freq, in.Time, in.Days, in.MonthDay)
	if errs := taskpkg.ValidateRecurrence(rule); errs.HasErrors() {
		return nil, errs
	}

	now := tc.now()
	rule.NextDue = taskpkg.NextDue(rule, now)

	category := in.Category
	if category == "" {
		category = tc.categories.Detect(trimmed)
	}

	t := &taskpkg.Task{
		ID:         tc.newID(),
		Text:       trimmed,
		CreatedAt:  now,
		Category:   category,
		Priority:   priority,
		Type:       taskpkg.TypeRecurring,
		Recurrence: rule,
	}
	if err := tc.taskStore.Add(t); err != nil {
		return nil, err
	}
	tc.recordCreation(t)
	slog.Info("recurring task created", "task_id", t.ID, "frequency", rule.Frequency, "next_due", rule.NextDue)
	return t, nil
}

// Toggle flips a task's completion. Only the transition to completed is
// recorded in the stats, attributed to the current instant.
func (tc *TaskController) Toggle(id string) (*taskpkg.Task, error) {
	t, err := tc.taskStore.Toggle(id)
	if err != nil {
		return nil, err
	}
	if t.Completed {
		tc.recordCompletion(t)
	}
	return t, nil
}

// Delete removes a task. Stats are left untouched.
func (tc *TaskController) Delete(id string) error {
	return tc.taskStore.Delete(id)
}

// Move moves the task at position from to position to (zero-based, list order).
func (tc *TaskController) Move(from, to int) error {
	tasks := tc.taskStore.All()
	if from < 0 || from >= len(tasks) || to < 0 || to >= len(tasks) {
		return fmt.Errorf("moving %d to %d of %d: %w", from, to, len(tasks), ErrInvalidIndex)
	}
	if from == to {
		return nil
	}
	return tc.taskStore.Replace(taskpkg.Move(tasks, from, to))
}

// MoveToward moves task id into the list position currently held by target,
// the way a drag and drop onto target would.
func (tc *TaskController) MoveToward(id, target string) error {
	tasks := tc.taskStore.All()
	from := indexOf(tasks, id)
	to := indexOf(tasks, target)
	if from < 0 {
		return fmt.Errorf("moving %s: %w", id, store.ErrTaskNotFound)
	}
	if to < 0 {
		return fmt.Errorf("moving onto %s: %w", target, store.ErrTaskNotFound)
	}
	if from == to {
		return nil
	}
	return tc.taskStore.Replace(taskpkg.Move(tasks, from, to))
}

// Reorder replaces the list order. ids must name every task exactly once.
func (tc *TaskController) Reorder(ids []string) error {
	tasks := tc.taskStore.All()
	if len(ids) != len(tasks) {
		return ErrReorderMismatch
	}
	byID := make(map[string]*taskpkg.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	next := make([]*taskpkg.Task, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return fmt.Errorf("reorder %s: %w", id, ErrReorderMismatch)
		}
		delete(byID, id)
		next = append(next, t)
	}
	return tc.taskStore.Replace(next)
}

// Tasks returns the filtered and sorted view of the list.
func (tc *TaskController) Tasks(filter taskpkg.Filter, order taskpkg.SortOrder) []*taskpkg.Task {
	return taskpkg.SortTasks(taskpkg.FilterTasks(tc.taskStore.All(), filter), order)
}

// Resolve finds a task by exact ID, or by unique ID prefix.
func (tc *TaskController) Resolve(idOrPrefix string) (*taskpkg.Task, error) {
	if t := tc.taskStore.Get(idOrPrefix); t != nil {
		return t, nil
	}
	var match *taskpkg.Task
	for _, t := range tc.taskStore.All() {
		if idOrPrefix != "" && strings.HasPrefix(t.ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", idOrPrefix)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("resolving %s: %w", idOrPrefix, store.ErrTaskNotFound)
	}
	return match, nil
}

// Summary returns the live header counters.
func (tc *TaskController) Summary() stats.Summary {
	return stats.Summarize(tc.taskStore.All())
}

func (tc *TaskController) recordCreation(t *taskpkg.Task) {
	if tc.stats == nil {
		return
	}
	if err := tc.stats.RecordCompletionEvent(t, false); err != nil {
		slog.Warn("failed to record task creation", "task_id", t.ID, "error", err)
	}
}

func (tc *TaskController) recordCompletion(t *taskpkg.Task) {
	if tc.stats == nil {
		return
	}
	if err := tc.stats.RecordCompletion(t); err != nil {
		slog.Warn("failed to record task completion", "task_id", t.ID, "error", err)
	}
}

func indexOf(tasks []*taskpkg.Task, id string) int {
	return slices.IndexFunc(tasks, func(t *taskpkg.Task) bool { return t.ID == id })
}
