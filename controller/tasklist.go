package controller

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/boolean-maybe/tock/dictation"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/store"
	taskpkg "github.com/boolean-maybe/tock/task"
)

// TaskListController handles task list page actions: navigation, toggle,
// delete, reorder, filter/sort cycling, dictation and the recurring form.
type TaskListController struct {
	tasks         *TaskController
	state         *model.TaskListState
	navController *NavigationController
	session       *dictation.Session
	registry      *ActionRegistry
	ctx           context.Context
}

// NewTaskListController creates the task list page controller.
// session may be nil when dictation is not configured.
func NewTaskListController(
	ctx context.Context,
	tasks *TaskController,
	state *model.TaskListState,
	navController *NavigationController,
	session *dictation.Session,
) *TaskListController {
	if session == nil {
		session = dictation.NewSession(dictation.Unavailable{})
	}
	return &TaskListController{
		tasks:         tasks,
		state:         state,
		navController: navController,
		session:       session,
		registry:      TaskListViewActions(),
		ctx:           ctx,
	}
}

// GetActionRegistry returns the actions for the task list page
func (tl *TaskListController) GetActionRegistry() *ActionRegistry {
	return tl.registry
}

// State returns the page view state
func (tl *TaskListController) State() *model.TaskListState {
	return tl.state
}

// Tasks returns the shared task service
func (tl *TaskListController) Tasks() *TaskController {
	return tl.tasks
}

// Dictation returns the voice capture session
func (tl *TaskListController) Dictation() *dictation.Session {
	return tl.session
}

// VisibleTasks returns the list as currently filtered and sorted
func (tl *TaskListController) VisibleTasks() []*taskpkg.Task {
	return tl.tasks.Tasks(tl.state.Filter(), tl.state.SortOrder())
}

// SelectedIndex returns the position of the selection in the visible list,
// falling back to the first row when the selected task is not visible.
func (tl *TaskListController) SelectedIndex(visible []*taskpkg.Task) int {
	if len(visible) == 0 {
		return -1
	}
	if i := indexOf(visible, tl.state.SelectedID()); i >= 0 {
		return i
	}
	return 0
}

// HandleAction processes a task list action
func (tl *TaskListController) HandleAction(actionID ActionID) bool {
	switch actionID {
	case ActionNavUp:
		return tl.moveSelection(-1)
	case ActionNavDown:
		return tl.moveSelection(1)
	case ActionToggleTask:
		return tl.handleToggle()
	case ActionDeleteTask:
		return tl.handleDelete()
	case ActionMoveTaskUp:
		return tl.handleMove(-1)
	case ActionMoveTaskDown:
		return tl.handleMove(1)
	case ActionCycleFilter:
		tl.state.CycleFilter()
		return true
	case ActionCycleSort:
		tl.state.CycleSortOrder()
		return true
	case ActionNewRecurring:
		tl.navController.PushView(model.RecurringViewID, nil)
		return true
	case ActionDictate:
		tl.ToggleDictation()
		return true
	default:
		return false
	}
}

// Submit adds a task from the input field text and selects it.
func (tl *TaskListController) Submit(text string) error {
	t, err := tl.tasks.AddTask(text)
	if err != nil {
		return err
	}
	tl.session.Reset()
	tl.state.Select(t.ID)
	return nil
}

// SubmitRecurring adds a recurring task from the form and closes the form.
func (tl *TaskListController) SubmitRecurring(in RecurringInput) error {
	t, err := tl.tasks.AddRecurring(in)
	if err != nil {
		return err
	}
	tl.state.Select(t.ID)
	tl.navController.PopView()
	return nil
}

// CancelRecurring closes the recurring form without saving.
func (tl *TaskListController) CancelRecurring() {
	tl.navController.PopView()
}

// ToggleDictation starts listening, or stops when already listening.
func (tl *TaskListController) ToggleDictation() {
	if tl.session.Listening() {
		tl.session.Stop()
		return
	}
	if err := tl.session.Start(tl.ctx); err != nil {
		// the session keeps the user-facing message
		slog.Debug("dictation not started", "error", err)
	}
}

func (tl *TaskListController) moveSelection(delta int) bool {
	visible := tl.VisibleTasks()
	if len(visible) == 0 {
		return false
	}
	i := tl.SelectedIndex(visible) + delta
	if i < 0 || i >= len(visible) {
		return false
	}
	tl.state.Select(visible[i].ID)
	return true
}

func (tl *TaskListController) selectedTask(visible []*taskpkg.Task) *taskpkg.Task {
	i := tl.SelectedIndex(visible)
	if i < 0 {
		return nil
	}
	return visible[i]
}

func (tl *TaskListController) handleToggle() bool {
	t := tl.selectedTask(tl.VisibleTasks())
	if t == nil {
		return false
	}
	if _, err := tl.tasks.Toggle(t.ID); err != nil {
		slog.Error("failed to toggle task", "task_id", t.ID, "error", err)
		return false
	}
	return true
}

func (tl *TaskListController) handleDelete() bool {
	visible := tl.VisibleTasks()
	i := tl.SelectedIndex(visible)
	if i < 0 {
		return false
	}
	id := visible[i].ID
	if err := tl.tasks.Delete(id); err != nil && !errors.Is(err, store.ErrTaskNotFound) {
		slog.Error("failed to delete task", "task_id", id, "error", err)
		return false
	}

	// keep the cursor on the row that slid into place
	rest := slices.Delete(slices.Clone(visible), i, i+1)
	switch {
	case len(rest) == 0:
		tl.state.Select("")
	case i < len(rest):
		tl.state.Select(rest[i].ID)
	default:
		tl.state.Select(rest[len(rest)-1].ID)
	}
	return true
}

// handleMove drops the selected task onto its visible neighbour.
func (tl *TaskListController) handleMove(delta int) bool {
	visible := tl.VisibleTasks()
	i := tl.SelectedIndex(visible)
	j := i + delta
	if i < 0 || j < 0 || j >= len(visible) {
		return false
	}
	id := visible[i].ID
	if err := tl.tasks.MoveToward(id, visible[j].ID); err != nil {
		slog.Error("failed to move task", "task_id", id, "error", err)
		return false
	}
	tl.state.Select(id)
	return true
}
