package controller

import (
	"errors"
	"log/slog"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/task"

	"github.com/gdamore/tcell/v2"
)

// InputRouter dispatches input events to appropriate controllers
// InputRouter is a dispatcher. It doesn't know what to do with actions, it only knows where to send them

// - Receive a raw key event
// - Determine which controller should handle it (based on current view)
// - Forward the event to that controller
// - Return whether the event was consumed

type InputRouter struct {
	navController *NavigationController
	taskList      *TaskListController
	timer         *TimerController
	analytics     *AnalyticsController
	headerConfig  *model.HeaderConfig
	globalActions *ActionRegistry
	taskStore     store.Store
	stats         *stats.Engine
	toggleTheme   func() (string, error)
}

// NewInputRouter creates an input router
func NewInputRouter(
	navController *NavigationController,
	taskList *TaskListController,
	timer *TimerController,
	analytics *AnalyticsController,
	headerConfig *model.HeaderConfig,
	taskStore store.Store,
	engine *stats.Engine,
) *InputRouter {
	return &InputRouter{
		navController: navController,
		taskList:      taskList,
		timer:         timer,
		analytics:     analytics,
		headerConfig:  headerConfig,
		globalActions: DefaultGlobalActions(),
		taskStore:     taskStore,
		stats:         engine,
		toggleTheme:   config.ToggleTheme,
	}
}

// SetThemeToggler overrides the theme persistence function (useful for tests).
func (ir *InputRouter) SetThemeToggler(fn func() (string, error)) {
	ir.toggleTheme = fn
}

// HandleInput processes a key event for the current view and routes it to the appropriate handler.
// It processes events through multiple handlers in order:
// 1. Focused inputs (task entry field, recurring form) keep their keys
// 2. Global actions (quit, back, page switching, theme, reload)
// 3. View-specific actions (based on current view)
// Returns true if the event was handled, false otherwise.
func (ir *InputRouter) HandleInput(event *tcell.EventKey, currentView *ViewEntry) bool {
	slog.Debug("input received", "name", event.Name(), "key", int(event.Key()), "rune", string(event.Rune()), "modifiers", int(event.Modifiers()))

	if currentView == nil {
		return false
	}

	activeView := ir.navController.GetActiveView()

	if stop, handled := ir.maybeHandleFocusedInput(activeView, currentView.ViewID, event); stop {
		return handled
	}

	// check global actions first
	if action := ir.globalActions.Match(event); action != nil {
		return ir.handleGlobalAction(action.ID)
	}

	// route to view-specific controller
	switch currentView.ViewID {
	case model.TaskListViewID:
		return ir.handleTaskListInput(activeView, event)
	case model.TimerViewID:
		if ir.timer == nil {
			return false
		}
		return ir.dispatch(ir.timer, event)
	case model.AnalyticsViewID:
		if ir.analytics == nil {
			return false
		}
		return ir.dispatch(ir.analytics, event)
	default:
		return false
	}
}

// maybeHandleFocusedInput lets tview deliver keys to a focused input,
// intercepting only the editing actions.
// stop=true means input routing should stop and return handled.
func (ir *InputRouter) maybeHandleFocusedInput(activeView View, viewID model.ViewID, event *tcell.EventKey) (stop bool, handled bool) {
	inputView, ok := activeView.(InputCapturingView)
	if !ok || !inputView.IsInputFocused() {
		// an open form with focus elsewhere still closes on Esc
		if viewID == model.RecurringViewID && event.Key() == tcell.KeyEscape {
			ir.taskList.CancelRecurring()
			return true, true
		}
		return false, false
	}

	taskInput, ok := activeView.(TaskInputView)
	if !ok {
		// recurring form: Esc cancels, everything else belongs to the form
		if event.Key() == tcell.KeyEscape {
			ir.taskList.CancelRecurring()
			return true, true
		}
		return true, false
	}

	action := TaskInputActions().Match(event)
	if action == nil {
		return true, false
	}
	switch action.ID {
	case ActionSubmitTask:
		ir.submitTask(taskInput)
	case ActionCancelEditing:
		taskInput.SetInputError("")
		ir.navController.SetFocus(taskInput.BlurInput())
	case ActionDictate:
		ir.taskList.ToggleDictation()
	}
	return true, true
}

func (ir *InputRouter) submitTask(view TaskInputView) {
	err := ir.taskList.Submit(view.InputText())
	if err == nil {
		view.SetInputText("")
		view.SetInputError("")
		return
	}

	var verr *task.ValidationError
	if errors.As(err, &verr) {
		view.SetInputError(verr.Message)
		return
	}
	slog.Error("failed to add task", "error", err)
	view.SetInputError("Could not save the task.")
}

// handleGlobalAction processes actions available in all views
func (ir *InputRouter) handleGlobalAction(actionID ActionID) bool {
	if page, ok := PageForAction(actionID); ok {
		ir.navController.SwitchPage(page)
		return true
	}

	switch actionID {
	case ActionBack:
		return ir.navController.HandleBack()
	case ActionQuit:
		ir.navController.HandleQuit()
		return true
	case ActionNextPage:
		ir.navController.NextPage()
		return true
	case ActionToggleHeader:
		if ir.headerConfig != nil {
			ir.headerConfig.ToggleUserPreference()
		}
		return true
	case ActionToggleTheme:
		theme, err := ir.toggleTheme()
		if err != nil {
			slog.Error("failed to save theme", "error", err)
			return false
		}
		slog.Info("theme changed", "theme", theme)
		// rebuild the current view with the new palette
		if entry := ir.navController.CurrentView(); entry != nil {
			params := cloneParams(entry.Params)
			if params == nil {
				params = make(map[string]interface{})
			}
			params[model.ThemeParam] = theme
			ir.navController.ReplaceView(entry.ViewID, params)
		}
		return true
	case ActionRefresh:
		if err := ir.taskStore.Reload(); err != nil {
			slog.Error("failed to reload tasks", "error", err)
		}
		if ir.stats != nil {
			if err := ir.stats.Load(); err != nil {
				slog.Error("failed to reload stats", "error", err)
			}
		}
		return true
	default:
		return false
	}
}

// handleTaskListInput routes task list keys. Opening the input field needs
// the view, everything else goes to the controller.
func (ir *InputRouter) handleTaskListInput(activeView View, event *tcell.EventKey) bool {
	action := ir.taskList.GetActionRegistry().Match(event)
	if action == nil {
		return false
	}
	if action.ID == ActionNewTask {
		taskInput, ok := activeView.(TaskInputView)
		if !ok {
			return false
		}
		ir.navController.SetFocus(taskInput.FocusInput())
		return true
	}
	return ir.taskList.HandleAction(action.ID)
}

func (ir *InputRouter) dispatch(pc PageController, event *tcell.EventKey) bool {
	if action := pc.GetActionRegistry().Match(event); action != nil {
		return pc.HandleAction(action.ID)
	}
	return false
}
