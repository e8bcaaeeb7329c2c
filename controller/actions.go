package controller

import (
	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/tock/model"
)

// ActionRegistry maps keyboard shortcuts to actions and matches key events.

// ActionID identifies a specific action
type ActionID string

// ActionID values for global actions (available in all views).
const (
	ActionBack          ActionID = "back"
	ActionQuit          ActionID = "quit"
	ActionRefresh       ActionID = "refresh"
	ActionNextPage      ActionID = "next_page"
	ActionShowTasks     ActionID = "show_tasks"
	ActionShowTimer     ActionID = "show_timer"
	ActionShowAnalytics ActionID = "show_analytics"
	ActionToggleTheme   ActionID = "toggle_theme"
	ActionToggleHeader  ActionID = "toggle_header"
)

// ActionID values for the task list.
const (
	ActionNavUp         ActionID = "nav_up"
	ActionNavDown       ActionID = "nav_down"
	ActionNewTask       ActionID = "new_task"
	ActionNewRecurring  ActionID = "new_recurring"
	ActionToggleTask    ActionID = "toggle_task"
	ActionDeleteTask    ActionID = "delete_task"
	ActionMoveTaskUp    ActionID = "move_task_up"
	ActionMoveTaskDown  ActionID = "move_task_down"
	ActionCycleFilter   ActionID = "cycle_filter"
	ActionCycleSort     ActionID = "cycle_sort"
	ActionDictate       ActionID = "dictate"
	ActionSubmitTask    ActionID = "submit_task"
	ActionCancelEditing ActionID = "cancel_editing"
)

// ActionID values for the Pomodoro timer.
const (
	ActionTimerToggle    ActionID = "timer_toggle"
	ActionTimerReset     ActionID = "timer_reset"
	ActionBreakIncrease  ActionID = "break_increase"
	ActionBreakDecrease  ActionID = "break_decrease"
)

// ActionID values for the analytics page.
const (
	ActionGoalIncrease ActionID = "goal_increase"
	ActionGoalDecrease ActionID = "goal_decrease"
	ActionNextGoal     ActionID = "next_goal"
)

// pageActions maps page switch actions to their views.
var pageActions = map[ActionID]model.ViewID{
	ActionShowTasks:     model.TaskListViewID,
	ActionShowTimer:     model.TimerViewID,
	ActionShowAnalytics: model.AnalyticsViewID,
}

// PageForAction returns the page a page switch action opens.
func PageForAction(id ActionID) (model.ViewID, bool) {
	v, ok := pageActions[id]
	return v, ok
}

// Action represents a keyboard shortcut binding
type Action struct {
	ID           ActionID
	Key          tcell.Key
	Rune         rune // for letter keys (when Key == tcell.KeyRune)
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool // whether to display in header bar
}

// ActionRegistry holds the available actions for a view.
// actions keeps registration order for the header; byKey/byRune index the
// most recent registration per key.
type ActionRegistry struct {
	actions []Action
	byKey   map[tcell.Key]Action
	byRune  map[rune]Action
}

// NewActionRegistry creates a new action registry
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make([]Action, 0),
		byKey:   make(map[tcell.Key]Action),
		byRune:  make(map[rune]Action),
	}
}

// Register adds an action to the registry
func (r *ActionRegistry) Register(action Action) {
	r.actions = append(r.actions, action)
	if action.Key == tcell.KeyRune {
		r.byRune[action.Rune] = action
	} else {
		r.byKey[action.Key] = action
	}
}

// Merge adds all actions from another registry into this one.
// Actions from the other registry are appended to preserve order.
// If there are key conflicts, the other registry's actions take precedence.
func (r *ActionRegistry) Merge(other *ActionRegistry) {
	for _, action := range other.actions {
		r.Register(action)
	}
}

// GetActions returns all registered actions
func (r *ActionRegistry) GetActions() []Action {
	return r.actions
}

// Match finds an action matching the given key event
func (r *ActionRegistry) Match(event *tcell.EventKey) *Action {
	// normalize modifier (ignore caps lock, num lock, etc.)
	mod := event.Modifiers() & (tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta)

	for i := range r.actions {
		action := &r.actions[i]

		if event.Key() == tcell.KeyRune {
			if action.Key == tcell.KeyRune && action.Rune == event.Rune() {
				// if action has explicit modifiers, require exact match
				if action.Modifier != 0 && action.Modifier != mod {
					continue
				}
				return action
			}
			continue
		}

		// for special keys, require exact modifier match
		if action.Key == event.Key() && action.Modifier == mod {
			return action
		}
		// tcell may report Ctrl+letter as key='A'-'Z' with ModCtrl while
		// actions register KeyCtrlA-KeyCtrlZ (1-26)
		if mod == tcell.ModCtrl && action.Modifier == tcell.ModCtrl {
			var ctrlKeyCode tcell.Key
			if event.Key() >= 'A' && event.Key() <= 'Z' {
				ctrlKeyCode = event.Key() - 'A' + 1
			} else if event.Key() >= 'a' && event.Key() <= 'z' {
				ctrlKeyCode = event.Key() - 'a' + 1
			}
			if ctrlKeyCode != 0 && ctrlKeyCode == action.Key {
				return action
			}
		}
	}
	return nil
}

// GetHeaderActions returns only actions marked for header display
func (r *ActionRegistry) GetHeaderActions() []Action {
	var result []Action
	for _, a := range r.actions {
		if a.ShowInHeader {
			result = append(result, a)
		}
	}
	return result
}

// ToHeaderActions converts the header-visible actions for model.HeaderConfig
func (r *ActionRegistry) ToHeaderActions() []model.HeaderAction {
	if r == nil {
		return nil
	}
	actions := r.GetHeaderActions()
	result := make([]model.HeaderAction, len(actions))
	for i, a := range actions {
		result[i] = model.HeaderAction{
			ID:           string(a.ID),
			Key:          a.Key,
			Rune:         a.Rune,
			Label:        a.Label,
			Modifier:     a.Modifier,
			ShowInHeader: a.ShowInHeader,
		}
	}
	return result
}

// DefaultGlobalActions returns common actions available in all views
func DefaultGlobalActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionQuit, Key: tcell.KeyRune, Rune: 'q', Label: "Quit", ShowInHeader: true})
	r.Register(Action{ID: ActionBack, Key: tcell.KeyEscape, Label: "Back"})
	r.Register(Action{ID: ActionNextPage, Key: tcell.KeyTab, Label: "Next page", ShowInHeader: true})
	r.Register(Action{ID: ActionShowTasks, Key: tcell.KeyRune, Rune: '1', Label: "Tasks", ShowInHeader: true})
	r.Register(Action{ID: ActionShowTimer, Key: tcell.KeyRune, Rune: '2', Label: "Timer", ShowInHeader: true})
	r.Register(Action{ID: ActionShowAnalytics, Key: tcell.KeyRune, Rune: '3', Label: "Analytics", ShowInHeader: true})
	r.Register(Action{ID: ActionToggleTheme, Key: tcell.KeyRune, Rune: 't', Label: "Theme", ShowInHeader: true})
	r.Register(Action{ID: ActionRefresh, Key: tcell.KeyF5, Label: "Reload"})
	r.Register(Action{ID: ActionToggleHeader, Key: tcell.KeyF10, Label: "Hide Header"})
	return r
}

// TaskListViewActions returns the canonical action registry for the task list.
// Single source of truth for both input handling and header display.
func TaskListViewActions() *ActionRegistry {
	r := NewActionRegistry()

	// navigation (not shown in header)
	r.Register(Action{ID: ActionNavUp, Key: tcell.KeyUp, Label: "↑"})
	r.Register(Action{ID: ActionNavDown, Key: tcell.KeyDown, Label: "↓"})
	r.Register(Action{ID: ActionNavUp, Key: tcell.KeyRune, Rune: 'k', Label: "↑"})
	r.Register(Action{ID: ActionNavDown, Key: tcell.KeyRune, Rune: 'j', Label: "↓"})

	r.Register(Action{ID: ActionNewTask, Key: tcell.KeyRune, Rune: 'a', Label: "Add", ShowInHeader: true})
	r.Register(Action{ID: ActionNewRecurring, Key: tcell.KeyRune, Rune: 'r', Label: "Recurring", ShowInHeader: true})
	r.Register(Action{ID: ActionToggleTask, Key: tcell.KeyRune, Rune: ' ', Label: "Done", ShowInHeader: true})
	r.Register(Action{ID: ActionToggleTask, Key: tcell.KeyEnter, Label: "Done"})
	r.Register(Action{ID: ActionDeleteTask, Key: tcell.KeyRune, Rune: 'd', Label: "Delete", ShowInHeader: true})
	r.Register(Action{ID: ActionMoveTaskUp, Key: tcell.KeyUp, Modifier: tcell.ModShift, Label: "Move ↑", ShowInHeader: true})
	r.Register(Action{ID: ActionMoveTaskDown, Key: tcell.KeyDown, Modifier: tcell.ModShift, Label: "Move ↓", ShowInHeader: true})
	r.Register(Action{ID: ActionMoveTaskUp, Key: tcell.KeyRune, Rune: 'K', Label: "Move ↑"})
	r.Register(Action{ID: ActionMoveTaskDown, Key: tcell.KeyRune, Rune: 'J', Label: "Move ↓"})
	r.Register(Action{ID: ActionCycleFilter, Key: tcell.KeyRune, Rune: 'f', Label: "Filter", ShowInHeader: true})
	r.Register(Action{ID: ActionCycleSort, Key: tcell.KeyRune, Rune: 's', Label: "Sort", ShowInHeader: true})
	r.Register(Action{ID: ActionDictate, Key: tcell.KeyRune, Rune: 'v', Label: "Voice", ShowInHeader: true})

	return r
}

// TaskInputActions returns actions available while the task input has focus
func TaskInputActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionSubmitTask, Key: tcell.KeyEnter, Label: "Add", ShowInHeader: true})
	r.Register(Action{ID: ActionCancelEditing, Key: tcell.KeyEscape, Label: "Cancel", ShowInHeader: true})
	r.Register(Action{ID: ActionDictate, Key: tcell.KeyCtrlV, Modifier: tcell.ModCtrl, Label: "Voice", ShowInHeader: true})
	return r
}

// TimerViewActions returns the canonical action registry for the timer page
func TimerViewActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionTimerToggle, Key: tcell.KeyRune, Rune: ' ', Label: "Start/Pause", ShowInHeader: true})
	r.Register(Action{ID: ActionTimerToggle, Key: tcell.KeyEnter, Label: "Start/Pause"})
	r.Register(Action{ID: ActionTimerReset, Key: tcell.KeyRune, Rune: 'r', Label: "Reset", ShowInHeader: true})
	r.Register(Action{ID: ActionBreakIncrease, Key: tcell.KeyRune, Rune: '+', Label: "Longer break", ShowInHeader: true})
	r.Register(Action{ID: ActionBreakDecrease, Key: tcell.KeyRune, Rune: '-', Label: "Shorter break", ShowInHeader: true})
	return r
}

// AnalyticsViewActions returns the canonical action registry for the analytics page
func AnalyticsViewActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionNextGoal, Key: tcell.KeyRune, Rune: 'g', Label: "Select goal", ShowInHeader: true})
	r.Register(Action{ID: ActionGoalIncrease, Key: tcell.KeyRune, Rune: '+', Label: "Goal +1", ShowInHeader: true})
	r.Register(Action{ID: ActionGoalDecrease, Key: tcell.KeyRune, Rune: '-', Label: "Goal -1", ShowInHeader: true})
	return r
}

// RecurringFormActions returns actions shown while the recurring task form is open.
// The form itself handles Tab and Enter.
func RecurringFormActions() *ActionRegistry {
	r := NewActionRegistry()
	r.Register(Action{ID: ActionCancelEditing, Key: tcell.KeyEscape, Label: "Cancel", ShowInHeader: true})
	return r
}

// GetActionsForView returns the registry of a view ID
func GetActionsForView(id model.ViewID) *ActionRegistry {
	switch id {
	case model.TaskListViewID:
		return TaskListViewActions()
	case model.TimerViewID:
		return TimerViewActions()
	case model.AnalyticsViewID:
		return AnalyticsViewActions()
	case model.RecurringViewID:
		return RecurringFormActions()
	default:
		return NewActionRegistry()
	}
}
