package controller

import (
	"github.com/boolean-maybe/tock/model"

	"github.com/rivo/tview"
)

// View and ViewFactory interfaces decouple controllers from view implementations.

// View represents a renderable view with its action registry
type View interface {
	// GetPrimitive returns the tview primitive for this view
	GetPrimitive() tview.Primitive

	// GetActionRegistry returns the actions available in this view
	GetActionRegistry() *ActionRegistry

	// GetViewID returns the identifier for this view type
	GetViewID() model.ViewID

	// OnFocus is called when the view becomes active
	OnFocus()

	// OnBlur is called when the view becomes inactive
	OnBlur()
}

// ViewFactory creates views on demand
type ViewFactory interface {
	// CreateView instantiates a view by ID with optional parameters
	CreateView(viewID model.ViewID, params map[string]interface{}) View
}

// InputCapturingView is a view with a text input or form that, while
// focused, receives keys directly through tview.
type InputCapturingView interface {
	View

	// IsInputFocused reports whether an input widget currently has focus
	IsInputFocused() bool
}

// TaskInputView is the task list page: a list plus the new-task input field.
type TaskInputView interface {
	InputCapturingView

	// FocusInput moves focus to the input field and returns it
	FocusInput() tview.Primitive

	// BlurInput moves focus back to the list and returns it
	BlurInput() tview.Primitive

	// InputText returns the current input text
	InputText() string

	// SetInputText replaces the input text (dictation transcript)
	SetInputText(text string)

	// SetInputError shows a validation message under the input; empty clears it
	SetInputError(message string)
}

// StatsProvider is a view that contributes entries to the header stats block
type StatsProvider interface {
	// GetStats returns stats to display in the header for this view
	GetStats() []model.HeaderStat
}

// PageController is a per-view controller the input router dispatches to.
type PageController interface {
	GetActionRegistry() *ActionRegistry
	HandleAction(ActionID) bool
}

// ViewChangeNotifier is a view whose actions or header stats change while it
// is active (the task list swaps in the input keys while typing).
type ViewChangeNotifier interface {
	SetViewChangeHandler(handler func())
}
