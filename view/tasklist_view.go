package view

import (
	"fmt"
	"time"

	"github.com/boolean-maybe/tock/component"
	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	taskpkg "github.com/boolean-maybe/tock/task"

	"github.com/rivo/tview"
)

var filterLabels = map[taskpkg.Filter]string{
	taskpkg.FilterAll:       "all",
	taskpkg.FilterActive:    "active",
	taskpkg.FilterCompleted: "completed",
}

var sortLabels = map[taskpkg.SortOrder]string{
	taskpkg.SortDateDesc: "newest first",
	taskpkg.SortDateAsc:  "oldest first",
	taskpkg.SortNameAsc:  "A to Z",
	taskpkg.SortNameDesc: "Z to A",
}

// TaskListView is the main page: the entry field, a status line for
// validation and dictation messages, the task list and a summary footer.
type TaskListView struct {
	root     *tview.Flex
	titleBar *GradientCaptionRow
	input    *component.TaskInput
	status   *tview.TextView
	list     *ScrollableList
	footer   *tview.TextView

	taskList    *controller.TaskListController
	listActions *controller.ActionRegistry
	now         func() time.Time
	queueUpdate func(func())

	inputFocused    bool
	inputError      string
	onViewChange    func()
	storeListenerID int
	stateListenerID int
}

// NewTaskListView creates the task list page. queueUpdate runs dictation
// updates on the UI goroutine; nil runs them inline.
func NewTaskListView(taskList *controller.TaskListController, queueUpdate func(func()), now func() time.Time) *TaskListView {
	if queueUpdate == nil {
		queueUpdate = func(fn func()) { fn() }
	}
	if now == nil {
		now = time.Now
	}
	tv := &TaskListView{
		taskList:    taskList,
		listActions: taskList.GetActionRegistry(),
		now:         now,
		queueUpdate: queueUpdate,
	}
	tv.build()
	return tv
}

func (tv *TaskListView) build() {
	colors := config.GetColors()

	tv.titleBar = NewGradientCaptionRow([]string{"Tasks"}, colors.PaneTitleGradient, colors.PaneTitleText)

	tv.input = component.NewTaskInput(taskpkg.MaxTextLength)
	tv.input.SetLabel("> ")
	tv.input.SetPlaceholder("What needs to be done?")

	tv.status = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	tv.footer = tview.NewTextView().SetDynamicColors(true).SetWrap(false)

	tv.list = NewScrollableList().SetItemHeight(TaskRowHeight)

	tv.root = tview.NewFlex().SetDirection(tview.FlexRow)
	tv.root.AddItem(tv.titleBar, 1, 0, false)
	tv.root.AddItem(tv.input, 1, 0, false)
	tv.root.AddItem(tv.status, 1, 0, false)
	tv.root.AddItem(tv.list, 0, 1, true)
	tv.root.AddItem(tv.footer, 1, 0, false)

	tv.refresh()
}

// refresh rebuilds the rows from the controller's visible tasks.
func (tv *TaskListView) refresh() {
	colors := config.GetColors()
	state := tv.taskList.State()
	visible := tv.taskList.VisibleTasks()
	selected := tv.taskList.SelectedIndex(visible)
	now := tv.now()

	tv.titleBar.SetPaneNames([]string{fmt.Sprintf("Tasks · %s · %s", filterLabels[state.Filter()], sortLabels[state.SortOrder()])})

	tv.list.Clear()
	if len(visible) == 0 {
		empty := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
		empty.SetText(colors.EmptyListText + emptyListMessage(state.Filter()) + "[-]")
		tv.list.AddItem(empty)
		tv.list.SetSelection(-1)
	} else {
		for i, t := range visible {
			tv.list.AddItem(CreateTaskRow(t, i == selected, colors, now))
		}
		tv.list.SetSelection(selected)
	}

	all := tv.taskList.Tasks().Store().All()
	texts := make([]string, 0, len(all))
	for _, t := range all {
		texts = append(texts, t.Text)
	}
	tv.input.SetSuggestions(texts)

	summary := tv.taskList.Tasks().Summary()
	tv.footer.SetText(fmt.Sprintf("%s%d tasks · %d completed · %d active · %d%% done[-]",
		colors.TaskDueColor, summary.Total, summary.Completed, summary.Active, summary.PercentComplete))

	tv.renderStatus()
	tv.notifyViewChange()
}

func emptyListMessage(f taskpkg.Filter) string {
	switch f {
	case taskpkg.FilterActive:
		return "No active tasks."
	case taskpkg.FilterCompleted:
		return "No completed tasks yet."
	default:
		return "No tasks yet. Press a to add one."
	}
}

// renderStatus shows the validation error, else the dictation state.
func (tv *TaskListView) renderStatus() {
	colors := config.GetColors()
	session := tv.taskList.Dictation()
	switch {
	case tv.inputError != "":
		tv.status.SetText(colors.ErrorText + tview.Escape(tv.inputError) + "[-]")
	case session.Error() != "":
		tv.status.SetText(colors.ErrorText + tview.Escape(session.Error()) + "[-]")
	case session.Listening():
		tv.status.SetText(colors.TaskRecurringColor + "● Listening… speak your task[-]")
	default:
		tv.status.SetText("")
	}
}

// onDictationChange copies the transcript into the field. It is called
// from the session goroutine.
func (tv *TaskListView) onDictationChange() {
	tv.queueUpdate(func() {
		if transcript := tv.taskList.Dictation().Transcript(); transcript != "" {
			tv.input.SetText(transcript)
		}
		tv.renderStatus()
	})
}

// GetPrimitive returns the root tview primitive
func (tv *TaskListView) GetPrimitive() tview.Primitive {
	return tv.root
}

// GetActionRegistry returns the input keys while typing, else the list keys
func (tv *TaskListView) GetActionRegistry() *controller.ActionRegistry {
	if tv.inputFocused {
		return controller.TaskInputActions()
	}
	return tv.listActions
}

// GetViewID returns the view identifier
func (tv *TaskListView) GetViewID() model.ViewID {
	return model.TaskListViewID
}

// OnFocus is called when the view becomes active
func (tv *TaskListView) OnFocus() {
	tv.storeListenerID = tv.taskList.Tasks().Store().AddListener(tv.refresh)
	tv.stateListenerID = tv.taskList.State().AddListener(tv.refresh)
	tv.taskList.Dictation().OnChange(tv.onDictationChange)
	tv.refresh()
}

// OnBlur is called when the view becomes inactive
func (tv *TaskListView) OnBlur() {
	tv.taskList.Tasks().Store().RemoveListener(tv.storeListenerID)
	tv.taskList.State().RemoveListener(tv.stateListenerID)
	tv.taskList.Dictation().OnChange(nil)
}

// IsInputFocused reports whether the entry field has focus
func (tv *TaskListView) IsInputFocused() bool {
	return tv.inputFocused
}

// FocusInput moves focus to the entry field and returns it
func (tv *TaskListView) FocusInput() tview.Primitive {
	tv.setInputFocused(true)
	return tv.input
}

// BlurInput moves focus back to the list and returns it
func (tv *TaskListView) BlurInput() tview.Primitive {
	tv.setInputFocused(false)
	return tv.list
}

func (tv *TaskListView) setInputFocused(focused bool) {
	if tv.inputFocused == focused {
		return
	}
	tv.inputFocused = focused
	tv.notifyViewChange()
}

func (tv *TaskListView) notifyViewChange() {
	if tv.onViewChange != nil {
		tv.onViewChange()
	}
}

// InputText returns the entry field text
func (tv *TaskListView) InputText() string {
	return tv.input.GetText()
}

// SetInputText replaces the entry field text
func (tv *TaskListView) SetInputText(text string) {
	tv.input.SetText(text)
}

// SetInputError shows a message on the status line; empty clears it
func (tv *TaskListView) SetInputError(message string) {
	tv.inputError = message
	tv.renderStatus()
}

// SetViewChangeHandler registers the callback run when the input gains or
// loses focus or the filter changes
func (tv *TaskListView) SetViewChangeHandler(handler func()) {
	tv.onViewChange = handler
}

// GetStats returns the filter for the header
func (tv *TaskListView) GetStats() []model.HeaderStat {
	return []model.HeaderStat{
		{Name: "Showing", Value: filterLabels[tv.taskList.State().Filter()], Order: 4},
	}
}
