package view

import (
	"errors"
	"strconv"
	"strings"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	taskpkg "github.com/boolean-maybe/tock/task"

	"github.com/rivo/tview"
)

// autoCategory is the category choice that detects the category from the text
const autoCategory = "Auto-detect"

var (
	priorityOptions  = []string{"Low", "Medium", "High"}
	frequencyOptions = []string{"Daily", "Weekly", "Monthly"}
)

// RecurringForm is the overlay for creating a recurring task.
type RecurringForm struct {
	root     *tview.Flex
	titleBar *GradientCaptionRow
	form     *tview.Form
	errors   *tview.TextView

	text      *tview.InputField
	category  *tview.DropDown
	priority  *tview.DropDown
	frequency *tview.DropDown
	clock     *tview.InputField
	days      *tview.InputField
	monthDay  *tview.InputField

	taskList *controller.TaskListController
	registry *controller.ActionRegistry
}

// NewRecurringForm creates the form with daily at 09:00 preselected
func NewRecurringForm(taskList *controller.TaskListController) *RecurringForm {
	rf := &RecurringForm{
		taskList: taskList,
		registry: controller.RecurringFormActions(),
	}
	rf.build()
	return rf
}

func (rf *RecurringForm) build() {
	colors := config.GetColors()
	rf.titleBar = NewGradientCaptionRow([]string{"New Recurring Task"}, colors.PaneTitleGradient, colors.PaneTitleText)

	categories := append([]string{autoCategory}, rf.taskList.Tasks().Categorizer().Names()...)

	rf.text = tview.NewInputField().SetLabel("Task").
		SetAcceptanceFunc(tview.InputFieldMaxLength(taskpkg.MaxTextLength))
	rf.category = tview.NewDropDown().SetLabel("Category").SetOptions(categories, nil).SetCurrentOption(0)
	rf.priority = tview.NewDropDown().SetLabel("Priority").SetOptions(priorityOptions, nil).SetCurrentOption(1)
	rf.frequency = tview.NewDropDown().SetLabel("Repeat").SetOptions(frequencyOptions, nil).SetCurrentOption(0)
	rf.clock = tview.NewInputField().SetLabel("Time").SetText(taskpkg.DefaultTime).
		SetAcceptanceFunc(tview.InputFieldMaxLength(5))
	rf.days = tview.NewInputField().SetLabel("Days (weekly)").
		SetText(strings.Join(taskpkg.DefaultDays, ", "))
	rf.monthDay = tview.NewInputField().SetLabel("Day (monthly)").
		SetText(strconv.Itoa(taskpkg.DefaultMonthDay)).
		SetAcceptanceFunc(tview.InputFieldInteger)

	rf.form = tview.NewForm().
		AddFormItem(rf.text).
		AddFormItem(rf.category).
		AddFormItem(rf.priority).
		AddFormItem(rf.frequency).
		AddFormItem(rf.clock).
		AddFormItem(rf.days).
		AddFormItem(rf.monthDay).
		AddButton("Save", rf.save).
		AddButton("Cancel", rf.taskList.CancelRecurring)
	rf.form.SetFieldBackgroundColor(colors.InputFieldBackgroundColor).
		SetFieldTextColor(colors.InputFieldTextColor).
		SetLabelColor(colors.InputLabelColor).
		SetBackgroundColor(config.GetContentBackgroundColor())

	rf.errors = tview.NewTextView().SetDynamicColors(true)

	rf.root = tview.NewFlex().SetDirection(tview.FlexRow)
	rf.root.AddItem(rf.titleBar, 1, 0, false)
	rf.root.AddItem(rf.form, 0, 1, true)
	rf.root.AddItem(rf.errors, 2, 0, false)
}

// Input collects the form fields. A non-numeric day of month is reported
// as an error rather than passed on as zero.
func (rf *RecurringForm) Input() (controller.RecurringInput, error) {
	in := controller.RecurringInput{
		Text: rf.text.GetText(),
		Time: strings.TrimSpace(rf.clock.GetText()),
	}
	if _, option := rf.category.GetCurrentOption(); option != autoCategory {
		in.Category = option
	}
	_, priority := rf.priority.GetCurrentOption()
	in.Priority = strings.ToLower(priority)
	_, frequency := rf.frequency.GetCurrentOption()
	in.Frequency = strings.ToLower(frequency)

	switch in.Frequency {
	case string(taskpkg.FrequencyWeekly):
		in.Days = splitDays(rf.days.GetText())
	case string(taskpkg.FrequencyMonthly):
		if raw := strings.TrimSpace(rf.monthDay.GetText()); raw != "" {
			day, err := strconv.Atoi(raw)
			if err != nil {
				return in, &taskpkg.ValidationError{
					Field:   "monthDay",
					Value:   raw,
					Code:    taskpkg.ErrCodeFormat,
					Message: "day of month must be a number",
				}
			}
			in.MonthDay = day
		}
	}
	return in, nil
}

func splitDays(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

func (rf *RecurringForm) save() {
	in, err := rf.Input()
	if err == nil {
		err = rf.taskList.SubmitRecurring(in)
	}
	rf.SetError(err)
}

// SetError shows the validation messages of err; nil clears them
func (rf *RecurringForm) SetError(err error) {
	if err == nil {
		rf.errors.SetText("")
		return
	}
	rf.errors.SetText(config.GetColors().ErrorText + tview.Escape(errorMessage(err)) + "[-]")
}

// errorMessage joins validation messages, falling back to the error text.
func errorMessage(err error) string {
	var verrs taskpkg.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	var verr *taskpkg.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return "Could not save the task."
}

// GetPrimitive returns the root tview primitive
func (rf *RecurringForm) GetPrimitive() tview.Primitive {
	return rf.root
}

// GetActionRegistry returns the view's action registry
func (rf *RecurringForm) GetActionRegistry() *controller.ActionRegistry {
	return rf.registry
}

// GetViewID returns the view identifier
func (rf *RecurringForm) GetViewID() model.ViewID {
	return model.RecurringViewID
}

// OnFocus is called when the view becomes active
func (rf *RecurringForm) OnFocus() {}

// OnBlur is called when the view becomes inactive
func (rf *RecurringForm) OnBlur() {}

// IsInputFocused reports whether a form field or button has focus
func (rf *RecurringForm) IsInputFocused() bool {
	return rf.form.HasFocus()
}
