package view

import (
	"log/slog"
	"time"

	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
)

// ViewFactory instantiates views by ID, injecting the page controllers.
type ViewFactory struct {
	taskList    *controller.TaskListController
	timer       *controller.TimerController
	analytics   *controller.AnalyticsController
	queueUpdate func(func())
	now         func() time.Time
}

// NewViewFactory creates a view factory. queueUpdate schedules work on the
// UI goroutine (app.QueueUpdateDraw); nil runs it inline.
func NewViewFactory(
	taskList *controller.TaskListController,
	timer *controller.TimerController,
	analytics *controller.AnalyticsController,
	queueUpdate func(func()),
) *ViewFactory {
	return &ViewFactory{
		taskList:    taskList,
		timer:       timer,
		analytics:   analytics,
		queueUpdate: queueUpdate,
		now:         time.Now,
	}
}

// SetClock overrides the time source used for relative dates
func (f *ViewFactory) SetClock(now func() time.Time) {
	f.now = now
}

// CreateView instantiates a view by ID with optional parameters. The theme
// param only forces a fresh instance; colors are read from config.
func (f *ViewFactory) CreateView(viewID model.ViewID, params map[string]interface{}) controller.View {
	var v controller.View

	switch viewID {
	case model.TaskListViewID:
		v = NewTaskListView(f.taskList, f.queueUpdate, f.now)
	case model.TimerViewID:
		v = NewTimerView(f.timer)
	case model.AnalyticsViewID:
		v = NewAnalyticsView(f.analytics)
	case model.RecurringViewID:
		v = NewRecurringForm(f.taskList)
	default:
		slog.Error("unknown view ID", "viewID", viewID, "params", params)
	}

	return v
}
