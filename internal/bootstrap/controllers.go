package bootstrap

import (
	"context"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/dictation"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/timer"
)

// Controllers holds all application controllers.
type Controllers struct {
	Nav       *controller.NavigationController
	Task      *controller.TaskController
	TaskList  *controller.TaskListController
	Timer     *controller.TimerController
	Analytics *controller.AnalyticsController
}

// BuildControllers constructs the navigation and page controllers. app may
// be nil in tests.
func BuildControllers(ctx context.Context, app *tview.Application, svc *Services) *Controllers {
	navController := controller.NewNavigationController(app)

	session := dictation.NewSession(dictation.NewRecognizer(config.GetDictationCommand(), false))
	runner := timer.NewRunner(config.GetWorkDuration(), config.GetBreakDuration())

	return &Controllers{
		Nav:       navController,
		Task:      svc.Tasks,
		TaskList:  controller.NewTaskListController(ctx, svc.Tasks, model.NewTaskListState(), navController, session),
		Timer:     controller.NewTimerController(ctx, runner),
		Analytics: controller.NewAnalyticsController(svc.Stats),
	}
}
