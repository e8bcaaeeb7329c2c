package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
)

// InitHeaderAndLayoutModels creates the header config and layout model with
// persisted visibility preferences applied.
func InitHeaderAndLayoutModels() (*model.HeaderConfig, *model.LayoutModel) {
	headerConfig := model.NewHeaderConfig()
	layoutModel := model.NewLayoutModel()

	// Load user preference from saved config
	headerVisible := config.GetHeaderVisible()
	headerConfig.SetUserPreference(headerVisible)
	headerConfig.SetVisible(headerVisible)

	return headerConfig, layoutModel
}

// InitHeaderBaseStats publishes the task counters shown on every page and
// keeps them current. Returns the store listener ID.
func InitHeaderBaseStats(headerConfig *model.HeaderConfig, tasks *controller.TaskController) int {
	update := func() {
		s := tasks.Summary()
		headerConfig.SetStat("Tasks", fmt.Sprintf("%d (%d active)", s.Total, s.Active), 1)
		headerConfig.SetStat("Done", fmt.Sprintf("%d (%d%%)", s.Completed, s.PercentComplete), 2)
	}
	update()
	return tasks.Store().AddListener(update)
}
