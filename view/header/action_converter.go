package header

import (
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
)

func modelActionToControllerAction(a model.HeaderAction) controller.Action {
	return controller.Action{
		ID:           controller.ActionID(a.ID),
		Key:          a.Key,
		Rune:         a.Rune,
		Label:        a.Label,
		Modifier:     a.Modifier,
		ShowInHeader: a.ShowInHeader,
	}
}

// extractViewActions keeps header-visible view actions, dropping globals
// and duplicate IDs (the same action bound to several keys shows once).
func extractViewActions(viewActions []model.HeaderAction, globalIDs map[controller.ActionID]bool) []controller.Action {
	var result []controller.Action
	seen := make(map[controller.ActionID]bool)

	for _, a := range viewActions {
		id := controller.ActionID(a.ID)
		if !a.ShowInHeader || globalIDs[id] || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, modelActionToControllerAction(a))
	}
	return result
}
