package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/controller"
)

// InstallGlobalInputCapture routes every key through the input router before
// tview delivers it to the focused primitive.
func InstallGlobalInputCapture(app *tview.Application, router *controller.InputRouter, nav *controller.NavigationController) {
	app.SetInputCapture(CaptureInput(router, nav))
}

// CaptureInput returns the capture function: consumed events are swallowed,
// everything else continues to the focused widget.
func CaptureInput(router *controller.InputRouter, nav *controller.NavigationController) func(*tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		if router.HandleInput(event, nav.CurrentView()) {
			return nil
		}
		return event
	}
}
