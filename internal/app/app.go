package app

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/view"
)

// NewApp creates the tview application. Paste is enabled so a task text
// arrives in the input field as one event.
func NewApp() *tview.Application {
	return tview.NewApplication().EnablePaste(true)
}

// Run draws the root layout with the mouse disabled and blocks until Stop.
func Run(app *tview.Application, rootLayout *view.RootLayout) error {
	app.SetRoot(rootLayout.GetPrimitive(), true).EnableMouse(false)
	if err := app.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
