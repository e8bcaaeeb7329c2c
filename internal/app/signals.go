package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivo/tview"
)

// SetupSignalHandler stops the application on SIGINT or SIGTERM so the
// terminal is restored before exit.
func SetupSignalHandler(app *tview.Application) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		slog.Info("received signal, stopping", "signal", sig.String())
		app.Stop()
	}()
}
