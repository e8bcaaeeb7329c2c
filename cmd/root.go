// Package cmd implements the tock command line. Without a subcommand tock
// starts the terminal UI.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/internal/app"
	"github.com/boolean-maybe/tock/internal/bootstrap"
)

// rootCmd runs the TUI when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tock",
	Short: "Terminal task manager with a Pomodoro timer and completion analytics",
	Long: `tock keeps a personal task list in the terminal. Tasks are categorized
from their text, a Pomodoro timer runs alongside, and the analytics page
tracks goals and productive hours.

Run without arguments to open the terminal UI, or use a subcommand to work
with the same data from scripts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = config.Version

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./.tock/config.yaml, then the user config dir)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("data-dir", "", "directory holding tasks and stats")
	pf.String("backend", "", "storage backend (file, sqlite, memory)")
	pf.Bool("json", false, "print machine readable output where supported")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	result, err := bootstrap.Bootstrap(cmd.Flags())
	if err != nil {
		return err
	}
	defer result.Close()
	defer result.App.Stop()

	if err := app.Run(result.App, result.RootLayout); err != nil {
		slog.Error("application error", "error", err)
		return err
	}

	// Save user preferences on shutdown
	if err := config.SaveHeaderVisible(result.HeaderConfig.GetUserPreference()); err != nil {
		slog.Warn("failed to save header visibility preference", "error", err)
	}
	return nil
}
