package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/internal/bootstrap"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// loadConfig reads configuration for one-shot commands, logging to stderr.
var loadConfig = func(cmd *cobra.Command) error {
	cfg, err := bootstrap.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	bootstrap.InitCLILogging(cfg)
	return nil
}

// openServices opens the configured stores. Replaced in tests.
var openServices = func(cmd *cobra.Command) (*bootstrap.Services, error) {
	if err := loadConfig(cmd); err != nil {
		return nil, err
	}
	return bootstrap.InitServices()
}

// saveCategories persists the category table. Replaced in tests.
var saveCategories = config.SaveCategories

type serviceRunE func(cmd *cobra.Command, args []string, svc *bootstrap.Services) error

// withServices opens the stores around a command and closes them after.
func withServices(fn serviceRunE) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := svc.Close(); err != nil {
				slog.Warn("failed to close store", "error", err)
			}
		}()
		return fn(cmd, args, svc)
	}
}

func isJSON(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
