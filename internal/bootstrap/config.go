package bootstrap

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/tock/config"
)

// LoadConfig initializes paths and loads the application configuration.
// flags are the command's parsed flags; nil falls back to os.Args.
// Returns an error if configuration loading fails.
func LoadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	if err := config.InitPaths(); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// EnsureUserConfig creates the user directories and a default config.yaml on
// first run.
func EnsureUserConfig() error {
	if err := config.BootstrapSystem(); err != nil {
		return fmt.Errorf("initialize user config: %w", err)
	}
	return nil
}
