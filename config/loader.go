package config

// Viper configuration loader: .env, then config.yaml, then TOCK_* env vars, then flags

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/boolean-maybe/tock/task"
)

// Storage backends selectable with store.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Theme values for appearance.theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const envPrefix = "TOCK"

// Config holds all application configuration loaded from config.yaml
type Config struct {
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	Store struct {
		Backend string `mapstructure:"backend"` // "file", "sqlite", "memory"
		Dir     string `mapstructure:"dir"`
	} `mapstructure:"store"`

	// Goals seed a fresh stats record; later changes live with the stats.
	Goals struct {
		Daily   int `mapstructure:"daily"`
		Weekly  int `mapstructure:"weekly"`
		Monthly int `mapstructure:"monthly"`
	} `mapstructure:"goals"`

	Timer struct {
		WorkMinutes  int `mapstructure:"workMinutes"`
		BreakMinutes int `mapstructure:"breakMinutes"`
	} `mapstructure:"timer"`

	Appearance struct {
		Theme             string `mapstructure:"theme"`             // "dark", "light", "auto"
		GradientThreshold int    `mapstructure:"gradientThreshold"` // Minimum color count for gradients (16, 256, 16777216)
		HeaderVisible     bool   `mapstructure:"headerVisible"`
	} `mapstructure:"appearance"`

	// Dictation.Command is an external speech-to-text program printing one
	// transcript per line.
	Dictation struct {
		Command string `mapstructure:"command"`
	} `mapstructure:"dictation"`

	Categories []task.Category `mapstructure:"categories"`
}

var appConfig *Config

// LoadConfig loads configuration.
// Priority order for config.yaml (first found wins): --config flag → project config → user config → current directory.
// flags may be nil, in which case supported flags are parsed from os.Args.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// Reset viper to clear any previous configuration
	viper.Reset()

	loadDotEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if explicit := lookupFlag(flags, "config"); explicit != "" {
		viper.SetConfigFile(explicit)
	} else {
		viper.AddConfigPath(GetProjectConfigDir()) // Project config (highest priority)
		viper.AddConfigPath(GetConfigDir())        // User config
		viper.AddConfigPath(".")                   // Current directory (development)
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Allow environment variables to override config file
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindFlags(flags); err != nil {
		slog.Warn("failed to bind command line flags", "error", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if !isKnownBackend(cfg.Store.Backend) {
		slog.Warn("unknown store backend, using file", "backend", cfg.Store.Backend)
		cfg.Store.Backend = BackendFile
		viper.Set("store.backend", BackendFile)
	}

	appConfig = cfg
	return cfg, nil
}

// loadDotEnv loads .env from the working directory if present. Existing
// environment variables win.
func loadDotEnv() {
	path := ".env"
	if pm, err := getPathManager(); err == nil {
		path = pm.EnvFile()
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "file", path, "error", err)
	}
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("logging.level", "error")

	viper.SetDefault("store.backend", BackendFile)
	viper.SetDefault("store.dir", "")

	viper.SetDefault("goals.daily", 5)
	viper.SetDefault("goals.weekly", 25)
	viper.SetDefault("goals.monthly", 100)

	viper.SetDefault("timer.workMinutes", 25)
	viper.SetDefault("timer.breakMinutes", 5)

	viper.SetDefault("appearance.theme", ThemeAuto)
	viper.SetDefault("appearance.gradientThreshold", 256)
	viper.SetDefault("appearance.headerVisible", true)

	viper.SetDefault("dictation.command", "")

	viper.SetDefault("categories", categoriesToMaps(task.DefaultCategories()))
}

// flagBindings maps command line flags to config keys.
var flagBindings = map[string]string{
	"log-level": "logging.level",
	"data-dir":  "store.dir",
	"backend":   "store.backend",
}

// bindFlags binds supported command line flags to viper so they can override config values.
func bindFlags(flags *pflag.FlagSet) error {
	if flags == nil {
		flags = pflag.NewFlagSet(appName, pflag.ContinueOnError)
		flags.ParseErrorsWhitelist.UnknownFlags = true
		flags.SetOutput(io.Discard)

		flags.String("log-level", "", "Log level (debug, info, warn, error)")
		flags.String("data-dir", "", "Directory holding tasks and stats")
		flags.String("backend", "", "Storage backend (file, sqlite, memory)")

		if err := flags.Parse(os.Args[1:]); err != nil {
			return err
		}
	}

	var errs []error
	for name, key := range flagBindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("binding --%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func lookupFlag(flags *pflag.FlagSet, name string) string {
	if flags == nil {
		return ""
	}
	f := flags.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func isKnownBackend(b string) bool {
	switch b {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

// GetConfig returns the loaded configuration
// If config hasn't been loaded yet, it loads it first
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := LoadConfig(nil)
		if err != nil {
			// If loading fails, return a config with defaults
			slog.Warn("failed to load config, using defaults", "error", err)
			setDefaults()
			cfg = &Config{}
			_ = viper.Unmarshal(cfg)
		}
		appConfig = cfg
	}
	return appConfig
}

// GetString is a convenience method to get a string value from config
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt is a convenience method to get an integer value from config
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBackend returns the configured storage backend
func GetBackend() string {
	b := viper.GetString("store.backend")
	if !isKnownBackend(b) {
		return BackendFile
	}
	return b
}

// GetDataDir returns store.dir, or the user data directory when unset
func GetDataDir() string {
	if dir := viper.GetString("store.dir"); dir != "" {
		return expandHome(dir)
	}
	return mustGetPathManager().DataDir()
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// GetGoalDefaults returns the configured daily, weekly and monthly goals
func GetGoalDefaults() (daily, weekly, monthly int) {
	return viper.GetInt("goals.daily"), viper.GetInt("goals.weekly"), viper.GetInt("goals.monthly")
}

// GetWorkDuration returns the Pomodoro work length
func GetWorkDuration() time.Duration {
	minutes := viper.GetInt("timer.workMinutes")
	if minutes < 1 {
		return 25 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

// GetBreakDuration returns the Pomodoro break length
func GetBreakDuration() time.Duration {
	minutes := viper.GetInt("timer.breakMinutes")
	if minutes < 1 {
		return 5 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

// GetDictationCommand returns the configured speech-to-text command, or ""
func GetDictationCommand() string {
	return strings.TrimSpace(viper.GetString("dictation.command"))
}

// GetCategories returns the category table in match order
func GetCategories() []task.Category {
	var cats []task.Category
	if err := viper.UnmarshalKey("categories", &cats); err != nil {
		slog.Warn("invalid categories in config, using defaults", "error", err)
		return task.DefaultCategories()
	}
	if cats == nil {
		return task.DefaultCategories()
	}
	return cats
}

// SaveCategories writes the category table to config.yaml
func SaveCategories(cats []task.Category) error {
	viper.Set("categories", categoriesToMaps(cats))
	return saveConfig()
}

func categoriesToMaps(cats []task.Category) []map[string]any {
	out := make([]map[string]any, 0, len(cats))
	for _, c := range cats {
		out = append(out, map[string]any{
			"name":     c.Name,
			"keywords": c.Keywords,
		})
	}
	return out
}

// saveConfig writes the current viper configuration to config.yaml
func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		// If no config file was loaded, save to user config directory
		configFile = GetConfigFile()
	}

	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}
	slog.Debug("configuration saved", "file", configFile)
	return nil
}

// GetTheme returns the appearance theme setting
func GetTheme() string {
	theme := viper.GetString("appearance.theme")
	if theme == "" {
		return ThemeAuto
	}
	return theme
}

// SaveTheme persists the appearance theme
func SaveTheme(theme string) error {
	switch theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q", theme)
	}
	viper.Set("appearance.theme", theme)
	ResetColors()
	return saveConfig()
}

// ToggleTheme flips between dark and light, persists the choice and returns it
func ToggleTheme() (string, error) {
	next := ThemeLight
	if GetEffectiveTheme() == ThemeLight {
		next = ThemeDark
	}
	if err := SaveTheme(next); err != nil {
		return "", err
	}
	return next, nil
}

// GetEffectiveTheme resolves "auto" to actual theme based on terminal detection
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != ThemeAuto {
		return theme
	}
	// Detect via COLORFGBG env var (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			// 0-7 = dark colors, 8+ = light colors
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil && bg >= 8 {
				return ThemeLight
			}
		}
	}
	return ThemeDark
}

// GetContentBackgroundColor returns the background color for content areas
func GetContentBackgroundColor() tcell.Color {
	if GetEffectiveTheme() == ThemeDark {
		return tcell.ColorBlack
	}
	return tcell.ColorDefault
}

// GetContentTextColor returns the appropriate text color for content areas
func GetContentTextColor() tcell.Color {
	if GetEffectiveTheme() == ThemeDark {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}

// GetGradientThreshold returns the minimum color count required for gradients
// Valid values: 16, 256, 16777216 (truecolor)
func GetGradientThreshold() int {
	threshold := viper.GetInt("appearance.gradientThreshold")
	if threshold < 1 {
		return 256 // fallback to default
	}
	return threshold
}

// GetHeaderVisible returns whether the header is shown on startup
func GetHeaderVisible() bool {
	return viper.GetBool("appearance.headerVisible")
}

// SaveHeaderVisible persists the header visibility preference
func SaveHeaderVisible(visible bool) error {
	if viper.GetBool("appearance.headerVisible") == visible {
		return nil
	}
	viper.Set("appearance.headerVisible", visible)
	return saveConfig()
}
