package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/tock/task"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// GenerateID generates an 8-character random alphanumeric task ID (lowercase)
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		// Generate only fails on invalid alphabet/length
		panic(fmt.Sprintf("generating id: %v", err))
	}
	return id
}

// Settings is the subset of configuration written by first-run setup.
type Settings struct {
	Backend      string
	DataDir      string
	Theme        string
	DailyGoal    int
	WeeklyGoal   int
	MonthlyGoal  int
	WorkMinutes  int
	BreakMinutes int
	Categories   []task.Category
}

// DefaultSettings returns the values used when no config.yaml exists.
func DefaultSettings() Settings {
	return Settings{
		Backend:      BackendFile,
		Theme:        ThemeAuto,
		DailyGoal:    5,
		WeeklyGoal:   25,
		MonthlyGoal:  100,
		WorkMinutes:  25,
		BreakMinutes: 5,
		Categories:   task.DefaultCategories(),
	}
}

type fileLogging struct {
	Level string `yaml:"level"`
}

type fileStore struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir,omitempty"`
}

type fileGoals struct {
	Daily   int `yaml:"daily"`
	Weekly  int `yaml:"weekly"`
	Monthly int `yaml:"monthly"`
}

type fileTimer struct {
	WorkMinutes  int `yaml:"workMinutes"`
	BreakMinutes int `yaml:"breakMinutes"`
}

type fileAppearance struct {
	Theme             string `yaml:"theme"`
	GradientThreshold int    `yaml:"gradientThreshold"`
}

type configFile struct {
	Logging    fileLogging     `yaml:"logging"`
	Store      fileStore       `yaml:"store"`
	Goals      fileGoals       `yaml:"goals"`
	Timer      fileTimer       `yaml:"timer"`
	Appearance fileAppearance  `yaml:"appearance"`
	Categories []task.Category `yaml:"categories"`
}

// RenderConfig renders s as config.yaml content.
func RenderConfig(s Settings) ([]byte, error) {
	doc := configFile{
		Logging:    fileLogging{Level: "error"},
		Store:      fileStore{Backend: s.Backend, Dir: s.DataDir},
		Goals:      fileGoals{Daily: s.DailyGoal, Weekly: s.WeeklyGoal, Monthly: s.MonthlyGoal},
		Timer:      fileTimer{WorkMinutes: s.WorkMinutes, BreakMinutes: s.BreakMinutes},
		Appearance: fileAppearance{Theme: s.Theme, GradientThreshold: 256},
		Categories: s.Categories,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling config.yaml: %w", err)
	}
	return data, nil
}

// WriteConfig writes s to path, creating parent directories.
func WriteConfig(path string, s Settings) error {
	data, err := RenderConfig(s)
	if err != nil {
		return err
	}
	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	//nolint:gosec // G306: 0644 is appropriate for config file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config.yaml: %w", err)
	}
	slog.Info("wrote config", "file", path)
	return nil
}

// BootstrapSystem creates the user directories and, when no user config
// exists yet, a default config.yaml.
func BootstrapSystem() error {
	if err := EnsureDirs(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	path := GetConfigFile()
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return WriteConfig(path, DefaultSettings())
}
