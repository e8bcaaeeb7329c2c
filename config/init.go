package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
)

// PromptForSetup presents a Huh form for first-run setup, prefilled from s.
// Returns (settings, proceed, error)
func PromptForSetup(s Settings) (Settings, bool, error) {
	daily := strconv.Itoa(s.DailyGoal)
	weekly := strconv.Itoa(s.WeeklyGoal)
	monthly := strconv.Itoa(s.MonthlyGoal)
	breakMinutes := strconv.Itoa(s.BreakMinutes)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should tasks be stored?").
				Options(
					huh.NewOption("JSON files", BackendFile),
					huh.NewOption("SQLite database", BackendSQLite),
					huh.NewOption("Memory only (nothing saved)", BackendMemory),
				).
				Value(&s.Backend),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Follow terminal", ThemeAuto),
					huh.NewOption("Dark", ThemeDark),
					huh.NewOption("Light", ThemeLight),
				).
				Value(&s.Theme),
		),
		huh.NewGroup(
			huh.NewInput().Title("Daily goal").Value(&daily).Validate(positiveInt),
			huh.NewInput().Title("Weekly goal").Value(&weekly).Validate(positiveInt),
			huh.NewInput().Title("Monthly goal").Value(&monthly).Validate(positiveInt),
			huh.NewInput().Title("Break length (minutes)").Value(&breakMinutes).Validate(positiveInt),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return s, false, nil
		}
		return s, false, fmt.Errorf("form error: %w", err)
	}

	// validated above
	s.DailyGoal, _ = strconv.Atoi(daily)
	s.WeeklyGoal, _ = strconv.Atoi(weekly)
	s.MonthlyGoal, _ = strconv.Atoi(monthly)
	s.BreakMinutes, _ = strconv.Atoi(breakMinutes)
	return s, true, nil
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}

// RunSetup prompts for settings and writes them to the user config file.
// An existing file is only replaced when force is set.
// Returns (written, error)
func RunSetup(force bool) (bool, error) {
	path := GetConfigFile()
	if _, err := os.Stat(path); err == nil && !force {
		return false, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	s, proceed, err := PromptForSetup(DefaultSettings())
	if err != nil {
		return false, fmt.Errorf("failed to prompt for setup: %w", err)
	}
	if !proceed {
		return false, nil
	}
	if err := EnsureDirs(); err != nil {
		return false, err
	}
	if err := WriteConfig(path, s); err != nil {
		return false, err
	}
	return true, nil
}
