package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/internal/bootstrap"
	taskpkg "github.com/boolean-maybe/tock/task"
)

// errRecurAborted is returned when the interactive form is cancelled.
var errRecurAborted = errors.New("cancelled")

var recurCmd = &cobra.Command{
	Use:   "recur",
	Short: "Add a recurring task",
	Long: `Add a task that repeats daily, weekly or monthly.

Without --text an interactive form is shown when running in a terminal.`,
	Example: `  tock recur --text "Stand-up" --frequency weekly --days monday,wednesday --time 09:30
  tock recur --text "Pay rent" --frequency monthly --month-day 1`,
	Args: cobra.NoArgs,
	RunE: withServices(runRecur),
}

func init() {
	f := recurCmd.Flags()
	f.String("text", "", "task text")
	f.String("category", "", "category (default: detected from the text)")
	f.String("priority", string(taskpkg.PriorityMedium), "low, medium or high")
	f.String("frequency", string(taskpkg.FrequencyDaily), "daily, weekly or monthly")
	f.String("time", taskpkg.DefaultTime, "time of day as HH:MM")
	f.StringSlice("days", taskpkg.DefaultDays, "weekdays for weekly tasks")
	f.Int("month-day", taskpkg.DefaultMonthDay, "day of the month for monthly tasks")
	rootCmd.AddCommand(recurCmd)
}

func runRecur(cmd *cobra.Command, _ []string, svc *bootstrap.Services) error {
	in := recurInputFromFlags(cmd)

	if in.Text == "" {
		if !stdinIsTerminal() {
			return errors.New("--text is required")
		}
		var err error
		in, err = promptRecurring(in, svc.Categorizer.Names())
		if errors.Is(err, errRecurAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	added, err := svc.Tasks.AddRecurring(in)
	if err != nil {
		return err
	}

	if isJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), added)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		successStyle.Render("✓ Added"),
		added.Text,
		subtleStyle.Render(fmt.Sprintf("[%s] ↻ %s", added.CategoryOrDefault(), added.Describe())))
	return nil
}

func recurInputFromFlags(cmd *cobra.Command) controller.RecurringInput {
	f := cmd.Flags()
	in := controller.RecurringInput{}
	in.Text, _ = f.GetString("text")
	in.Category, _ = f.GetString("category")
	in.Priority, _ = f.GetString("priority")
	in.Frequency, _ = f.GetString("frequency")
	in.Time, _ = f.GetString("time")

	switch strings.ToLower(in.Frequency) {
	case string(taskpkg.FrequencyWeekly):
		days, _ := f.GetStringSlice("days")
		for _, d := range days {
			in.Days = append(in.Days, strings.ToLower(strings.TrimSpace(d)))
		}
	case string(taskpkg.FrequencyMonthly):
		in.MonthDay, _ = f.GetInt("month-day")
	}
	return in
}

// promptRecurring asks for a recurring task with a Huh form prefilled from in.
func promptRecurring(in controller.RecurringInput, categories []string) (controller.RecurringInput, error) {
	categoryOptions := []huh.Option[string]{huh.NewOption("Auto-detect", "")}
	for _, name := range categories {
		categoryOptions = append(categoryOptions, huh.NewOption(name, name))
	}

	title := cases.Title(language.English)
	weekdayOptions := make([]huh.Option[string], 0, len(taskpkg.WeekdayNames()))
	for _, day := range taskpkg.WeekdayNames() {
		weekdayOptions = append(weekdayOptions, huh.NewOption(title.String(day), day))
	}
	days := in.Days
	if len(days) == 0 {
		days = taskpkg.DefaultDays
	}
	monthDay := strconv.Itoa(max(in.MonthDay, taskpkg.DefaultMonthDay))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				CharLimit(taskpkg.MaxTextLength).
				Value(&in.Text).
				Validate(func(s string) error {
					_, err := taskpkg.ValidateText(s)
					return err
				}),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions...).Value(&in.Category),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(taskpkg.PriorityLow)),
					huh.NewOption("Medium", string(taskpkg.PriorityMedium)),
					huh.NewOption("High", string(taskpkg.PriorityHigh)),
				).
				Value(&in.Priority),
			huh.NewSelect[string]().
				Title("Repeats").
				Options(
					huh.NewOption("Daily", string(taskpkg.FrequencyDaily)),
					huh.NewOption("Weekly", string(taskpkg.FrequencyWeekly)),
					huh.NewOption("Monthly", string(taskpkg.FrequencyMonthly)),
				).
				Value(&in.Frequency),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&in.Time).
				Validate(func(s string) error {
					_, _, err := taskpkg.ParseClock(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("On days").Options(weekdayOptions...).Value(&days),
		).WithHideFunc(func() bool { return in.Frequency != string(taskpkg.FrequencyWeekly) }),
		huh.NewGroup(
			huh.NewInput().Title("Day of month").Value(&monthDay).Validate(positiveDay),
		).WithHideFunc(func() bool { return in.Frequency != string(taskpkg.FrequencyMonthly) }),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return in, errRecurAborted
		}
		return in, fmt.Errorf("form error: %w", err)
	}

	in.Days = nil
	in.MonthDay = 0
	switch in.Frequency {
	case string(taskpkg.FrequencyWeekly):
		in.Days = days
	case string(taskpkg.FrequencyMonthly):
		// validated above
		in.MonthDay, _ = strconv.Atoi(monthDay)
	}
	return in, nil
}

func positiveDay(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 31 {
		return errors.New("enter a day between 1 and 31")
	}
	return nil
}
