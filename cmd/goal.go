package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/internal/bootstrap"
	"github.com/boolean-maybe/tock/stats"
)

var goalCmd = &cobra.Command{
	Use:   "goal [PERIOD N]",
	Short: "Show or set completion goals",
	Long: `Without arguments, show the daily, weekly and monthly goals with current
progress. With PERIOD (daily, weekly, monthly) and N, set that goal.`,
	Example: `  tock goal
  tock goal weekly 30`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or PERIOD N, got %d arguments", len(args))
		}
		return nil
	},
	RunE: withServices(runGoal),
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	if len(args) == 2 {
		period, ok := stats.ParsePeriod(args[0])
		if !ok {
			return fmt.Errorf("unknown period %q (use daily, weekly or monthly)", args[0])
		}
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("goal must be a number: %w", err)
		}
		if err := svc.Stats.UpdateGoal(period, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s goal is now %d\n", successStyle.Render("✓"), periodTitle.String(string(period)), value)
		return nil
	}

	report := buildStatsReport(svc)
	if isJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), report.Goals)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PERIOD\tDONE\tGOAL\tPROGRESS")
	for _, g := range report.Goals {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d%%\n", periodTitle.String(string(g.Period)), g.Completed, g.Goal, g.Progress)
	}
	return w.Flush()
}
