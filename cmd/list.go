package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/internal/bootstrap"
	"github.com/boolean-maybe/tock/stats"
	taskpkg "github.com/boolean-maybe/tock/task"
)

// now is the clock for relative dates. Replaced in tests.
var now = time.Now

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in list order. The # column is the position used by "tock move".

Filters: all, active, completed
Sorts:   date_desc, date_asc, name_asc, name_desc (default: list order)`,
	Args: cobra.NoArgs,
	RunE: withServices(runList),
}

func init() {
	listCmd.Flags().StringP("filter", "f", "all", "which tasks to show")
	listCmd.Flags().StringP("sort", "s", "", "sort order")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string, svc *bootstrap.Services) error {
	rawFilter, _ := cmd.Flags().GetString("filter")
	filter, ok := taskpkg.ParseFilter(rawFilter)
	if !ok {
		return fmt.Errorf("unknown filter %q", rawFilter)
	}

	all := svc.TaskStore.All()
	tasks := taskpkg.FilterTasks(all, filter)
	if rawSort, _ := cmd.Flags().GetString("sort"); rawSort != "" {
		order, ok := taskpkg.ParseSortOrder(rawSort)
		if !ok {
			return fmt.Errorf("unknown sort order %q", rawSort)
		}
		tasks = taskpkg.SortTasks(tasks, order)
	}

	if isJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), tasks)
	}

	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), emptyListMessage(filter))
		return nil
	}

	position := make(map[string]int, len(all))
	for i, t := range all {
		position[t.ID] = i + 1
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tID\tDONE\tTEXT\tCATEGORY\tADDED\tREPEATS")
	ref := now()
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			position[t.ID],
			t.ID,
			checkbox(t.Completed),
			t.Text,
			t.CategoryOrDefault(),
			humanize.RelTime(t.CreatedAt, ref, "ago", "from now"),
			repeats(t, ref))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := stats.Summarize(all)
	fmt.Fprintln(cmd.OutOrStdout(), subtleStyle.Render(fmt.Sprintf("%d tasks · %d completed · %d active · %d%% done",
		s.Total, s.Completed, s.Active, s.PercentComplete)))
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func repeats(t *taskpkg.Task, ref time.Time) string {
	if !t.IsRecurring() {
		return "-"
	}
	return fmt.Sprintf("%s, next %s", t.Describe(), humanize.RelTime(t.NextDue, ref, "ago", "from now"))
}

func emptyListMessage(f taskpkg.Filter) string {
	switch f {
	case taskpkg.FilterActive:
		return "No active tasks."
	case taskpkg.FilterCompleted:
		return "No completed tasks yet."
	default:
		return `No tasks yet. Add one with "tock add".`
	}
}
