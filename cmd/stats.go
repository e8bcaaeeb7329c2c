package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/internal/bootstrap"
	"github.com/boolean-maybe/tock/stats"
)

var periodTitle = cases.Title(language.English)

// markdownStyle picks the glamour style; empty follows the configured theme.
var markdownStyle = ""

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the productivity report",
	Long:  `Show task counts, goal progress, category performance, productive hours and suggested categories.`,
	Args:  cobra.NoArgs,
	RunE:  withServices(runStats),
}

func init() {
	statsCmd.Flags().Bool("markdown", false, "print the report as raw markdown")
	rootCmd.AddCommand(statsCmd)
}

// statsReport is the --json shape of the report.
type statsReport struct {
	Summary         stats.Summary        `json:"summary"`
	Goals           []goalReport         `json:"goals"`
	Categories      []stats.CategoryStat `json:"categories"`
	ProductiveHours []int                `json:"productiveHours"`
	Suggested       []string             `json:"suggestedCategories"`
}

type goalReport struct {
	Period    stats.Period `json:"period"`
	Completed int          `json:"completed"`
	Goal      int          `json:"goal"`
	Progress  int          `json:"progress"`
}

func buildStatsReport(svc *bootstrap.Services) statsReport {
	engine := svc.Stats
	goals := engine.Goals()
	r := statsReport{
		Summary:         svc.Tasks.Summary(),
		Categories:      engine.CategoryStats(),
		ProductiveHours: engine.ProductiveHours(),
		Suggested:       engine.SuggestedCategories(),
	}
	for _, p := range stats.Periods {
		r.Goals = append(r.Goals, goalReport{
			Period:    p,
			Completed: engine.Current(p).Completed,
			Goal:      goals.Get(p),
			Progress:  engine.Progress(p),
		})
	}
	return r
}

func runStats(cmd *cobra.Command, _ []string, svc *bootstrap.Services) error {
	report := buildStatsReport(svc)
	if isJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), report)
	}

	md := report.Markdown()
	if raw, _ := cmd.Flags().GetBool("markdown"); raw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(md))
	return nil
}

// Markdown renders the report as a markdown document.
func (r statsReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Productivity report\n\n")

	b.WriteString("## Tasks\n\n")
	b.WriteString("| Total | Completed | Active | Done |\n|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d%% |\n\n", r.Summary.Total, r.Summary.Completed, r.Summary.Active, r.Summary.PercentComplete)

	b.WriteString("## Goals\n\n")
	b.WriteString("| Period | Completed | Goal | Progress |\n|---|---:|---:|---:|\n")
	for _, g := range r.Goals {
		fmt.Fprintf(&b, "| %s | %d | %d | %d%% |\n", periodTitle.String(string(g.Period)), g.Completed, g.Goal, g.Progress)
	}
	b.WriteString("\n")

	b.WriteString("## Categories\n\n")
	if len(r.Categories) == 0 {
		b.WriteString("No tasks recorded yet.\n\n")
	} else {
		b.WriteString("| Category | Completed | Total | Rate |\n|---|---:|---:|---:|\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&b, "| %s | %d | %d | %d%% |\n", c.Category, c.Completed, c.Total, c.Percentage)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Productive hours\n\n")
	if len(r.ProductiveHours) == 0 {
		b.WriteString("No activity recorded yet.\n\n")
	} else {
		for i, h := range r.ProductiveHours {
			fmt.Fprintf(&b, "%d. %02d:00 - %02d:00\n", i+1, h, (h+1)%24)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Suggested focus\n\n")
	if len(r.Suggested) == 0 {
		b.WriteString("Complete a few tasks to get suggestions.\n")
	} else {
		for _, name := range r.Suggested {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text
// when no renderer can be built.
func renderMarkdown(md string) string {
	style := markdownStyle
	if style == "" {
		style = config.GetEffectiveTheme()
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
