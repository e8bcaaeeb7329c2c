package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boolean-maybe/tock/component"
	"github.com/boolean-maybe/tock/component/barchart"
	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/util/gradient"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	goalBarWidth     = 20
	analyticsMidRows = 8
)

// AnalyticsView shows goal progress, per-category completion, the most
// productive hours, suggested categories and the last two weeks. Like the
// timer page it reads the stats engine each time it is drawn.
type AnalyticsView struct {
	root        *tview.Flex
	titleBar    *GradientCaptionRow
	goals       *tview.TextView
	categories  *tview.TextView
	hoursTitle  *tview.TextView
	hours       *barchart.BarChart
	suggestions *tview.TextView
	chips       *component.ChipList
	history     *barchart.BarChart

	analytics *controller.AnalyticsController
	registry  *controller.ActionRegistry
}

// NewAnalyticsView creates the analytics page
func NewAnalyticsView(ac *controller.AnalyticsController) *AnalyticsView {
	av := &AnalyticsView{
		analytics: ac,
		registry:  ac.GetActionRegistry(),
	}
	av.build()
	return av
}

func (av *AnalyticsView) build() {
	colors := config.GetColors()
	av.titleBar = NewGradientCaptionRow([]string{"Analytics"}, colors.PaneTitleGradient, colors.PaneTitleText)

	text := func() *tview.TextView {
		return tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	}
	av.goals = text()
	av.categories = text()
	av.hoursTitle = text()
	av.suggestions = text()

	theme := barchart.DefaultTheme()
	av.hours = barchart.NewBarChart(theme)
	av.history = barchart.NewBarChart(theme)
	av.chips = component.NewChipList(nil)

	hoursPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(av.hoursTitle, 1, 0, false).
		AddItem(av.hours, 0, 1, false)
	middle := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(av.categories, 0, 1, false).
		AddItem(hoursPane, 0, 1, false)

	historyTitle := text().SetText(colors.AnalyticsLabelColor + "Last 14 days[-]")

	av.root = tview.NewFlex().SetDirection(tview.FlexRow)
	av.root.AddItem(av.titleBar, 1, 0, false)
	av.root.AddItem(av.goals, len(stats.Periods)+1, 0, false)
	av.root.AddItem(tview.NewBox(), 1, 0, false)
	av.root.AddItem(middle, analyticsMidRows, 0, false)
	av.root.AddItem(tview.NewBox(), 1, 0, false)
	av.root.AddItem(av.suggestions, 1, 0, false)
	av.root.AddItem(av.chips, 1, 0, false)
	av.root.AddItem(tview.NewBox(), 1, 0, false)
	av.root.AddItem(historyTitle, 1, 0, false)
	av.root.AddItem(av.history, 0, 1, false)

	av.root.SetDrawFunc(func(_ tcell.Screen, x, y, width, height int) (int, int, int, int) {
		av.sync()
		return x, y, width, height
	})
	av.sync()
}

// sync copies the engine state into the widgets.
func (av *AnalyticsView) sync() {
	colors := config.GetColors()
	engine := av.analytics.Engine()

	av.goals.SetText(renderGoals(engine, av.analytics.SelectedGoal(), colors))
	av.categories.SetText(renderCategories(engine.CategoryStats(), colors))

	hours := engine.ProductiveHours()
	if len(hours) == 0 {
		av.hoursTitle.SetText(colors.AnalyticsLabelColor + "Productive hours[-] " + colors.TaskDueColor + "no completions yet[-]")
	} else {
		av.hoursTitle.SetText(colors.AnalyticsLabelColor + "Productive hours[-]")
	}
	av.hours.SetBars(hourBars(engine, hours))

	suggested := engine.SuggestedCategories()
	if len(suggested) == 0 {
		av.suggestions.SetText(colors.AnalyticsLabelColor + "Suggested focus[-] " + colors.TaskDueColor + "complete a few tasks to get suggestions[-]")
	} else {
		av.suggestions.SetText(colors.AnalyticsLabelColor + "Suggested focus[-] " + colors.TaskDueColor + "Based on your completion rate[-]")
	}
	av.chips.SetWords(suggested)

	av.history.SetBars(historyBars(engine.History(0)))
}

var titleCaser = cases.Title(language.English)

// renderGoals draws one progress line per period; the selected one is
// marked with an arrow.
func renderGoals(engine *stats.Engine, selected stats.Period, colors *config.ColorConfig) string {
	goals := engine.Goals()
	lines := []string{colors.AnalyticsLabelColor + "Goals[-]"}
	for _, p := range stats.Periods {
		marker := "  "
		if p == selected {
			marker = colors.AnalyticsLabelColor + "▸ [-]"
		}
		done := engine.Current(p).Completed
		pct := engine.Progress(p)
		bar := gradient.ProgressBar(goalBarWidth, float64(pct)/100, colors.ProgressBarGradient, colors.ProgressTrackColor)
		lines = append(lines, fmt.Sprintf("%s%s%-8s %3d/%-3d[-] %s %s%3d%%[-]",
			marker, colors.AnalyticsValueColor, titleCaser.String(string(p)), done, goals.Get(p),
			bar, colors.AnalyticsValueColor, pct))
	}
	return strings.Join(lines, "\n")
}

// renderCategories lists completion per category, as many as fit the pane.
func renderCategories(cats []stats.CategoryStat, colors *config.ColorConfig) string {
	lines := []string{colors.AnalyticsLabelColor + "Category performance[-]"}
	if len(cats) == 0 {
		lines = append(lines, colors.TaskDueColor+"no tasks recorded yet[-]")
	}
	for _, c := range cats {
		if len(lines) == analyticsMidRows {
			break
		}
		lines = append(lines, fmt.Sprintf("%s%-10s[-] %s%d/%d (%d%%)[-]",
			colors.TaskCategoryColor, tview.Escape(c.Category),
			colors.AnalyticsValueColor, c.Completed, c.Total, c.Percentage))
	}
	return strings.Join(lines, "\n")
}

func hourBars(engine *stats.Engine, hours []int) []barchart.Bar {
	patterns := engine.Snapshot().Patterns
	bars := make([]barchart.Bar, 0, len(hours))
	for _, h := range hours {
		bars = append(bars, barchart.Bar{
			Label: fmt.Sprintf("%02dh", h),
			Value: float64(patterns[h].Count),
		})
	}
	return bars
}

func historyBars(points []stats.DayPoint) []barchart.Bar {
	bars := make([]barchart.Bar, 0, len(points))
	for _, p := range points {
		bars = append(bars, barchart.Bar{
			Label: strconv.Itoa(p.Date.Day()),
			Value: float64(p.Completed),
		})
	}
	return bars
}

// GetPrimitive returns the root tview primitive
func (av *AnalyticsView) GetPrimitive() tview.Primitive {
	return av.root
}

// GetActionRegistry returns the view's action registry
func (av *AnalyticsView) GetActionRegistry() *controller.ActionRegistry {
	return av.registry
}

// GetViewID returns the view identifier
func (av *AnalyticsView) GetViewID() model.ViewID {
	return model.AnalyticsViewID
}

// OnFocus is called when the view becomes active
func (av *AnalyticsView) OnFocus() {
	av.sync()
}

// OnBlur is called when the view becomes inactive
func (av *AnalyticsView) OnBlur() {}
