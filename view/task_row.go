package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
	taskpkg "github.com/boolean-maybe/tock/task"
	"github.com/boolean-maybe/tock/util"
)

// TaskRowHeight is the number of lines each task occupies in the list
const TaskRowHeight = 2

// taskRowIndent aligns the detail line under the task text
const taskRowIndent = "    "

// buildTaskTitleLine renders "[x] text" with completed tasks struck through.
func buildTaskTitleLine(t *taskpkg.Task, colors *config.ColorConfig, width int) string {
	box := "[ ]"
	textColor := colors.TaskText
	if t.Completed {
		box = "[x]"
		textColor = colors.TaskCompletedText
	}
	text := util.TruncateText(t.Text, width-len(taskRowIndent))
	return fmt.Sprintf("%s%s %s[-:-:-]", textColor, tview.Escape(box), tview.Escape(text))
}

// buildTaskDetailLine renders the category, then for recurring tasks the
// priority, rule and next due time; for normal tasks the creation age.
func buildTaskDetailLine(t *taskpkg.Task, colors *config.ColorConfig, width int, now time.Time) string {
	parts := []string{colors.TaskCategoryColor + t.CategoryOrDefault() + "[-]"}
	plain := []string{t.CategoryOrDefault()}

	if t.IsRecurring() {
		prio := taskpkg.PriorityLabel(t.Priority)
		rule := "↻ " + t.Describe()
		due := "next " + humanize.RelTime(t.NextDue, now, "ago", "from now")
		parts = append(parts,
			colors.PriorityColor(t.Priority)+prio+"[-]",
			colors.TaskRecurringColor+rule+"[-]",
			colors.TaskDueColor+due+"[-]")
		plain = append(plain, prio, rule, due)
	} else {
		added := "added " + humanize.RelTime(t.CreatedAt, now, "ago", "from now")
		parts = append(parts, colors.TaskDueColor+added+"[-]")
		plain = append(plain, added)
	}

	// drop trailing parts until the line fits
	for len(parts) > 1 && len([]rune(taskRowIndent+strings.Join(plain, " · "))) > width {
		parts = parts[:len(parts)-1]
		plain = plain[:len(plain)-1]
	}
	return taskRowIndent + strings.Join(parts, colors.TaskDueColor+" · [-]")
}

// CreateTaskRow builds the two-line list item for a task. Content is laid
// out at draw time so it follows the available width.
func CreateTaskRow(t *taskpkg.Task, selected bool, colors *config.ColorConfig, now time.Time) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	if selected {
		tv.SetBackgroundColor(colors.TaskSelectedBackground)
	} else {
		tv.SetBackgroundColor(config.GetContentBackgroundColor())
	}

	tv.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		tv.SetText(buildTaskTitleLine(t, colors, width) + "\n" + buildTaskDetailLine(t, colors, width, now))
		return x, y, width, height
	})
	return tv
}
