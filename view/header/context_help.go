package header

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/model"
	"github.com/boolean-maybe/tock/util"
)

type cellData struct {
	key       string
	label     string
	keyLen    int
	labelLen  int
	colorType int
}

const (
	colorTypeGlobal = 0
	colorTypeView   = 1
)

// ContextHelpWidget lays key bindings out column-major in HeaderHeight
// rows: global actions first, then the active view's.
type ContextHelpWidget struct {
	*tview.TextView
	width int
}

// NewContextHelpWidget creates an empty help grid
func NewContextHelpWidget() *ContextHelpWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)
	return &ContextHelpWidget{TextView: tv}
}

// GetWidth returns the visible width of the rendered grid
func (chw *ContextHelpWidget) GetWidth() int {
	return chw.width
}

// SetActionsFromModel renders the global actions plus the given view
// actions and returns the resulting width.
func (chw *ContextHelpWidget) SetActionsFromModel(viewActions []model.HeaderAction) int {
	globalIDs := make(map[controller.ActionID]bool)
	globals := controller.DefaultGlobalActions().GetHeaderActions()
	for _, a := range globals {
		globalIDs[a.ID] = true
	}
	return chw.renderActionsGrid(globals, extractViewActions(viewActions, globalIDs))
}

func (chw *ContextHelpWidget) renderActionsGrid(globalActions, viewActions []controller.Action) int {
	numRows := HeaderHeight

	globalActions = padToFullRows(globalActions, numRows)
	globalCols := len(globalActions) / numRows
	viewCols := (len(viewActions) + numRows - 1) / numRows
	totalCols := globalCols + viewCols
	if totalCols == 0 {
		chw.SetText("")
		chw.width = 0
		return 0
	}

	grid := make([][]cellData, numRows)
	for i := range grid {
		grid[i] = make([]cellData, totalCols)
	}
	fillGridSection(grid, globalActions, 0, colorTypeGlobal)
	fillGridSection(grid, viewActions, globalCols, colorTypeView)

	keyWidths := columnMax(grid, totalCols, func(c cellData) int { return c.keyLen })
	labelWidths := columnMax(grid, totalCols, func(c cellData) int { return c.labelLen })

	lines := make([]string, numRows)
	for row := range lines {
		lines[row] = buildGridRow(grid[row], keyWidths, labelWidths)
	}
	chw.SetText(" " + strings.Join(lines, "\n "))

	chw.width = 0
	for _, line := range lines {
		chw.width = max(chw.width, tview.TaggedStringWidth(line))
	}
	chw.width++
	return chw.width
}

// padToFullRows pads actions with empty entries so the global section
// fills whole columns.
func padToFullRows(actions []controller.Action, numRows int) []controller.Action {
	if rem := len(actions) % numRows; rem != 0 {
		actions = append(actions, make([]controller.Action, numRows-rem)...)
	}
	return actions
}

func fillGridSection(grid [][]cellData, actions []controller.Action, colOffset, colorType int) {
	numRows := len(grid)
	for i, action := range actions {
		if action.ID == "" {
			continue
		}
		key := util.FormatKeyBinding(action.Key, action.Rune, action.Modifier)
		grid[i%numRows][colOffset+i/numRows] = cellData{
			key:       key,
			label:     action.Label,
			keyLen:    len([]rune(key)) + 2,
			labelLen:  len([]rune(action.Label)),
			colorType: colorType,
		}
	}
}

func columnMax(grid [][]cellData, numCols int, extract func(cellData) int) []int {
	out := make([]int, numCols)
	for col := range out {
		for row := range grid {
			out[col] = max(out[col], extract(grid[row][col]))
		}
	}
	return out
}

func buildGridRow(row []cellData, keyWidths, labelWidths []int) string {
	var line strings.Builder
	last := len(row) - 1

	for col, cell := range row {
		if cell.key == "" {
			if col < last {
				line.WriteString(strings.Repeat(" ", keyWidths[col]+1+labelWidths[col]+HeaderColumnSpacing))
			}
			continue
		}

		scheme := getColorScheme(cell.colorType)
		fmt.Fprintf(&line, "%s<%s>%s", scheme.KeyColor, cell.key, scheme.LabelColor)
		line.WriteString(strings.Repeat(" ", keyWidths[col]-cell.keyLen))
		line.WriteString(" ")
		line.WriteString(cell.label)
		if col < last {
			line.WriteString(strings.Repeat(" ", labelWidths[col]-cell.labelLen+HeaderColumnSpacing))
		}
	}
	return line.String()
}
