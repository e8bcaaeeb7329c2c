// Package barchart draws vertical bar charts for the analytics page.
package barchart

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
)

// Style selects how bar bodies are filled.
type Style int

const (
	StyleSolid Style = iota
	StyleDots
	StyleBraille
)

// Bar is one column of the chart.
type Bar struct {
	Label    string
	Value    float64
	Color    tcell.Color
	UseColor bool // Color overrides the theme gradient
}

// Theme holds the drawing parameters.
type Theme struct {
	Style           Style
	BarChar         rune
	DotChar         rune
	DotRowGap       int
	DotColGap       int
	BarWidth        int
	BarGap          int
	BarColor        tcell.Color
	BarGradientFrom [3]int
	BarGradientTo   [3]int
	BackgroundColor tcell.Color
	AxisColor       tcell.Color
	LabelColor      tcell.Color
	ValueColor      tcell.Color
	ShowValues      bool
}

// DefaultTheme builds a theme from the global palette.
func DefaultTheme() Theme {
	colors := config.GetColors()
	return Theme{
		Style:           StyleSolid,
		BarChar:         '█',
		DotChar:         '•',
		DotRowGap:       0,
		DotColGap:       0,
		BarWidth:        3,
		BarGap:          1,
		BarColor:        config.FallbackBarColor,
		BarGradientFrom: colors.ChartBarGradient.Start,
		BarGradientTo:   colors.ChartBarGradient.End,
		BackgroundColor: config.GetContentBackgroundColor(),
		AxisColor:       colors.ChartAxisColor,
		LabelColor:      colors.ChartLabelColor,
		ValueColor:      colors.ChartValueColor,
		ShowValues:      true,
	}
}

// BarChart is a tview primitive rendering bars bottom-up above a label row.
type BarChart struct {
	*tview.Box
	bars  []Bar
	theme Theme
}

// NewBarChart creates an empty chart.
func NewBarChart(theme Theme) *BarChart {
	return &BarChart{Box: tview.NewBox(), theme: theme}
}

// SetBars replaces the data.
func (c *BarChart) SetBars(bars []Bar) *BarChart {
	c.bars = bars
	return c
}

// Bars returns the current data.
func (c *BarChart) Bars() []Bar {
	return c.bars
}

// Draw renders the chart into the box's inner rectangle. Bars that do not
// fit are dropped from the left so the most recent ones stay visible.
func (c *BarChart) Draw(screen tcell.Screen) {
	c.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height < 3 || len(c.bars) == 0 {
		return
	}

	theme := c.theme
	labelY := y + height - 1
	axisY := labelY - 1
	valueRows := 0
	if theme.ShowValues {
		valueRows = 1
	}
	chartHeight := axisY - y - valueRows
	if chartHeight <= 0 {
		return
	}

	bars := c.bars
	if maxBars := computeMaxVisibleBars(width, max(1, theme.BarWidth), theme.BarGap); len(bars) > maxBars {
		bars = bars[len(bars)-maxBars:]
	}
	barWidth, gap, contentWidth := computeBarLayout(width, len(bars), theme.BarWidth, theme.BarGap)
	offsetX := x + (width-contentWidth)/2

	maxValue := 0.0
	for _, b := range bars {
		maxValue = math.Max(maxValue, b.Value)
	}

	axisStyle := tcell.StyleDefault.Foreground(theme.AxisColor).Background(theme.BackgroundColor)
	for col := 0; col < width; col++ {
		screen.SetContent(x+col, axisY, '─', nil, axisStyle)
	}

	labelStyle := tcell.StyleDefault.Foreground(theme.LabelColor).Background(theme.BackgroundColor)
	valueStyle := tcell.StyleDefault.Foreground(theme.ValueColor).Background(theme.BackgroundColor)
	bottomY := axisY - 1

	for i, bar := range bars {
		barX := offsetX + i*(barWidth+gap)

		var barHeight int
		switch theme.Style {
		case StyleBraille:
			units := valueToBrailleHeight(bar.Value, maxValue, chartHeight)
			drawBarBraille(screen, barX, bottomY, barWidth, chartHeight, units, bar, theme)
			barHeight = (units + 3) / 4
		case StyleDots:
			barHeight = valueToHeight(bar.Value, maxValue, chartHeight)
			drawBarDots(screen, barX, bottomY, barWidth, barHeight, bar, theme)
		default:
			barHeight = valueToHeight(bar.Value, maxValue, chartHeight)
			drawBarSolid(screen, barX, bottomY, barWidth, barHeight, bar, theme)
		}

		if theme.ShowValues && bar.Value > 0 {
			drawCentered(screen, barX, bottomY-barHeight, barWidth, strconv.FormatFloat(bar.Value, 'f', -1, 64), valueStyle)
		}
		drawCentered(screen, barX, labelY, barWidth, bar.Label, labelStyle)
	}
}

// drawCentered writes text centered over a span, truncated to it.
func drawCentered(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	start := x + (width-len(runes))/2
	for i, r := range runes {
		screen.SetContent(start+i, y, r, nil, style)
	}
}

// computeBarLayout shrinks bar width, then gap, until count bars fit in
// totalWidth. It returns the final bar width, gap and occupied width.
func computeBarLayout(totalWidth, count, barWidth, gap int) (int, int, int) {
	if count <= 0 {
		return barWidth, gap, 0
	}
	barWidth = max(1, barWidth)
	gap = max(0, gap)
	needed := func() int { return count*barWidth + (count-1)*gap }

	for needed() > totalWidth && barWidth > 1 {
		barWidth--
	}
	for needed() > totalWidth && gap > 0 {
		gap--
	}
	return barWidth, gap, needed()
}

// computeMaxVisibleBars is how many bars of barWidth separated by gap fit in
// width. At least one bar is always reported.
func computeMaxVisibleBars(width, barWidth, gap int) int {
	n := (width + gap) / (barWidth + gap)
	return max(1, n)
}

// valueToHeight scales value into [0, chartHeight] rows, rounding up so any
// positive value stays visible.
func valueToHeight(value, maxValue float64, chartHeight int) int {
	if value <= 0 || maxValue <= 0 || chartHeight <= 0 {
		return 0
	}
	h := int(math.Ceil(value / maxValue * float64(chartHeight)))
	return min(max(h, 1), chartHeight)
}
