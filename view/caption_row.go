package view

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/util/gradient"
)

// GradientCaptionRow renders pane captions over one background gradient
// that is darkest in the middle and lightest at both edges.
type GradientCaptionRow struct {
	*tview.Box
	paneNames []string
	gradient  config.Gradient
	textColor tcell.Color
}

// NewGradientCaptionRow creates a caption row with equal-width panes
func NewGradientCaptionRow(paneNames []string, g config.Gradient, textColor tcell.Color) *GradientCaptionRow {
	return &GradientCaptionRow{
		Box:       tview.NewBox(),
		paneNames: paneNames,
		gradient:  g,
		textColor: textColor,
	}
}

// SetPaneNames replaces the captions
func (gcr *GradientCaptionRow) SetPaneNames(names []string) *GradientCaptionRow {
	gcr.paneNames = names
	return gcr
}

// PaneNames returns the captions
func (gcr *GradientCaptionRow) PaneNames() []string {
	return gcr.paneNames
}

// Draw fills the row with the gradient and centers each caption in its pane
func (gcr *GradientCaptionRow) Draw(screen tcell.Screen) {
	gcr.DrawForSubclass(screen, gcr)

	x, y, width, height := gcr.GetInnerRect()
	if width <= 0 || height <= 0 || len(gcr.paneNames) == 0 {
		return
	}

	numPanes := len(gcr.paneNames)
	paneWidth := width / numPanes
	center := float64(width) / 2

	for col := 0; col < width; col++ {
		bg := gradient.InterpolateColor(gcr.gradient, 0)
		// wide gradients band visibly on 256-color terminals
		if config.UseWideGradients && width > 1 {
			bg = gradient.InterpolateColor(gcr.gradient, math.Abs(float64(col)-center)/center)
		}

		pane := min(col/max(paneWidth, 1), numPanes-1)
		start := pane * paneWidth
		end := start + paneWidth
		if pane == numPanes-1 {
			end = width
		}

		caption := []rune(gcr.paneNames[pane])
		offset := max(0, (end-start-len(caption))/2)
		ch := ' '
		if i := col - start - offset; i >= 0 && i < len(caption) {
			ch = caption[i]
		}

		style := tcell.StyleDefault.Foreground(gcr.textColor).Background(bg)
		for row := 0; row < height; row++ {
			screen.SetContent(x+col, y+row, ch, nil, style)
		}
	}
}
