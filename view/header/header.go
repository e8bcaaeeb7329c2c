// Package header renders the top bar: live stats on the left, key
// bindings for the current page on the right.
package header

import (
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/model"
)

// HeaderHeight is the number of rows in the header
const HeaderHeight = 4

// HeaderColumnSpacing separates key binding columns
const HeaderColumnSpacing = 2

const statsGap = 3

// HeaderWidget observes a HeaderConfig and redraws its stats and key
// bindings on every change.
type HeaderWidget struct {
	*tview.Flex
	stats      *StatsWidget
	help       *ContextHelpWidget
	config     *model.HeaderConfig
	listenerID int
	statsWidth int
	helpWidth  int
}

// NewHeaderWidget creates the header and subscribes it to headerConfig
func NewHeaderWidget(headerConfig *model.HeaderConfig) *HeaderWidget {
	hw := &HeaderWidget{
		Flex:   tview.NewFlex(),
		stats:  NewStatsWidget(),
		help:   NewContextHelpWidget(),
		config: headerConfig,
	}
	hw.refresh()
	hw.listenerID = headerConfig.AddListener(hw.refresh)
	return hw
}

// refresh re-reads the config and rebuilds the columns when widths change
func (hw *HeaderWidget) refresh() {
	hw.stats.SetStats(hw.config.GetStats())
	helpWidth := hw.help.SetActionsFromModel(hw.config.GetViewActions())
	statsWidth := hw.stats.Width()

	if statsWidth == hw.statsWidth && helpWidth == hw.helpWidth && hw.GetItemCount() > 0 {
		return
	}
	hw.statsWidth, hw.helpWidth = statsWidth, helpWidth

	hw.Clear()
	hw.AddItem(hw.stats, statsWidth+statsGap, 0, false)
	hw.AddItem(hw.help, helpWidth, 0, false)
	hw.AddItem(tview.NewBox(), 0, 1, false)
}

// Stats returns the stats column
func (hw *HeaderWidget) Stats() *StatsWidget {
	return hw.stats
}

// Help returns the key binding grid
func (hw *HeaderWidget) Help() *ContextHelpWidget {
	return hw.help
}

// Cleanup unsubscribes from the header config
func (hw *HeaderWidget) Cleanup() {
	hw.config.RemoveListener(hw.listenerID)
}
