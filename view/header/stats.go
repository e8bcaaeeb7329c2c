package header

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/model"
)

// MaxStats is how many stats fit the header column.
const MaxStats = HeaderHeight

// StatsWidget shows the header stats as aligned "Label: value" lines.
type StatsWidget struct {
	*tview.TextView

	mu    sync.RWMutex
	stats []model.HeaderStat
}

// NewStatsWidget creates an empty stats column
func NewStatsWidget() *StatsWidget {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetTextAlign(tview.AlignLeft)
	tv.SetWrap(false)
	return &StatsWidget{TextView: tv}
}

// SetStats replaces the shown stats. They arrive sorted; extras beyond
// MaxStats are dropped.
func (sw *StatsWidget) SetStats(stats []model.HeaderStat) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if len(stats) > MaxStats {
		stats = stats[:MaxStats]
	}
	sw.stats = stats
	sw.SetText(renderStats(stats))
}

// GetKeys returns the shown stat names in display order
func (sw *StatsWidget) GetKeys() []string {
	sw.mu.RLock()
	defer sw.mu.RUnlock()

	keys := make([]string, len(sw.stats))
	for i, s := range sw.stats {
		keys[i] = s.Name
	}
	return keys
}

// Width is the visible width of the widest line.
func (sw *StatsWidget) Width() int {
	sw.mu.RLock()
	defer sw.mu.RUnlock()

	w := 0
	for _, line := range strings.Split(renderStats(sw.stats), "\n") {
		w = max(w, tview.TaggedStringWidth(line))
	}
	return w
}

func renderStats(stats []model.HeaderStat) string {
	if len(stats) == 0 {
		return ""
	}

	maxLabelLen := 0
	for _, s := range stats {
		maxLabelLen = max(maxLabelLen, len(s.Name))
	}

	colors := config.GetColors()
	lines := make([]string, 0, len(stats))
	for _, s := range stats {
		padding := strings.Repeat(" ", maxLabelLen-len(s.Name))
		lines = append(lines, fmt.Sprintf("%s%s:%s%s %s", colors.HeaderInfoLabel, s.Name, colors.HeaderInfoValue, padding, s.Value))
	}
	return strings.Join(lines, "\n")
}
