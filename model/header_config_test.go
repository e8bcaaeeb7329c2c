package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderConfig_Visibility(t *testing.T) {
	hc := NewHeaderConfig()
	calls := 0
	hc.AddListener(func() { calls++ })

	assert.True(t, hc.IsVisible())
	assert.True(t, hc.GetUserPreference())

	hc.SetVisible(true)
	assert.Equal(t, 0, calls, "no-op change does not notify")

	hc.ToggleUserPreference()
	assert.False(t, hc.IsVisible())
	assert.False(t, hc.GetUserPreference())
	assert.Equal(t, 1, calls)

	hc.SetVisible(true)
	assert.True(t, hc.IsVisible())
	assert.False(t, hc.GetUserPreference(), "SetVisible leaves the preference alone")
	assert.Equal(t, 2, calls)

	hc.SetUserPreference(true)
	assert.True(t, hc.GetUserPreference())
	assert.Equal(t, 2, calls, "the preference alone does not redraw")
}

func TestHeaderConfig_Stats(t *testing.T) {
	hc := NewHeaderConfig()
	calls := 0
	id := hc.AddListener(func() { calls++ })

	hc.SetStat("Active", "3", 3)
	hc.SetStat("Total", "5", 1)
	hc.SetStat("Done", "2", 2)
	assert.Equal(t, 3, calls)

	hc.SetStat("Total", "5", 1)
	assert.Equal(t, 3, calls, "unchanged stat does not notify")

	stats := hc.GetStats()
	assert.Equal(t, []string{"Total", "Done", "Active"}, []string{stats[0].Name, stats[1].Name, stats[2].Name})

	hc.RemoveListener(id)
	hc.SetStat("Total", "6", 1)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "6", hc.GetStats()[0].Value)
}

func TestHeaderConfig_ViewActionsCopied(t *testing.T) {
	hc := NewHeaderConfig()
	actions := []HeaderAction{{ID: "toggle", Rune: ' ', Label: "Toggle", ShowInHeader: true}}
	hc.SetViewActions(actions)

	actions[0].Label = "changed"
	got := hc.GetViewActions()
	assert.Equal(t, "Toggle", got[0].Label)

	got[0].Label = "changed again"
	assert.Equal(t, "Toggle", hc.GetViewActions()[0].Label)
}

func TestHeaderConfig_RemoveStat(t *testing.T) {
	hc := NewHeaderConfig()
	hc.SetStat("Showing", "all", 4)
	calls := 0
	hc.AddListener(func() { calls++ })

	hc.RemoveStat("missing")
	assert.Equal(t, 0, calls)

	hc.RemoveStat("Showing")
	assert.Equal(t, 1, calls)
	assert.Empty(t, hc.GetStats())
}
