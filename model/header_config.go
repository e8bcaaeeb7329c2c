package model

import (
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// HeaderAction is a key binding shown in the header. It mirrors
// controller.Action without importing the controller package.
type HeaderAction struct {
	ID           string
	Key          tcell.Key
	Rune         rune
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool
}

// HeaderStat is one label/value pair in the header stats column.
type HeaderStat struct {
	Name  string
	Value string
	Order int
}

// HeaderConfig holds what the header shows: visibility, the active view's
// key bindings and the live stats. The header widget observes it.
type HeaderConfig struct {
	mu             sync.RWMutex
	visible        bool
	userPreference bool
	viewActions    []HeaderAction
	stats          map[string]HeaderStat
	listeners      map[int]func()
	nextListenerID int
}

// NewHeaderConfig creates a visible header config
func NewHeaderConfig() *HeaderConfig {
	return &HeaderConfig{
		visible:        true,
		userPreference: true,
		stats:          make(map[string]HeaderStat),
		listeners:      make(map[int]func()),
		nextListenerID: 1,
	}
}

// IsVisible returns the effective visibility
func (hc *HeaderConfig) IsVisible() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.visible
}

// SetVisible sets the effective visibility
func (hc *HeaderConfig) SetVisible(visible bool) {
	hc.mu.Lock()
	changed := hc.visible != visible
	hc.visible = visible
	hc.mu.Unlock()
	if changed {
		hc.notify()
	}
}

// GetUserPreference returns whether the user wants the header shown
func (hc *HeaderConfig) GetUserPreference() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.userPreference
}

// SetUserPreference records whether the user wants the header shown
func (hc *HeaderConfig) SetUserPreference(visible bool) {
	hc.mu.Lock()
	hc.userPreference = visible
	hc.mu.Unlock()
}

// ToggleUserPreference flips the user preference and the effective visibility
func (hc *HeaderConfig) ToggleUserPreference() {
	hc.mu.Lock()
	hc.userPreference = !hc.userPreference
	hc.visible = hc.userPreference
	hc.mu.Unlock()
	hc.notify()
}

// SetViewActions replaces the active view's key bindings
func (hc *HeaderConfig) SetViewActions(actions []HeaderAction) {
	hc.mu.Lock()
	hc.viewActions = slices.Clone(actions)
	hc.mu.Unlock()
	hc.notify()
}

// GetViewActions returns the active view's key bindings
func (hc *HeaderConfig) GetViewActions() []HeaderAction {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return slices.Clone(hc.viewActions)
}

// SetStat adds or replaces a header stat
func (hc *HeaderConfig) SetStat(name, value string, order int) {
	hc.mu.Lock()
	prev, ok := hc.stats[name]
	hc.stats[name] = HeaderStat{Name: name, Value: value, Order: order}
	hc.mu.Unlock()
	if !ok || prev.Value != value || prev.Order != order {
		hc.notify()
	}
}

// RemoveStat drops a header stat; unknown names are ignored
func (hc *HeaderConfig) RemoveStat(name string) {
	hc.mu.Lock()
	_, ok := hc.stats[name]
	delete(hc.stats, name)
	hc.mu.Unlock()
	if ok {
		hc.notify()
	}
}

// GetStats returns the header stats sorted by order, then name
func (hc *HeaderConfig) GetStats() []HeaderStat {
	hc.mu.RLock()
	out := make([]HeaderStat, 0, len(hc.stats))
	for _, s := range hc.stats {
		out = append(out, s)
	}
	hc.mu.RUnlock()

	slices.SortFunc(out, func(a, b HeaderStat) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out
}

// AddListener registers a change callback and returns its ID
func (hc *HeaderConfig) AddListener(listener func()) int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	id := hc.nextListenerID
	hc.nextListenerID++
	hc.listeners[id] = listener
	return id
}

// RemoveListener removes a callback by ID
func (hc *HeaderConfig) RemoveListener(id int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.listeners, id)
}

func (hc *HeaderConfig) notify() {
	hc.mu.RLock()
	listeners := make([]func(), 0, len(hc.listeners))
	for _, l := range hc.listeners {
		listeners = append(listeners, l)
	}
	hc.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
