package model

import (
	"maps"
	"sync"
)

// LayoutModel holds which view fills the content area. RootLayout observes it
// and swaps views; the navigation controller writes it.
type LayoutModel struct {
	mu             sync.RWMutex
	contentViewID  ViewID
	contentParams  map[string]any
	revision       uint64
	listeners      map[int]func()
	nextListenerID int
}

// NewLayoutModel creates an empty layout model
func NewLayoutModel() *LayoutModel {
	return &LayoutModel{
		listeners:      make(map[int]func()),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// SetContent replaces the content view and notifies listeners
func (lm *LayoutModel) SetContent(viewID ViewID, params map[string]any) {
	lm.mu.Lock()
	lm.contentViewID = viewID
	lm.contentParams = maps.Clone(params)
	lm.revision++
	lm.mu.Unlock()
	lm.notify()
}

// Touch bumps the revision without changing content, forcing observers to
// recompute derived layout.
func (lm *LayoutModel) Touch() {
	lm.mu.Lock()
	lm.revision++
	lm.mu.Unlock()
	lm.notify()
}

// GetContentViewID returns the current content view
func (lm *LayoutModel) GetContentViewID() ViewID {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.contentViewID
}

// GetContentParams returns a copy of the current view params
func (lm *LayoutModel) GetContentParams() map[string]any {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return maps.Clone(lm.contentParams)
}

// GetRevision returns a counter incremented on every change
func (lm *LayoutModel) GetRevision() uint64 {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.revision
}

// AddListener registers a change callback and returns its ID
func (lm *LayoutModel) AddListener(listener func()) int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	id := lm.nextListenerID
	lm.nextListenerID++
	lm.listeners[id] = listener
	return id
}

// RemoveListener removes a callback by ID
func (lm *LayoutModel) RemoveListener(id int) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	delete(lm.listeners, id)
}

func (lm *LayoutModel) notify() {
	lm.mu.RLock()
	listeners := make([]func(), 0, len(lm.listeners))
	for _, l := range lm.listeners {
		listeners = append(listeners, l)
	}
	lm.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
