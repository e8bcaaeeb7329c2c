package controller

import (
	"maps"
	"sync"

	"github.com/boolean-maybe/tock/model"
)

// ViewEntry is one level of the navigation stack.
type ViewEntry struct {
	ViewID model.ViewID
	Params map[string]interface{}
}

// viewStack tracks page and overlay history. Pages replace the top entry,
// overlays such as the recurring form are pushed on top of it.
type viewStack struct {
	mu      sync.RWMutex
	entries []ViewEntry
}

func newViewStack() *viewStack {
	return &viewStack{}
}

func (s *viewStack) push(viewID model.ViewID, params map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, ViewEntry{ViewID: viewID, Params: cloneParams(params)})
}

// pop removes and returns the top entry, or nil when the stack is empty.
func (s *viewStack) pop() *ViewEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &top
}

// replaceTopView swaps the top entry in place. Returns false on an empty stack.
func (s *viewStack) replaceTopView(viewID model.ViewID, params map[string]interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return false
	}
	s.entries[len(s.entries)-1] = ViewEntry{ViewID: viewID, Params: cloneParams(params)}
	return true
}

func (s *viewStack) currentView() *ViewEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[len(s.entries)-1]
	return &e
}

func (s *viewStack) currentViewID() model.ViewID {
	if e := s.currentView(); e != nil {
		return e.ViewID
	}
	return ""
}

func (s *viewStack) previousView() *ViewEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) < 2 {
		return nil
	}
	e := s.entries[len(s.entries)-2]
	return &e
}

// baseView is the bottom entry, the page every overlay sits on.
func (s *viewStack) baseView() *ViewEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[0]
	return &e
}

func (s *viewStack) canGoBack() bool {
	return s.depth() > 1
}

func (s *viewStack) depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *viewStack) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// cloneParams copies a params map so stack entries never alias caller state.
func cloneParams(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}
	return maps.Clone(params)
}
