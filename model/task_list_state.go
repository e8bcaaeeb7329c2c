package model

import (
	"sync"

	"github.com/boolean-maybe/tock/task"
)

// TaskListState is the task list page's view state: active filter, sort
// order and selected task. It is not persisted.
type TaskListState struct {
	mu             sync.RWMutex
	filter         task.Filter
	sort           task.SortOrder
	selectedID     string
	listeners      map[int]func()
	nextListenerID int
}

// NewTaskListState starts with all tasks, newest first
func NewTaskListState() *TaskListState {
	return &TaskListState{
		filter:         task.FilterAll,
		sort:           task.SortDateDesc,
		listeners:      make(map[int]func()),
		nextListenerID: 1,
	}
}

// Filter returns the active filter
func (s *TaskListState) Filter() task.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SortOrder returns the active sort order
func (s *TaskListState) SortOrder() task.SortOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

// SelectedID returns the selected task ID, possibly empty
func (s *TaskListState) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// SetFilter changes the filter
func (s *TaskListState) SetFilter(f task.Filter) {
	s.update(func() { s.filter = f })
}

// SetSortOrder changes the sort order
func (s *TaskListState) SetSortOrder(o task.SortOrder) {
	s.update(func() { s.sort = o })
}

// Select changes the selected task
func (s *TaskListState) Select(id string) {
	s.update(func() { s.selectedID = id })
}

// CycleFilter advances to the next filter and returns it
func (s *TaskListState) CycleFilter() task.Filter {
	var next task.Filter
	s.update(func() {
		next = cycle(task.Filters, s.filter)
		s.filter = next
	})
	return next
}

// CycleSortOrder advances to the next sort order and returns it
func (s *TaskListState) CycleSortOrder() task.SortOrder {
	var next task.SortOrder
	s.update(func() {
		next = cycle(task.SortOrders, s.sort)
		s.sort = next
	})
	return next
}

// AddListener registers a change callback and returns its ID
func (s *TaskListState) AddListener(listener func()) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return id
}

// RemoveListener removes a callback by ID
func (s *TaskListState) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

func (s *TaskListState) update(fn func()) {
	s.mu.Lock()
	fn()
	listeners := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
