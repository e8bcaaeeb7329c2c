package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/boolean-maybe/tock/task"
)

// TaskStore keeps the ordered task list in memory and writes the whole list
// to the "tasks" key after every mutation.
type TaskStore struct {
	mu             sync.RWMutex
	kv             KeyValueStore
	tasks          []*task.Task
	listeners      map[int]ChangeListener
	nextListenerID int
}

// NewTaskStore creates a store over kv and loads the persisted list.
func NewTaskStore(kv KeyValueStore) (*TaskStore, error) {
	s := &TaskStore{
		kv:             kv,
		listeners:      make(map[int]ChangeListener),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}

	s.mu.Lock()
	err := s.loadLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	slog.Debug("task store initialized", "num_tasks", len(s.tasks))
	return s, nil
}

// loadLocked reads the persisted list. A missing key yields an empty list;
// a malformed document is logged and replaced by an empty list.
// Caller must hold s.mu lock.
func (s *TaskStore) loadLocked() error {
	data, err := s.kv.Get(KeyTasks)
	if errors.Is(err, ErrNotFound) {
		s.tasks = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", KeyTasks, err)
	}

	var tasks []*task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		slog.Warn("discarding malformed task list", "key", KeyTasks, "error", err)
		s.tasks = nil
		return nil
	}

	s.tasks = slices.DeleteFunc(tasks, func(t *task.Task) bool { return t == nil })
	for _, t := range s.tasks {
		if t.Type == "" {
			t.Type = task.TypeNormal
		}
	}
	return nil
}

// saveLocked writes the whole list. Caller must hold s.mu lock.
func (s *TaskStore) saveLocked() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []*task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := s.kv.Set(KeyTasks, data); err != nil {
		return fmt.Errorf("writing %s: %w", KeyTasks, err)
	}
	return nil
}

// commitLocked persists next as the new list, keeping the old one on failure.
// Caller must hold s.mu lock.
func (s *TaskStore) commitLocked(next []*task.Task) error {
	prev := s.tasks
	s.tasks = next
	if err := s.saveLocked(); err != nil {
		s.tasks = prev
		slog.Error("failed to save tasks", "error", err)
		return err
	}
	return nil
}

// AddListener registers a callback for change notifications.
// returns a listener ID that can be used to remove the listener.
func (s *TaskStore) AddListener(listener ChangeListener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = listener
	return id
}

// RemoveListener removes a previously registered listener by ID
func (s *TaskStore) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// notifyListeners calls all registered listeners
func (s *TaskStore) notifyListeners() {
	s.mu.RLock()
	listeners := make([]ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}

func (s *TaskStore) indexLocked(id string) int {
	id = strings.TrimSpace(id)
	return slices.IndexFunc(s.tasks, func(t *task.Task) bool { return t.ID == id })
}

// Add appends a task to the end of the list.
func (s *TaskStore) Add(t *task.Task) error {
	if t == nil {
		return fmt.Errorf("adding task: nil task")
	}
	s.mu.Lock()
	err := s.commitLocked(append(slices.Clone(s.tasks), t.Clone()))
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	slog.Debug("task added", "task_id", t.ID)
	s.notifyListeners()
	return nil
}

// Get retrieves a copy of a task by ID, or nil.
func (s *TaskStore) Get(id string) *task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i].Clone()
	}
	return nil
}

// All returns copies of all tasks in list order.
func (s *TaskStore) All() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Toggle flips a task's completed flag and returns the updated copy.
func (s *TaskStore) Toggle(id string) (*task.Task, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("toggling %s: %w", id, ErrTaskNotFound)
	}
	next := slices.Clone(s.tasks)
	toggled := next[i].Clone()
	toggled.Completed = !toggled.Completed
	next[i] = toggled
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("toggling %s: %w", id, err)
	}
	s.notifyListeners()
	return toggled.Clone(), nil
}

// Update replaces the task with the same ID.
func (s *TaskStore) Update(t *task.Task) error {
	if t == nil {
		return fmt.Errorf("updating task: nil task")
	}
	s.mu.Lock()
	i := s.indexLocked(t.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("updating %s: %w", t.ID, ErrTaskNotFound)
	}
	next := slices.Clone(s.tasks)
	next[i] = t.Clone()
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("updating %s: %w", t.ID, err)
	}
	s.notifyListeners()
	return nil
}

// Delete removes a task.
func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("deleting %s: %w", id, ErrTaskNotFound)
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	slog.Debug("task deleted", "task_id", id)
	s.notifyListeners()
	return nil
}

// Replace swaps the whole list, used for reordering.
func (s *TaskStore) Replace(tasks []*task.Task) error {
	next := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			next = append(next, t.Clone())
		}
	}
	s.mu.Lock()
	err := s.commitLocked(next)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("replacing tasks: %w", err)
	}
	s.notifyListeners()
	return nil
}

// Reload re-reads the list from the backing store.
func (s *TaskStore) Reload() error {
	s.mu.Lock()
	err := s.loadLocked()
	n := len(s.tasks)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("reloading tasks: %w", err)
	}
	slog.Debug("tasks reloaded", "num_tasks", n)
	s.notifyListeners()
	return nil
}

// ensure TaskStore implements Store
var _ Store = (*TaskStore)(nil)
