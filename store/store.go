package store

import (
	"errors"

	"github.com/boolean-maybe/tock/task"
)

// ErrNotFound is returned by KeyValueStore.Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// ErrTaskNotFound is returned when a task ID does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Persisted keys. Each holds one JSON document, rewritten whole on every save.
const (
	KeyTasks = "tasks"
	KeyStats = "taskStats"
)

// KeyValueStore is the persistence collaborator: whole-value reads and writes
// keyed by string. Last writer wins.
type KeyValueStore interface {
	// Get returns the stored value or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set replaces the stored value.
	Set(key string, value []byte) error
}

// Store is the ordered task list.
// Implementations must be thread-safe and notify listeners on changes.
type Store interface {
	// AddListener registers a callback for change notifications.
	// returns a listener ID that can be used to remove the listener.
	AddListener(listener ChangeListener) int

	// RemoveListener removes a previously registered listener by ID
	RemoveListener(id int)

	// Add appends a task to the end of the list.
	Add(t *task.Task) error

	// Get retrieves a copy of a task by ID, or nil.
	Get(id string) *task.Task

	// All returns copies of all tasks in list order.
	All() []*task.Task

	// Toggle flips a task's completed flag and returns the updated copy.
	Toggle(id string) (*task.Task, error)

	// Update replaces the task with the same ID.
	Update(t *task.Task) error

	// Delete removes a task.
	Delete(id string) error

	// Replace swaps the whole list, used for reordering.
	Replace(tasks []*task.Task) error

	// Reload re-reads the list from the backing store.
	Reload() error
}

// ChangeListener is called when the store's data changes
type ChangeListener func()
