package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/task"
)

// Test utilities for controller unit tests

// testNow is the fixed instant controller tests run at: Wednesday 2025-01-15 10:30 local.
var testNow = time.Date(2025, time.January, 15, 10, 30, 0, 0, time.Local)

// testClock is an adjustable clock for stats bucketing.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// sequentialIDs returns a generator producing task-1, task-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

// newTestTaskController builds a controller over an in-memory backend.
func newTestTaskController() (*TaskController, *testClock, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	taskStore, err := store.NewTaskStore(kv)
	if err != nil {
		panic(err) // an empty MemoryKV cannot fail to load
	}
	clock := newTestClock()
	engine := stats.NewEngine(kv, stats.DefaultGoals, clock.Now)
	tc := NewTaskController(taskStore, engine, task.NewCategorizer(nil), clock.Now, sequentialIDs())
	return tc, clock, kv
}

// newMockNavigationController creates a navigation controller without a tview application
func newMockNavigationController() *NavigationController {
	return NewNavigationController(nil)
}
