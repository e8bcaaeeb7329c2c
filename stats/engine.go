// Package stats aggregates task events into per-period histograms and derives
// goal progress and productivity rankings from them.
package stats

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/task"
)

// ErrInvalidGoal is returned when a goal is not a positive integer.
var ErrInvalidGoal = errors.New("goal must be a positive integer")

const (
	maxRanked   = 3
	historyDays = 14
)

// CategoryStat is the completion rate of one category.
type CategoryStat struct {
	Category   string
	Completed  int
	Total      int
	Percentage int
}

// DayPoint is one day of the recent-history series.
type DayPoint struct {
	Date      time.Time
	Completed int
	Total     int
}

// Engine owns the stats record and persists it to the "taskStats" key after
// every mutation.
type Engine struct {
	mu       sync.RWMutex
	kv       store.KeyValueStore
	now      func() time.Time
	defaults Goals
	rec      *Record
}

// NewEngine creates an engine over kv. defaults seed goals on first use and
// replace missing ones on load. A nil now uses time.Now.
func NewEngine(kv store.KeyValueStore, defaults Goals, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	defaults = defaults.withDefaults(DefaultGoals)
	return &Engine{
		kv:       kv,
		now:      now,
		defaults: defaults,
		rec:      NewRecord(defaults),
	}
}

// Load reads the persisted record. A missing record, or one that is not a
// JSON object, yields an empty one; malformed parts fall back to their
// defaults. Only backend read failures are returned.
func (e *Engine) Load() error {
	data, err := e.kv.Get(store.KeyStats)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("reading %s: %w", store.KeyStats, err)
	}

	rec := NewRecord(e.defaults)
	if err == nil {
		decoded, derr := DecodeRecord(data, e.defaults)
		if derr != nil {
			slog.Warn("discarding malformed stats", "key", store.KeyStats, "error", derr)
		} else {
			rec = decoded
		}
	}

	e.mu.Lock()
	e.rec = rec
	e.mu.Unlock()
	slog.Debug("stats loaded", "days", len(rec.Daily), "categories", len(rec.Categories))
	return nil
}

// saveLocked writes the whole record. Caller must hold e.mu.
func (e *Engine) saveLocked() error {
	data, err := e.rec.Encode()
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	if err := e.kv.Set(store.KeyStats, data); err != nil {
		return fmt.Errorf("writing %s: %w", store.KeyStats, err)
	}
	return nil
}

// RecordCompletionEvent counts one event for t at the current instant.
// Total is always incremented in the day, ISO week, month and category
// buckets; Completed only when completed is true. The hour-of-day pattern is
// incremented either way.
func (e *Engine) RecordCompletionEvent(t *task.Task, completed bool) error {
	now := e.now()
	category := t.CategoryOrDefault()

	return e.mutate(func(r *Record) {
		bump(r.Daily, DayKey(now), completed)
		bump(r.Weekly, WeekKey(now), completed)
		bump(r.Monthly, MonthKey(now), completed)
		bump(r.Categories, category, completed)
		r.countHour(now.Hour())
	})
}

// RecordCompletion marks t completed in the buckets of the current instant.
// The task was already counted in Total when it was created, so Total only
// grows when Completed would otherwise exceed it (a task created in an
// earlier period, or completed a second time).
func (e *Engine) RecordCompletion(t *task.Task) error {
	now := e.now()
	category := t.CategoryOrDefault()

	return e.mutate(func(r *Record) {
		complete(r.Daily, DayKey(now))
		complete(r.Weekly, WeekKey(now))
		complete(r.Monthly, MonthKey(now))
		complete(r.Categories, category)
		r.countHour(now.Hour())
	})
}

// mutate applies fn and saves. The record is restored when the save fails.
func (e *Engine) mutate(fn func(r *Record)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.rec.Clone()
	fn(e.rec)
	if err := e.saveLocked(); err != nil {
		e.rec = prev
		slog.Error("failed to save stats", "error", err)
		return err
	}
	return nil
}

// Current returns the bucket of the period containing now.
func (e *Engine) Current(p Period) Bucket {
	now := e.now()
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rec.buckets(p)[p.Key(now)]
}

// Progress returns min(100, round(100*completed/goal)) for the current
// period. A non-positive goal yields 0.
func (e *Engine) Progress(p Period) int {
	current := e.Current(p).Completed

	e.mu.RLock()
	goal := e.rec.Goals.Get(p)
	e.mu.RUnlock()

	if goal <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(current) / float64(goal)))
	return min(100, pct)
}

// ProductiveHours returns up to three hours ranked by recorded count,
// highest first. Equal counts are ordered by ascending hour.
func (e *Engine) ProductiveHours() []int {
	e.mu.RLock()
	hours := make([]int, 0, len(e.rec.Patterns))
	counts := make(map[int]int, len(e.rec.Patterns))
	for h, hc := range e.rec.Patterns {
		if hc.Count > 0 {
			hours = append(hours, h)
			counts[h] = hc.Count
		}
	}
	e.mu.RUnlock()

	slices.SortFunc(hours, func(a, b int) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(hours) > maxRanked {
		hours = hours[:maxRanked]
	}
	return hours
}

// SuggestedCategories returns up to three categories ranked by completion
// ratio. Categories with no recorded tasks are excluded; ties go to the
// larger total, then to the name.
func (e *Engine) SuggestedCategories() []string {
	stats := e.categoryBuckets()
	stats = slices.DeleteFunc(stats, func(s CategoryStat) bool { return s.Total == 0 })

	slices.SortFunc(stats, func(a, b CategoryStat) int {
		// a.Completed/a.Total against b.Completed/b.Total without division
		if c := cmp.Compare(b.Completed*a.Total, a.Completed*b.Total); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	names := make([]string, 0, maxRanked)
	for _, s := range stats {
		if len(names) == maxRanked {
			break
		}
		names = append(names, s.Category)
	}
	return names
}

// CategoryStats returns per-category completion, sorted by name.
func (e *Engine) CategoryStats() []CategoryStat {
	stats := e.categoryBuckets()
	for i := range stats {
		if stats[i].Total > 0 {
			stats[i].Percentage = int(math.Round(100 * float64(stats[i].Completed) / float64(stats[i].Total)))
		}
	}
	return stats
}

func (e *Engine) categoryBuckets() []CategoryStat {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]CategoryStat, 0, len(e.rec.Categories))
	for name, b := range e.rec.Categories {
		out = append(out, CategoryStat{Category: name, Completed: b.Completed, Total: b.Total})
	}
	slices.SortFunc(out, func(a, b CategoryStat) int { return cmp.Compare(a.Category, b.Category) })
	return out
}

// History returns the last n days of daily buckets, oldest first, including
// days with no events. n <= 0 uses two weeks.
func (e *Engine) History(n int) []DayPoint {
	if n <= 0 {
		n = historyDays
	}
	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	e.mu.RLock()
	defer e.mu.RUnlock()

	points := make([]DayPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		b := e.rec.Daily[DayKey(day)]
		points = append(points, DayPoint{Date: day, Completed: b.Completed, Total: b.Total})
	}
	return points
}

// UpdateGoal sets the target for p. Non-positive values are rejected.
func (e *Engine) UpdateGoal(p Period, value int) error {
	if value <= 0 {
		return fmt.Errorf("updating %s goal to %d: %w", p, value, ErrInvalidGoal)
	}
	if _, ok := ParsePeriod(string(p)); !ok {
		return fmt.Errorf("updating goal: unknown period %q", p)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.rec.Goals
	e.rec.Goals.set(p, value)
	if err := e.saveLocked(); err != nil {
		e.rec.Goals = prev
		return fmt.Errorf("updating %s goal: %w", p, err)
	}
	slog.Info("goal updated", "period", p, "value", value)
	return nil
}

// Goals returns the current targets.
func (e *Engine) Goals() Goals {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rec.Goals
}

// Snapshot returns a deep copy of the record.
func (e *Engine) Snapshot() *Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rec.Clone()
}

// Reset clears all recorded history, keeping goals.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.rec
	e.rec = NewRecord(prev.Goals)
	if err := e.saveLocked(); err != nil {
		e.rec = prev
		return fmt.Errorf("resetting stats: %w", err)
	}
	slog.Info("stats reset")
	return nil
}
