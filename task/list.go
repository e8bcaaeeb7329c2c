package task

import (
	"slices"
	"strings"
)

// Filter selects which tasks a list shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// SortOrder orders a task list.
type SortOrder string

const (
	SortDateAsc  SortOrder = "date_asc"
	SortDateDesc SortOrder = "date_desc"
	SortNameAsc  SortOrder = "name_asc"
	SortNameDesc SortOrder = "name_desc"
)

// Filters and SortOrders list the values in UI cycling order.
var (
	Filters    = []Filter{FilterAll, FilterActive, FilterCompleted}
	SortOrders = []SortOrder{SortDateDesc, SortDateAsc, SortNameAsc, SortNameDesc}
)

// ParseFilter maps a raw string to a Filter, defaulting to all.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(normalizeKey(s))
	if f == "" {
		return FilterAll, true
	}
	if slices.Contains(Filters, f) {
		return f, true
	}
	return FilterAll, false
}

// ParseSortOrder maps a raw string to a SortOrder, defaulting to newest first.
func ParseSortOrder(s string) (SortOrder, bool) {
	o := SortOrder(normalizeKey(s))
	if o == "" {
		return SortDateDesc, true
	}
	if slices.Contains(SortOrders, o) {
		return o, true
	}
	return SortDateDesc, false
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []*Task, f Filter) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// SortTasks returns a stably sorted copy of tasks. The input is not modified.
func SortTasks(tasks []*Task, order SortOrder) []*Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b *Task) int {
		switch order {
		case SortDateAsc:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortNameAsc:
			return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
		case SortNameDesc:
			return strings.Compare(strings.ToLower(b.Text), strings.ToLower(a.Text))
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
	return out
}

// Move returns a copy of tasks with the element at from moved to index to.
// Out-of-range indexes return an unchanged copy.
func Move(tasks []*Task, from, to int) []*Task {
	out := slices.Clone(tasks)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}
