package model

import (
	"slices"
	"strings"
)

// ViewID identifies a view type
type ViewID string

// view identifiers
const (
	TaskListViewID  ViewID = "tasks"
	TimerViewID     ViewID = "timer"
	AnalyticsViewID ViewID = "analytics"
	RecurringViewID ViewID = "recurring"
)

// ThemeParam is a view param carrying the theme the view was built for, so a
// theme change produces a fresh view instance.
const ThemeParam = "theme"

// PageViewIDs are the top-level pages in tab order. The recurring task form
// is pushed on top of the task list and is not a page.
var PageViewIDs = []ViewID{TaskListViewID, TimerViewID, AnalyticsViewID}

// ParseViewID maps a page name to its ViewID.
func ParseViewID(s string) (ViewID, bool) {
	id := ViewID(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(PageViewIDs, id) {
		return id, true
	}
	return TaskListViewID, false
}

// IsPageViewID reports whether id is a top-level page.
func IsPageViewID(id ViewID) bool {
	return slices.Contains(PageViewIDs, id)
}

// NextPage returns the page after id, wrapping around. Non-page views map to
// the first page.
func NextPage(id ViewID) ViewID {
	i := slices.Index(PageViewIDs, id)
	if i < 0 {
		return PageViewIDs[0]
	}
	return PageViewIDs[(i+1)%len(PageViewIDs)]
}
