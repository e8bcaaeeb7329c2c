package stats

import (
	"fmt"
	"strings"
	"time"
)

// Period selects a goal and bucket granularity.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

// Periods lists periods in display order.
var Periods = []Period{Daily, Weekly, Monthly}

// ParsePeriod maps a raw string to a Period.
func ParsePeriod(s string) (Period, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, true
	case "weekly", "week", "w":
		return Weekly, true
	case "monthly", "month", "m":
		return Monthly, true
	default:
		return "", false
	}
}

// DayKey formats t as YYYY-MM-DD in t's location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// WeekKey formats the ISO-8601 week of t as YYYY-Www. The year is the ISO
// year, which differs from the calendar year around New Year.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey formats t as YYYY-M with an unpadded 1-indexed month.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

// Key returns the bucket key of t for p.
func (p Period) Key(t time.Time) string {
	switch p {
	case Weekly:
		return WeekKey(t)
	case Monthly:
		return MonthKey(t)
	default:
		return DayKey(t)
	}
}
