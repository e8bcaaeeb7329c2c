package task

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recurrence defaults applied when a rule is created.
const (
	DefaultTime     = "09:00"
	DefaultMonthDay = 1
)

// weekdayNames is indexed by time.Weekday (0=Sunday).
var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DefaultDays is the weekly default: Monday through Friday.
var DefaultDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// WeekdayNames returns the weekday names in Monday-first display order.
func WeekdayNames() []string {
	return append(slices.Clone(weekdayNames[1:]), weekdayNames[0])
}

// WeekdayIndex maps a weekday name to 0 (Sunday) .. 6 (Saturday), or -1.
func WeekdayIndex(name string) int {
	return slices.Index(weekdayNames, strings.ToLower(strings.TrimSpace(name)))
}

// NewRecurrence builds a rule with defaults for any zero-valued field.
func NewRecurrence(freq Frequency, clock string, days []string, monthDay int) *Recurrence {
	r := &Recurrence{
		Frequency: freq,
		Time:      strings.TrimSpace(clock),
		MonthDay:  monthDay,
	}
	if r.Frequency == "" {
		r.Frequency = FrequencyDaily
	}
	if r.Time == "" {
		r.Time = DefaultTime
	}
	if r.Frequency == FrequencyWeekly {
		r.Days = make([]string, 0, len(days))
		for _, d := range days {
			r.Days = append(r.Days, strings.ToLower(strings.TrimSpace(d)))
		}
		if len(r.Days) == 0 {
			r.Days = slices.Clone(DefaultDays)
		}
	}
	if r.Frequency == FrequencyMonthly && r.MonthDay == 0 {
		r.MonthDay = DefaultMonthDay
	}
	return r
}

// ParseClock splits an "HH:MM" string. Unparsable components come back as 0
// alongside a non-nil error; out-of-range values are returned as parsed.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		err = fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	if len(parts) > 0 {
		h, herr := strconv.Atoi(parts[0])
		if herr == nil {
			hour = h
		} else if err == nil {
			err = fmt.Errorf("invalid hour in %q: %w", s, herr)
		}
	}
	if len(parts) > 1 {
		m, merr := strconv.Atoi(parts[1])
		if merr == nil {
			minute = m
		} else if err == nil {
			err = fmt.Errorf("invalid minute in %q: %w", s, merr)
		}
	}
	if err == nil && (hour < 0 || hour > 23 || minute < 0 || minute > 59) {
		err = fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, err
}

// NextDue computes the next due instant of a rule relative to now, in now's
// location. Calendar arithmetic uses Go date normalization, so a monthDay past
// the end of a month rolls into the following month (Feb 31 -> Mar 2).
//
// Weekly rules never pick today. When no selected weekday is later in the
// current week the result is (7 - today) + index(days[0]) days ahead; with an
// unsorted days list this lands on days[0] of next week, not the earliest day.
func NextDue(r *Recurrence, now time.Time) time.Time {
	hour, minute, _ := ParseClock(r.Time)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	switch r.Frequency {
	case FrequencyDaily:
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

	case FrequencyWeekly:
		days := r.Days
		if len(days) == 0 {
			days = DefaultDays
		}
		today := int(now.Weekday())
		nextDay := -1
		for _, d := range days {
			idx := WeekdayIndex(d)
			if idx > today && (nextDay < 0 || idx < nextDay) {
				nextDay = idx
			}
		}
		if nextDay < 0 {
			next = next.AddDate(0, 0, (7-today)+WeekdayIndex(days[0]))
		} else {
			next = next.AddDate(0, 0, nextDay-today)
		}

	case FrequencyMonthly:
		monthDay := r.MonthDay
		if monthDay == 0 {
			monthDay = DefaultMonthDay
		}
		next = time.Date(now.Year(), now.Month(), monthDay, hour, minute, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 1, 0)
		}
	}

	return next
}

// Describe renders the rule for lists: "daily at 09:00",
// "weekly on Mon, Fri at 14:00", "monthly on day 15 at 09:00".
func (r *Recurrence) Describe() string {
	if r == nil {
		return ""
	}
	switch r.Frequency {
	case FrequencyWeekly:
		title := cases.Title(language.English)
		short := make([]string, len(r.Days))
		for i, d := range r.Days {
			if len(d) > 3 {
				d = d[:3]
			}
			short[i] = title.String(d)
		}
		return fmt.Sprintf("weekly on %s at %s", strings.Join(short, ", "), r.Time)
	case FrequencyMonthly:
		return fmt.Sprintf("monthly on day %d at %s", r.MonthDay, r.Time)
	default:
		return fmt.Sprintf("%s at %s", r.Frequency, r.Time)
	}
}
