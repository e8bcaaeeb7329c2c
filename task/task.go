package task

import (
	"slices"
	"time"
)

// MaxTextLength is the longest task text accepted at the input boundary.
const MaxTextLength = 100

// DefaultCategory is assigned when no keyword matches.
const DefaultCategory = "Other"

// Task is a single entry in the task list.
// Recurring tasks carry a Recurrence; its fields are flattened into the
// persisted JSON record.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	Category  string    `json:"category,omitempty"`
	Priority  Priority  `json:"priority,omitempty"`
	Type      Type      `json:"type,omitempty"`

	*Recurrence
}

// Recurrence describes how a recurring task repeats.
type Recurrence struct {
	Frequency Frequency `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Time      string    `json:"time" validate:"required,clock"`
	Days      []string  `json:"days,omitempty" validate:"omitempty,dive,weekday"`
	MonthDay  int       `json:"monthDay,omitempty" validate:"omitempty,min=1,max=31"`
	NextDue   time.Time `json:"nextDue"`
}

// IsRecurring reports whether the task repeats.
func (t *Task) IsRecurring() bool {
	return t.Type == TypeRecurring && t.Recurrence != nil
}

// CategoryOrDefault returns the task category, falling back to DefaultCategory.
func (t *Task) CategoryOrDefault() string {
	if t == nil || t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Recurrence != nil {
		r := *t.Recurrence
		r.Days = slices.Clone(t.Recurrence.Days)
		c.Recurrence = &r
	}
	return &c
}
