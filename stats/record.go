package stats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
)

// Bucket counts events in one period or category. Completed <= Total.
type Bucket struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// HourCount counts events recorded in one hour of the day.
type HourCount struct {
	Count int `json:"count"`
}

// Goals are completion targets per period.
type Goals struct {
	Daily   int `json:"daily" mapstructure:"daily"`
	Weekly  int `json:"weekly" mapstructure:"weekly"`
	Monthly int `json:"monthly" mapstructure:"monthly"`
}

// DefaultGoals are used when no goal has been configured.
var DefaultGoals = Goals{Daily: 5, Weekly: 25, Monthly: 100}

// Get returns the goal for p.
func (g Goals) Get(p Period) int {
	switch p {
	case Weekly:
		return g.Weekly
	case Monthly:
		return g.Monthly
	default:
		return g.Daily
	}
}

func (g *Goals) set(p Period, v int) {
	switch p {
	case Weekly:
		g.Weekly = v
	case Monthly:
		g.Monthly = v
	default:
		g.Daily = v
	}
}

// withDefaults fills non-positive goals from d.
func (g Goals) withDefaults(d Goals) Goals {
	if g.Daily <= 0 {
		g.Daily = d.Daily
	}
	if g.Weekly <= 0 {
		g.Weekly = d.Weekly
	}
	if g.Monthly <= 0 {
		g.Monthly = d.Monthly
	}
	return g
}

// Record is the persisted "taskStats" document.
type Record struct {
	Daily      map[string]Bucket `json:"daily"`
	Weekly     map[string]Bucket `json:"weekly"`
	Monthly    map[string]Bucket `json:"monthly"`
	Categories map[string]Bucket `json:"categories"`
	Patterns   map[int]HourCount `json:"patterns"`
	Goals      Goals             `json:"goals"`
}

// NewRecord returns an empty record with the given goals.
func NewRecord(goals Goals) *Record {
	return &Record{
		Daily:      make(map[string]Bucket),
		Weekly:     make(map[string]Bucket),
		Monthly:    make(map[string]Bucket),
		Categories: make(map[string]Bucket),
		Patterns:   make(map[int]HourCount),
		Goals:      goals,
	}
}

// DecodeRecord parses a persisted document, filling missing parts. Each
// top-level part is decoded on its own, so a malformed part is replaced by
// its default without losing the others. Goals that are absent or
// non-positive take the values in defaults.
func DecodeRecord(data []byte, defaults Goals) (*Record, error) {
	var parts map[string]json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("decoding stats: %w", err)
	}

	r := &Record{}
	decodePart(parts, "daily", &r.Daily)
	decodePart(parts, "weekly", &r.Weekly)
	decodePart(parts, "monthly", &r.Monthly)
	decodePart(parts, "categories", &r.Categories)
	decodePart(parts, "patterns", &r.Patterns)
	decodePart(parts, "goals", &r.Goals)
	r.normalize(defaults)
	return r, nil
}

// decodePart leaves dst untouched when the part is absent or malformed.
func decodePart[T any](parts map[string]json.RawMessage, name string, dst *T) {
	raw, ok := parts[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("defaulting malformed stats part", "part", name, "error", err)
		return
	}
	*dst = v
}

func (r *Record) normalize(defaults Goals) {
	if r.Daily == nil {
		r.Daily = make(map[string]Bucket)
	}
	if r.Weekly == nil {
		r.Weekly = make(map[string]Bucket)
	}
	if r.Monthly == nil {
		r.Monthly = make(map[string]Bucket)
	}
	if r.Categories == nil {
		r.Categories = make(map[string]Bucket)
	}
	if r.Patterns == nil {
		r.Patterns = make(map[int]HourCount)
	}
	for _, m := range []map[string]Bucket{r.Daily, r.Weekly, r.Monthly, r.Categories} {
		for k, b := range m {
			m[k] = b.clamped()
		}
	}
	r.Goals = r.Goals.withDefaults(defaults)
}

// clamped repairs counts so that 0 <= Completed <= Total.
func (b Bucket) clamped() Bucket {
	if b.Total < 0 {
		b.Total = 0
	}
	if b.Completed < 0 {
		b.Completed = 0
	}
	if b.Completed > b.Total {
		b.Total = b.Completed
	}
	return b
}

// Encode serializes the record.
func (r *Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	return &Record{
		Daily:      maps.Clone(r.Daily),
		Weekly:     maps.Clone(r.Weekly),
		Monthly:    maps.Clone(r.Monthly),
		Categories: maps.Clone(r.Categories),
		Patterns:   maps.Clone(r.Patterns),
		Goals:      r.Goals,
	}
}

func (r *Record) buckets(p Period) map[string]Bucket {
	switch p {
	case Weekly:
		return r.Weekly
	case Monthly:
		return r.Monthly
	default:
		return r.Daily
	}
}

func bump(m map[string]Bucket, key string, completed bool) {
	b := m[key]
	b.Total++
	if completed {
		b.Completed++
	}
	m[key] = b
}

func complete(m map[string]Bucket, key string) {
	b := m[key]
	b.Completed++
	m[key] = b.clamped()
}

func (r *Record) countHour(hour int) {
	hc := r.Patterns[hour]
	hc.Count++
	r.Patterns[hour] = hc
}
