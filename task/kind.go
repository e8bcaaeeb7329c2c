package task

import (
	"strings"
)

// Type distinguishes one-off tasks from recurring ones.
type Type string

const (
	TypeNormal    Type = "normal"
	TypeRecurring Type = "recurring"
)

// Priority applies to recurring tasks only.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Frequency is the repeat cadence of a recurring task.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type priorityInfo struct {
	label string
	emoji string
}

var priorities = map[Priority]priorityInfo{
	PriorityLow:    {label: "Low", emoji: "🔽"},
	PriorityMedium: {label: "Medium", emoji: "⏺"},
	PriorityHigh:   {label: "High", emoji: "🔺"},
}

func normalizeKey(s string) string {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return normalized
}

// ParseType maps a raw string to a Type. Empty input is a normal task.
func ParseType(s string) (Type, bool) {
	switch normalizeKey(s) {
	case "", "normal", "task", "one_off", "oneoff":
		return TypeNormal, true
	case "recurring", "repeat", "repeating":
		return TypeRecurring, true
	default:
		return TypeNormal, false
	}
}

// NormalizeType standardizes a raw type string, defaulting to normal.
func NormalizeType(s string) Type {
	t, _ := ParseType(s)
	return t
}

// ParsePriority maps a raw string to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch normalizeKey(s) {
	case "low", "l":
		return PriorityLow, true
	case "", "medium", "med", "m", "normal":
		return PriorityMedium, true
	case "high", "h":
		return PriorityHigh, true
	default:
		return PriorityMedium, false
	}
}

// ParseFrequency maps a raw string to a Frequency.
func ParseFrequency(s string) (Frequency, bool) {
	switch normalizeKey(s) {
	case "daily", "day", "d":
		return FrequencyDaily, true
	case "weekly", "week", "w":
		return FrequencyWeekly, true
	case "monthly", "month", "m":
		return FrequencyMonthly, true
	default:
		return FrequencyDaily, false
	}
}

func PriorityLabel(p Priority) string {
	if info, ok := priorities[p]; ok {
		return info.label
	}
	return string(p)
}

func PriorityDisplay(p Priority) string {
	info, ok := priorities[p]
	if !ok {
		return string(p)
	}
	return info.label + " " + info.emoji
}
