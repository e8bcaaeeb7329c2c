package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText is returned when task text is blank after trimming.
var ErrEmptyText = errors.New("task text is required")

// ErrorCode classifies a validation failure.
type ErrorCode string

const (
	ErrCodeRequired    ErrorCode = "required"
	ErrCodeTooLong     ErrorCode = "too_long"
	ErrCodeInvalidEnum ErrorCode = "invalid_enum"
	ErrCodeOutOfRange  ErrorCode = "out_of_range"
	ErrCodeFormat      ErrorCode = "invalid_format"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is match blank text against ErrEmptyText.
func (e *ValidationError) Is(target error) bool {
	return target == ErrEmptyText && e.Field == "text" && e.Code == ErrCodeRequired
}

// ValidationErrors is the set of failures for one task.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

func (ve ValidationErrors) HasField(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) ByField(field string) []*ValidationError {
	var out []*ValidationError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// FieldValidator checks one aspect of a task.
type FieldValidator interface {
	ValidateField(task *Task) *ValidationError
}

var fieldValidators = map[string]FieldValidator{
	"text":     &TextValidator{},
	"type":     &TypeValidator{},
	"priority": &PriorityValidator{},
}

var validationOrder = []string{"text", "type", "priority"}

// Validate runs every field validator plus recurrence rules for recurring tasks.
func (t *Task) Validate() ValidationErrors {
	var errs ValidationErrors
	for _, field := range validationOrder {
		if err := fieldValidators[field].ValidateField(t); err != nil {
			errs = append(errs, err)
		}
	}
	if t.Type == TypeRecurring {
		errs = append(errs, ValidateRecurrence(t.Recurrence)...)
	}
	return errs
}

// ValidateField runs a single named validator.
func (t *Task) ValidateField(field string) *ValidationError {
	v, ok := fieldValidators[field]
	if !ok {
		return nil
	}
	return v.ValidateField(t)
}

func (t *Task) IsValid() bool {
	return !t.Validate().HasErrors()
}

// ValidateText checks raw input text and returns it trimmed.
func ValidateText(text string) (string, error) {
	if err := (&TextValidator{}).ValidateField(&Task{Text: text}); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
