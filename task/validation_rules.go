package task

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// TextValidator validates task text
type TextValidator struct{}

func (v *TextValidator) ValidateField(task *Task) *ValidationError {
	text := strings.TrimSpace(task.Text)

	if text == "" {
		return &ValidationError{
			Field:   "text",
			Value:   task.Text,
			Code:    ErrCodeRequired,
			Message: "text is required",
		}
	}

	if utf8.RuneCountInString(text) > MaxTextLength {
		return &ValidationError{
			Field:   "text",
			Value:   task.Text,
			Code:    ErrCodeTooLong,
			Message: fmt.Sprintf("text exceeds maximum length of %d characters", MaxTextLength),
		}
	}

	return nil
}

// TypeValidator validates task type enum
type TypeValidator struct{}

func (v *TypeValidator) ValidateField(task *Task) *ValidationError {
	if slices.Contains([]Type{TypeNormal, TypeRecurring}, task.Type) {
		return nil
	}

	return &ValidationError{
		Field:   "type",
		Value:   task.Type,
		Code:    ErrCodeInvalidEnum,
		Message: fmt.Sprintf("invalid type value: %s", task.Type),
	}
}

// PriorityValidator validates priority; only recurring tasks carry one.
type PriorityValidator struct{}

func (v *PriorityValidator) ValidateField(task *Task) *ValidationError {
	if task.Type != TypeRecurring && task.Priority == "" {
		return nil
	}
	if _, ok := priorities[task.Priority]; ok {
		return nil
	}

	return &ValidationError{
		Field:   "priority",
		Value:   task.Priority,
		Code:    ErrCodeInvalidEnum,
		Message: fmt.Sprintf("invalid priority value: %s", task.Priority),
	}
}

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var validate = newRecurrenceValidator()

func newRecurrenceValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return WeekdayIndex(fl.Field().String()) >= 0
	})
	return v
}

// ValidateRecurrence checks a recurrence rule at the form boundary.
// The scheduler itself never validates.
func ValidateRecurrence(r *Recurrence) ValidationErrors {
	if r == nil {
		return ValidationErrors{{
			Field:   "recurrence",
			Code:    ErrCodeRequired,
			Message: "recurrence rule is required for recurring tasks",
		}}
	}

	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "recurrence", Code: ErrCodeFormat, Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Code:    codeForTag(fe.Tag()),
			Message: messageForTag(fe),
		})
	}
	return out
}

func codeForTag(tag string) ErrorCode {
	switch tag {
	case "required":
		return ErrCodeRequired
	case "oneof", "weekday":
		return ErrCodeInvalidEnum
	case "min", "max":
		return ErrCodeOutOfRange
	default:
		return ErrCodeFormat
	}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "weekday":
		return fmt.Sprintf("unknown weekday: %v", fe.Value())
	case "clock":
		return "time must be HH:MM"
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and 31", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
