package task

import (
	"errors"
	"strings"
	"testing"
)

func TestTextValidator(t *testing.T) {
	tests := []struct {
		name    string
		task    *Task
		wantErr bool
		errCode ErrorCode
	}{
		{
			name:    "valid text",
			task:    &Task{Text: "Write report"},
			wantErr: false,
		},
		{
			name:    "empty text",
			task:    &Task{Text: ""},
			wantErr: true,
			errCode: ErrCodeRequired,
		},
		{
			name:    "whitespace text",
			task:    &Task{Text: "   "},
			wantErr: true,
			errCode: ErrCodeRequired,
		},
		{
			name:    "too long",
			task:    &Task{Text: strings.Repeat("a", 101)},
			wantErr: true,
			errCode: ErrCodeTooLong,
		},
		{
			name:    "max length",
			task:    &Task{Text: strings.Repeat("a", 100)},
			wantErr: false,
		},
		{
			name:    "max length counts runes",
			task:    &Task{Text: strings.Repeat("é", 100)},
			wantErr: false,
		},
	}

	validator := &TextValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateField(tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if err != nil && err.Code != tt.errCode {
				t.Errorf("expected error code: %v, got: %v", tt.errCode, err.Code)
			}
		})
	}
}

func TestTypeValidator(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		wantErr bool
	}{
		{name: "normal", typ: TypeNormal},
		{name: "recurring", typ: TypeRecurring},
		{name: "empty", typ: "", wantErr: true},
		{name: "unknown", typ: "epic", wantErr: true},
	}

	validator := &TypeValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateField(&Task{Type: tt.typ})
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if err != nil && err.Code != ErrCodeInvalidEnum {
				t.Errorf("expected error code: %v, got: %v", ErrCodeInvalidEnum, err.Code)
			}
		})
	}
}

func TestPriorityValidator(t *testing.T) {
	tests := []struct {
		name    string
		task    *Task
		wantErr bool
	}{
		{name: "normal task without priority", task: &Task{Type: TypeNormal}},
		{name: "recurring high", task: &Task{Type: TypeRecurring, Priority: PriorityHigh}},
		{name: "recurring without priority", task: &Task{Type: TypeRecurring}, wantErr: true},
		{name: "unknown priority", task: &Task{Type: TypeNormal, Priority: "extreme"}, wantErr: true},
	}

	validator := &PriorityValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateField(tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error: %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateRecurrence(t *testing.T) {
	tests := []struct {
		name      string
		rule      *Recurrence
		wantField string
		wantCode  ErrorCode
	}{
		{
			name: "valid daily",
			rule: &Recurrence{Frequency: FrequencyDaily, Time: "09:00"},
		},
		{
			name: "valid weekly",
			rule: &Recurrence{Frequency: FrequencyWeekly, Time: "18:30", Days: []string{"monday", "Friday"}},
		},
		{
			name: "valid monthly",
			rule: &Recurrence{Frequency: FrequencyMonthly, Time: "00:00", MonthDay: 31},
		},
		{
			name:      "nil rule",
			rule:      nil,
			wantField: "recurrence",
			wantCode:  ErrCodeRequired,
		},
		{
			name:      "unknown frequency",
			rule:      &Recurrence{Frequency: "yearly", Time: "09:00"},
			wantField: "frequency",
			wantCode:  ErrCodeInvalidEnum,
		},
		{
			name:      "missing time",
			rule:      &Recurrence{Frequency: FrequencyDaily},
			wantField: "time",
			wantCode:  ErrCodeRequired,
		},
		{
			name:      "bad clock",
			rule:      &Recurrence{Frequency: FrequencyDaily, Time: "24:00"},
			wantField: "time",
			wantCode:  ErrCodeFormat,
		},
		{
			name:      "unknown weekday",
			rule:      &Recurrence{Frequency: FrequencyWeekly, Time: "09:00", Days: []string{"funday"}},
			wantField: "days[0]",
			wantCode:  ErrCodeInvalidEnum,
		},
		{
			name:      "month day too large",
			rule:      &Recurrence{Frequency: FrequencyMonthly, Time: "09:00", MonthDay: 32},
			wantField: "monthDay",
			wantCode:  ErrCodeOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRecurrence(tt.rule)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Fatalf("expected no errors, got: %v", errs)
				}
				return
			}
			if !errs.HasField(tt.wantField) {
				t.Fatalf("expected error on field %q, got: %v", tt.wantField, errs)
			}
			if got := errs.ByField(tt.wantField)[0].Code; got != tt.wantCode {
				t.Errorf("expected code %v, got %v", tt.wantCode, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := &Task{Text: "Water plants", Type: TypeNormal}
	if errs := valid.Validate(); errs.HasErrors() {
		t.Errorf("expected valid task, got: %v", errs)
	}
	if !valid.IsValid() {
		t.Error("IsValid() = false for valid task")
	}

	recurring := &Task{
		Text:       "Stand-up",
		Type:       TypeRecurring,
		Priority:   PriorityMedium,
		Recurrence: &Recurrence{Frequency: FrequencyWeekly, Time: "9am"},
	}
	errs := recurring.Validate()
	if !errs.HasField("time") {
		t.Errorf("expected time error for recurring task, got: %v", errs)
	}

	missingRule := &Task{Text: "x", Type: TypeRecurring, Priority: PriorityLow}
	if !missingRule.Validate().HasField("recurrence") {
		t.Error("expected recurrence error when rule is missing")
	}
}

func TestValidateField(t *testing.T) {
	tk := &Task{Text: "", Type: TypeNormal}
	if err := tk.ValidateField("text"); err == nil || err.Code != ErrCodeRequired {
		t.Errorf("expected required error, got: %v", err)
	}
	if err := tk.ValidateField("type"); err != nil {
		t.Errorf("unexpected type error: %v", err)
	}
	if err := tk.ValidateField("nope"); err != nil {
		t.Errorf("unknown field should not error, got: %v", err)
	}
}

func TestValidateText(t *testing.T) {
	got, err := ValidateText("  buy milk  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "buy milk" {
		t.Errorf("expected trimmed text, got %q", got)
	}

	_, err = ValidateText("   ")
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got: %v", err)
	}

	_, err = ValidateText(strings.Repeat("x", 101))
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != ErrCodeTooLong {
		t.Errorf("expected too-long validation error, got: %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "text", Code: ErrCodeRequired, Message: "text is required"},
		{Field: "time", Code: ErrCodeFormat, Message: "time must be HH:MM"},
	}

	if !errs.HasErrors() {
		t.Error("HasErrors() = false")
	}
	if !errs.HasField("time") || errs.HasField("days") {
		t.Error("HasField mismatch")
	}
	if len(errs.ByField("text")) != 1 {
		t.Errorf("ByField(text) = %d entries", len(errs.ByField("text")))
	}
	want := "text: text is required; time: time must be HH:MM"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}
