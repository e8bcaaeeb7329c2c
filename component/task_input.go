package component

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
)

// TaskInput is the task entry field. It caps the text length, shows a
// character counter on the right and offers a greyed completion when the
// typed text is a prefix of exactly one known suggestion. Tab accepts it.
type TaskInput struct {
	*tview.InputField
	maxLength   int
	suggestions []string
	hint        string
	hintColor   tcell.Color
}

// NewTaskInput creates an input limited to maxLength characters.
func NewTaskInput(maxLength int) *TaskInput {
	colors := config.GetColors()
	field := tview.NewInputField().
		SetAcceptanceFunc(tview.InputFieldMaxLength(maxLength)).
		SetFieldBackgroundColor(config.GetContentBackgroundColor()).
		SetFieldTextColor(colors.InputFieldTextColor).
		SetLabelColor(colors.InputLabelColor)

	return &TaskInput{
		InputField: field,
		maxLength:  maxLength,
		hintColor:  colors.InputHintColor,
	}
}

// SetSuggestions sets the completion candidates.
func (ti *TaskInput) SetSuggestions(words []string) *TaskInput {
	ti.suggestions = words
	ti.updateHint()
	return ti
}

// Hint returns the pending completion suffix, if any.
func (ti *TaskInput) Hint() string {
	return ti.hint
}

// SetText replaces the text and recomputes the hint.
func (ti *TaskInput) SetText(text string) *TaskInput {
	ti.InputField.SetText(text)
	ti.updateHint()
	return ti
}

// Clear empties the field.
func (ti *TaskInput) Clear() *TaskInput {
	return ti.SetText("")
}

// Counter renders "n/max", colored red once the limit is reached.
func (ti *TaskInput) Counter() string {
	n := utf8.RuneCountInString(ti.GetText())
	colors := config.GetColors()
	color := colors.InputCounterColor
	if n >= ti.maxLength {
		color = colors.InputCounterLimitColor
	}
	return fmt.Sprintf("%s%d/%d[-]", color, n, ti.maxLength)
}

// updateHint matches case-insensitively and keeps the suggestion's case.
func (ti *TaskInput) updateHint() {
	ti.hint = ""
	text := ti.GetText()
	if text == "" {
		return
	}

	lower := strings.ToLower(text)
	var match string
	for _, s := range ti.suggestions {
		if utf8.RuneCountInString(s) > utf8.RuneCountInString(text) && strings.HasPrefix(strings.ToLower(s), lower) {
			if match != "" {
				return
			}
			match = s
		}
	}
	if match != "" && utf8.RuneCountInString(match) <= ti.maxLength {
		ti.hint = string([]rune(match)[utf8.RuneCountInString(text):])
	}
}

// Draw renders the field, the hint after the typed text and the counter
// at the right edge.
func (ti *TaskInput) Draw(screen tcell.Screen) {
	ti.InputField.Draw(screen)

	x, y, width, height := ti.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	counter := ti.Counter()
	counterX := x + width - tview.TaggedStringWidth(counter)
	tview.Print(screen, counter, x, y, width, tview.AlignRight, ti.hintColor)

	if ti.hint == "" {
		return
	}
	hintX := x + tview.TaggedStringWidth(ti.GetLabel()) + utf8.RuneCountInString(ti.GetText())
	style := tcell.StyleDefault.Foreground(ti.hintColor).Background(config.GetContentBackgroundColor())
	for i, r := range []rune(ti.hint) {
		if hintX+i >= counterX-1 {
			break
		}
		screen.SetContent(hintX+i, y, r, nil, style)
	}
}

// InputHandler accepts the hint on Tab and otherwise defers to the field.
func (ti *TaskInput) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return ti.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if event.Key() == tcell.KeyTab {
			if ti.hint != "" {
				ti.SetText(ti.GetText() + ti.hint)
			}
			return
		}
		if handler := ti.InputField.InputHandler(); handler != nil {
			handler(event, setFocus)
		}
		ti.updateHint()
	})
}
