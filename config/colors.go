package config

// Color and style definitions for the UI: gradients, tcell colors, tview color tags.

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/tock/task"
)

// Gradient defines a start and end RGB color for a gradient transition
type Gradient struct {
	Start [3]int // R, G, B (0-255)
	End   [3]int // R, G, B (0-255)
}

// ColorConfig holds all color and style definitions per view
type ColorConfig struct {
	// Pane titles
	PaneTitleGradient Gradient
	PaneTitleText     tcell.Color
	PaneBorder        tcell.Color
	PaneFocusBorder   tcell.Color

	// Task list
	TaskSelectedBackground tcell.Color
	TaskSelectedText       tcell.Color
	TaskText               string // tview color string like "[#b8b8b8]"
	TaskCompletedText      string // tview color string like "[#606060]"
	TaskCategoryColor      string
	TaskRecurringColor     string
	TaskDueColor           string
	PriorityHighColor      string
	PriorityMediumColor    string
	PriorityLowColor       string
	EmptyListText          string

	// Input field (task entry, forms)
	InputFieldBackgroundColor tcell.Color
	InputFieldTextColor       tcell.Color
	InputLabelColor           tcell.Color
	InputCounterColor         string
	InputCounterLimitColor    string
	ErrorText                 string
	InputHintColor            tcell.Color

	// Pomodoro timer
	TimerWorkGradient  Gradient
	TimerBreakGradient Gradient
	TimerLabelColor    string
	TimerPausedColor   string

	// Analytics
	ProgressBarGradient Gradient
	ProgressTrackColor  tcell.Color
	ChartAxisColor      tcell.Color
	ChartLabelColor     tcell.Color
	ChartValueColor     tcell.Color
	ChartBarGradient    Gradient
	AnalyticsLabelColor string
	AnalyticsValueColor string
	ChipForeground      tcell.Color
	ChipBackground      tcell.Color

	// Header
	HeaderInfoLabel  string // tview color string like "[orange]"
	HeaderInfoValue  string // tview color string like "[white]"
	HeaderKeyBinding string // tview color string like "[yellow]"
	HeaderKeyText    string // tview color string like "[white]"
	HeaderViewKey    string
	HeaderViewText   string
	HeaderBorder     tcell.Color
}

// DefaultColors returns the default color configuration
func DefaultColors() *ColorConfig {
	return &ColorConfig{
		PaneTitleGradient: Gradient{
			Start: [3]int{25, 25, 112},  // Midnight Blue (center)
			End:   [3]int{65, 105, 225}, // Royal Blue (edges)
		},
		PaneTitleText:   tcell.PaletteColor(153), // Sky Blue (ANSI 153)
		PaneBorder:      tcell.ColorGray,
		PaneFocusBorder: tcell.ColorYellow,

		TaskSelectedBackground: tcell.PaletteColor(33),  // Blue (ANSI 33)
		TaskSelectedText:       tcell.PaletteColor(117), // Light Blue (ANSI 117)
		TaskText:               "[#b8b8b8]",
		TaskCompletedText:      "[#606060::s]", // strikethrough
		TaskCategoryColor:      "[#5a6f8f]",
		TaskRecurringColor:     "[#5fafff]",
		TaskDueColor:           "[#767676]",
		PriorityHighColor:      "[#ff5f5f]",
		PriorityMediumColor:    "[#ffaf00]",
		PriorityLowColor:       "[#5faf5f]",
		EmptyListText:          "[#767676]",

		InputFieldBackgroundColor: tcell.ColorDefault, // Transparent
		InputFieldTextColor:       tcell.ColorWhite,
		InputLabelColor:           tcell.ColorWhite,
		InputCounterColor:         "[#808080]",
		InputCounterLimitColor:    "[#ff5f5f]",
		ErrorText:                 "[#ff5f5f]",
		InputHintColor:            tcell.NewRGBColor(110, 110, 110),

		TimerWorkGradient: Gradient{
			Start: [3]int{255, 99, 71},  // Tomato
			End:   [3]int{255, 160, 122}, // Light Salmon
		},
		TimerBreakGradient: Gradient{
			Start: [3]int{46, 139, 87},   // Sea Green
			End:   [3]int{144, 238, 144}, // Light Green
		},
		TimerLabelColor:  "[#cccccc]",
		TimerPausedColor: "[#808080]",

		ProgressBarGradient: Gradient{
			Start: [3]int{134, 90, 214}, // Deep purple
			End:   [3]int{90, 170, 255}, // Blue/cyan
		},
		ProgressTrackColor: tcell.NewRGBColor(60, 60, 60),
		ChartAxisColor:     tcell.NewRGBColor(80, 80, 80),    // Dark gray
		ChartLabelColor:    tcell.NewRGBColor(200, 200, 200), // Light gray
		ChartValueColor:    tcell.NewRGBColor(235, 235, 235), // Very light gray
		ChartBarGradient: Gradient{
			Start: [3]int{134, 90, 214},
			End:   [3]int{90, 170, 255},
		},
		AnalyticsLabelColor: "[orange]",
		AnalyticsValueColor: "[#cccccc]",
		ChipForeground:      tcell.NewRGBColor(220, 220, 255),
		ChipBackground:      tcell.NewRGBColor(60, 60, 110),

		HeaderInfoLabel:  "[orange]",
		HeaderInfoValue:  "[#cccccc]",
		HeaderKeyBinding: "[yellow]",
		HeaderKeyText:    "[white]",
		HeaderViewKey:    "[#5fafff]",
		HeaderViewText:   "[#cccccc]",
		HeaderBorder:     tcell.NewRGBColor(70, 70, 70),
	}
}

// lightOverrides adjusts text colors that would vanish on a light background.
func lightOverrides(c *ColorConfig) {
	c.InputFieldTextColor = tcell.ColorBlack
	c.InputLabelColor = tcell.ColorBlack
	c.TaskText = "[#303030]"
	c.TaskCompletedText = "[#909090::s]"
	c.HeaderInfoValue = "[#303030]"
	c.HeaderKeyText = "[black]"
	c.HeaderViewText = "[#303030]"
	c.AnalyticsValueColor = "[#303030]"
	c.TimerLabelColor = "[#303030]"
	c.ChartLabelColor = tcell.NewRGBColor(60, 60, 60)
	c.ChartValueColor = tcell.NewRGBColor(20, 20, 20)
	c.ProgressTrackColor = tcell.NewRGBColor(210, 210, 210)
	c.InputHintColor = tcell.NewRGBColor(150, 150, 150)
	c.ChipForeground = tcell.NewRGBColor(30, 30, 80)
	c.ChipBackground = tcell.NewRGBColor(200, 210, 240)
}

var (
	colorsMu     sync.Mutex
	globalColors *ColorConfig
)

// Gradient gates, set at startup from the terminal's color depth.
var (
	UseGradients     = true
	UseWideGradients = true
)

// FallbackBarColor replaces chart gradients on terminals without truecolor.
var FallbackBarColor = tcell.NewRGBColor(90, 170, 255)

// FallbackTitleColor replaces the pane title gradient on narrow palettes.
var FallbackTitleColor = tcell.NewRGBColor(45, 65, 170)

// GetColors returns the global color configuration with theme-aware overrides
func GetColors() *ColorConfig {
	colorsMu.Lock()
	defer colorsMu.Unlock()
	if globalColors == nil {
		globalColors = DefaultColors()
		if GetEffectiveTheme() == ThemeLight {
			lightOverrides(globalColors)
		}
	}
	return globalColors
}

// SetColors sets a custom color configuration
func SetColors(colors *ColorConfig) {
	colorsMu.Lock()
	globalColors = colors
	colorsMu.Unlock()
}

// ResetColors drops the cached palette so the next GetColors call
// picks up the current theme.
func ResetColors() {
	SetColors(nil)
}

// PriorityColor returns the tview color tag for a task priority.
func (c *ColorConfig) PriorityColor(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return c.PriorityHighColor
	case task.PriorityLow:
		return c.PriorityLowColor
	default:
		return c.PriorityMediumColor
	}
}
