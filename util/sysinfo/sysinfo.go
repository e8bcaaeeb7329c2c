// Package sysinfo reports the terminal and environment tock runs in.
package sysinfo

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/tock/config"
)

const (
	ThemeDark    = "dark"
	ThemeLight   = "light"
	ThemeUnknown = "unknown"

	truecolorCount = 1 << 24
)

// SystemInfo describes the client environment: OS, terminal capabilities
// and the paths tock resolved.
type SystemInfo struct {
	OS           string
	Architecture string
	OSVersion    string
	GoVersion    string

	TermType      string // $TERM
	ColorTerm     string // $COLORTERM
	ColorFGBG     string // $COLORFGBG
	DetectedTheme string

	TerminalWidth  int
	TerminalHeight int

	ColorSupport string // monochrome, 16-color, 256-color, truecolor
	ColorCount   int

	Shell string

	ConfigDir string
	DataDir   string
	LogFile   string
	Backend   string
}

// NewSystemInfo collects everything that does not need a running screen.
// Color support comes from $COLORTERM and terminfo.
func NewSystemInfo() *SystemInfo {
	info := &SystemInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		OSVersion:    getOSVersion(),
		GoVersion:    runtime.Version(),

		TermType:  os.Getenv("TERM"),
		ColorTerm: os.Getenv("COLORTERM"),
		ColorFGBG: os.Getenv("COLORFGBG"),
		Shell:     os.Getenv("SHELL"),
	}
	info.DetectedTheme = detectTheme(info.ColorFGBG)
	info.ColorCount = colorCountFromTerminfo(info.ColorTerm, info.TermType)
	info.ColorSupport = classifyColors(info.ColorCount)

	info.ConfigDir = safePath(config.GetConfigDir)
	info.LogFile = safePath(config.GetLogFile)
	info.DataDir = safePath(config.GetDataDir)
	info.Backend = config.GetBackend()
	return info
}

// NewSystemInfoWithScreen adds dimensions and the color count reported by
// an initialized screen.
func NewSystemInfoWithScreen(screen tcell.Screen) *SystemInfo {
	info := NewSystemInfo()
	info.TerminalWidth, info.TerminalHeight = screen.Size()
	info.ColorCount = screen.Colors()
	info.ColorSupport = classifyColors(info.ColorCount)
	return info
}

// GradientSupport reports whether gradients should render at all, and
// whether wide (per-cell) gradients should. Wide gradients need truecolor.
func (s *SystemInfo) GradientSupport(threshold int) (gradients, wide bool) {
	gradients = s.ColorCount >= threshold
	wide = gradients && s.ColorCount >= truecolorCount
	return gradients, wide
}

// ToMap returns the fields keyed for structured output.
func (s *SystemInfo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"os":              s.OS,
		"architecture":    s.Architecture,
		"os_version":      s.OSVersion,
		"go_version":      s.GoVersion,
		"term_type":       s.TermType,
		"colorterm":       s.ColorTerm,
		"colorfgbg":       s.ColorFGBG,
		"detected_theme":  s.DetectedTheme,
		"terminal_width":  s.TerminalWidth,
		"terminal_height": s.TerminalHeight,
		"color_support":   s.ColorSupport,
		"color_count":     s.ColorCount,
		"shell":           s.Shell,
		"config_dir":      s.ConfigDir,
		"data_dir":        s.DataDir,
		"log_file":        s.LogFile,
		"backend":         s.Backend,
	}
}

// String renders a report for `tock version --verbose`.
func (s *SystemInfo) String() string {
	var b strings.Builder

	b.WriteString("System\n------\n")
	fmt.Fprintf(&b, "OS:            %s/%s (%s)\n", s.OS, s.Architecture, s.OSVersion)
	fmt.Fprintf(&b, "Go:            %s\n", s.GoVersion)
	fmt.Fprintf(&b, "Shell:         %s\n\n", s.Shell)

	b.WriteString("Terminal\n--------\n")
	fmt.Fprintf(&b, "TERM:          %s\n", s.TermType)
	fmt.Fprintf(&b, "COLORTERM:     %s\n", s.ColorTerm)
	fmt.Fprintf(&b, "Theme:         %s\n", s.DetectedTheme)
	fmt.Fprintf(&b, "Color support: %s (%d colors)\n", s.ColorSupport, s.ColorCount)
	if s.TerminalWidth > 0 && s.TerminalHeight > 0 {
		fmt.Fprintf(&b, "Dimensions:    %dx%d\n\n", s.TerminalWidth, s.TerminalHeight)
	} else {
		b.WriteString("Dimensions:    N/A\n\n")
	}

	b.WriteString("Storage\n-------\n")
	fmt.Fprintf(&b, "Backend:       %s\n", s.Backend)
	fmt.Fprintf(&b, "Data dir:      %s\n", s.DataDir)
	fmt.Fprintf(&b, "Config dir:    %s\n", s.ConfigDir)
	fmt.Fprintf(&b, "Log file:      %s\n", s.LogFile)
	return b.String()
}

// detectTheme reads the background index from $COLORFGBG ("fg;bg", bg
// last). 0-7 are dark backgrounds, 8 and up are light.
func detectTheme(colorFGBG string) string {
	parts := strings.Split(colorFGBG, ";")
	if len(parts) < 2 {
		return ThemeUnknown
	}
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return ThemeUnknown
	}
	if bg >= 8 {
		return ThemeLight
	}
	return ThemeDark
}

// colorCountFromTerminfo trusts $COLORTERM for truecolor, then asks terminfo
// about $TERM. Unknown terminals report 0.
func colorCountFromTerminfo(colorTerm, term string) int {
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return truecolorCount
	}
	if term == "" {
		return 0
	}
	ti, err := tcell.LookupTerminfo(term)
	if err != nil || ti == nil {
		return 0
	}
	return ti.Colors
}

func classifyColors(colors int) string {
	switch {
	case colors >= truecolorCount:
		return "truecolor"
	case colors >= 256:
		return "256-color"
	case colors >= 16:
		return "16-color"
	case colors >= 2:
		return "monochrome"
	default:
		return "unknown"
	}
}

func getOSVersion() string {
	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("sw_vers", "-productVersion").Output()
		if err != nil {
			return "unknown"
		}
		return strings.TrimSpace(string(out))
	case "linux":
		return parseOSRelease("/etc/os-release")
	default:
		return "unknown"
	}
}

// parseOSRelease returns PRETTY_NAME from an os-release file.
func parseOSRelease(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"`)
		}
	}
	return "unknown"
}

// safePath calls a config path getter that panics before InitPaths.
func safePath(get func() string) (p string) {
	defer func() {
		if recover() != nil {
			p = ""
		}
	}()
	return get()
}
