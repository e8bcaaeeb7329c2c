package sysinfo

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTheme(t *testing.T) {
	tests := []struct {
		colorFGBG string
		want      string
	}{
		{"15;0", ThemeDark},
		{"0;15", ThemeLight},
		{"0;8", ThemeLight},
		{"15;7", ThemeDark},
		{"15;0;8", ThemeLight},
		{"", ThemeUnknown},
		{"15", ThemeUnknown},
		{"15;x", ThemeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectTheme(tt.colorFGBG), "COLORFGBG=%q", tt.colorFGBG)
	}
}

func TestColorCountFromTerminfo(t *testing.T) {
	assert.Equal(t, truecolorCount, colorCountFromTerminfo("truecolor", ""))
	assert.Equal(t, truecolorCount, colorCountFromTerminfo("24bit", "dumb"))
	assert.Zero(t, colorCountFromTerminfo("", ""))
	assert.Zero(t, colorCountFromTerminfo("", "nonexistent-terminal-type"))
}

func TestClassifyColors(t *testing.T) {
	tests := []struct {
		colors int
		want   string
	}{
		{truecolorCount, "truecolor"},
		{256, "256-color"},
		{88, "16-color"},
		{8, "monochrome"},
		{0, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyColors(tt.colors), "colors=%d", tt.colors)
	}
}

func TestGradientSupport(t *testing.T) {
	tests := []struct {
		name          string
		colors        int
		threshold     int
		wantGradients bool
		wantWide      bool
	}{
		{"truecolor", truecolorCount, 256, true, true},
		{"256 colors", 256, 256, true, false},
		{"below threshold", 16, 256, false, false},
		{"low threshold", 16, 8, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &SystemInfo{ColorCount: tt.colors}
			gradients, wide := info.GradientSupport(tt.threshold)
			assert.Equal(t, tt.wantGradients, gradients)
			assert.Equal(t, tt.wantWide, wide)
		})
	}
}

func TestNewSystemInfo(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("COLORFGBG", "0;15")

	info := NewSystemInfo()
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Architecture)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, ThemeLight, info.DetectedTheme)
	assert.Equal(t, "truecolor", info.ColorSupport)
	assert.NotEmpty(t, info.OSVersion)
}

func TestNewSystemInfoWithScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(100, 30)

	info := NewSystemInfoWithScreen(screen)
	assert.Equal(t, 100, info.TerminalWidth)
	assert.Equal(t, 30, info.TerminalHeight)
	assert.Equal(t, screen.Colors(), info.ColorCount)
	assert.Contains(t, info.String(), "Dimensions:    100x30")
}

func TestSystemInfoReport(t *testing.T) {
	info := &SystemInfo{
		OS:           "linux",
		Architecture: "amd64",
		OSVersion:    "Debian GNU/Linux 12",
		ColorSupport: "256-color",
		ColorCount:   256,
		Backend:      "sqlite",
		DataDir:      "/home/u/.local/share/tock",
	}

	out := info.String()
	assert.Contains(t, out, "OS:            linux/amd64 (Debian GNU/Linux 12)")
	assert.Contains(t, out, "Color support: 256-color (256 colors)")
	assert.Contains(t, out, "Dimensions:    N/A")
	assert.Contains(t, out, "Backend:       sqlite")

	m := info.ToMap()
	assert.Equal(t, "sqlite", m["backend"])
	assert.Equal(t, 256, m["color_count"])
	assert.Len(t, m, 17)
}

func TestParseOSRelease(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	require.NoError(t, os.WriteFile(path, []byte("NAME=\"Fedora\"\nPRETTY_NAME=\"Fedora Linux 40\"\n"), 0o644))

	assert.Equal(t, "Fedora Linux 40", parseOSRelease(path))
	assert.Equal(t, "unknown", parseOSRelease(filepath.Join(dir, "missing")))
}

func TestSafePathRecovers(t *testing.T) {
	assert.Empty(t, safePath(func() string { panic("paths not initialized") }))
	assert.Equal(t, "/x", safePath(func() string { return "/x" }))
}
