// Package gradient blends RGB colors for titles, timer digits and bars.
package gradient

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/tock/config"
)

// InterpolateRGB blends from toward to by t, clamped to [0, 1].
func InterpolateRGB(from, to [3]int, t float64) [3]int {
	t = math.Max(0, math.Min(1, t))

	var out [3]int
	for i := range out {
		out[i] = int(math.Round(float64(from[i]) + t*float64(to[i]-from[i])))
	}
	return out
}

// InterpolateColor is InterpolateRGB over a config gradient.
func InterpolateColor(g config.Gradient, t float64) tcell.Color {
	return toColor(InterpolateRGB(g.Start, g.End, t))
}

// ClampRGB keeps a channel within [0, 255].
func ClampRGB(value int) int {
	return min(max(value, 0), 255)
}

// LightenRGB moves a color toward white by ratio.
func LightenRGB(rgb [3]int, ratio float64) [3]int {
	var out [3]int
	for i, c := range rgb {
		out[i] = ClampRGB(c + int(math.Round(float64(255-c)*ratio)))
	}
	return out
}

// DarkenRGB moves a color toward black by ratio.
func DarkenRGB(rgb [3]int, ratio float64) [3]int {
	var out [3]int
	for i, c := range rgb {
		out[i] = ClampRGB(int(math.Round(float64(c) * (1 - ratio))))
	}
	return out
}

// Dim darkens both ends of a gradient. The timer uses it while paused.
func Dim(g config.Gradient, ratio float64) config.Gradient {
	return config.Gradient{Start: DarkenRGB(g.Start, ratio), End: DarkenRGB(g.End, ratio)}
}

// RenderGradientText colors text rune by rune from g.Start to g.End using
// tview color tags.
func RenderGradientText(text string, g config.Gradient) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		fmt.Fprintf(&b, "%s%c", colorTag(InterpolateRGB(g.Start, g.End, t)), r)
	}
	return b.String()
}

// RenderAdaptiveGradientText renders a gradient, or a single fallback color
// when config.UseGradients is off.
func RenderAdaptiveGradientText(text string, g config.Gradient, fallback tcell.Color) string {
	if text == "" {
		return ""
	}
	if !config.UseGradients {
		r, gr, b := fallback.RGB()
		return colorTag([3]int{int(r), int(gr), int(b)}) + text
	}
	return RenderGradientText(text, g)
}

// ProgressBar renders a width-cell bar with fraction of it filled. Filled
// cells follow the gradient and the rest use the track color.
func ProgressBar(width int, fraction float64, g config.Gradient, track tcell.Color) string {
	if width <= 0 {
		return ""
	}
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))

	var b strings.Builder
	for i := 0; i < filled; i++ {
		rgb := g.End
		if config.UseGradients && width > 1 {
			rgb = InterpolateRGB(g.Start, g.End, float64(i)/float64(width-1))
		}
		b.WriteString(colorTag(rgb))
		b.WriteRune('█')
	}
	if filled < width {
		r, gr, bl := track.RGB()
		b.WriteString(colorTag([3]int{int(r), int(gr), int(bl)}))
		b.WriteString(strings.Repeat("░", width-filled))
	}
	b.WriteString("[-]")
	return b.String()
}

func colorTag(rgb [3]int) string {
	return fmt.Sprintf("[#%02x%02x%02x]", rgb[0], rgb[1], rgb[2])
}

func toColor(rgb [3]int) tcell.Color {
	//nolint:gosec // G115: RGB values are 0-255
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}
