package barchart

import (
	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/util/gradient"
)

func drawBarSolid(screen tcell.Screen, x, bottomY, width, height int, bar Bar, theme Theme) {
	for row := 0; row < height; row++ {
		style := tcell.StyleDefault.Foreground(barFillColor(bar, row, height, theme)).Background(theme.BackgroundColor)
		for col := 0; col < width; col++ {
			screen.SetContent(x+col, bottomY-row, theme.BarChar, nil, style)
		}
	}
}

func drawBarDots(screen tcell.Screen, x, bottomY, width, height int, bar Bar, theme Theme) {
	for row := 0; row < height; row++ {
		if theme.DotRowGap > 0 && row%(theme.DotRowGap+1) != 0 {
			continue
		}
		style := tcell.StyleDefault.Foreground(barFillColor(bar, row, height, theme)).Background(theme.BackgroundColor)
		for col := 0; col < width; col++ {
			if theme.DotColGap > 0 && col%(theme.DotColGap+1) != 0 {
				continue
			}
			screen.SetContent(x+col, bottomY-row, theme.DotChar, nil, style)
		}
	}
}

// barFillColor picks the color of one row of a bar (0 = bottom).
func barFillColor(bar Bar, row, total int, theme Theme) tcell.Color {
	if bar.UseColor {
		return bar.Color
	}
	if total <= 1 {
		return theme.BarColor
	}
	if !config.UseGradients {
		return config.FallbackBarColor
	}

	t := float64(row) / float64(total-1)
	rgb := gradient.InterpolateRGB(theme.BarGradientFrom, theme.BarGradientTo, t)
	//nolint:gosec // G115: RGB values are 0-255
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}
