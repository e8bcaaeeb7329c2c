package barchart

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Braille cells are 2 dots wide and 4 tall, so one text row holds four
// height units per column.
const brailleUnitsPerRow = 4

const brailleBase = 0x2800

var (
	// dot bits listed bottom to top
	brailleLeftBits  = [brailleUnitsPerRow]int{0x40, 0x04, 0x02, 0x01}
	brailleRightBits = [brailleUnitsPerRow]int{0x80, 0x20, 0x10, 0x08}
)

// valueToBrailleHeight scales value into height units (four per row).
func valueToBrailleHeight(value, maxValue float64, chartHeight int) int {
	if value <= 0 || maxValue <= 0 || chartHeight <= 0 {
		return 0
	}
	total := chartHeight * brailleUnitsPerRow
	units := int(math.Ceil(value / maxValue * float64(total)))
	return min(max(units, 1), total)
}

// brailleUnitsForRow is how many of units fall into text row (0 = bottom).
func brailleUnitsForRow(units, row int) int {
	rem := units - row*brailleUnitsPerRow
	return min(max(rem, 0), brailleUnitsPerRow)
}

// brailleColumnMask returns the dot bits for count filled dots in one column.
func brailleColumnMask(count int, right bool) int {
	bits := brailleLeftBits
	if right {
		bits = brailleRightBits
	}
	mask := 0
	for i := 0; i < count && i < brailleUnitsPerRow; i++ {
		mask |= bits[i]
	}
	return mask
}

// brailleRuneForCounts builds a braille rune from left and right fill counts.
func brailleRuneForCounts(left, right int) rune {
	return rune(brailleBase + brailleColumnMask(left, false) + brailleColumnMask(right, true))
}

func drawBarBraille(screen tcell.Screen, x, bottomY, width, chartHeight, units int, bar Bar, theme Theme) {
	rows := (units + brailleUnitsPerRow - 1) / brailleUnitsPerRow
	for row := 0; row < rows && row < chartHeight; row++ {
		n := brailleUnitsForRow(units, row)
		color := barFillColor(bar, row, rows, theme)
		style := tcell.StyleDefault.Foreground(color).Background(theme.BackgroundColor)
		r := brailleRuneForCounts(n, n)
		for col := 0; col < width; col++ {
			screen.SetContent(x+col, bottomY-row, r, nil, style)
		}
	}
}
