package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/util/gradient"
)

// BigClockHeight is the row count of the large clock font
const BigClockHeight = 5

var bigGlyphs = map[rune][BigClockHeight]string{
	'0': {"####", "#  #", "#  #", "#  #", "####"},
	'1': {"  # ", "  # ", "  # ", "  # ", "  # "},
	'2': {"####", "   #", "####", "#   ", "####"},
	'3': {"####", "   #", "####", "   #", "####"},
	'4': {"#  #", "#  #", "####", "   #", "   #"},
	'5': {"####", "#   ", "####", "   #", "####"},
	'6': {"####", "#   ", "####", "#  #", "####"},
	'7': {"####", "   #", "   #", "   #", "   #"},
	'8': {"####", "#  #", "####", "#  #", "####"},
	'9': {"####", "#  #", "####", "   #", "####"},
	':': {" ", "#", " ", "#", " "},
}

var blankGlyph = [BigClockHeight]string{"    ", "    ", "    ", "    ", "    "}

// BigClock draws "MM:SS" in a block font colored left to right along a
// gradient.
type BigClock struct {
	*tview.Box
	text     string
	gradient config.Gradient
	dimmed   bool
}

// NewBigClock creates an empty clock
func NewBigClock() *BigClock {
	return &BigClock{Box: tview.NewBox()}
}

// SetText sets the clock face; unknown runes render as blanks
func (bc *BigClock) SetText(text string) *BigClock {
	bc.text = text
	return bc
}

// SetGradient sets the glyph colors
func (bc *BigClock) SetGradient(g config.Gradient) *BigClock {
	bc.gradient = g
	return bc
}

// SetDimmed darkens the glyphs, used while paused
func (bc *BigClock) SetDimmed(dimmed bool) *BigClock {
	bc.dimmed = dimmed
	return bc
}

// renderBigRows lays the glyphs out as plain rows, one cell gap between glyphs.
func renderBigRows(text string) [BigClockHeight][]rune {
	var rows [BigClockHeight][]rune
	for i, r := range []rune(text) {
		glyph, ok := bigGlyphs[r]
		if !ok {
			glyph = blankGlyph
		}
		for row := range rows {
			if i > 0 {
				rows[row] = append(rows[row], ' ')
			}
			rows[row] = append(rows[row], []rune(glyph[row])...)
		}
	}
	return rows
}

// Draw centers the clock in the box
func (bc *BigClock) Draw(screen tcell.Screen) {
	bc.DrawForSubclass(screen, bc)

	x, y, width, height := bc.GetInnerRect()
	rows := renderBigRows(bc.text)
	textWidth := len(rows[0])
	if width <= 0 || height <= 0 || textWidth == 0 {
		return
	}

	g := bc.gradient
	if bc.dimmed {
		g = gradient.Dim(g, 0.5)
	}
	offsetX := x + max(0, (width-textWidth)/2)
	offsetY := y + max(0, (height-BigClockHeight)/2)

	for row := 0; row < BigClockHeight && row < height; row++ {
		for col, r := range rows[row] {
			if col >= width {
				break
			}
			if r == ' ' {
				continue
			}
			color := gradient.InterpolateColor(g, 0)
			if config.UseGradients && textWidth > 1 {
				color = gradient.InterpolateColor(g, float64(col)/float64(textWidth-1))
			}
			style := tcell.StyleDefault.Foreground(color).Background(config.GetContentBackgroundColor())
			screen.SetContent(offsetX+col, offsetY+row, '█', nil, style)
		}
	}
}
