package component

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/tock/config"
)

// ChipList draws words as padded colored chips, wrapping at chip
// boundaries. Chips are never split; one wider than the line is truncated.
type ChipList struct {
	*tview.Box
	words   []string
	fgColor tcell.Color
	bgColor tcell.Color
}

// NewChipList creates a chip list colored from the current palette.
func NewChipList(words []string) *ChipList {
	colors := config.GetColors()
	return &ChipList{
		Box:     tview.NewBox(),
		words:   words,
		fgColor: colors.ChipForeground,
		bgColor: colors.ChipBackground,
	}
}

// SetWords replaces the chips.
func (c *ChipList) SetWords(words []string) *ChipList {
	c.words = words
	return c
}

// GetWords returns the chips.
func (c *ChipList) GetWords() []string {
	return c.words
}

// SetColors sets the chip colors.
func (c *ChipList) SetColors(fg, bg tcell.Color) *ChipList {
	c.fgColor = fg
	c.bgColor = bg
	return c
}

// chip is the rendered form of a word: one cell of padding either side.
func chip(word string) []rune {
	return []rune(" " + word + " ")
}

// Draw renders the chips separated by a single blank cell.
func (c *ChipList) Draw(screen tcell.Screen) {
	c.DrawForSubclass(screen, c)
	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(c.fgColor).Background(c.bgColor)
	lineX, lineY := x, y
	for _, word := range c.words {
		runes := chip(word)
		if lineX > x && lineX+len(runes) > x+width {
			lineX = x
			lineY++
			if lineY >= y+height {
				return
			}
		}
		if len(runes) > width {
			runes = runes[:width]
		}
		for i, r := range runes {
			screen.SetContent(lineX+i, lineY, r, nil, style)
		}
		lineX += len(runes) + 1
	}
}

// WrapChips returns the chip lines Draw would produce for width, with
// chips joined by a single space.
func (c *ChipList) WrapChips(width int) []string {
	if width <= 0 {
		return []string{}
	}

	var lines []string
	var line []rune
	for _, word := range c.words {
		runes := chip(word)
		if len(line) > 0 && len(line)+1+len(runes) > width {
			lines = append(lines, string(line))
			line = nil
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, runes...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
