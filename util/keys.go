// Package util holds small helpers shared by the views.
package util

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyEscape:    "Esc",
	tcell.KeyTab:       "Tab",
	tcell.KeyBacktab:   "S-Tab",
	tcell.KeyUp:        "↑",
	tcell.KeyDown:      "↓",
	tcell.KeyLeft:      "←",
	tcell.KeyRight:     "→",
	tcell.KeyBackspace: "Bksp",
	tcell.KeyDelete:    "Del",
}

// FormatKeyBinding renders a key for the header: "a", "Enter", "S-↑",
// "C-v", "F10". Space is shown as "Space".
func FormatKeyBinding(key tcell.Key, r rune, mod tcell.ModMask) string {
	// Tab, Enter and Backspace share codes with Ctrl-I, Ctrl-M and Ctrl-H,
	// so named keys win over the ctrl range.
	name, named := keyNames[key]
	switch {
	case named:
	case key == tcell.KeyRune && r == ' ':
		name = "Space"
	case key == tcell.KeyRune:
		name = string(r)
	case key >= tcell.KeyF1 && key <= tcell.KeyF12:
		name = "F" + strconv.Itoa(int(key-tcell.KeyF1)+1)
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return "C-" + string(rune('a'+key-tcell.KeyCtrlA))
	default:
		name = tcell.KeyNames[key]
	}

	var prefix strings.Builder
	if mod&tcell.ModCtrl != 0 {
		prefix.WriteString("C-")
	}
	if mod&tcell.ModAlt != 0 {
		prefix.WriteString("M-")
	}
	if mod&tcell.ModShift != 0 && key != tcell.KeyRune {
		prefix.WriteString("S-")
	}
	return prefix.String() + name
}
