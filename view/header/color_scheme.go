package header

import "github.com/boolean-maybe/tock/config"

// ColorScheme is the key/label color pair of one header section.
type ColorScheme struct {
	KeyColor   string
	LabelColor string
}

func getColorScheme(colorType int) ColorScheme {
	colors := config.GetColors()
	if colorType == colorTypeView {
		return ColorScheme{KeyColor: colors.HeaderViewKey, LabelColor: colors.HeaderViewText}
	}
	return ColorScheme{KeyColor: colors.HeaderKeyBinding, LabelColor: colors.HeaderKeyText}
}
