package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// noteTheme lets the note's background show through the text entry and keeps
// the text black regardless of the system variant.
type noteTheme struct {
	fyne.Theme
}

func newNoteTheme() *noteTheme {
	return &noteTheme{Theme: theme.DefaultTheme()}
}

func (t *noteTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameInputBackground, theme.ColorNameInputBorder, theme.ColorNameBackground:
		return color.Transparent
	case theme.ColorNameForeground:
		return color.Black
	case theme.ColorNamePrimary:
		return color.NRGBA{A: 0x80}
	case theme.ColorNamePlaceHolder:
		return color.NRGBA{A: 0x60}
	}
	return t.Theme.Color(name, variant)
}
