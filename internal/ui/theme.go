package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// compactSizes shrinks the default text and padding so the item list and the
// layout preview fit side by side.
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNameText:           12,
	theme.SizeNameCaptionText:    9,
	theme.SizeNameHeadingText:    20,
	theme.SizeNameSubHeadingText: 15,
	theme.SizeNamePadding:        3,
	theme.SizeNameInnerPadding:   6,
	theme.SizeNameInlineIcon:     16,
}

// compactTheme is the default theme with compactSizes and an optional
// forced light or dark variant.
type compactTheme struct {
	fyne.Theme
	forced *fyne.ThemeVariant
}

// newCompactTheme builds the theme for a config theme name.
func newCompactTheme(name string) *compactTheme {
	t := &compactTheme{Theme: theme.DefaultTheme()}
	t.setName(name)
	return t
}

// setName applies "light" or "dark"; anything else follows the OS.
func (t *compactTheme) setName(name string) {
	var v fyne.ThemeVariant
	switch name {
	case "light":
		v = theme.VariantLight
	case "dark":
		v = theme.VariantDark
	default:
		t.forced = nil
		return
	}
	t.forced = &v
}

func (t *compactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced != nil {
		variant = *t.forced
	}
	return t.Theme.Color(name, variant)
}

func (t *compactTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := compactSizes[name]; ok {
		return s
	}
	return t.Theme.Size(name)
}
