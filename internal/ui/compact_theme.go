package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Status colors shared by the progress bars and row labels
var (
	colorSucceeded = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	colorFailed    = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	colorHalted    = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	colorUploading = color.RGBA{R: 25, G: 118, B: 210, A: 255}
)

// compactSizes shrinks paddings and text so long upload lists stay readable
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:        3,
	theme.SizeNameInnerPadding:   6,
	theme.SizeNameLineSpacing:    2,
	theme.SizeNameScrollBar:      12,
	theme.SizeNameText:           13,
	theme.SizeNameHeadingText:    16,
	theme.SizeNameSubHeadingText: 13,
	theme.SizeNameCaptionText:    10,
	theme.SizeNameInputRadius:    3,
}

// CompactTheme is the application theme: the base theme with smaller sizes
// and fixed status colors
type CompactTheme struct {
	base fyne.Theme
}

// NewCompactTheme creates a compact theme on top of the default theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{base: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return colorSucceeded
	case theme.ColorNameError:
		return colorFailed
	case theme.ColorNameWarning:
		return colorHalted
	case theme.ColorNamePrimary:
		return colorUploading
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return t.base.Size(name)
}
