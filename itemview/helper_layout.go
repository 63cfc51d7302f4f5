package itemview

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const iconCellWidth = defaultIconSize * 1.8

// DefaultItemSize measures the theme text to size a cell for layout.
// It needs a running fyne app.
func DefaultItemSize(layout ViewLayout) fyne.Size {
	// We use "A" as a representative character for line height
	s, _ := fyne.CurrentApp().Driver().RenderedTextSize("A", theme.TextSize(), fyne.TextStyle{}, nil)
	lineHeight := s.Height

	if layout != ListView {
		// Icon plus up to three lines of label
		return fyne.NewSize(iconCellWidth, defaultIconSize+lineHeight*3.5+theme.Padding()*3.0)
	}

	// Width is taken from the viewport.
	return fyne.NewSize(0, fyne.Max(float32(defaultInlineIconSize), lineHeight+theme.Padding()))
}
