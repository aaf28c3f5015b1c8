package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#1DB954", "#FFFFFF", "#FF5F5F", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	heading  lipgloss.Style
	selected lipgloss.Style
	playing  lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	muted    lipgloss.Style
	footer   lipgloss.Style
}

// NewPalette builds the stylesheet from an accent, text, error, warning and muted color.
func NewPalette(accent, text, e, w, muted string) *Palette {
	return &Palette{
		title:    NewBold(accent).MarginBottom(1),
		heading:  NewBold(text),
		selected: NewBold(accent),
		playing:  NewStyle(accent),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(muted),
		muted:    NewStyle(muted),
		footer: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color(muted)).
			PaddingTop(1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
