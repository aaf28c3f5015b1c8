package ui

import (
	"fmt"

	"github.com/desertthunder/tunes/internal/models"
)

// trackRow is one selectable line of the home view.
type trackRow struct {
	category string
	first    bool // first row of its category
	track    models.Track
}

// flatten lays categories out as rows; empty categories produce no rows.
func flatten(categories []models.Category) []trackRow {
	var rows []trackRow
	for _, c := range categories {
		for i, t := range c.Tracks {
			rows = append(rows, trackRow{category: c.Name, first: i == 0, track: t})
		}
	}
	return rows
}

// renderTrack draws a track line with the cursor and now-playing markers.
func renderTrack(t models.Track, selected bool, current *models.Track) string {
	cursor := "  "
	if selected {
		cursor = "› "
	}

	marker := "  "
	if current != nil && current.ID == t.ID {
		marker = "♪ "
	}

	line := fmt.Sprintf("%s%s%-28s %-20s %s", cursor, marker, t.Title, t.Artist, t.Duration)
	switch {
	case selected:
		return styles.selected.Render(line)
	case marker != "  ":
		return styles.playing.Render(line)
	default:
		return line
	}
}

// moveCursor steps i by delta within [0, n).
func moveCursor(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(n-1, i+delta))
}
