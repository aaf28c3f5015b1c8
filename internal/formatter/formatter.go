// package formatter renders catalog and playback data as tables, CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/desertthunder/tunes/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderCatalogTable writes one row per track, grouped under its category name.
func RenderCatalogTable(w io.Writer, categories []models.Category) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "ID", "Title", "Artist", "Duration"})

	for i, c := range categories {
		if i > 0 {
			t.AppendSeparator()
		}
		if len(c.Tracks) == 0 {
			t.AppendRow(table.Row{c.Name, "", "(empty)", "", ""})
			continue
		}
		for j, track := range c.Tracks {
			name := ""
			if j == 0 {
				name = c.Name
			}
			t.AppendRow(table.Row{name, track.ID, track.Title, track.Artist, track.Duration})
		}
	}

	t.Render()
}

// RenderTracksTable writes a flat track table, e.g. search results.
func RenderTracksTable(w io.Writer, tracks []models.Track) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Title", "Artist", "Duration"})

	for i, track := range tracks {
		t.AppendRow(table.Row{i + 1, track.ID, track.Title, track.Artist, track.Duration})
	}
	t.AppendFooter(table.Row{"", "", "", "Tracks", len(tracks)})

	t.Render()
}

// ExportToCSV converts tracks to CSV with columns: ID, Title, Artist, Duration, Cover
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration", "Cover"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{track.ID, track.Title, track.Artist, track.Duration, track.Cover}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders each category as a section with a numbered track list
func ExportToMarkdown(categories []models.Category) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Catalog\n")
	for _, c := range categories {
		fmt.Fprintf(&buf, "\n## %s\n\n", c.Name)
		if len(c.Tracks) == 0 {
			buf.WriteString("_No tracks._\n")
			continue
		}
		for i, track := range c.Tracks {
			fmt.Fprintf(&buf, "%d. %s - %s [%s]\n", i+1, track.Artist, track.Title, track.Duration)
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts categories to plain text
func ExportToText(categories []models.Category) ([]byte, error) {
	var buf bytes.Buffer

	for i, c := range categories {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%s (%d)\n", c.Name, len(c.Tracks))
		for j, track := range c.Tracks {
			fmt.Fprintf(&buf, "%d. %s - %s\n", j+1, track.Artist, track.Title)
		}
	}

	return buf.Bytes(), nil
}

// ProgressBar draws a fixed-width text bar for a 0-100 percentage.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(0, math.Min(100, percent))

	filled := int(math.Round(percent / 100 * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// NowPlaying renders a one-line summary of the playback state.
//
// With no track it reads "Nothing playing"; otherwise it shows the status, track, position and a bar.
func NowPlaying(s models.PlaybackState, barWidth int) string {
	if !s.HasTrack() {
		return fmt.Sprintf("Nothing playing  %s / %s", s.ElapsedString(), s.TotalString())
	}
	return fmt.Sprintf("%-7s %s - %s  %s / %s %s %5.1f%%  vol %d",
		s.Status,
		s.Track.Title,
		s.Track.Artist,
		s.ElapsedString(),
		s.TotalString(),
		ProgressBar(s.Progress, barWidth),
		s.Progress,
		s.Volume,
	)
}
