package models

import (
	"strings"

	"github.com/desertthunder/tunes/internal/shared"
)

// DefaultCover is shown for tracks without cover art.
const DefaultCover = "https://cdn-icons-png.flaticon.com/512/557/557098.png"

// Track is a single playable catalog entry.
type Track struct {
	ID       string `toml:"id" json:"id"`
	Title    string `toml:"title" json:"title"`
	Artist   string `toml:"artist" json:"artist"`
	Duration string `toml:"duration" json:"duration"` // "M:SS"
	Cover    string `toml:"cover,omitempty" json:"cover,omitempty"`
}

// Seconds returns the total length of the track in whole seconds.
func (t Track) Seconds() (int, error) {
	return shared.ParseDuration(t.Duration)
}

// CoverURL returns the cover reference, falling back to [DefaultCover] when blank.
func (t Track) CoverURL() string {
	return t.CoverOr(DefaultCover)
}

// CoverOr returns the trimmed cover reference, or fallback when it is blank.
func (t Track) CoverOr(fallback string) string {
	if c := strings.TrimSpace(t.Cover); c != "" {
		return c
	}
	return fallback
}

// Category is a named display group of tracks.
type Category struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}
