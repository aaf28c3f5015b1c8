package models

import "github.com/desertthunder/tunes/internal/shared"

// Status is the transport status.
type Status string

const (
	// StatusIdle means no track has been selected
	StatusIdle Status = "Idle"

	// StatusPlaying means the selected track is advancing
	StatusPlaying Status = "Playing"

	// StatusPaused means the selected track is held at its position
	StatusPaused Status = "Paused"

	// StatusStopped means the selected track reached its end and was rewound
	StatusStopped Status = "Stopped"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// HasTrack reports whether the status implies a selected track.
func (s Status) HasTrack() bool {
	return s == StatusPlaying || s == StatusPaused || s == StatusStopped
}

// PlaybackState is a snapshot of the transport.
type PlaybackState struct {
	Track    *Track  `json:"track,omitempty"`
	Status   Status  `json:"status"`
	Playing  bool    `json:"playing"`
	Elapsed  int     `json:"elapsed"`  // seconds
	Total    int     `json:"total"`    // seconds
	Progress float64 `json:"progress"` // 0-100
	Volume   int     `json:"volume"`   // 0-100
}

// HasTrack returns true if a track is selected.
func (s PlaybackState) HasTrack() bool {
	return s.Track != nil
}

// ElapsedString renders the elapsed time as "M:SS".
func (s PlaybackState) ElapsedString() string {
	return shared.FormatDuration(s.Elapsed)
}

// TotalString renders the track length as "M:SS", or "0:00" with no track.
func (s PlaybackState) TotalString() string {
	if s.Track == nil {
		return "0:00"
	}
	return shared.FormatDuration(s.Total)
}
