package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStateChanged MsgKind = iota
	MsgPlayerClosed
)

// stateChangedMsg is the constructor for [MsgStateChanged]
func stateChangedMsg(s models.PlaybackState) Msg {
	return Msg{kind: MsgStateChanged, data: s}
}

// playerClosedMsg is the constructor for [MsgPlayerClosed]
func playerClosedMsg() Msg {
	return Msg{kind: MsgPlayerClosed}
}
