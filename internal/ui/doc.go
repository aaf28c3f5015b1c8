// Package ui implements an interactive terminal player using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [HomeView] : Browse the catalog by category and pick a track
//  2. [SearchView] : Filter the catalog by title or artist as you type
//
// A footer under both views shows the current track, a progress bar, elapsed and total time and the volume.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Playback state flows in through a [Player] subscription; each snapshot becomes a message and the model waits for the next.
// Quitting closes the player so no scheduler outlives the program.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, space, ←/→, +/-, /, esc, q) with help from charmbracelet/bubbles/help.
package ui
