package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

const (
	seekStep   = 5 // percent
	volumeStep = 5
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	SearchView
)

// Player is the transport the TUI drives. [transport.Machine] satisfies it.
type Player interface {
	SelectTrack(models.Track) error
	Toggle()
	Seek(percent float64)
	SetVolume(v int)
	State() models.PlaybackState
	Subscribe() (<-chan models.PlaybackState, func())
	Close()
}

// Model represents the TUI application state.
type Model struct {
	view    ViewState
	player  Player
	catalog *catalog.Catalog
	logger  *log.Logger

	rows    []trackRow
	cursor  int
	results []models.Track
	found   int // cursor within results

	input textinput.Model
	bar   progress.Model
	help  help.Model
	keys  keyMap

	state       models.PlaybackState
	updates     <-chan models.PlaybackState
	unsubscribe func()

	err    error
	width  int
	height int
	closed bool
}

// NewModel creates a TUI over the catalog and subscribes to player updates.
func NewModel(player Player, c *catalog.Catalog, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	input := textinput.New()
	input.Placeholder = "Search by title or artist"
	input.Prompt = "/ "
	input.CharLimit = 64

	updates, unsubscribe := player.Subscribe()

	return &Model{
		view:        HomeView,
		player:      player,
		catalog:     c,
		logger:      shared.WithLogger(logger, "component", "ui"),
		rows:        flatten(c.Categories()),
		input:       input,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:        help.New(),
		keys:        newKeyMap(),
		state:       player.State(),
		updates:     updates,
		unsubscribe: unsubscribe,
	}
}

// Init starts listening for transport updates.
func (m *Model) Init() tea.Cmd {
	return m.waitForState()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, msg.Width-24)
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-4)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		default:
			return m.handleHomeKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgStateChanged:
			m.state = msg.data.(models.PlaybackState)
			return m, m.waitForState()
		case MsgPlayerClosed:
			m.updates = nil
			return m, nil
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SearchView:
		body = m.renderSearch()
	default:
		body = m.renderHome()
	}
	return fmt.Sprintf("%s\n%s", body, m.renderFooter())
}

// State returns the last playback state the model has seen.
func (m *Model) State() models.PlaybackState { return m.state }

// CurrentView returns the active view.
func (m *Model) CurrentView() ViewState { return m.view }

// Close releases the subscription and shuts down the player. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.unsubscribe()
	m.player.Close()
	m.logger.Debug("player closed")
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.cursor = moveCursor(m.cursor, -1, len(m.rows))
	case key.Matches(msg, m.keys.down):
		m.cursor = moveCursor(m.cursor, 1, len(m.rows))
	case key.Matches(msg, m.keys.play):
		if len(m.rows) > 0 {
			m.play(m.rows[m.cursor].track)
		}
	case key.Matches(msg, m.keys.search):
		return m, m.openSearch()
	default:
		m.handleTransportKeys(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQuit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.search):
		m.closeSearch()
		return m, nil
	case msg.Type == tea.KeyUp:
		m.found = moveCursor(m.found, -1, len(m.results))
		return m, nil
	case msg.Type == tea.KeyDown:
		m.found = moveCursor(m.found, 1, len(m.results))
		return m, nil
	case key.Matches(msg, m.keys.play):
		if len(m.results) > 0 {
			m.play(m.results[m.found])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshResults()
	return m, cmd
}

// handleTransportKeys maps playback keys onto the player.
func (m *Model) handleTransportKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		m.player.Toggle()
	case key.Matches(msg, m.keys.rewind):
		m.player.Seek(m.player.State().Progress - seekStep)
	case key.Matches(msg, m.keys.forward):
		m.player.Seek(m.player.State().Progress + seekStep)
	case key.Matches(msg, m.keys.louder):
		m.player.SetVolume(m.player.State().Volume + volumeStep)
	case key.Matches(msg, m.keys.quieter):
		m.player.SetVolume(m.player.State().Volume - volumeStep)
	default:
		return
	}
	m.state = m.player.State()
}

func (m *Model) play(t models.Track) {
	if err := m.player.SelectTrack(t); err != nil {
		m.logger.Error("failed to play track", "id", t.ID, "err", err)
		m.err = err
		return
	}
	m.err = nil
	m.state = m.player.State()
}

// openSearch switches to the search view with an empty query.
func (m *Model) openSearch() tea.Cmd {
	m.view = SearchView
	m.input.SetValue("")
	m.refreshResults()
	return m.input.Focus()
}

func (m *Model) closeSearch() {
	m.view = HomeView
	m.input.SetValue("")
	m.input.Blur()
	m.refreshResults()
}

func (m *Model) refreshResults() {
	m.results = m.catalog.Search(m.input.Value())
	m.found = moveCursor(m.found, 0, len(m.results))
}

// waitForState blocks on the subscription and turns the next snapshot into a message.
func (m *Model) waitForState() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		if updates == nil {
			return playerClosedMsg()
		}
		s, ok := <-updates
		if !ok {
			return playerClosedMsg()
		}
		return stateChangedMsg(s)
	}
}

func (m *Model) renderHome() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("tunes"))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.muted.Render("The catalog is empty."))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		if row.first {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(styles.heading.Render(row.category))
			b.WriteString("\n")
		}
		b.WriteString(renderTrack(row.track, i == m.cursor, m.state.Track))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	query := m.input.Value()
	switch {
	case strings.TrimSpace(query) == "":
		b.WriteString(styles.muted.Render("Type to search by title or artist."))
		b.WriteString("\n")
	case len(m.results) == 0:
		b.WriteString(styles.warn.Render(fmt.Sprintf("No results for %q", query)))
		b.WriteString("\n")
	default:
		for i, t := range m.results {
			b.WriteString(renderTrack(t, i == m.found, m.state.Track))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.searchHelp()))
	return b.String()
}

func (m *Model) renderFooter() string {
	s := m.state

	var now string
	if s.HasTrack() {
		icon := "▶"
		switch s.Status {
		case models.StatusPaused:
			icon = "⏸"
		case models.StatusStopped:
			icon = "■"
		}
		now = fmt.Sprintf("%s %s  %s", icon, styles.heading.Render(s.Track.Title), styles.muted.Render(s.Track.Artist))
	} else {
		now = fmt.Sprintf("%s  %s", styles.heading.Render("Nothing playing"), styles.muted.Render("Pick something to play"))
	}

	timeline := fmt.Sprintf("%s %s %s   vol %d%%",
		s.ElapsedString(),
		m.bar.ViewAs(s.Progress/100),
		s.TotalString(),
		s.Volume,
	)

	lines := []string{now, timeline}
	if m.err != nil {
		lines = append(lines, styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return styles.footer.Render(strings.Join(lines, "\n"))
}
