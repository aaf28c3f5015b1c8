package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	tu "github.com/desertthunder/tunes/internal/testing"
	"github.com/desertthunder/tunes/internal/transport"
)

func newTestModel(t *testing.T) (*Model, *transport.Machine) {
	t.Helper()
	factory := &tu.TickerFactory{}
	logger := shared.NewLogger(io.Discard)
	player := transport.New(transport.Options{
		Logger:    logger,
		NewTicker: func(d time.Duration) transport.Ticker { return factory.New(d) },
	})
	m := NewModel(player, catalog.Default(), logger)
	t.Cleanup(m.Close)
	return m, player
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)

	if m.CurrentView() != HomeView {
		t.Errorf("expected home view, got %v", m.CurrentView())
	}
	if len(m.rows) != 8 {
		t.Errorf("expected 8 rows from the default catalog, got %d", len(m.rows))
	}

	view := m.View()
	for _, want := range []string{"Recently played", "Blinding Lights", "Nothing playing", "Pick something to play", "0:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("home view missing %q", want)
		}
	}
}

func TestHomeKeys(t *testing.T) {
	t.Run("enter plays the highlighted track", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})

		s := player.State()
		if s.Track == nil || s.Track.ID != "2" || !s.Playing {
			t.Fatalf("expected track 2 playing, got %+v", s)
		}
		if m.State().Track == nil || m.State().Track.ID != "2" {
			t.Error("model should reflect the new track immediately")
		}
		if !strings.Contains(m.View(), "Shape of You") {
			t.Error("footer should show the playing track")
		}
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("k"), runes("k"))
		if m.cursor != 0 {
			t.Errorf("cursor moved above the first row: %d", m.cursor)
		}
		for i := 0; i < 20; i++ {
			press(m, runes("j"))
		}
		if m.cursor != 7 {
			t.Errorf("cursor should stop at the last row, got %d", m.cursor)
		}
	})

	t.Run("space toggles playback", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		press(m, tea.KeyMsg{Type: tea.KeySpace})

		if s := player.State(); s.Status != models.StatusPaused {
			t.Errorf("expected paused, got %s", s.Status)
		}
		press(m, tea.KeyMsg{Type: tea.KeySpace})
		if s := player.State(); s.Status != models.StatusPlaying {
			t.Errorf("expected playing, got %s", s.Status)
		}
	})

	t.Run("space with nothing selected does nothing", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, tea.KeyMsg{Type: tea.KeySpace})
		if s := player.State(); s.Status != models.StatusIdle {
			t.Errorf("expected idle, got %s", s.Status)
		}
	})

	t.Run("arrows seek by five percent", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, tea.KeyMsg{Type: tea.KeyEnter})

		press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
		if got := player.State().Progress; got != 10 {
			t.Errorf("expected 10%%, got %v", got)
		}

		press(m, tea.KeyMsg{Type: tea.KeyLeft})
		if got := player.State().Progress; got != 5 {
			t.Errorf("expected 5%%, got %v", got)
		}

		press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
		if got := player.State().Progress; got != 0 {
			t.Errorf("seek should clamp at 0, got %v", got)
		}
	})

	t.Run("volume keys", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, runes("+"), runes("+"))
		if got := player.State().Volume; got != 60 {
			t.Errorf("expected volume 60, got %d", got)
		}
		press(m, runes("-"))
		if got := m.State().Volume; got != 55 {
			t.Errorf("expected volume 55, got %d", got)
		}
	})

	t.Run("q quits and closes the player", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, tea.KeyMsg{Type: tea.KeyEnter})

		cmd := press(m, runes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}

		if err := player.SelectTrack(models.Track{ID: "x", Title: "X", Duration: "1:00"}); err == nil {
			t.Error("player should be closed after quitting")
		}
	})
}

func TestSearchView(t *testing.T) {
	t.Run("slash opens an empty search", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("/"))

		if m.CurrentView() != SearchView {
			t.Fatalf("expected search view, got %v", m.CurrentView())
		}
		if !strings.Contains(m.View(), "Type to search") {
			t.Error("empty query should prompt for input")
		}
	})

	t.Run("typing filters results", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("/"))
		typeText(m, "weeknd")

		if len(m.results) != 1 || m.results[0].Title != "Blinding Lights" {
			t.Fatalf("expected Blinding Lights, got %+v", m.results)
		}
		if !strings.Contains(m.View(), "Blinding Lights") {
			t.Error("search view should list the match")
		}
	})

	t.Run("q and space are typed, not commands", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, runes("/"))
		typeText(m, "q ")

		if m.CurrentView() != SearchView {
			t.Fatal("q should not leave the search view")
		}
		if m.input.Value() != "q " {
			t.Errorf("expected query %q, got %q", "q ", m.input.Value())
		}
		if player.State().Status != models.StatusIdle {
			t.Error("space in the search box should not toggle playback")
		}
	})

	t.Run("no matches", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("/"))
		typeText(m, "zzz")

		if len(m.results) != 0 {
			t.Errorf("expected no results, got %d", len(m.results))
		}
		if !strings.Contains(m.View(), `No results for "zzz"`) {
			t.Error("expected no-results message")
		}
	})

	t.Run("enter plays the highlighted result", func(t *testing.T) {
		m, player := newTestModel(t)
		press(m, runes("/"))
		typeText(m, "e")
		press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

		want := m.results[1]
		if s := player.State(); s.Track == nil || s.Track.ID != want.ID {
			t.Errorf("expected %q playing, got %+v", want.ID, s.Track)
		}
	})

	t.Run("esc returns home and clears the query", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("/"))
		typeText(m, "moon")
		press(m, tea.KeyMsg{Type: tea.KeyEsc})

		if m.CurrentView() != HomeView {
			t.Errorf("expected home view, got %v", m.CurrentView())
		}
		if m.input.Value() != "" || len(m.results) != 0 {
			t.Error("leaving search should clear it")
		}
	})

	t.Run("reopening starts blank", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, runes("/"))
		typeText(m, "moon")
		press(m, runes("/"))
		if m.CurrentView() != HomeView {
			t.Fatal("slash should close the search view")
		}

		press(m, runes("/"))
		if m.input.Value() != "" {
			t.Errorf("expected blank query, got %q", m.input.Value())
		}
	})
}

func TestStateMessages(t *testing.T) {
	t.Run("subscription updates flow into the model", func(t *testing.T) {
		m, player := newTestModel(t)

		cmd := m.Init()
		msg := cmd()
		press(m, msg)
		if m.State().Status != models.StatusIdle {
			t.Fatalf("expected initial idle state, got %s", m.State().Status)
		}

		track, _ := catalog.Default().Find("3")
		if err := player.SelectTrack(track); err != nil {
			t.Fatalf("SelectTrack failed: %v", err)
		}
		player.Seek(50)

		next := m.waitForState()
		press(m, next())

		s := m.State()
		if s.Track == nil || s.Track.ID != "3" || s.Progress != 50 {
			t.Errorf("expected latest state for track 3 at 50%%, got %+v", s)
		}
	})

	t.Run("closed subscription ends the loop", func(t *testing.T) {
		m, _ := newTestModel(t)
		press(m, m.Init()())
		m.Close()

		msg := m.waitForState()()
		if got, ok := msg.(Msg); !ok || got.kind != MsgPlayerClosed {
			t.Fatalf("expected player closed message, got %#v", msg)
		}
		if cmd := press(m, msg); cmd != nil {
			t.Error("no further wait should be scheduled")
		}
	})

	t.Run("rejected track shows an error", func(t *testing.T) {
		m, player := newTestModel(t)
		m.play(models.Track{ID: "bad", Title: "Bad", Duration: "abc"})

		if m.err == nil {
			t.Fatal("expected error to be recorded")
		}
		if !strings.Contains(m.View(), "Error:") {
			t.Error("error should be rendered")
		}
		if player.State().Status != models.StatusIdle {
			t.Error("rejected track must not change the player")
		}
	})
}

func TestHelpers(t *testing.T) {
	t.Run("flatten skips empty categories", func(t *testing.T) {
		rows := flatten([]models.Category{
			{Name: "A", Tracks: []models.Track{{ID: "1"}, {ID: "2"}}},
			{Name: "Empty"},
			{Name: "B", Tracks: []models.Track{{ID: "3"}}},
		})
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if !rows[0].first || rows[1].first || !rows[2].first || rows[2].category != "B" {
			t.Errorf("unexpected grouping: %+v", rows)
		}
	})

	t.Run("moveCursor", func(t *testing.T) {
		tests := []struct{ i, delta, n, want int }{
			{0, 1, 3, 1},
			{2, 1, 3, 2},
			{0, -1, 3, 0},
			{5, 0, 3, 2},
			{1, 1, 0, 0},
		}
		for _, tt := range tests {
			if got := moveCursor(tt.i, tt.delta, tt.n); got != tt.want {
				t.Errorf("moveCursor(%d, %d, %d) = %d, want %d", tt.i, tt.delta, tt.n, got, tt.want)
			}
		}
	})
}
