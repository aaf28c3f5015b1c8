package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	tu "github.com/desertthunder/tunes/internal/testing"
	"github.com/desertthunder/tunes/internal/transport"
)

func newTestPlayer(t *testing.T) *transport.Machine {
	t.Helper()
	factory := &tu.TickerFactory{}
	m := transport.New(transport.Options{
		Logger:    shared.NewLogger(io.Discard),
		NewTicker: func(d time.Duration) transport.Ticker { return factory.New(d) },
	})
	t.Cleanup(m.Close)
	return m
}

func newTestServer(t *testing.T, c *catalog.Catalog) (*httptest.Server, *transport.Machine) {
	t.Helper()
	if c == nil {
		c = catalog.Default()
	}
	player := newTestPlayer(t)
	logger := shared.NewLogger(io.Discard)

	router := NewBasicRouter()
	router.Use(Recoverer(logger), RequestLogger(logger))
	router.Handler(NewPlayerHandler(player, c, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, player
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestBasicRouter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	t.Run("method patterns", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("get", "/ping", ok)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("expected 200 ok, got %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("routes are recorded", func(t *testing.T) {
		router := NewBasicRouter()
		router.HandleFunc(http.MethodPost, "/b", ok)
		router.Handle(http.MethodGet, "/a", ok)

		routes := router.Routes()
		if strings.Join(routes, ",") != "GET /a,POST /b" {
			t.Errorf("unexpected routes: %v", routes)
		}
	})

	t.Run("middleware runs in the order added", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/", ok)
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if strings.Join(order, ",") != "first,second" {
			t.Errorf("unexpected middleware order: %v", order)
		}
	})

	t.Run("recoverer turns panics into 500", func(t *testing.T) {
		router := NewBasicRouter()
		router.Use(Recoverer(shared.NewLogger(io.Discard)))
		router.Handle(http.MethodGet, "/boom", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("request logger keeps the status", func(t *testing.T) {
		var buf strings.Builder
		logger := shared.NewLogger(&buf)
		logger.SetLevel(log.DebugLevel)

		router := NewBasicRouter()
		router.Use(RequestLogger(logger))
		router.Handle(http.MethodGet, "/teapot", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected 418, got %d", rec.Code)
		}
		if !strings.Contains(buf.String(), "status=418") {
			t.Errorf("expected status in log line, got %q", buf.String())
		}
	})
}

func TestPlayerHandler(t *testing.T) {
	t.Run("routes", func(t *testing.T) {
		h := NewPlayerHandler(newTestPlayer(t), catalog.Default(), nil)
		routes := h.Routes()
		if len(routes) != 8 {
			t.Fatalf("expected 8 routes, got %d: %v", len(routes), routes)
		}
		for _, want := range []string{"GET /api/state", "POST /api/select", "GET /api/events"} {
			found := false
			for _, r := range routes {
				found = found || r == want
			}
			if !found {
				t.Errorf("missing route %q", want)
			}
		}
	})

	t.Run("state starts idle", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)
		resp := get(t, srv.URL+"/api/state")

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		s := decodeBody[models.PlaybackState](t, resp)
		if s.Status != models.StatusIdle || s.Track != nil || s.Volume != transport.DefaultVolume {
			t.Errorf("unexpected initial state: %+v", s)
		}
	})

	t.Run("tracks lists categories", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)
		categories := decodeBody[[]models.Category](t, get(t, srv.URL+"/api/tracks"))
		if len(categories) != 4 || categories[0].Name != "Recently played" {
			t.Errorf("unexpected categories: %+v", categories)
		}
	})

	t.Run("search", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)

		tracks := decodeBody[[]models.Track](t, get(t, srv.URL+"/api/search?q=WEEKND"))
		if len(tracks) != 1 || tracks[0].Title != "Blinding Lights" {
			t.Errorf("unexpected results: %+v", tracks)
		}

		resp := get(t, srv.URL+"/api/search?q=")
		body, _ := io.ReadAll(resp.Body)
		if strings.TrimSpace(string(body)) != "[]" {
			t.Errorf("blank query should return an empty list, got %s", body)
		}
	})

	t.Run("select plays the track", func(t *testing.T) {
		srv, player := newTestServer(t, nil)
		resp := post(t, srv.URL+"/api/select", `{"id":"2"}`)

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		s := decodeBody[models.PlaybackState](t, resp)
		if s.Track == nil || s.Track.ID != "2" || s.Status != models.StatusPlaying {
			t.Errorf("unexpected state: %+v", s)
		}
		if !player.State().Playing {
			t.Error("player should be playing")
		}
	})

	t.Run("select errors", func(t *testing.T) {
		bad, err := catalog.New([]models.Track{{ID: "bad", Title: "Bad", Duration: "abc"}}, nil)
		if err != nil {
			t.Fatalf("catalog.New failed: %v", err)
		}
		srv, player := newTestServer(t, bad)

		tests := []struct {
			name   string
			body   string
			status int
		}{
			{"unknown id", `{"id":"nope"}`, http.StatusNotFound},
			{"malformed duration", `{"id":"bad"}`, http.StatusUnprocessableEntity},
			{"invalid body", `{"id":`, http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp := post(t, srv.URL+"/api/select", tt.body)
				if resp.StatusCode != tt.status {
					t.Errorf("expected %d, got %d", tt.status, resp.StatusCode)
				}
				e := decodeBody[errorResponse](t, resp)
				if e.Error == "" {
					t.Error("expected an error message")
				}
			})
		}

		if player.State().Status != models.StatusIdle {
			t.Error("failed selects must not change the player")
		}
	})

	t.Run("toggle seek and volume", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)
		post(t, srv.URL+"/api/select", `{"id":"1"}`)

		s := decodeBody[models.PlaybackState](t, post(t, srv.URL+"/api/toggle", ""))
		if s.Status != models.StatusPaused {
			t.Errorf("expected paused, got %s", s.Status)
		}

		s = decodeBody[models.PlaybackState](t, post(t, srv.URL+"/api/seek", `{"percent":50}`))
		if s.Progress != 50 || s.Elapsed != 100 || s.Status != models.StatusPaused {
			t.Errorf("unexpected state after seek: %+v", s)
		}

		s = decodeBody[models.PlaybackState](t, post(t, srv.URL+"/api/volume", `{"volume":150}`))
		if s.Volume != 100 {
			t.Errorf("volume should clamp to 100, got %d", s.Volume)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)
		resp := get(t, srv.URL+"/api/toggle")
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
	})
}

func TestEvents(t *testing.T) {
	readEvent := func(t *testing.T, r *bufio.Reader) (string, string) {
		t.Helper()
		var event, data string
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				t.Fatalf("failed to read event: %v", err)
			}
			line = strings.TrimRight(line, "\n")
			switch {
			case line == "":
				return event, data
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = strings.TrimPrefix(line, "data: ")
			}
		}
	}

	open := func(t *testing.T, url string) *bufio.Reader {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		t.Cleanup(cancel)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/events", nil)
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("failed to open stream: %v", err)
		}
		t.Cleanup(func() { resp.Body.Close() })

		if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
			t.Fatalf("unexpected content type %q", ct)
		}
		return bufio.NewReader(resp.Body)
	}

	t.Run("streams state changes", func(t *testing.T) {
		srv, _ := newTestServer(t, nil)
		r := open(t, srv.URL)

		event, data := readEvent(t, r)
		var s models.PlaybackState
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			t.Fatalf("bad event data %q: %v", data, err)
		}
		if event != "state" || s.Status != models.StatusIdle {
			t.Errorf("expected initial idle state event, got %s %+v", event, s)
		}

		post(t, srv.URL+"/api/select", `{"id":"4"}`)

		_, data = readEvent(t, r)
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			t.Fatalf("bad event data %q: %v", data, err)
		}
		if s.Status != models.StatusPlaying || s.Track == nil || s.Track.ID != "4" {
			t.Errorf("expected playing event for track 4, got %+v", s)
		}
	})

	t.Run("closing the player ends the stream", func(t *testing.T) {
		srv, player := newTestServer(t, nil)
		r := open(t, srv.URL)
		readEvent(t, r)

		player.Close()

		event, _ := readEvent(t, r)
		if event != "closed" {
			t.Errorf("expected closed event, got %q", event)
		}
	})
}
