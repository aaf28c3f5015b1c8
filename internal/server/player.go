package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// Player is the transport the HTTP API drives.
type Player interface {
	SelectTrack(models.Track) error
	Toggle()
	Seek(percent float64)
	SetVolume(v int)
	State() models.PlaybackState
	Subscribe() (<-chan models.PlaybackState, func())
}

type selectRequest struct {
	ID string `json:"id"`
}

type seekRequest struct {
	Percent float64 `json:"percent"`
}

type volumeRequest struct {
	Volume int `json:"volume"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PlayerHandler serves the playback API:
//
//	GET  /api/state   current playback state
//	GET  /api/tracks  catalog by category
//	GET  /api/search  ?q= title or artist filter
//	POST /api/select  {"id": "..."}
//	POST /api/toggle
//	POST /api/seek    {"percent": 0-100}
//	POST /api/volume  {"volume": 0-100}
//	GET  /api/events  server-sent stream of states
type PlayerHandler struct {
	player  Player
	catalog *catalog.Catalog
	logger  *log.Logger
	mux     *http.ServeMux
	routes  []string
}

// NewPlayerHandler creates a new PlayerHandler over player and the catalog it plays from.
func NewPlayerHandler(player Player, c *catalog.Catalog, logger *log.Logger) *PlayerHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	h := &PlayerHandler{
		player:  player,
		catalog: c,
		logger:  shared.WithLogger(logger, "component", "server"),
		mux:     http.NewServeMux(),
	}

	h.handle("GET /api/state", h.handleState)
	h.handle("GET /api/tracks", h.handleTracks)
	h.handle("GET /api/search", h.handleSearch)
	h.handle("POST /api/select", h.handleSelect)
	h.handle("POST /api/toggle", h.handleToggle)
	h.handle("POST /api/seek", h.handleSeek)
	h.handle("POST /api/volume", h.handleVolume)
	h.handle("GET /api/events", h.handleEvents)
	return h
}

func (h *PlayerHandler) handle(pattern string, fn http.HandlerFunc) {
	h.mux.HandleFunc(pattern, fn)
	h.routes = append(h.routes, pattern)
}

// Routes returns the "METHOD /path" patterns this handler serves.
func (h *PlayerHandler) Routes() []string {
	return append([]string(nil), h.routes...)
}

// ServeHTTP dispatches to the endpoint for the request.
func (h *PlayerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *PlayerHandler) handleState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.player.State())
}

func (h *PlayerHandler) handleTracks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Categories())
}

func (h *PlayerHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Search(r.URL.Query().Get("q")))
}

func (h *PlayerHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !h.decode(w, r, &req) {
		return
	}

	track, err := h.catalog.Find(req.ID)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}

	if err := h.player.SelectTrack(track); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, shared.ErrInvalidDurationFormat):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, shared.ErrTransportClosed):
			status = http.StatusServiceUnavailable
		}
		h.writeError(w, status, err)
		return
	}

	h.logger.Info("track selected", "id", track.ID, "remote", r.RemoteAddr)
	h.writeJSON(w, http.StatusOK, h.player.State())
}

func (h *PlayerHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	h.player.Toggle()
	h.writeJSON(w, http.StatusOK, h.player.State())
}

func (h *PlayerHandler) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.player.Seek(req.Percent)
	h.writeJSON(w, http.StatusOK, h.player.State())
}

func (h *PlayerHandler) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.player.SetVolume(req.Volume)
	h.writeJSON(w, http.StatusOK, h.player.State())
}

// handleEvents streams every state change as a server-sent event until the client leaves
// or the player shuts down.
func (h *PlayerHandler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	updates, unsubscribe := h.player.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case s, ok := <-updates:
			if !ok {
				fmt.Fprint(w, "event: closed\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			data, err := shared.MarshalJSON(s, false)
			if err != nil {
				h.logger.Error("failed to encode state", "err", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *PlayerHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err))
		return false
	}
	return true
}

func (h *PlayerHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		h.logger.Error("failed to encode response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func (h *PlayerHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Warn("request failed", "status", status, "err", err)
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
