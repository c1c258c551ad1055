// Package server is the HTTP surface: a small JSON API over the fallback
// aggregator plus the stream redirect endpoint embed players point at.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/goalfeed/goal-feed/internal/feed"
	"github.com/goalfeed/goal-feed/internal/metrics"
	"github.com/goalfeed/goal-feed/internal/resolver"
	"github.com/goalfeed/goal-feed/internal/schedule"
)

// Server wires the aggregator and resolver behind the HTTP routes.
type Server struct {
	Agg      *feed.Aggregator
	Resolver *resolver.Resolver

	// Channels serves the channel directory; nil falls back to the static
	// mock list.
	Channels func(ctx context.Context) []schedule.Channel

	// Category is the default match filter when ?cat= is absent.
	Category string

	// Window, when positive, overrides the winning tier's live window.
	Window time.Duration

	Now func() time.Time
}

// Handler builds the router. origins is the CORS allow list for the JSON
// API ("*" for any); the stream redirect is exempt since embed iframes
// navigate rather than XHR.
func (s *Server) Handler(origins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/stream", s.handleStream).Methods(http.MethodGet)
	r.HandleFunc("/api/stream/candidates", s.handleCandidates).Methods(http.MethodGet)
	r.HandleFunc("/api/schedule", s.handleSchedule).Methods(http.MethodGet)
	r.HandleFunc("/api/matches", s.handleMatches).Methods(http.MethodGet)
	r.HandleFunc("/api/channels", s.handleChannels).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet},
	})
	return c.Handler(r)
}

// handleStream 302s the caller to the embeddable stream for ?id=. Missing
// or malformed ids are the client's fault (400); well-formed ids with no
// live stream behind them are 404.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing ID")
		return
	}
	res, err := s.Resolver.Resolve(r.Context(), id)
	switch {
	case errors.Is(err, resolver.ErrMalformedID):
		writeError(w, http.StatusBadRequest, "Invalid ID format")
	case errors.Is(err, resolver.ErrNotFound):
		writeError(w, http.StatusNotFound, "Stream not found")
	case err != nil:
		log.Printf("[server] resolve %q: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Resolution failed")
	default:
		http.Redirect(w, r, res.URL, http.StatusFound)
	}
}

// handleCandidates returns the full resolution instead of redirecting, for
// players that cycle mirror folders client-side.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing ID")
		return
	}
	res, err := s.Resolver.Resolve(r.Context(), id)
	switch {
	case errors.Is(err, resolver.ErrMalformedID):
		writeError(w, http.StatusBadRequest, "Invalid ID format")
	case errors.Is(err, resolver.ErrNotFound):
		writeError(w, http.StatusNotFound, "Stream not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Resolution failed")
	default:
		writeData(w, res)
	}
}

// handleSchedule serves the raw winning schedule with display day labels,
// plus which tier produced it.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	res := s.Agg.Fetch(r.Context())
	display := make(map[string]schedule.DaySchedule, len(res.Schedule))
	for day, cats := range res.Schedule {
		display[schedule.DayLabel(day)] = cats
	}
	writeData(w, struct {
		Tier     string                          `json:"tier"`
		Schedule map[string]schedule.DaySchedule `json:"schedule"`
	}{res.Tier, display})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	cat := r.URL.Query().Get("cat")
	if cat == "" {
		cat = s.Category
	}
	res := s.Agg.Fetch(r.Context())
	window := res.Window
	if s.Window > 0 {
		window = s.Window
	}
	matches := schedule.Normalize(res.Schedule, cat, s.now(), window)
	if matches == nil {
		matches = []schedule.Match{}
	}
	writeData(w, matches)
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	var channels []schedule.Channel
	if s.Channels != nil {
		channels = s.Channels(r.Context())
	}
	if len(channels) == 0 {
		channels = schedule.MockChannels()
	}
	writeData(w, channels)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}{true, data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, msg})
}
