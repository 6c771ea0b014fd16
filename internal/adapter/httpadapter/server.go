// Package httpadapter is the boundary to the presentation layer: it
// serves the composed session view, accepts user actions, and exposes
// the health, readiness, and metrics endpoints.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VIVEK9902/weather-app/internal/domain"
	"github.com/VIVEK9902/weather-app/internal/session"
)

// Session is the slice of the coordinator the HTTP surface consumes.
type Session interface {
	View() session.View
	Search(ctx context.Context, name string) error
	SelectFavorite(ctx context.Context, name string) error
	SetSearchText(text string)
	SetUnit(ctx context.Context, unit string) error
	SetTheme(theme string) error
	ResetPreferences() error
	AddFavorite() error
	RemoveFavorite(name string) error
	ClearFavorites() error
	TrendParams() (city, unit string)
	CheckReadiness(ctx context.Context) error
}

// TrendFetcher supplies the multi-day series for the trend display.
type TrendFetcher interface {
	FetchTrend(ctx context.Context, target domain.Target, unit string, days int) ([]domain.ForecastDay, error)
}

// Server exposes the session over HTTP.
type Server struct {
	httpServer *http.Server
	sess       Session
	trends     TrendFetcher
	logger     *slog.Logger
}

// NewServer creates the HTTP server with the session API plus /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, sess Session, trends TrendFetcher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		sess:   sess,
		trends: trends,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/search-text", s.handleSearchText)
	mux.HandleFunc("POST /api/unit", s.handleUnit)
	mux.HandleFunc("POST /api/theme", s.handleTheme)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/favorites", s.handleAddFavorite)
	mux.HandleFunc("POST /api/favorites/select", s.handleSelectFavorite)
	mux.HandleFunc("DELETE /api/favorites", s.handleDeleteFavorites)
	mux.HandleFunc("GET /api/trend", s.handleTrend)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.sess.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := s.sess.Search(r.Context(), body.City); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleSelectFavorite(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := s.sess.SelectFavorite(r.Context(), body.City); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleSearchText(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	s.sess.SetSearchText(body.Text)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnit(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := s.sess.SetUnit(r.Context(), body.Unit); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	if err := s.sess.SetTheme(body.Theme); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	if err := s.sess.ResetPreferences(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, _ *http.Request) {
	if err := s.sess.AddFavorite(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

// handleDeleteFavorites removes one favorite when a city is named, or
// clears the whole list when the body is empty.
func (s *Server) handleDeleteFavorites(w http.ResponseWriter, r *http.Request) {
	var body actionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var err error
	if body.City != "" {
		err = s.sess.RemoveFavorite(body.City)
	} else {
		err = s.sess.ClearFavorites()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	city, unit := s.sess.TrendParams()
	if city == "" {
		writeError(w, http.StatusConflict, errors.New("no city displayed yet"))
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 10 {
			writeError(w, http.StatusBadRequest, errors.New("days must be 1-10"))
			return
		}
		days = n
	}

	series, err := s.trends.FetchTrend(r.Context(), domain.NameTarget{Name: city}, unit, days)
	if err != nil {
		s.logger.Warn("trend fetch failed", "city", city, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"city":  city,
		"unit":  unit,
		"daily": series,
	})
}

type actionRequest struct {
	City  string `json:"city"`
	Text  string `json:"text"`
	Unit  string `json:"unit"`
	Theme string `json:"theme"`
}

func decodeBody(w http.ResponseWriter, r *http.Request) (actionRequest, bool) {
	var body actionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return actionRequest{}, false
	}
	return body, true
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
