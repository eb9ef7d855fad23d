package iohttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gnames/gnweather/pkg/query"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: s.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseObservationParams(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, err := s.engine.ListObservations(r.Context(), params)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseStatsParams(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, err := s.engine.YearlyStats(r.Context(), params)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// fail maps an error to a status code. Only validation messages reach
// the client, other errors are logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if msg := query.ValidationMessage(err); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		s.logger.Warn("request timed out",
			"path", r.URL.Path, "request_id", w.Header().Get(requestIDHeader))
		writeError(w, http.StatusServiceUnavailable, "request timed out")
		return
	}

	s.logger.Error("request failed",
		"path", r.URL.Path,
		"request_id", w.Header().Get(requestIDHeader),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may be gone
}
