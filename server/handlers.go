package server

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"snake-ai/game"
	"snake-ai/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getState handles GET /api/state
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	latest := s.latest
	s.mu.Unlock()

	if latest == nil {
		respondError(w, http.StatusServiceUnavailable, "no game running")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(latest)
}

type roundsResponse struct {
	Rounds  []game.Round  `json:"rounds"`
	Summary store.Summary `json:"summary"`
}

// listRounds handles GET /api/rounds?limit=N
func (s *Server) listRounds(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		respondError(w, http.StatusServiceUnavailable, "round history disabled")
		return
	}

	limit := clamp(parseIntParam(r, "limit", 20), 1, 500)
	rounds, err := s.opts.History.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Printf("Error listing rounds: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load rounds")
		return
	}
	summary, err := s.opts.History.Summary(r.Context())
	if err != nil {
		s.logger.Printf("Error summarising rounds: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load rounds")
		return
	}

	if rounds == nil {
		rounds = []game.Round{}
	}
	respondJSON(w, http.StatusOK, roundsResponse{Rounds: rounds, Summary: summary})
}

// getRecord handles GET /api/rounds/{id}/record
func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	if s.opts.RecordsDir == "" {
		respondError(w, http.StatusServiceUnavailable, "recording disabled")
		return
	}

	// Round ids are uuids; anything else never names a record file
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid round id")
		return
	}

	snaps, err := store.ReadRecord(store.RecordPath(s.opts.RecordsDir, id.String()))
	if errors.Is(err, fs.ErrNotExist) {
		respondError(w, http.StatusNotFound, "round not recorded")
		return
	}
	if err != nil {
		s.logger.Printf("Error reading record %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "could not read record")
		return
	}
	respondJSON(w, http.StatusOK, snaps)
}

func parseIntParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
