package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pefman/pokedex-duel/internal/api"
	"github.com/pefman/pokedex-duel/internal/battlelog"
	"github.com/pefman/pokedex-duel/internal/game"
	"github.com/pefman/pokedex-duel/internal/models"
	"github.com/pefman/pokedex-duel/internal/stats"
)

type battleRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type battleResponse struct {
	battlelog.Record
	// Missing names the sides ("a", "b") that could not be resolved.
	Missing []string `json:"missing,omitempty"`
}

// upstreamError is an upstream failure other than not-found.
type upstreamError struct{ err error }

func (e *upstreamError) Error() string { return e.err.Error() }
func (e *upstreamError) Unwrap() error { return e.err }

// resolve loads one side. Unknown or blank names give nil without error.
func (s *Server) resolve(ctx context.Context, name string) (*models.Pokemon, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	p, err := s.lookup(ctx, name)
	if err != nil {
		if api.IsNotFound(err) {
			return nil, nil
		}
		return nil, &upstreamError{err: err}
	}
	return p, nil
}

// battle resolves both sides, runs the estimator and records the outcome.
func (s *Server) battle(ctx context.Context, req battleRequest) (battleResponse, error) {
	a, err := s.resolve(ctx, req.A)
	if err != nil {
		return battleResponse{}, err
	}
	b, err := s.resolve(ctx, req.B)
	if err != nil {
		return battleResponse{}, err
	}

	res := game.SimulateBattle(a, b)
	rec := s.battles.Append(battlelog.FromResult(req.A, req.B, res))
	if res.Valid() {
		s.daily.Record(stats.Battle{
			ID:              rec.ID,
			Winner:          rec.Winner,
			Loser:           rec.Loser,
			Score:           rec.Score,
			WinProbabilityA: rec.WinProbabilityA,
			At:              rec.Created,
		})
	}
	s.log.Debug("battle", "id", rec.ID, "a", req.A, "b", req.B, "winner", rec.Winner, "p_a", rec.WinProbabilityA)

	out := battleResponse{Record: rec}
	if a == nil {
		out.Missing = append(out.Missing, "a")
	}
	if b == nil {
		out.Missing = append(out.Missing, "b")
	}
	return out, nil
}

// POST /api/battle {a, b}
func (s *Server) postBattle(w http.ResponseWriter, r *http.Request) {
	var req battleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	out, err := s.battle(r.Context(), req)
	if err != nil {
		s.log.Error("battle", "a", req.A, "b", req.B, "error", err)
		writeError(w, http.StatusBadGateway, "Error fetching Pokémon details")
		return
	}
	writeJSON(w, out)
}

// GET /api/battle/{id}
func (s *Server) getBattle(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.battles.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "battle not found")
		return
	}
	writeJSON(w, rec)
}

// GET /api/stats/today
func (s *Server) statsToday(w http.ResponseWriter, r *http.Request) {
	b, ok := s.daily.Today()
	if !ok {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, b)
}
