package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pefman/pokedex-duel/internal/api"
	"github.com/pefman/pokedex-duel/internal/dex"
)

// GET /pokemon?limit=20&offset=0
func (s *Server) listPokemon(w http.ResponseWriter, r *http.Request) {
	page, err := s.up.ListPokemon(r.Context(), queryInt(r, "limit", 20), queryInt(r, "offset", 0))
	if err != nil {
		s.log.Error("list pokemon", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching Pokémon list")
		return
	}
	writeJSON(w, page)
}

// GET /pokemon/{name}
func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	p, err := s.up.GetPokemon(r.Context(), name)
	if err != nil {
		if api.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Pokémon not found")
			return
		}
		s.log.Error("get pokemon", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching Pokémon details")
		return
	}
	writeJSON(w, dex.Annotate(p))
}

// GET /api/types
func (s *Server) listTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.up.ListTypes(r.Context())
	if err != nil {
		s.log.Error("list types", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching types")
		return
	}
	writeJSON(w, types)
}

// GET /api/abilities?limit=100
func (s *Server) listAbilities(w http.ResponseWriter, r *http.Request) {
	list, err := s.up.ListAbilities(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		s.log.Error("list abilities", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching abilities")
		return
	}
	writeJSON(w, list)
}
