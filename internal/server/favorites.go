package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pefman/pokedex-duel/internal/api"
	"github.com/pefman/pokedex-duel/internal/favorites"
	"github.com/pefman/pokedex-duel/internal/models"
)

// GET /api/favorites?sort=date|name|id&group=type
func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	owner := clientID(w, r)
	list, err := s.favs.List(r.Context(), owner, favorites.ParseSort(r.URL.Query().Get("sort")))
	if err != nil {
		s.log.Error("list favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "Error loading favorites")
		return
	}
	if r.URL.Query().Get("group") == "type" {
		writeJSON(w, map[string]any{"count": len(list), "groups": favorites.GroupByType(list)})
		return
	}
	writeJSON(w, map[string]any{"count": len(list), "favorites": list})
}

// completeFavorite fills id, name, image and types from the dex when the
// client sent only a name or an id.
func (s *Server) completeFavorite(r *http.Request, f models.Favorite) (models.Favorite, error) {
	if f.ID > 0 && strings.TrimSpace(f.Name) != "" {
		return f, nil
	}
	key := strings.TrimSpace(f.Name)
	if f.ID > 0 {
		key = strconv.Itoa(f.ID)
	}
	if key == "" {
		return f, favorites.ErrInvalid
	}
	p, err := s.lookup(r.Context(), key)
	if err != nil {
		return f, err
	}
	full := favorites.FromPokemon(p)
	full.AddedAt = f.AddedAt
	return full, nil
}

func decodeFavorite(r *http.Request) (models.Favorite, error) {
	var f models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return f, err
	}
	return f, nil
}

func (s *Server) favoriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, favorites.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case api.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Pokémon not found")
	default:
		s.log.Error("favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating favorites")
	}
}

func (s *Server) addAndRespond(w http.ResponseWriter, r *http.Request, f models.Favorite) {
	owner := clientID(w, r)
	f, err := s.completeFavorite(r, f)
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	stored, added, err := s.favs.Add(r.Context(), owner, f)
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	code := http.StatusOK
	if added {
		code = http.StatusCreated
	}
	writeJSONStatus(w, code, map[string]any{"added": added, "favorite": stored})
}

// POST /api/favorites {id, name, imageUrl, types}
func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFavorite(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.addAndRespond(w, r, f)
}

// PUT /api/favorites/{id}
func (s *Server) putFavorite(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFavorite(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	f.ID = pathID(r)
	s.addAndRespond(w, r, f)
}

// state answers {"favorite": on, "count": n} for the owner.
func (s *Server) state(w http.ResponseWriter, r *http.Request, owner string, on bool) {
	n, err := s.favs.Count(r.Context(), owner)
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	writeJSON(w, map[string]any{"favorite": on, "count": n})
}

// GET /api/favorites/{id}
func (s *Server) getFavorite(w http.ResponseWriter, r *http.Request) {
	owner := clientID(w, r)
	ok, err := s.favs.IsFavorite(r.Context(), owner, pathID(r))
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	s.state(w, r, owner, ok)
}

// DELETE /api/favorites/{id}
func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	removed, err := s.favs.Remove(r.Context(), clientID(w, r), pathID(r))
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "favorite not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/favorites/{id}/toggle
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	owner := clientID(w, r)
	id := pathID(r)
	on, err := s.favs.IsFavorite(r.Context(), owner, id)
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	f := models.Favorite{ID: id}
	if !on {
		// only an add needs the full record
		if f, err = s.completeFavorite(r, f); err != nil {
			s.favoriteError(w, err)
			return
		}
	}
	nowOn, err := s.favs.Toggle(r.Context(), owner, f)
	if err != nil {
		s.favoriteError(w, err)
		return
	}
	s.state(w, r, owner, nowOn)
}

// DELETE /api/favorites
func (s *Server) clearFavorites(w http.ResponseWriter, r *http.Request) {
	if err := s.favs.Clear(r.Context(), clientID(w, r)); err != nil {
		s.favoriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID is safe to ignore errors on: the route only matches digits.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
