package server

import (
	"net/http"
	"strings"

	"github.com/pefman/pokedex-duel/internal/dex"
	"github.com/pefman/pokedex-duel/internal/game"
	"github.com/pefman/pokedex-duel/internal/models"
)

// GET /api/dex/search?q=&filter=&limit=
//
// q runs the name/type/ability search; filter is a boolean expression such
// as `bst > 500 and "fire" in types`. Both are optional and combine.
func (s *Server) searchDex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(r, "limit", dex.DefaultSearchLimit)
	if limit == 0 {
		limit = dex.DefaultSearchLimit
	}
	list := s.index.All()

	if src := strings.TrimSpace(q.Get("filter")); src != "" {
		f, err := dex.CompileFilter(src)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		list = f.Apply(list)
	}

	if term := q.Get("q"); strings.TrimSpace(term) != "" {
		list = dex.Search(list, term, limit)
		if list == nil {
			list = []*models.Pokemon{}
		}
	} else if len(list) > limit {
		list = list[:limit]
	}

	writeJSON(w, map[string]any{
		"indexed": s.index.Len(),
		"count":   len(list),
		"results": list,
	})
}

type typeSummary struct {
	Type      string          `json:"type"`
	Count     int             `json:"count"`
	Strongest *models.Pokemon `json:"strongest,omitempty"`
}

// GET /api/dex/types
func (s *Server) dexTypes(w http.ResponseWriter, r *http.Request) {
	grouped := dex.GroupByType(s.index.All())
	strongest := dex.StrongestPerType(grouped)
	out := make([]typeSummary, 0, len(grouped))
	for _, t := range game.Types() {
		out = append(out, typeSummary{Type: t, Count: len(grouped[t]), Strongest: strongest[t]})
	}
	writeJSON(w, out)
}

// GET /api/dex/random
func (s *Server) randomPokemon(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"id": s.randomID()})
}
