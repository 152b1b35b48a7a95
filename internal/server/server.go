// Package server exposes the dex, favorites and battle estimator over HTTP
// and a websocket battle feed.
package server

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/pefman/pokedex-duel/internal/battlelog"
	"github.com/pefman/pokedex-duel/internal/dex"
	"github.com/pefman/pokedex-duel/internal/favorites"
	"github.com/pefman/pokedex-duel/internal/models"
	"github.com/pefman/pokedex-duel/internal/stats"
)

// Upstream is the creature-data source. *api.Client satisfies it.
type Upstream interface {
	ListPokemon(ctx context.Context, limit, offset int) (*models.PokemonList, error)
	GetPokemon(ctx context.Context, nameOrID string) (*models.Pokemon, error)
	ListTypes(ctx context.Context) ([]models.NamedResource, error)
	ListAbilities(ctx context.Context, limit int) ([]models.NamedResource, error)
}

// Deps wires the server to its collaborators. Upstream and Favorites are
// required; the rest get in-memory defaults.
type Deps struct {
	Upstream       Upstream
	Index          *dex.Index
	Favorites      favorites.Store
	Battles        *battlelog.Log
	Daily          *stats.Daily
	AllowedOrigins []string
	Logger         *slog.Logger
}

type Server struct {
	up      Upstream
	index   *dex.Index
	favs    favorites.Store
	battles *battlelog.Log
	daily   *stats.Daily
	origins []string
	log     *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(d Deps) *Server {
	s := &Server{
		up:      d.Upstream,
		index:   d.Index,
		favs:    d.Favorites,
		battles: d.Battles,
		daily:   d.Daily,
		origins: d.AllowedOrigins,
		log:     d.Logger,
		rng:     dex.NewRNG(),
	}
	if s.index == nil {
		s.index = dex.NewIndex()
	}
	if s.battles == nil {
		s.battles, _ = battlelog.New("")
	}
	if s.daily == nil {
		s.daily = stats.NewDaily()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Handler returns the routed handler wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.Register(r)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return requestLogger(s.log, withCORS(s.origins, r))
}

// Register adds every route to r.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/api/healthz", s.health).Methods(http.MethodGet)

	// Upstream proxy
	r.HandleFunc("/pokemon", s.listPokemon).Methods(http.MethodGet)
	r.HandleFunc("/pokemon/{name}", s.getPokemon).Methods(http.MethodGet)
	r.HandleFunc("/api/types", s.listTypes).Methods(http.MethodGet)
	r.HandleFunc("/api/abilities", s.listAbilities).Methods(http.MethodGet)

	// Dex over the preloaded index
	r.HandleFunc("/api/dex/search", s.searchDex).Methods(http.MethodGet)
	r.HandleFunc("/api/dex/types", s.dexTypes).Methods(http.MethodGet)
	r.HandleFunc("/api/dex/random", s.randomPokemon).Methods(http.MethodGet)

	// Battles
	r.HandleFunc("/api/battle", s.postBattle).Methods(http.MethodPost)
	r.HandleFunc("/api/battle/{id}", s.getBattle).Methods(http.MethodGet)
	r.HandleFunc("/api/stats/today", s.statsToday).Methods(http.MethodGet)
	r.HandleFunc("/ws/battle", s.battleWS).Methods(http.MethodGet)

	// Favorites
	r.HandleFunc("/api/favorites", s.listFavorites).Methods(http.MethodGet)
	r.HandleFunc("/api/favorites", s.addFavorite).Methods(http.MethodPost)
	r.HandleFunc("/api/favorites", s.clearFavorites).Methods(http.MethodDelete)
	r.HandleFunc("/api/favorites/{id:[0-9]+}", s.getFavorite).Methods(http.MethodGet)
	r.HandleFunc("/api/favorites/{id:[0-9]+}", s.putFavorite).Methods(http.MethodPut)
	r.HandleFunc("/api/favorites/{id:[0-9]+}", s.removeFavorite).Methods(http.MethodDelete)
	r.HandleFunc("/api/favorites/{id:[0-9]+}/toggle", s.toggleFavorite).Methods(http.MethodPost)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "indexed": s.index.Len()})
}

// lookup serves from the preloaded index before asking upstream.
func (s *Server) lookup(ctx context.Context, nameOrID string) (*models.Pokemon, error) {
	if p, ok := s.index.Lookup(nameOrID); ok {
		return p, nil
	}
	p, err := s.up.GetPokemon(ctx, nameOrID)
	if err != nil {
		return nil, err
	}
	return dex.Annotate(p), nil
}

func (s *Server) randomID() int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return dex.RandomID(s.rng)
}
