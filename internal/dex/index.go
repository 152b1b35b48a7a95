package dex

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pefman/pokedex-duel/internal/models"
)

// Fetcher loads one full record by name or id.
type Fetcher interface {
	GetPokemon(ctx context.Context, nameOrID string) (*models.Pokemon, error)
}

// Index is an in-memory set of detailed records used for search and
// grouping. Safe for concurrent use.
type Index struct {
	mu     sync.RWMutex
	byID   map[int]*models.Pokemon
	byName map[string]*models.Pokemon
}

func NewIndex() *Index {
	return &Index{byID: map[int]*models.Pokemon{}, byName: map[string]*models.Pokemon{}}
}

// Put annotates p and stores it, replacing any record with the same id.
func (ix *Index) Put(p *models.Pokemon) {
	if p == nil {
		return
	}
	Annotate(p)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.byID[p.ID] = p
	ix.byName[strings.ToLower(p.Name)] = p
}

// Lookup finds a record by lower-cased name or numeric id.
func (ix *Index) Lookup(key string) (*models.Pokemon, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if id, err := strconv.Atoi(key); err == nil {
		p, ok := ix.byID[id]
		return p, ok
	}
	p, ok := ix.byName[key]
	return p, ok
}

func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.byID)
}

// All returns the records ordered by id.
func (ix *Index) All() []*models.Pokemon {
	ix.mu.RLock()
	out := make([]*models.Pokemon, 0, len(ix.byID))
	for _, p := range ix.byID {
		out = append(out, p)
	}
	ix.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Preload fetches ids 1..n with at most workers requests in flight.
// Records that fail to load are skipped. It returns how many were stored,
// and ctx.Err() if the context ended first.
func (ix *Index) Preload(ctx context.Context, f Fetcher, n, workers int) (int, error) {
	if workers <= 0 {
		workers = 8
	}
	ids := make(chan int)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		loaded int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ids {
				p, err := f.GetPokemon(ctx, strconv.Itoa(id))
				if err != nil {
					slog.Debug("preload skipped", "id", id, "error", err)
					continue
				}
				ix.Put(p)
				mu.Lock()
				loaded++
				mu.Unlock()
			}
		}()
	}
feed:
	for id := 1; id <= n; id++ {
		select {
		case <-ctx.Done():
			break feed
		case ids <- id:
		}
	}
	close(ids)
	wg.Wait()
	return loaded, ctx.Err()
}
