// Package favorites keeps each client's list of favorite Pokémon.
package favorites

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/pefman/pokedex-duel/internal/game"
	"github.com/pefman/pokedex-duel/internal/models"
)

// ErrInvalid is returned for favorites without a positive id or a name.
var ErrInvalid = errors.New("favorite needs an id and a name")

type SortBy string

const (
	SortDate SortBy = "date"
	SortName SortBy = "name"
	SortID   SortBy = "id"
)

// ParseSort maps a query value to a SortBy, defaulting to SortDate.
func ParseSort(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortName:
		return SortName
	case SortID:
		return SortID
	default:
		return SortDate
	}
}

// Store is implemented by Memory and SQLite. Every method is scoped to an
// owner key; owners never see each other's entries.
type Store interface {
	List(ctx context.Context, owner string, by SortBy) ([]models.Favorite, error)
	// Add is a no-op when id is already a favorite. It returns the stored
	// entry and reports whether it was inserted.
	Add(ctx context.Context, owner string, f models.Favorite) (models.Favorite, bool, error)
	Remove(ctx context.Context, owner string, id int) (bool, error)
	// Toggle adds or removes f and returns the new state.
	Toggle(ctx context.Context, owner string, f models.Favorite) (bool, error)
	Clear(ctx context.Context, owner string) error
	Count(ctx context.Context, owner string) (int, error)
	IsFavorite(ctx context.Context, owner string, id int) (bool, error)
	Close() error
}

// FromPokemon builds the stored shape from a detail record.
func FromPokemon(p *models.Pokemon) models.Favorite {
	if p == nil {
		return models.Favorite{}
	}
	return models.Favorite{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL(), Types: p.TypeNames()}
}

func validate(f models.Favorite) error {
	if f.ID <= 0 || strings.TrimSpace(f.Name) == "" {
		return ErrInvalid
	}
	return nil
}

func stamp(f models.Favorite, now time.Time) models.Favorite {
	if f.AddedAt == 0 {
		f.AddedAt = now.UnixMilli()
	}
	if f.Types == nil {
		f.Types = []string{}
	}
	return f
}

// sortFavorites orders in place. Date is newest first; ties fall back to id.
func sortFavorites(list []models.Favorite, by SortBy) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch by {
		case SortName:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
		case SortID:
		default:
			if a.AddedAt != b.AddedAt {
				return a.AddedAt > b.AddedAt
			}
		}
		return a.ID < b.ID
	})
}

// TypeGroup is one bucket of GroupByType.
type TypeGroup struct {
	Type      string            `json:"type"`
	Favorites []models.Favorite `json:"favorites"`
}

// GroupByType buckets favorites by each of their types, with buckets in
// alphabetical order. A dual-type favorite appears in both buckets; tags
// outside the 18 battle types are dropped.
func GroupByType(list []models.Favorite) []TypeGroup {
	buckets := map[string][]models.Favorite{}
	for _, f := range list {
		for _, t := range f.Types {
			t = strings.ToLower(strings.TrimSpace(t))
			if !game.IsType(t) {
				continue
			}
			buckets[t] = append(buckets[t], f)
		}
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]TypeGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, TypeGroup{Type: k, Favorites: buckets[k]})
	}
	return out
}
