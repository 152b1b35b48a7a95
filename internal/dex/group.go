package dex

import (
	"github.com/pefman/pokedex-duel/internal/game"
	"github.com/pefman/pokedex-duel/internal/models"
)

// GroupByType buckets records under each of the 18 types. Dual-type records
// appear in both buckets; every type is present even when empty.
func GroupByType(list []*models.Pokemon) map[string][]*models.Pokemon {
	grouped := make(map[string][]*models.Pokemon, 18)
	for _, t := range game.Types() {
		grouped[t] = []*models.Pokemon{}
	}
	for _, p := range list {
		if p == nil {
			continue
		}
		for _, t := range p.TypeNames() {
			if _, ok := grouped[t]; ok {
				grouped[t] = append(grouped[t], p)
			}
		}
	}
	return grouped
}

// StrongestPerType picks the highest-BST member of each non-empty group.
// The earlier record wins ties.
func StrongestPerType(grouped map[string][]*models.Pokemon) map[string]*models.Pokemon {
	out := map[string]*models.Pokemon{}
	for t, members := range grouped {
		if len(members) == 0 {
			continue
		}
		best := members[0]
		for _, p := range members[1:] {
			if BST(p) > BST(best) {
				best = p
			}
		}
		out[t] = best
	}
	return out
}
