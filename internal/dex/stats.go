// Package dex holds the lookups the front end runs over Pokémon records:
// totals, search, filters and per-type groupings.
package dex

import (
	"fmt"

	"github.com/pefman/pokedex-duel/internal/models"
)

// BST sums every base stat on the record.
func BST(p *models.Pokemon) int {
	if p == nil {
		return 0
	}
	total := 0
	for _, s := range p.Stats {
		total += s.BaseStat
	}
	return total
}

// StrongestStat formats the highest base stat as "name: value". The first
// stat wins ties. Empty when the record has no stats.
func StrongestStat(p *models.Pokemon) string {
	if p == nil || len(p.Stats) == 0 {
		return ""
	}
	best := p.Stats[0]
	for _, s := range p.Stats[1:] {
		if s.BaseStat > best.BaseStat {
			best = s
		}
	}
	return fmt.Sprintf("%s: %d", best.Stat.Name, best.BaseStat)
}

// Annotate fills the computed fields on p in place.
func Annotate(p *models.Pokemon) *models.Pokemon {
	if p == nil {
		return nil
	}
	p.BST = BST(p)
	p.StrongestStat = StrongestStat(p)
	return p
}
