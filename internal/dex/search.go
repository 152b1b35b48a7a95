package dex

import (
	"strings"

	"github.com/pefman/pokedex-duel/internal/models"
)

const (
	MinQueryLen        = 2
	DefaultSearchLimit = 60
)

// Search matches query against names, type names and ability names
// (hyphens read as spaces). Queries shorter than MinQueryLen match nothing.
func Search(list []*models.Pokemon, query string, limit int) []*models.Pokemon {
	term := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(term)) < MinQueryLen {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	out := []*models.Pokemon{}
	for _, p := range list {
		if p == nil {
			continue
		}
		if matches(p, term) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func matches(p *models.Pokemon, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	for _, t := range p.Types {
		if strings.Contains(strings.ToLower(t.Type.Name), term) {
			return true
		}
	}
	for _, a := range p.Abilities {
		name := strings.ReplaceAll(strings.ToLower(a.Ability.Name), "-", " ")
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}
