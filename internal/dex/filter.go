package dex

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/pefman/pokedex-duel/internal/models"
)

// FilterEnv is the record view a filter expression is evaluated against,
// e.g. `bst >= 500 and "dragon" in types`.
type FilterEnv struct {
	ID             int      `expr:"id"`
	Name           string   `expr:"name"`
	BST            int      `expr:"bst"`
	Types          []string `expr:"types"`
	Abilities      []string `expr:"abilities"`
	HP             int      `expr:"hp"`
	Attack         int      `expr:"attack"`
	Defense        int      `expr:"defense"`
	SpecialAttack  int      `expr:"special_attack"`
	SpecialDefense int      `expr:"special_defense"`
	Speed          int      `expr:"speed"`
}

func envFor(p *models.Pokemon) FilterEnv {
	env := FilterEnv{ID: p.ID, Name: p.Name, BST: BST(p), Types: p.TypeNames()}
	for _, a := range p.Abilities {
		env.Abilities = append(env.Abilities, a.Ability.Name)
	}
	for _, s := range p.Stats {
		switch s.Stat.Name {
		case "hp":
			env.HP = s.BaseStat
		case "attack":
			env.Attack = s.BaseStat
		case "defense":
			env.Defense = s.BaseStat
		case "special-attack":
			env.SpecialAttack = s.BaseStat
		case "special-defense":
			env.SpecialDefense = s.BaseStat
		case "speed":
			env.Speed = s.BaseStat
		}
	}
	return env
}

// Filter is a compiled boolean expression over FilterEnv.
type Filter struct {
	program *vm.Program
}

// CompileFilter compiles src once; the result is safe to reuse.
func CompileFilter(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty filter")
	}
	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &Filter{program: program}, nil
}

// Match evaluates the filter against p. Runtime errors count as no match.
func (f *Filter) Match(p *models.Pokemon) bool {
	if f == nil || p == nil {
		return false
	}
	out, err := expr.Run(f.program, envFor(p))
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

// Apply keeps the records that match, preserving order.
func (f *Filter) Apply(list []*models.Pokemon) []*models.Pokemon {
	out := []*models.Pokemon{}
	for _, p := range list {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
