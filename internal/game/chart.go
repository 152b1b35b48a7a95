package game

import "strings"

// allTypes is the canonical type order.
var allTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// typeChart maps attacking type -> defending type -> multiplier.
// Pairs not listed are neutral (1).
var typeChart = map[string]map[string]float64{
	"normal": {
		"rock": 0.5, "ghost": 0, "steel": 0.5,
	},
	"fire": {
		"fire": 0.5, "water": 0.5, "grass": 2, "ice": 2, "bug": 2, "rock": 0.5, "dragon": 0.5, "steel": 2,
	},
	"water": {
		"fire": 2, "water": 0.5, "grass": 0.5, "ground": 2, "rock": 2, "dragon": 0.5,
	},
	"electric": {
		"water": 2, "electric": 0.5, "grass": 0.5, "ground": 0, "flying": 2, "dragon": 0.5,
	},
	"grass": {
		"fire": 0.5, "water": 2, "grass": 0.5, "poison": 0.5, "ground": 2, "flying": 0.5, "bug": 0.5, "rock": 2, "dragon": 0.5, "steel": 0.5,
	},
	"ice": {
		"fire": 0.5, "water": 0.5, "grass": 2, "ice": 0.5, "ground": 2, "flying": 2, "dragon": 2, "steel": 0.5,
	},
	"fighting": {
		"normal": 2, "ice": 2, "poison": 0.5, "flying": 0.5, "psychic": 0.5, "bug": 0.5, "rock": 2, "ghost": 0, "dark": 2, "steel": 2, "fairy": 0.5,
	},
	"poison": {
		"grass": 2, "poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0, "fairy": 2,
	},
	"ground": {
		"fire": 2, "electric": 2, "grass": 0.5, "poison": 2, "flying": 0, "bug": 0.5, "rock": 2, "steel": 2,
	},
	"flying": {
		"electric": 0.5, "grass": 2, "fighting": 2, "bug": 2, "rock": 0.5, "steel": 0.5,
	},
	"psychic": {
		"fighting": 2, "poison": 2, "psychic": 0.5, "dark": 0, "steel": 0.5,
	},
	"bug": {
		"fire": 0.5, "grass": 2, "fighting": 0.5, "poison": 0.5, "flying": 0.5, "psychic": 2, "ghost": 0.5, "dark": 2, "steel": 0.5, "fairy": 0.5,
	},
	"rock": {
		"fire": 2, "ice": 2, "fighting": 0.5, "ground": 0.5, "flying": 2, "bug": 2, "steel": 0.5,
	},
	"ghost": {
		"normal": 0, "psychic": 2, "ghost": 2, "dark": 0.5,
	},
	"dragon": {
		"dragon": 2, "steel": 0.5, "fairy": 0,
	},
	"dark": {
		"fighting": 0.5, "psychic": 2, "ghost": 2, "dark": 0.5, "fairy": 0.5,
	},
	"steel": {
		"fire": 0.5, "water": 0.5, "electric": 0.5, "ice": 2, "rock": 2, "steel": 0.5, "fairy": 2,
	},
	"fairy": {
		"fire": 0.5, "fighting": 2, "poison": 0.5, "dragon": 2, "dark": 2, "steel": 0.5,
	},
}

// Types returns the 18 type tags in canonical order.
func Types() []string {
	out := make([]string, len(allTypes))
	copy(out, allTypes)
	return out
}

// IsType reports whether name is one of the 18 known types.
func IsType(name string) bool {
	_, ok := typeChart[normType(name)]
	return ok
}

func normType(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Effectiveness returns the multiplier of an attacking type against a single
// defending type. Unknown pairs are neutral.
func Effectiveness(attacking, defending string) float64 {
	if m, ok := typeChart[normType(attacking)]; ok {
		if v, ok := m[normType(defending)]; ok {
			return v
		}
	}
	return 1
}

// Multiplier chains Effectiveness over every defending type.
func Multiplier(attacking string, defending []string) float64 {
	eff := 1.0
	for _, t := range defending {
		eff *= Effectiveness(attacking, t)
	}
	return eff
}

// EffectivenessLabel describes a multiplier the way battle text does.
func EffectivenessLabel(m float64) string {
	switch {
	case m == 0:
		return "no effect"
	case m < 1:
		return "not very effective"
	case m > 1:
		return "super-effective"
	default:
		return ""
	}
}

// offensiveScore averages the multiplier over every attacker type x
// defender type pair. No pairs means neutral.
func offensiveScore(attacker, defender []string) float64 {
	if len(attacker) == 0 || len(defender) == 0 {
		return 1
	}
	sum := 0.0
	for _, a := range attacker {
		for _, d := range defender {
			sum += Effectiveness(a, d)
		}
	}
	return sum / float64(len(attacker)*len(defender))
}

// Defense classifies each attacking type against the given type
// combination and folds the counts into a bounded score.
func Defense(types []string) DefenseProfile {
	var p DefenseProfile
	for _, atk := range allTypes {
		m := Multiplier(atk, types)
		switch {
		case m == 0:
			p.Immunities++
		case m < 1:
			p.Resistances++
		case m > 1:
			p.Weaknesses++
		}
	}
	p.Score = clamp(10, 120, 50+3*p.Resistances+6*p.Immunities-4*p.Weaknesses)
	return p
}

func clamp(min, max, v int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
