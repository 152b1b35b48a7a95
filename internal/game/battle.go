package game

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pefman/pokedex-duel/internal/models"
)

// Final score weights and probability mapping.
const (
	weightTotal   = 0.50
	weightSpeed   = 0.20
	weightOffense = 30
	weightDefense = 0.8

	probabilitySlope = 0.35
	minProbability   = 5
	maxProbability   = 95
	marginDivisor    = 5

	defaultSpeed = 50
)

// SimulateBattle predicts the winner between a and b from base stats and
// types. It never fails: a missing side yields a degenerate result.
func SimulateBattle(a, b *models.Pokemon) Result {
	if a == nil || b == nil {
		winner := a
		if winner == nil {
			winner = b
		}
		return Result{
			Winner:          winner,
			WinProbabilityA: 50,
			Explanation:     "Invalid input: both Pokémon are required to simulate a battle.",
		}
	}

	sa := side(a, b)
	sb := side(b, a)
	diff := sa.Final - sb.Final

	winner, loser := a, b
	if diff < 0 {
		winner, loser = b, a
	}
	prob := 50
	if diff != 0 {
		prob = clamp(minProbability, maxProbability, int(math.Round(50+diff*probabilitySlope)))
	}

	d := &Details{
		A:         sa,
		B:         sb,
		SpeedDiff: sa.Speed - sb.Speed,
		ScoreDiff: diff,
	}
	return Result{
		Winner:          winner,
		Loser:           loser,
		Score:           int(math.Round(math.Abs(diff) / marginDivisor)),
		WinProbabilityA: prob,
		Explanation:     explain(d, prob),
		Details:         d,
	}
}

func side(self, opp *models.Pokemon) SideDetails {
	s := SideDetails{Name: self.Name}
	for _, st := range self.Stats {
		s.Total += st.BaseStat
	}
	s.Speed = defaultSpeed
	if v, ok := self.BaseStat("speed"); ok {
		s.Speed = v
	}
	types := self.TypeNames()
	s.Offense = offensiveScore(types, opp.TypeNames())
	s.Defense = Defense(types)
	s.Final = float64(s.Total)*weightTotal +
		float64(s.Speed)*weightSpeed +
		s.Offense*weightOffense +
		float64(s.Defense.Score)*weightDefense
	return s
}

func explain(d *Details, prob int) string {
	title := cases.Title(language.English)
	na, nb := title.String(d.A.Name), title.String(d.B.Name)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s vs %s\n", na, nb)
	fmt.Fprintf(&sb, "Base stat total: %d vs %d\n", d.A.Total, d.B.Total)
	fmt.Fprintf(&sb, "Speed: %d vs %d (diff %+d)\n", d.A.Speed, d.B.Speed, d.SpeedDiff)
	fmt.Fprintf(&sb, "Offensive type multiplier: %.2fx vs %.2fx (%s vs %s)\n",
		d.A.Offense, d.B.Offense, offenseLabel(d.A.Offense), offenseLabel(d.B.Offense))
	fmt.Fprintf(&sb, "Defensive type score: %d (%d res, %d imm, %d weak) vs %d (%d res, %d imm, %d weak)\n",
		d.A.Defense.Score, d.A.Defense.Resistances, d.A.Defense.Immunities, d.A.Defense.Weaknesses,
		d.B.Defense.Score, d.B.Defense.Resistances, d.B.Defense.Immunities, d.B.Defense.Weaknesses)
	fmt.Fprintf(&sb, "Final score: %.1f vs %.1f\n", d.A.Final, d.B.Final)
	switch {
	case d.ScoreDiff == 0:
		sb.WriteString("Dead even\n")
	case d.ScoreDiff > 0:
		fmt.Fprintf(&sb, "%s is favored\n", na)
	default:
		fmt.Fprintf(&sb, "%s is favored\n", nb)
	}
	fmt.Fprintf(&sb, "Win probability for %s: %d%%", na, prob)
	return sb.String()
}

func offenseLabel(m float64) string {
	if l := EffectivenessLabel(m); l != "" {
		return l
	}
	return "neutral"
}
