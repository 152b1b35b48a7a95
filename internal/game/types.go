package game

import "github.com/pefman/pokedex-duel/internal/models"

// DefenseProfile summarizes how a type combination holds up against every
// attacking type.
type DefenseProfile struct {
	Score       int `json:"score"`
	Resistances int `json:"resistances"`
	Immunities  int `json:"immunities"`
	Weaknesses  int `json:"weaknesses"`
}

// SideDetails captures the intermediate figures for one combatant.
type SideDetails struct {
	Name    string         `json:"name"`
	Total   int            `json:"total"`
	Speed   int            `json:"speed"`
	Offense float64        `json:"offense"` // mean type multiplier against the opponent
	Defense DefenseProfile `json:"defense"`
	Final   float64        `json:"final"`
}

// Details is the structured breakdown behind a Result.
type Details struct {
	A         SideDetails `json:"a"`
	B         SideDetails `json:"b"`
	SpeedDiff int         `json:"speed_diff"` // A minus B
	ScoreDiff float64     `json:"score_diff"` // A minus B
}

// Result is the outcome of SimulateBattle. Winner and Loser point at the
// records passed in, not copies.
type Result struct {
	Winner          *models.Pokemon `json:"-"`
	Loser           *models.Pokemon `json:"-"`
	Score           int             `json:"score"`
	WinProbabilityA int             `json:"win_probability_a"`
	Explanation     string          `json:"explanation"`
	Details         *Details        `json:"details,omitempty"`
}

// Outcome is the reduced winner/loser/margin view of a Result.
type Outcome struct {
	Winner *models.Pokemon
	Loser  *models.Pokemon
	Score  int
}

func (r Result) Outcome() Outcome {
	return Outcome{Winner: r.Winner, Loser: r.Loser, Score: r.Score}
}

// Valid reports whether both sides were present.
func (r Result) Valid() bool { return r.Details != nil }
