// Package stats tracks the most decisive battle of each UTC day.
package stats

import (
	"sync"
	"time"
)

// Battle is the summary kept for a day's record holder.
type Battle struct {
	ID              string `json:"id,omitempty"`
	Winner          string `json:"winner"`
	Loser           string `json:"loser"`
	Score           int    `json:"score"`
	WinProbabilityA int    `json:"win_probability_a"`
	At              int64  `json:"at"`
}

// Daily keeps, per UTC date, the battle with the largest margin. Ties keep
// the earlier battle.
type Daily struct {
	mu   sync.Mutex
	best map[string]Battle // key: YYYY-MM-DD
	now  func() time.Time
}

func NewDaily() *Daily {
	return &Daily{best: map[string]Battle{}, now: time.Now}
}

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// Record offers b for today and reports whether it became the day's best.
// Battles without both sides are ignored.
func (d *Daily) Record(b Battle) bool {
	if b.Winner == "" || b.Loser == "" {
		return false
	}
	now := d.now()
	if b.At == 0 {
		b.At = now.Unix()
	}
	key := dateKey(now)
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := d.best[key]
	if ok && b.Score <= cur.Score {
		return false
	}
	d.best[key] = b
	// older days are never read again
	for k := range d.best {
		if k != key {
			delete(d.best, k)
		}
	}
	return true
}

// Today returns today's best battle, if any.
func (d *Daily) Today() (Battle, bool) {
	key := dateKey(d.now())
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.best[key]
	return b, ok
}
