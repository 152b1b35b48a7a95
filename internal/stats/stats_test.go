package stats

import (
	"testing"
	"time"
)

func TestDailyKeepsLargestMargin(t *testing.T) {
	d := NewDaily()
	now := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	if _, ok := d.Today(); ok {
		t.Fatalf("new tracker should be empty")
	}
	tests := []struct {
		b    Battle
		kept bool
	}{
		{Battle{Winner: "squirtle", Loser: "charmander", Score: 9}, true},
		{Battle{Winner: "pikachu", Loser: "onix", Score: 4}, false},
		{Battle{Winner: "eevee", Loser: "ditto", Score: 9}, false},
		{Battle{Winner: "mewtwo", Loser: "magikarp", Score: 40}, true},
		{Battle{Winner: "", Loser: "magikarp", Score: 99}, false},
	}
	for _, tt := range tests {
		if got := d.Record(tt.b); got != tt.kept {
			t.Errorf("Record(%+v) = %v, want %v", tt.b, got, tt.kept)
		}
	}
	best, ok := d.Today()
	if !ok || best.Winner != "mewtwo" || best.At != now.Unix() {
		t.Fatalf("Today = %+v, %v", best, ok)
	}

	now = now.Add(2 * time.Hour)
	if _, ok := d.Today(); ok {
		t.Fatalf("a new UTC day starts empty")
	}
	if !d.Record(Battle{Winner: "a", Loser: "b", Score: 1}) {
		t.Fatalf("first battle of the day should be kept")
	}
	if len(d.best) != 1 {
		t.Fatalf("previous days should be dropped, have %d", len(d.best))
	}
}
