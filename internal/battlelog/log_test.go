package battlelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/pefman/pokedex-duel/internal/game"
	"github.com/pefman/pokedex-duel/internal/models"
)

func battle() game.Result {
	mk := func(name, typ string) *models.Pokemon {
		p := &models.Pokemon{Name: name, Types: []models.TypeSlot{{Type: models.NamedResource{Name: typ}}}}
		for _, s := range []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"} {
			p.Stats = append(p.Stats, models.Stat{BaseStat: 50, Stat: models.NamedResource{Name: s}})
		}
		return p
	}
	return game.SimulateBattle(mk("charmander", "fire"), mk("squirtle", "water"))
}

func TestFromResult(t *testing.T) {
	rec := FromResult("charmander", "squirtle", battle())
	if rec.Winner != "squirtle" || rec.Loser != "charmander" || rec.WinProbabilityA != 35 || rec.Details == nil {
		t.Fatalf("unexpected record: %+v", rec)
	}
	invalid := FromResult("charmander", "missingno", game.SimulateBattle(nil, nil))
	if invalid.Winner != "" || invalid.Loser != "" || invalid.B != "missingno" {
		t.Fatalf("unexpected invalid record: %+v", invalid)
	}
}

func TestAppendAndGet(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := l.Append(FromResult("charmander", "squirtle", battle()))
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Fatalf("id is not a uuid: %q", rec.ID)
	}
	if rec.Created == 0 {
		t.Fatalf("created not stamped")
	}
	got, ok := l.Get(rec.ID)
	if !ok || got.Winner != "squirtle" {
		t.Fatalf("Get = %+v, %v", got, ok)
	}
	if _, ok := l.Get("nope"); ok {
		t.Fatalf("unknown id should miss")
	}
	if _, ok := l.Get("  "); ok {
		t.Fatalf("blank id should miss")
	}
}

func TestPersistAndLazyLoad(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := l.Append(FromResult("charmander", "squirtle", battle()))
	if _, err := os.Stat(filepath.Join(dir, rec.ID+".json")); err != nil {
		t.Fatalf("record not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, rec.ID+".json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}

	fresh, _ := New(dir)
	if fresh.Len() != 0 {
		t.Fatalf("fresh log should start empty")
	}
	got, ok := fresh.Get(rec.ID)
	if !ok || got.Score != rec.Score || got.Details == nil {
		t.Fatalf("lazy load = %+v, %v", got, ok)
	}
	if fresh.Len() != 1 {
		t.Fatalf("loaded record should be cached")
	}
}

func TestDiskBackedLogEvictsOldest(t *testing.T) {
	l, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.max = 3
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, l.Append(FromResult("charmander", "squirtle", battle())).ID)
	}
	if n := l.Len(); n != 3 {
		t.Fatalf("in-memory records = %d, want 3", n)
	}
	l.mu.Lock()
	_, cached := l.recs[ids[0]]
	l.mu.Unlock()
	if cached {
		t.Fatalf("oldest record should have been evicted")
	}
	got, ok := l.Get(ids[0])
	if !ok || got.ID != ids[0] {
		t.Fatalf("evicted record should reload from disk: %+v, %v", got, ok)
	}
	if n := l.Len(); n != 3 {
		t.Fatalf("reload should keep the cap, have %d", n)
	}
}

func TestMemoryLogKeepsEverything(t *testing.T) {
	l, _ := New("")
	l.max = 2
	for i := 0; i < 5; i++ {
		l.Append(FromResult("charmander", "squirtle", battle()))
	}
	if n := l.Len(); n != 5 {
		t.Fatalf("memory-only log has no disk fallback and must keep all records, have %d", n)
	}
}

func TestSanitizeIDForFile(t *testing.T) {
	tests := map[string]string{
		"abc-123":       "abc-123",
		"../../etc/pwd": "etc-pwd",
		"///":           "battle",
	}
	for in, want := range tests {
		if got := sanitizeIDForFile(in); got != want {
			t.Errorf("sanitizeIDForFile(%q) = %q, want %q", in, got, want)
		}
	}
}
