package favorites

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pefman/pokedex-duel/internal/models"
)

// clock returns a now func that advances one second per call.
func clock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	mem := NewMemory()
	mem.now = clock()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	db.now = clock()
	t.Cleanup(func() { db.Close() })
	return map[string]Store{"memory": mem, "sqlite": db}
}

var (
	bulbasaur = models.Favorite{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}}
	pikachu   = models.Favorite{ID: 25, Name: "Pikachu", Types: []string{"electric"}}
	eevee     = models.Favorite{ID: 133, Name: "eevee", Types: []string{"normal"}}
)

func names(list []models.Favorite) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStoreAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			first, added, err := s.Add(ctx, "ash", pikachu)
			if err != nil || !added {
				t.Fatalf("first Add = %v, %v", added, err)
			}
			if first.AddedAt == 0 || first.Name != "Pikachu" {
				t.Fatalf("Add should return the stamped entry, got %+v", first)
			}
			second, added, err := s.Add(ctx, "ash", pikachu)
			if err != nil || added {
				t.Fatalf("second Add = %v, %v", added, err)
			}
			if second.AddedAt != first.AddedAt {
				t.Fatalf("duplicate Add should return the stored entry: %d != %d", second.AddedAt, first.AddedAt)
			}
			if n, _ := s.Count(ctx, "ash"); n != 1 {
				t.Fatalf("Count = %d, want 1", n)
			}
			list, _ := s.List(ctx, "ash", SortDate)
			if list[0].AddedAt == 0 || list[0].Types[0] != "electric" {
				t.Fatalf("stored entry incomplete: %+v", list[0])
			}
		})
	}
}

func TestStoreSorting(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, f := range []models.Favorite{pikachu, eevee, bulbasaur} {
				if _, _, err := s.Add(ctx, "ash", f); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}
			tests := []struct {
				by   SortBy
				want []string
			}{
				{SortDate, []string{"bulbasaur", "eevee", "Pikachu"}},
				{SortName, []string{"bulbasaur", "eevee", "Pikachu"}},
				{SortID, []string{"bulbasaur", "Pikachu", "eevee"}},
			}
			for _, tt := range tests {
				list, err := s.List(ctx, "ash", tt.by)
				if err != nil {
					t.Fatalf("List: %v", err)
				}
				if got := names(list); !equal(got, tt.want) {
					t.Errorf("List(%s) = %v, want %v", tt.by, got, tt.want)
				}
			}
		})
	}
}

func TestStoreToggleRemoveClear(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			on, err := s.Toggle(ctx, "ash", eevee)
			if err != nil || !on {
				t.Fatalf("Toggle on = %v, %v", on, err)
			}
			if ok, _ := s.IsFavorite(ctx, "ash", eevee.ID); !ok {
				t.Fatalf("eevee should be a favorite")
			}
			on, err = s.Toggle(ctx, "ash", models.Favorite{ID: eevee.ID})
			if err != nil || on {
				t.Fatalf("Toggle off = %v, %v", on, err)
			}
			s.Add(ctx, "ash", bulbasaur)
			s.Add(ctx, "misty", pikachu)
			if removed, _ := s.Remove(ctx, "ash", pikachu.ID); removed {
				t.Fatalf("owners must not see each other's entries")
			}
			if removed, _ := s.Remove(ctx, "ash", bulbasaur.ID); !removed {
				t.Fatalf("Remove should report the deletion")
			}
			if err := s.Clear(ctx, "misty"); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if n, _ := s.Count(ctx, "misty"); n != 0 {
				t.Fatalf("Count after Clear = %d", n)
			}
			list, err := s.List(ctx, "nobody", SortDate)
			if err != nil || list == nil || len(list) != 0 {
				t.Fatalf("empty owner should list [] , got %v, %v", list, err)
			}
		})
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, f := range []models.Favorite{{ID: 0, Name: "x"}, {ID: 3, Name: "  "}} {
				if _, _, err := s.Add(ctx, "ash", f); !errors.Is(err, ErrInvalid) {
					t.Errorf("Add(%+v) err = %v, want ErrInvalid", f, err)
				}
				if _, err := s.Toggle(ctx, "ash", f); !errors.Is(err, ErrInvalid) {
					t.Errorf("Toggle(%+v) err = %v, want ErrInvalid", f, err)
				}
			}
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, _, err := db.Add(ctx, "ash", bulbasaur); err != nil {
		t.Fatalf("Add: %v", err)
	}
	db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	list, err := db.List(ctx, "ash", SortDate)
	if err != nil || len(list) != 1 || list[0].Types[1] != "poison" {
		t.Fatalf("reopened list = %+v, %v", list, err)
	}
}

func TestGroupByType(t *testing.T) {
	groups := GroupByType([]models.Favorite{pikachu, bulbasaur, eevee})
	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Type)
	}
	if want := []string{"electric", "grass", "normal", "poison"}; !equal(keys, want) {
		t.Fatalf("group keys = %v, want %v", keys, want)
	}
	if groups[1].Favorites[0].Name != "bulbasaur" || groups[3].Favorites[0].Name != "bulbasaur" {
		t.Fatalf("dual-type favorite should appear in both buckets")
	}
	odd := models.Favorite{ID: 999, Name: "oddity", Types: []string{" Fire ", "shadow", "unknown"}}
	groups = GroupByType([]models.Favorite{odd})
	if len(groups) != 1 || groups[0].Type != "fire" {
		t.Fatalf("unknown type tags should be dropped, got %+v", groups)
	}
	if len(GroupByType(nil)) != 0 {
		t.Fatalf("no favorites, no groups")
	}
}

func TestParseSort(t *testing.T) {
	tests := map[string]SortBy{"": SortDate, "NAME": SortName, "id": SortID, "bogus": SortDate}
	for in, want := range tests {
		if got := ParseSort(in); got != want {
			t.Errorf("ParseSort(%q) = %s, want %s", in, got, want)
		}
	}
}
