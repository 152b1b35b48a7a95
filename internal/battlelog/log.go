// Package battlelog records simulated battles so they can be fetched again
// by id. Records optionally persist as one JSON file each.
package battlelog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pefman/pokedex-duel/internal/game"
)

type Record struct {
	ID              string        `json:"id"`
	Created         int64         `json:"created"`
	A               string        `json:"a"`
	B               string        `json:"b"`
	Winner          string        `json:"winner,omitempty"`
	Loser           string        `json:"loser,omitempty"`
	Score           int           `json:"score"`
	WinProbabilityA int           `json:"win_probability_a"`
	Explanation     string        `json:"explanation"`
	Details         *game.Details `json:"details,omitempty"`
}

// FromResult flattens a battle result into a record. a and b are the
// requested names, kept even when a side failed to resolve.
func FromResult(a, b string, res game.Result) Record {
	rec := Record{
		A:               a,
		B:               b,
		Score:           res.Score,
		WinProbabilityA: res.WinProbabilityA,
		Explanation:     res.Explanation,
		Details:         res.Details,
	}
	if res.Winner != nil {
		rec.Winner = res.Winner.Name
	}
	if res.Loser != nil {
		rec.Loser = res.Loser.Name
	}
	return rec
}

// MaxCached bounds the in-memory records of a log that persists to disk.
const MaxCached = 1000

// Log is an in-memory battle log. With a non-empty dir every appended record
// is also written to disk, only the newest MaxCached stay in memory, and Get
// falls back to disk on a miss.
type Log struct {
	mu    sync.Mutex
	recs  map[string]*Record
	order []string // insertion order, oldest first; tracked only with a dir
	max   int
	dir   string
}

// New returns a log persisting under dir, or memory-only when dir is empty.
func New(dir string) (*Log, error) {
	dir = strings.TrimSpace(dir)
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create battle log dir: %w", err)
		}
	}
	return &Log{recs: map[string]*Record{}, dir: dir, max: MaxCached}, nil
}

// putLocked stores rec and, for a disk-backed log, evicts the oldest
// records beyond max. Callers hold l.mu.
func (l *Log) putLocked(rec *Record) {
	if _, ok := l.recs[rec.ID]; ok {
		l.recs[rec.ID] = rec
		return
	}
	l.recs[rec.ID] = rec
	if l.dir == "" {
		return
	}
	l.order = append(l.order, rec.ID)
	for len(l.order) > l.max {
		delete(l.recs, l.order[0])
		l.order = l.order[1:]
	}
}

// Append assigns an id and timestamp and stores rec.
func (l *Log) Append(rec Record) Record {
	rec.ID = uuid.NewString()
	rec.Created = time.Now().Unix()
	stored := rec
	if l.dir != "" {
		// on disk before it can be evicted from memory
		if err := l.save(&stored); err != nil {
			slog.Warn("battle log not persisted", "id", rec.ID, "error", err)
		}
	}
	l.mu.Lock()
	l.putLocked(&stored)
	l.mu.Unlock()
	return rec
}

// Get returns the record with id, loading it from disk if needed.
func (l *Log) Get(id string) (Record, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, false
	}
	l.mu.Lock()
	rec, ok := l.recs[id]
	l.mu.Unlock()
	if ok {
		return *rec, true
	}
	if l.dir == "" {
		return Record{}, false
	}
	loaded, err := l.load(id)
	if err != nil {
		return Record{}, false
	}
	l.mu.Lock()
	l.putLocked(loaded)
	l.mu.Unlock()
	return *loaded, true
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recs)
}

func sanitizeIDForFile(id string) string {
	// keep alnum, dash, underscore; replace others with '-'
	b := make([]rune, 0, len(id))
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b = append(b, r)
		} else {
			b = append(b, '-')
		}
	}
	out := strings.Trim(strings.ReplaceAll(string(b), "--", "-"), "-")
	if out == "" {
		out = "battle"
	}
	return out
}

func (l *Log) path(id string) string {
	return filepath.Join(l.dir, sanitizeIDForFile(id)+".json")
}

func (l *Log) save(rec *Record) error {
	path := l.path(rec.ID)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	// write atomically
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (l *Log) load(id string) (*Record, error) {
	data, err := os.ReadFile(l.path(id))
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	if rec.ID != id {
		return nil, fmt.Errorf("record id mismatch for %s", id)
	}
	return &rec, nil
}
