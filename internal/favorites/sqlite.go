package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pefman/pokedex-duel/internal/models"
)

// SQLite stores favorites in a single table keyed by (owner, id).
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open favorites db: %w", err)
	}
	// one writer keeps sqlite from returning SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping favorites db: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS favorites (
		owner TEXT NOT NULL,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		types TEXT NOT NULL DEFAULT '[]',
		added_at INTEGER NOT NULL,
		PRIMARY KEY (owner, id)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) List(ctx context.Context, owner string, by SortBy) ([]models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, image_url, types, added_at FROM favorites WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := []models.Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	sortFavorites(out, by)
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row scanner) (models.Favorite, error) {
	var (
		f     models.Favorite
		types string
	)
	if err := row.Scan(&f.ID, &f.Name, &f.ImageURL, &types, &f.AddedAt); err != nil {
		return f, fmt.Errorf("scan favorite: %w", err)
	}
	if err := json.Unmarshal([]byte(types), &f.Types); err != nil || f.Types == nil {
		f.Types = []string{}
	}
	return f, nil
}

func (s *SQLite) Add(ctx context.Context, owner string, f models.Favorite) (models.Favorite, bool, error) {
	if err := validate(f); err != nil {
		return f, false, err
	}
	stored, added, err := s.insert(ctx, s.db, owner, f)
	if err != nil || added {
		return stored, added, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, image_url, types, added_at FROM favorites WHERE owner = ? AND id = ?`, owner, f.ID)
	stored, err = scanFavorite(row)
	return stored, false, err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLite) insert(ctx context.Context, ex execer, owner string, f models.Favorite) (models.Favorite, bool, error) {
	f = stamp(f, s.now())
	types, err := json.Marshal(f.Types)
	if err != nil {
		return f, false, fmt.Errorf("encode types: %w", err)
	}
	res, err := ex.ExecContext(ctx,
		`INSERT INTO favorites (owner, id, name, image_url, types, added_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(owner, id) DO NOTHING`,
		owner, f.ID, f.Name, f.ImageURL, string(types), f.AddedAt)
	if err != nil {
		return f, false, fmt.Errorf("add favorite: %w", err)
	}
	n, _ := res.RowsAffected()
	return f, n > 0, nil
}

func (s *SQLite) Remove(ctx context.Context, owner string, id int) (bool, error) {
	return s.remove(ctx, s.db, owner, id)
}

func (s *SQLite) remove(ctx context.Context, ex execer, owner string, id int) (bool, error) {
	res, err := ex.ExecContext(ctx, `DELETE FROM favorites WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *SQLite) Toggle(ctx context.Context, owner string, f models.Favorite) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	removed, err := s.remove(ctx, tx, owner, f.ID)
	if err != nil {
		return false, err
	}
	added := false
	if !removed {
		if err := validate(f); err != nil {
			return false, err
		}
		if _, added, err = s.insert(ctx, tx, owner, f); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit toggle: %w", err)
	}
	return added, nil
}

func (s *SQLite) Clear(ctx context.Context, owner string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE owner = ?`, owner); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

func (s *SQLite) Count(ctx context.Context, owner string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE owner = ?`, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

func (s *SQLite) IsFavorite(ctx context.Context, owner string, id int) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM favorites WHERE owner = ? AND id = ?`, owner, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup favorite: %w", err)
	}
	return true, nil
}
