// Package storage provides SQLite-based persistence for saved grids, autoplay
// runs and tutorial progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/matchgrid/internal/grid"
)

// Store manages the SQLite database connection.
// Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// SavedGrid is a named grid snapshot in the binary save format.
type SavedGrid struct {
	ID        int64
	Name      string
	Layout    string
	Seed      int64
	Blob      []byte
	Size      int // Blob length, set by ListSaves which leaves Blob empty
	CreatedAt time.Time
}

// RunEntry is the result of one autoplay session.
type RunEntry struct {
	ID        int64
	Seed      int64
	Layout    string
	Turns     int
	Score     int
	Cascades  int
	Stuck     bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			layout TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			blob BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			layout TEXT NOT NULL,
			turns INTEGER NOT NULL,
			score INTEGER NOT NULL,
			cascades INTEGER NOT NULL DEFAULT 0,
			stuck INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(layout, score DESC);

		CREATE TABLE IF NOT EXISTS tutorial (
			power_id INTEGER PRIMARY KEY
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGrid stores the grid under name, replacing an earlier save of the same name.
func (s *Store) SaveGrid(name string, g *grid.Grid, seed int64) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("storage: save name is empty")
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (name, layout, seed, blob) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   layout = excluded.layout, seed = excluded.seed, blob = excluded.blob,
		   created_at = CURRENT_TIMESTAMP`,
		name, g.Layout().String(), seed, g.Save(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save grid: %w", err)
	}

	// LastInsertId is not reliable after an upsert that updated.
	var id int64
	if err := s.db.QueryRow("SELECT id FROM saves WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get save ID: %w", err)
	}
	return id, nil
}

// LoadGrid retrieves a save by name. It returns nil if no save exists.
func (s *Store) LoadGrid(name string) (*SavedGrid, error) {
	var sg SavedGrid
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, name, layout, seed, blob, created_at FROM saves WHERE name = ?`,
		name,
	).Scan(&sg.ID, &sg.Name, &sg.Layout, &sg.Seed, &sg.Blob, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	sg.Size = len(sg.Blob)
	sg.CreatedAt = parseTime(createdAt)
	return &sg, nil
}

// Restore loads a save into g. The grid is left untouched on error.
func (s *Store) Restore(name string, g *grid.Grid) (*SavedGrid, error) {
	sg, err := s.LoadGrid(name)
	if err != nil {
		return nil, err
	}
	if sg == nil {
		return nil, fmt.Errorf("storage: no save named %q", name)
	}
	if err := g.Load(sg.Blob); err != nil {
		return nil, fmt.Errorf("storage: save %q: %w", name, err)
	}
	return sg, nil
}

// ListSaves returns every save without its blob, newest first.
func (s *Store) ListSaves() ([]SavedGrid, error) {
	rows, err := s.db.Query(
		`SELECT id, name, layout, seed, length(blob), created_at
		 FROM saves
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SavedGrid
	for rows.Next() {
		var sg SavedGrid
		var createdAt any
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.Layout, &sg.Seed, &sg.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sg.CreatedAt = parseTime(createdAt)
		saves = append(saves, sg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a save. Deleting a missing save is not an error.
func (s *Store) DeleteSave(name string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// RecordRun stores an autoplay result.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (seed, layout, turns, score, cascades, stuck)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Seed, run.Layout, run.Turns, run.Score, run.Cascades, run.Stuck,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best runs. An empty layout matches every layout.
// Results are ordered by score descending.
func (s *Store) TopRuns(layout string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, layout, turns, score, cascades, stuck, created_at
		 FROM runs
		 WHERE ? = '' OR layout = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		layout, layout, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Layout, &r.Turns, &r.Score, &r.Cascades, &r.Stuck, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestScore returns the highest run score for a layout, or across all
// layouts when layout is empty. Returns 0 if no runs exist.
func (s *Store) BestScore(layout string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR layout = ?",
		layout, layout,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// MarkTutorial records power types whose hint was shown.
func (s *Store) MarkTutorial(ids []grid.TypeID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.Exec("INSERT OR IGNORE INTO tutorial (power_id) VALUES (?)", int64(id)); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot mark tutorial: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit tutorial: %w", err)
	}
	return nil
}

// TutorialShown returns the power types whose hint was shown, ascending.
func (s *Store) TutorialShown() ([]grid.TypeID, error) {
	rows, err := s.db.Query("SELECT power_id FROM tutorial ORDER BY power_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tutorial: %w", err)
	}
	defer rows.Close()

	var ids []grid.TypeID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, grid.TypeID(id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
