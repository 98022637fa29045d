// Package storage provides SQLite-based persistence for progress, attempt
// history and player-added stages.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/progress"
	"github.com/vovakirdan/tiletwist/internal/stages"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Attempt is one finished play of a stage.
type Attempt struct {
	ID        int64
	Player    string
	StageID   string
	Mode      string
	Elapsed   time.Duration
	Moves     int
	Solved    bool
	EndReason string // "solved", "time", "moves", "abandoned"
	CreatedAt time.Time
}

// CustomStage is a stage added by the player.
type CustomStage struct {
	ID        string
	Name      string
	Mode      string
	Source    string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
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
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			stage_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			solved INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_stage ON attempts(stage_id);
		CREATE INDEX IF NOT EXISTS idx_attempts_best ON attempts(stage_id, solved, elapsed_ms);

		CREATE TABLE IF NOT EXISTS custom_stages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			mode TEXT NOT NULL,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// Get implements progress.KV.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements progress.KV.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// Ensure Store implements progress.KV
var _ progress.KV = (*Store)(nil)

// SaveAttempt records a finished attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveAttempt(a Attempt) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO attempts (player, stage_id, mode, elapsed_ms, moves, solved, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Player, a.StageID, a.Mode, a.Elapsed.Milliseconds(), a.Moves, a.Solved, a.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopTimes retrieves the fastest solved attempts for a stage.
// An empty stageID means every stage.
func (s *Store) TopTimes(stageID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, stage_id, mode, elapsed_ms, moves, solved, end_reason, created_at
		 FROM attempts
		 WHERE solved = 1 AND (? = '' OR stage_id = ?)
		 ORDER BY elapsed_ms ASC, moves ASC, id ASC
		 LIMIT ?`,
		stageID, stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var entries []Attempt
	for rows.Next() {
		var a Attempt
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&a.ID, &a.Player, &a.StageID, &a.Mode, &elapsedMS, &a.Moves, &a.Solved, &a.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		a.CreatedAt = parseTime(createdAt)
		entries = append(entries, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTime returns the fastest solve of a stage; ok is false when the stage
// has never been solved.
func (s *Store) BestTime(stageID string) (time.Duration, bool, error) {
	var ms sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(elapsed_ms) FROM attempts WHERE stage_id = ? AND solved = 1",
		stageID,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// ClearAttempts deletes the attempt history of a stage.
func (s *Store) ClearAttempts(stageID string) error {
	_, err := s.db.Exec("DELETE FROM attempts WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear attempts: %w", err)
	}
	return nil
}

// StageStats contains aggregated statistics for a stage.
type StageStats struct {
	StageID    string
	Attempts   int
	Solves     int
	BestTime   time.Duration
	AvgMoves   float64
	LastPlayed time.Time
}

// SolveRate returns solves/attempts as 0..1.
func (st StageStats) SolveRate() float64 {
	if st.Attempts == 0 {
		return 0
	}
	return float64(st.Solves) / float64(st.Attempts)
}

// AllStageStats retrieves statistics for every stage that has been played.
func (s *Store) AllStageStats() (map[string]*StageStats, error) {
	rows, err := s.db.Query(
		`SELECT stage_id, COUNT(*), COALESCE(SUM(solved), 0),
		        COALESCE(MIN(CASE WHEN solved = 1 THEN elapsed_ms END), 0),
		        COALESCE(AVG(CASE WHEN solved = 1 THEN moves END), 0),
		        MAX(created_at)
		 FROM attempts
		 GROUP BY stage_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StageStats)
	for rows.Next() {
		var st StageStats
		var bestMS int64
		var lastPlayed any
		if err := rows.Scan(&st.StageID, &st.Attempts, &st.Solves, &bestMS, &st.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = time.Duration(bestMS) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.StageID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// AddCustomStage stores a player-added stage. Ids must be unique.
func (s *Store) AddCustomStage(cs CustomStage) error {
	_, err := s.db.Exec(
		"INSERT INTO custom_stages (id, name, mode, source) VALUES (?, ?, ?, ?)",
		cs.ID, cs.Name, cs.Mode, cs.Source,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot add stage %q: %w", cs.ID, err)
	}
	return nil
}

// CustomStages lists player-added stages, oldest first.
func (s *Store) CustomStages() ([]CustomStage, error) {
	rows, err := s.db.Query(
		`SELECT id, name, mode, source, created_at
		 FROM custom_stages
		 ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query custom stages: %w", err)
	}
	defer rows.Close()

	var out []CustomStage
	for rows.Next() {
		var cs CustomStage
		var createdAt any
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.Mode, &cs.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		cs.CreatedAt = parseTime(createdAt)
		out = append(out, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// DeleteCustomStage removes a player-added stage and reports whether it existed.
func (s *Store) DeleteCustomStage(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM custom_stages WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete stage %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// MergeCustomStages appends the stored player stages to c.
func (s *Store) MergeCustomStages(c *stages.Catalog, cfg config.Config) error {
	list, err := s.CustomStages()
	if err != nil {
		return err
	}
	for _, cs := range list {
		mode, err := config.ParseMode(cs.Mode)
		if err != nil {
			return fmt.Errorf("storage: custom stage %q: %w", cs.ID, err)
		}
		st := stages.New(cs.ID, cs.Name, mode, cs.Source, cfg)
		st.Custom = true
		if err := c.Add(st); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
