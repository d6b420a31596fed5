// Package storage provides SQLite-based persistence for simulation run history.
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

	"github.com/vovakirdan/tui-ecology/internal/telemetry"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord summarises one finished simulation run.
// Only results are recorded; the grid itself is never saved.
type RunRecord struct {
	ID             int64
	Scenario       string
	Seed           int64
	Width          int
	Height         int
	Ticks          int
	FinalPrey      int
	FinalPredators int
	ExtinctTick    int // 0 if both species survived the run
	CreatedAt      time.Time
}

// Survived returns how many ticks both species coexisted.
func (r RunRecord) Survived() int {
	if r.ExtinctTick > 0 {
		return r.ExtinctTick
	}
	return r.Ticks
}

// SamplePoint is one stored population count.
type SamplePoint struct {
	Tick      int
	Prey      int
	Predators int
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			final_prey INTEGER NOT NULL,
			final_predators INTEGER NOT NULL,
			extinct_tick INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);

		CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			prey INTEGER NOT NULL,
			predators INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
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

// SaveRun records a run and its population samples in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(rec RunRecord, samples []telemetry.Sample) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs
		 (scenario, seed, width, height, ticks, final_prey, final_predators, extinct_tick)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Scenario, rec.Seed, rec.Width, rec.Height, rec.Ticks,
		rec.FinalPrey, rec.FinalPredators, rec.ExtinctTick,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if len(samples) > 0 {
		stmt, err := tx.Prepare("INSERT INTO samples (run_id, tick, prey, predators) VALUES (?, ?, ?, ?)")
		if err != nil {
			return 0, fmt.Errorf("storage: cannot prepare sample insert: %w", err)
		}
		defer stmt.Close()

		for _, smp := range samples {
			if _, err := stmt.Exec(id, smp.Tick, smp.Prey, smp.Predators); err != nil {
				return 0, fmt.Errorf("storage: cannot save sample %d: %w", smp.Tick, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}

	return id, nil
}

const runColumns = `id, scenario, seed, width, height, ticks, final_prey, final_predators, extinct_tick, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	if err := row.Scan(
		&r.ID,
		&r.Scenario,
		&r.Seed,
		&r.Width,
		&r.Height,
		&r.Ticks,
		&r.FinalPrey,
		&r.FinalPredators,
		&r.ExtinctTick,
		&createdAt,
	); err != nil {
		return r, err
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a single run.
func (s *Store) RunByID(id int64) (RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return RunRecord{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// RunSamples retrieves the population samples of a run in tick order.
func (s *Store) RunSamples(runID int64) ([]SamplePoint, error) {
	rows, err := s.db.Query(
		`SELECT tick, prey, predators
		 FROM samples
		 WHERE run_id = ?
		 ORDER BY tick`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var points []SamplePoint
	for rows.Next() {
		var p SamplePoint
		if err := rows.Scan(&p.Tick, &p.Prey, &p.Predators); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return points, nil
}

// LongestCoexistence retrieves the runs in which both species survived the
// longest. An empty scenario matches every scenario.
func (s *Store) LongestCoexistence(scenario string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR scenario = ?
		 ORDER BY CASE extinct_tick WHEN 0 THEN ticks ELSE extinct_tick END DESC, id
		 LIMIT ?`,
		scenario, scenario, limit,
	)
}

// DeleteRun removes a run and its samples.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM samples WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete samples: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}

	return tx.Commit()
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario     string
	Runs         int
	Extinctions  int
	LongestRun   int
	AvgSurvival  float64
	LastRecorded time.Time
}

// AllScenarioStats retrieves statistics for every scenario with recorded runs.
func (s *Store) AllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario,
		        COUNT(*),
		        SUM(CASE WHEN extinct_tick > 0 THEN 1 ELSE 0 END),
		        MAX(CASE extinct_tick WHEN 0 THEN ticks ELSE extinct_tick END),
		        AVG(CASE extinct_tick WHEN 0 THEN ticks ELSE extinct_tick END),
		        MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastRecorded any
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.Extinctions, &st.LongestRun, &st.AvgSurvival, &lastRecorded); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		switch v := lastRecorded.(type) {
		case time.Time:
			st.LastRecorded = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				st.LastRecorded = parsed
			}
		}

		stats[st.Scenario] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
