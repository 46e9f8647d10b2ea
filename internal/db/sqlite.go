package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rngbench/internal/benchmark"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS benchmark_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		bit_width INTEGER NOT NULL,
		implementation TEXT NOT NULL,
		mode TEXT NOT NULL,
		time_seconds REAL NOT NULL,
		speed REAL NOT NULL,
		run INTEGER NOT NULL,
		source TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS benchmark_summary (
		run_id TEXT NOT NULL,
		bit_width INTEGER NOT NULL,
		implementation TEXT NOT NULL,
		mode TEXT NOT NULL,
		mean_speed REAL NOT NULL,
		std_dev REAL NOT NULL,
		min_speed REAL NOT NULL,
		max_speed REAL NOT NULL,
		sample_count INTEGER NOT NULL,
		PRIMARY KEY (bit_width, implementation, mode)
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun replaces the database contents with the run in a single transaction.
func (s *SQLiteStore) SaveRun(runID string, table benchmark.Table, summary []benchmark.SummaryRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM benchmark_records`,
		`DELETE FROM benchmark_summary`,
		`DELETE FROM runs`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear previous run: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO runs (id, created_at) VALUES (?, ?)`, runID, time.Now()); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	recStmt, err := tx.Prepare(`INSERT INTO benchmark_records
		(run_id, bit_width, implementation, mode, time_seconds, speed, run, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer recStmt.Close()
	for _, r := range table {
		if _, err := recStmt.Exec(runID, r.BitWidth, r.Implementation, string(r.Mode), r.TimeSeconds, r.Speed, r.Run, r.Source); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
	}

	sumStmt, err := tx.Prepare(`INSERT INTO benchmark_summary
		(run_id, bit_width, implementation, mode, mean_speed, std_dev, min_speed, max_speed, sample_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer sumStmt.Close()
	for _, row := range summary {
		if _, err := sumStmt.Exec(runID, row.BitWidth, row.Implementation, string(row.Mode),
			row.Mean, row.StdDev, row.Min, row.Max, row.Count); err != nil {
			return fmt.Errorf("failed to save summary row: %w", err)
		}
	}

	return tx.Commit()
}

// LoadRecords returns the stored records in insertion order.
func (s *SQLiteStore) LoadRecords() ([]benchmark.Record, error) {
	query := `SELECT bit_width, implementation, mode, time_seconds, speed, run, source
		FROM benchmark_records ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []benchmark.Record
	for rows.Next() {
		var r benchmark.Record
		var mode string
		if err := rows.Scan(&r.BitWidth, &r.Implementation, &mode, &r.TimeSeconds, &r.Speed, &r.Run, &r.Source); err != nil {
			return nil, err
		}
		r.Mode = benchmark.Mode(mode)
		results = append(results, r)
	}
	return results, rows.Err()
}

// LoadSummary returns the stored summary ordered by bit width, then mean speed descending.
func (s *SQLiteStore) LoadSummary() ([]benchmark.SummaryRow, error) {
	query := `SELECT bit_width, implementation, mode, mean_speed, std_dev, min_speed, max_speed, sample_count
		FROM benchmark_summary ORDER BY bit_width, mean_speed DESC, implementation, mode`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []benchmark.SummaryRow
	for rows.Next() {
		var r benchmark.SummaryRow
		var mode string
		if err := rows.Scan(&r.BitWidth, &r.Implementation, &mode, &r.Mean, &r.StdDev, &r.Min, &r.Max, &r.Count); err != nil {
			return nil, err
		}
		r.Mode = benchmark.Mode(mode)
		results = append(results, r)
	}
	return results, rows.Err()
}

// RunID returns the id of the stored run.
func (s *SQLiteStore) RunID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM runs LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}
