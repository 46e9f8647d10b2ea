package db

import "rngbench/internal/benchmark"

// Store persists the results of an analyzer run.
type Store interface {
	Close() error
	// SaveRun replaces the stored records and summary with those of the run.
	SaveRun(runID string, table benchmark.Table, summary []benchmark.SummaryRow) error
	LoadRecords() ([]benchmark.Record, error)
	LoadSummary() ([]benchmark.SummaryRow, error)
	// RunID returns the identifier of the run currently stored, or "".
	RunID() (string, error)
}
