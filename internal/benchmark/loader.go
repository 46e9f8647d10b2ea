package benchmark

import (
	"errors"
	"fmt"
	"log/slog"
)

// Skip reasons reported to the Observer.
const (
	SkipUnreadable = "unreadable"
	SkipNoBitWidth = "no_bit_width"
	SkipNoResults  = "no_results"
	SkipNoValid    = "no_valid_records"
)

// Observer receives counters while reports are loaded.
type Observer interface {
	FileProcessed()
	FileSkipped(reason string)
	RecordsExtracted(strategy string, n int)
	TupleDropped()
}

type nopObserver struct{}

func (nopObserver) FileProcessed()               {}
func (nopObserver) FileSkipped(string)           {}
func (nopObserver) RecordsExtracted(string, int) {}
func (nopObserver) TupleDropped()                {}

// Loader turns report sources into a reconciled Table.
type Loader struct {
	Strategies []Strategy
	Rules      []NameRule
	Observer   Observer
}

// NewLoader returns a loader with the default cascade and name rules.
func NewLoader(obs Observer) *Loader {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Loader{
		Strategies: Strategies,
		Rules:      DefaultNameRules,
		Observer:   obs,
	}
}

// ParseSource extracts the records of a single report.
func (l *Loader) ParseSource(src Source) ([]Record, error) {
	data, err := src.ReadAll()
	if err != nil {
		return nil, err
	}
	content := string(data)
	name := src.Name()

	bitWidth, err := ResolveBitWidth(name, content)
	if err != nil {
		return nil, err
	}
	slog.Info("Processing report", "bit_width", bitWidth, "file", name)

	raw, strategy := Extract(content, l.Strategies)
	if len(raw) == 0 {
		slog.Debug("Sample content", "file", name, "content", head(content, 500))
		return nil, fmt.Errorf("%s: %w", name, ErrNoResults)
	}
	if strategy != l.Strategies[0].Name {
		slog.Debug("Primary pattern failed, used fallback", "file", name, "strategy", strategy)
	}

	run := RunIndex(name)
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		rec, err := NewRecord(r, bitWidth, run, name)
		if err != nil {
			slog.Warn("Error converting values", "file", name, "implementation", r.Implementation,
				"mode", r.Mode, "time", r.Time, "speed", r.Speed, "error", err)
			l.Observer.TupleDropped()
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoValidRecords)
	}
	l.Observer.RecordsExtracted(strategy, len(records))
	slog.Info("Successfully extracted data points", "file", name, "count", len(records), "strategy", strategy)
	return records, nil
}

// Load parses every source in order. A failing source is logged and
// contributes nothing. ErrEmptyDataset is returned with an empty table when no
// source produced data.
func (l *Loader) Load(sources []Source) (Table, error) {
	slog.Info("Found potential benchmark files", "count", len(sources))

	var table Table
	for i, src := range sources {
		slog.Debug("Processing file", "index", i+1, "total", len(sources), "file", src.Name())
		l.Observer.FileProcessed()

		records, err := l.ParseSource(src)
		if err != nil {
			reason := skipReason(err)
			l.Observer.FileSkipped(reason)
			slog.Warn("Skipping file", "file", src.Name(), "reason", reason, "error", err)
			continue
		}
		table = append(table, records...)
	}

	if len(table) == 0 {
		return Table{}, ErrEmptyDataset
	}

	for _, impl := range table.Implementations() {
		slog.Debug("Found implementation", "name", impl)
	}
	return Reconcile(table, l.Rules), nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrNoBitWidth):
		return SkipNoBitWidth
	case errors.Is(err, ErrNoResults):
		return SkipNoResults
	case errors.Is(err, ErrNoValidRecords):
		return SkipNoValid
	default:
		return SkipUnreadable
	}
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
