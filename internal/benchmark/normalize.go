package benchmark

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// CanonicalName collapses whitespace runs and folds every mt19937 variant into
// the baseline label. Applying it twice yields the same result as once.
func CanonicalName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if strings.Contains(strings.ToLower(name), "mt19937") {
		return BaselineLabel
	}
	return name
}

// RunIndex reads the trailing _<digits> suffix of a file stem, defaulting to 1.
func RunIndex(name string) int {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return 1
	}
	last := parts[len(parts)-1]
	if last == "" || strings.TrimLeft(last, "0123456789") != "" {
		return 1
	}
	n, err := strconv.Atoi(last)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NewRecord converts a raw tuple into a record. Tuples whose numbers do not
// convert to finite, non-negative values are rejected.
func NewRecord(raw RawResult, bitWidth, run int, source string) (Record, error) {
	mode, err := ParseMode(raw.Mode)
	if err != nil {
		return Record{}, err
	}
	elapsed, err := parseMeasurement(raw.Time)
	if err != nil {
		return Record{}, fmt.Errorf("time: %w", err)
	}
	speed, err := parseMeasurement(raw.Speed)
	if err != nil {
		return Record{}, fmt.Errorf("speed: %w", err)
	}
	return Record{
		BitWidth:       bitWidth,
		Implementation: CanonicalName(raw.Implementation),
		Mode:           mode,
		TimeSeconds:    elapsed,
		Speed:          speed,
		Run:            run,
		Source:         source,
	}, nil
}

func parseMeasurement(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("invalid measurement %q", s)
	}
	return v, nil
}
