package benchmark

import (
	"log/slog"
	"math"
)

// NameRule rewrites an implementation name across the whole dataset.
// When WhenPresent is set the rule only fires if that name also occurs.
type NameRule struct {
	Match       string
	Canonical   string
	WhenPresent string
}

// DefaultNameRules fixes known parse artifacts and baseline aliases.
var DefaultNameRules = []NameRule{
	{Match: "17", Canonical: BaselineLabel},
	{Match: "mt19937_64", Canonical: BaselineLabel, WhenPresent: BaselineLabel},
}

// Reconcile applies rules against the distinct names of the assembled table and
// drops records with missing numeric fields. The input table is not modified.
func Reconcile(t Table, rules []NameRule) Table {
	present := make(map[string]bool)
	for _, name := range t.Implementations() {
		present[name] = true
	}

	rename := make(map[string]string)
	for _, rule := range rules {
		if !present[rule.Match] {
			continue
		}
		if rule.WhenPresent != "" && !present[rule.WhenPresent] {
			continue
		}
		if _, done := rename[rule.Match]; done {
			continue
		}
		slog.Info("Fixing implementation name", "from", rule.Match, "to", rule.Canonical)
		rename[rule.Match] = rule.Canonical
	}

	out := make(Table, 0, len(t))
	dropped := 0
	for _, r := range t {
		if math.IsNaN(r.Speed) || math.IsNaN(r.TimeSeconds) {
			dropped++
			continue
		}
		if to, ok := rename[r.Implementation]; ok {
			r.Implementation = to
		}
		out = append(out, r)
	}
	if dropped > 0 {
		slog.Info("Dropped rows with missing values", "count", dropped)
	}
	return out
}
