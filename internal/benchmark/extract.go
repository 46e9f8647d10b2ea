package benchmark

import (
	"regexp"
	"strings"
)

// Strategy is one extraction attempt over the full report text.
type Strategy struct {
	Name    string
	Extract func(content string) []RawResult
}

var (
	// AVX2 Xoroshiro128++      Single    0.4496         222.43
	strictLine = regexp.MustCompile(`([\w:+-]+(?:\s+[\w:+-]+)*)\s+(Single|Batch)\s+([\d.]+)\s+([\d.]+)`)
	looseLine  = regexp.MustCompile(`(\S.*?)\s+(Single|Batch)\s+([\d.]+)\s+([\d.]+)`)

	tableSection = regexp.MustCompile(`(?s)Benchmark Results.*?-+\n(.*?)(?:\n\n|\nFastest|\z)`)
	columnGap    = regexp.MustCompile(`\s{2,}`)
	decimal      = regexp.MustCompile(`^[\d.]+$`)
)

// Strategies is the extraction cascade in priority order.
var Strategies = []Strategy{
	{Name: "strict", Extract: ExtractStrict},
	{Name: "loose", Extract: ExtractLoose},
	{Name: "table", Extract: ExtractTable},
}

// Extract applies the strategies in order and returns the first non-empty
// result together with the name of the strategy that produced it.
func Extract(content string, strategies []Strategy) ([]RawResult, string) {
	content = normalizeNewlines(content)
	for _, s := range strategies {
		if results := s.Extract(content); len(results) > 0 {
			return results, s.Name
		}
	}
	return nil, ""
}

// ExtractStrict matches identifier tokens made of word characters, colons,
// plus and minus signs.
func ExtractStrict(content string) []RawResult {
	return matchLines(strictLine, content)
}

// ExtractLoose accepts any non-whitespace-led implementation name.
func ExtractLoose(content string) []RawResult {
	return matchLines(looseLine, content)
}

// ExtractTable reads the column-aligned block following a "Benchmark Results"
// header and its dashed separator.
func ExtractTable(content string) []RawResult {
	m := tableSection.FindStringSubmatch(normalizeNewlines(content))
	if m == nil {
		return nil
	}

	var results []RawResult
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		parts := columnGap.Split(line, -1)
		if len(parts) < 4 {
			continue
		}
		if _, err := ParseMode(parts[1]); err != nil {
			continue
		}
		if !decimal.MatchString(parts[2]) || !decimal.MatchString(parts[3]) {
			continue
		}
		results = append(results, RawResult{
			Implementation: parts[0],
			Mode:           parts[1],
			Time:           parts[2],
			Speed:          parts[3],
		})
	}
	return results
}

func matchLines(re *regexp.Regexp, content string) []RawResult {
	var results []RawResult
	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			results = append(results, RawResult{
				Implementation: m[1],
				Mode:           m[2],
				Time:           m[3],
				Speed:          m[4],
			})
		}
	}
	return results
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
