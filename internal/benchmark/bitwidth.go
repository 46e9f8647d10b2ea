package benchmark

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	bitWidthMarker   = regexp.MustCompile(`(?:Benchmark Results for|benchmarks with \d+ iterations for) (\d+)-bit`)
	bitWidthFilename = regexp.MustCompile(`(\d+)bit`)
)

// ResolveBitWidth recovers the bit width of a report, preferring the content
// marker over the file name.
func ResolveBitWidth(name, content string) (int, error) {
	if m := bitWidthMarker.FindStringSubmatch(content); m != nil {
		if width, err := strconv.Atoi(m[1]); err == nil {
			return width, nil
		}
	}

	base := strings.ToLower(filepath.Base(name))
	if m := bitWidthFilename.FindStringSubmatch(base); m != nil {
		if width, err := strconv.Atoi(m[1]); err == nil {
			slog.Debug("Extracted bit width from filename", "bit_width", width, "file", base)
			return width, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", name, ErrNoBitWidth)
}
