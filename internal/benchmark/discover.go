package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResultsSubdir is searched in addition to the base directory when present.
const ResultsSubdir = "formatted_results"

// Source is a named report whose content can be read once.
type Source interface {
	Name() string
	ReadAll() ([]byte, error)
}

// FileSource reads a report from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) ReadAll() ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}

// MemorySource is a report held in memory.
type MemorySource struct {
	Label   string
	Content string
}

func (s MemorySource) Name() string { return s.Label }

func (s MemorySource) ReadAll() ([]byte, error) { return []byte(s.Content), nil }

// SearchPaths returns the directories scanned for reports.
func SearchPaths(dir string) []string {
	paths := []string{dir}
	sub := filepath.Join(dir, ResultsSubdir)
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		paths = append(paths, sub)
	}
	return paths
}

// tier decides whether a lower-cased .txt file name belongs to a discovery tier.
type tier struct {
	name  string
	match func(lowerName string) bool
}

var discoveryTiers = []tier{
	{"bit", func(n string) bool { return strings.Contains(n, "bit") }},
	{"benchmark/results", func(n string) bool {
		return strings.Contains(n, "benchmark") || strings.Contains(n, "results")
	}},
	{"any", func(string) bool { return true }},
}

// Discover lists candidate report files under dir. Tiers are tried in priority
// order and the first tier with any match is returned as is. Only a failure to
// list dir itself is an error; an unreadable results subdirectory contributes
// nothing.
func Discover(dir string) ([]Source, error) {
	paths := SearchPaths(dir)
	for _, p := range paths {
		slog.Debug("Searching for benchmark files", "path", p)
	}

	listings := make([][]string, 0, len(paths))
	for i, p := range paths {
		names, err := listText(p)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			slog.Warn("Skipping unreadable search path", "path", p, "error", err)
		}
		listings = append(listings, names)
	}

	for _, t := range discoveryTiers {
		var found []Source
		for i, p := range paths {
			for _, name := range listings[i] {
				if t.match(strings.ToLower(name)) {
					found = append(found, FileSource{Path: filepath.Join(p, name)})
				}
			}
		}
		if len(found) > 0 {
			slog.Debug("Discovery tier matched", "tier", t.name, "files", len(found))
			return found, nil
		}
	}
	return nil, nil
}

// readDir is swapped in tests to simulate unreadable directories.
var readDir = os.ReadDir

func listText(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
