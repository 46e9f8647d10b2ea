package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock handler to inspect log records
type mockHandler struct {
	mu       sync.Mutex
	records  []slog.Record
	attrs    []slog.Attr
	group    string
	enabled  bool
	handleFn func(slog.Record) error // Optional custom handle logic
}

func (h *mockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *mockHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.handleFn != nil {
		return h.handleFn(record)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return &mockHandler{
		attrs:    append(slices.Clone(h.attrs), attrs...),
		group:    h.group,
		enabled:  h.enabled,
		handleFn: h.handleFn,
	}
}

func (h *mockHandler) WithGroup(name string) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &mockHandler{
		attrs:    slices.Clone(h.attrs),
		group:    group,
		enabled:  h.enabled,
		handleFn: h.handleFn,
	}
}

func (h *mockHandler) getRecords() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestMultiHandler(t *testing.T) {
	h1 := &mockHandler{enabled: true}
	h2 := &mockHandler{enabled: true}

	multi := &multiHandler{handlers: []slog.Handler{h1, h2}}

	t.Run("Handle", func(t *testing.T) {
		record := slog.NewRecord(time.Now(), slog.LevelInfo, "Processing report", 0)
		err := multi.Handle(context.Background(), record)
		assert.NoError(t, err)
		assert.Len(t, h1.getRecords(), 1)
		assert.Len(t, h2.getRecords(), 1)
		assert.Equal(t, "Processing report", h1.getRecords()[0].Message)
	})

	t.Run("Handle skips disabled handlers", func(t *testing.T) {
		h2.enabled = false
		defer func() { h2.enabled = true }()

		record := slog.NewRecord(time.Now(), slog.LevelDebug, "Sample content", 0)
		assert.NoError(t, multi.Handle(context.Background(), record))
		assert.Len(t, h1.getRecords(), 2)
		assert.Len(t, h2.getRecords(), 1)
	})

	t.Run("Enabled", func(t *testing.T) {
		assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

		h1.enabled = false
		h2.enabled = false
		assert.False(t, multi.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("WithAttrs", func(t *testing.T) {
		attrs := []slog.Attr{slog.String("file", "bench_16bit.txt")}
		handlerWithAttrs := multi.WithAttrs(attrs)

		newMulti, ok := handlerWithAttrs.(*multiHandler)
		require.True(t, ok, "WithAttrs should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, attrs, mockH.attrs)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		handlerWithGroup := multi.WithGroup("charts")

		newMulti, ok := handlerWithGroup.(*multiHandler)
		require.True(t, ok, "WithGroup should return a *multiHandler")

		for _, h := range newMulti.handlers {
			mockH, ok := h.(*mockHandler)
			require.True(t, ok)
			assert.Equal(t, "charts", mockH.group)
		}
	})

	t.Run("WithGroup nests and leaves parent untouched", func(t *testing.T) {
		nested := multi.WithGroup("charts").WithGroup("heatmap").WithAttrs([]slog.Attr{slog.Int("bit_width", 16)})

		newMulti, ok := nested.(*multiHandler)
		require.True(t, ok)
		for _, h := range newMulti.handlers {
			mockH := h.(*mockHandler)
			assert.Equal(t, "charts.heatmap", mockH.group)
			assert.Len(t, mockH.attrs, 1)
			assert.Empty(t, mockH.getRecords())
		}
		assert.Empty(t, h1.group)
		assert.Empty(t, h1.attrs)
	})
}

func TestInitLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	t.Run("Text output", func(t *testing.T) {
		var buf bytes.Buffer
		closeLog := InitLogger(&buf, false, "text", "")
		defer closeLog()

		slog.Info("Processing report", "bit_width", 16)
		slog.Debug("hidden")

		out := buf.String()
		assert.Contains(t, out, "msg=\"Processing report\"")
		assert.Contains(t, out, "bit_width=16")
		assert.NotContains(t, out, "hidden")
	})

	t.Run("JSON output with debug", func(t *testing.T) {
		var buf bytes.Buffer
		closeLog := InitLogger(&buf, true, "json", "")
		defer closeLog()

		slog.Debug("Discovery tier matched", "tier", "bit")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "DEBUG", entry["level"])
		assert.Equal(t, "bit", entry["tier"])
	})

	t.Run("File logging", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rngbench.log")
		var buf bytes.Buffer
		closeLog := InitLogger(&buf, false, "text", path)

		slog.Info("file message")
		closeLog()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "file message")
		assert.Contains(t, buf.String(), "file message")
	})

	t.Run("File error", func(t *testing.T) {
		var buf bytes.Buffer
		slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

		invalidPath := filepath.Join(t.TempDir(), "nonexistent/test.log")
		closeLog := InitLogger(&bytes.Buffer{}, false, "text", invalidPath)
		defer closeLog()

		output := buf.String()
		assert.True(t, strings.Contains(output, "Failed to open log file"), "Expected log file error message, got: "+output)
	})
}

func TestWithRunID(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	id := WithRunID()
	assert.Len(t, id, 8)

	slog.Info("tagged")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id, entry["run_id"])
}

func TestLogInfof(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	LogInfof("Found %d potential benchmark files", 3)

	var logOutput map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logOutput)
	require.NoError(t, err)

	assert.Equal(t, "Found 3 potential benchmark files", logOutput["msg"])
	assert.Equal(t, "INFO", logOutput["level"])
}
