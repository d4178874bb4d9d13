package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modu-ai/folio/internal/config"
)

func TestNewTextToStderr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Config: config.NewDefaultLoggingConfig(), Stderr: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer func() { _ = closeFn() }()

	logger.Debug("hidden")
	logger.Info("starting build", "root", "projects")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record emitted at info level")
	}
	if !strings.Contains(out, "msg=\"starting build\"") || !strings.Contains(out, "root=projects") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNewJSONVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := config.NewDefaultLoggingConfig()
	cfg.Format = "JSON"
	logger, _, err := New(Options{Config: cfg, Stderr: &buf, Verbose: true})
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("scan complete", "count", 2)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if rec["msg"] != "scan complete" || rec["level"] != "DEBUG" {
		t.Errorf("record = %v", rec)
	}
}

func TestNewFileSink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "folio.log")
	logger, closeFn, err := New(Options{Config: config.NewDefaultLoggingConfig(), File: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Warn("malformed descriptor, using defaults", "project", "demo/clock")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "project=demo/clock") {
		t.Errorf("log file content = %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
