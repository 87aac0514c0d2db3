package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apkship/internal/config"
	"apkship/internal/logging"
)

func newFileLogger(t *testing.T) (string, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "apkship.log")
	return logPath, func() string {
		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(content)
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.ToFile = true

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")

	content, err := os.ReadFile(cfg.LogFilePath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if content := read(); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("message with caller")

	if content := read(); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithStage(logging.WithRunID(context.Background(), "run-1"), "build")
	scoped := logging.WithContext(ctx, logging.NewComponentLogger(logger, "builder"))
	scoped.Info("gradle finished",
		logging.Int("exit_code", 0),
		logging.String("task", "assemble release"),
		slog.Group("artifact", slog.String("name", "app.apk")),
		logging.Error(errors.New("boom")),
	)

	content := read()
	for _, want := range []string{
		" INFO builder: gradle finished",
		"run_id=run-1",
		"stage=build",
		"exit_code=0",
		`task="assemble release"`,
		"artifact.name=app.apk",
		"error=boom",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should render as prefix, got %q", content)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	content := read()
	if strings.Contains(content, "quiet") {
		t.Fatalf("info line should be filtered, got %q", content)
	}
	if !strings.Contains(content, "WARN loud") {
		t.Fatalf("expected warn line, got %q", content)
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("uploaded", logging.String("file", "app.apk"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry["file"] != "app.apk" {
		t.Fatalf("expected file attr, got %v", entry["file"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "upload failed", "upload_failed", logging.String(logging.FieldImpact, "nobody was notified"))

	content := read()
	for _, want := range []string{"event_type=upload_failed", "error_hint=", `impact="nobody was notified"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestErrorWithContextKeepsExplicitHint(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.ErrorWithContext(logger, "build failed", "build_failed", logging.String(logging.FieldErrorHint, "run gradlew"))

	content := read()
	if strings.Count(content, "error_hint=") != 1 || !strings.Contains(content, `error_hint="run gradlew"`) {
		t.Fatalf("expected a single explicit hint, got %q", content)
	}
	if strings.Contains(content, "impact=") {
		t.Fatalf("errors should not get a default impact, got %q", content)
	}
}

func TestNewNopDiscards(t *testing.T) {
	if logging.NewNop().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("no-op logger should be disabled at every level")
	}
}
