package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"prompty/internal/config"
)

func TestSetup_SetsDefault(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	logger := Setup(&config.Config{LogFormat: "text", LogLevel: "info"})
	if logger == nil {
		t.Fatal("Expected logger, got nil")
	}
	if slog.Default() != logger {
		t.Error("Logger was not set as default")
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&config.Config{LogFormat: "JSON", LogLevel: "debug"}, &buf)

	logger.Debug("extraction finished", "brands", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "extraction finished" {
		t.Errorf("msg = %v, expected extraction finished", entry["msg"])
	}
	if entry["app"] != "prompty" {
		t.Errorf("app = %v, expected prompty", entry["app"])
	}
}

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&config.Config{LogFormat: "", LogLevel: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid-level", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLogLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLogLevel(%s) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}
