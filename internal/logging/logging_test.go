package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	logger := Setup("debug", "json")
	if logger == nil {
		t.Fatal("Setup() returned nil")
	}
	if slog.Default() != logger {
		t.Error("Setup() did not install the default logger")
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Setup(debug) logger does not enable debug")
	}
}
