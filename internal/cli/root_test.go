package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/vietddude/appstore/internal/core/config"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		cfg    config.LoggingConfig
		debug  bool
		expect slog.Level
	}{
		{config.LoggingConfig{Level: "info"}, false, slog.LevelInfo},
		{config.LoggingConfig{Level: "debug"}, false, slog.LevelDebug},
		{config.LoggingConfig{Level: "WARN"}, false, slog.LevelWarn},
		{config.LoggingConfig{Level: "error"}, false, slog.LevelError},
		{config.LoggingConfig{Level: ""}, false, slog.LevelInfo},
		{config.LoggingConfig{Level: "error"}, true, slog.LevelDebug},
	}

	for _, tt := range tests {
		if got := logLevel(tt.cfg, tt.debug); got != tt.expect {
			t.Errorf("logLevel(%+v, %v) = %v, want %v", tt.cfg, tt.debug, got, tt.expect)
		}
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept", "component", "category")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "kept" || entry["component"] != "category" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
