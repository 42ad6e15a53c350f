package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/Alijeyrad/contact_relay/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandler_JSONOutsideDevelopment(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Environment = "production"
	cfg.Logging.Format = "text"
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	slog.New(NewHandler(cfg, &buf)).Info("relay started", "port", 5000)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "relay started" {
		t.Errorf("msg = %v, want relay started", line["msg"])
	}
}

func TestNewHandler_TextInDevelopment(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Environment = "development"
	cfg.Logging.Format = "text"
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	slog.New(NewHandler(cfg, &buf)).Debug("dev line")

	if json.Valid(buf.Bytes()) {
		t.Errorf("expected text output in development, got JSON %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("dev line")) {
		t.Errorf("debug line missing from output %q", buf.String())
	}
}

func TestNewHandler_LevelFilters(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	slog.New(NewHandler(cfg, &buf)).Info("dropped")

	if buf.Len() != 0 {
		t.Errorf("info line should be filtered at warn level, got %q", buf.String())
	}
}
