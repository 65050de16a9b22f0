package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stickmap.log")
	cfg := DefaultConfig()
	cfg.LogFile = path
	cfg.LogLevel = "warn"

	logger, closer, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("motors disarmed")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if strings.Contains(out, "hidden") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(out, `"message":"motors disarmed"`) {
		t.Errorf("log file missing warn line: %s", out)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "chatty"
	if _, _, err := NewLogger(cfg); err == nil {
		t.Error("expected error for bad level")
	}
}
