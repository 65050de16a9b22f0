package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/stickmap/internal/domain"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	neg := -0.3
	zero := 0.0

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		expected   func(*Config)
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Sockets:       "/etc/stickmap/sockets.yaml",
				StartupDelay:  "2s",
				DisarmLinger:  "1s",
				PIDFile:       "/run/stickmap.pid",
				LogLevel:      "debug",
				WatchAirframe: &trueVal,
			},
			changed: map[string]bool{},
			expected: func(c *Config) {
				c.Sockets = "/etc/stickmap/sockets.yaml"
				c.StartupDelay = 2 * time.Second
				c.DisarmLinger = time.Second
				c.PIDFile = "/run/stickmap.pid"
				c.LogLevel = "debug"
				c.WatchAirframe = true
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				PIDFile:  "/file.pid",
				LogLevel: "warn",
			},
			changed: map[string]bool{"pidfile": true},
			expected: func(c *Config) {
				c.LogLevel = "warn"
			},
		},
		{
			name: "applies negative and zero airframe values",
			fileConfig: FileConfig{
				Airframe: FileAirframe{RollGain: &neg, Deadzone: &zero},
			},
			changed: map[string]bool{},
			expected: func(c *Config) {
				c.Airframe.RollGain = -0.3
				c.Airframe.Deadzone = 0
			},
		},
		{
			name: "airframe flag beats file",
			fileConfig: FileConfig{
				Airframe: FileAirframe{RollGain: &neg},
			},
			changed:  map[string]bool{"roll-gain": true},
			expected: func(*Config) {},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{StartupDelay: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			want := DefaultConfig()
			tt.expected(&want)
			if cfg != want {
				t.Errorf("config = %+v, want %+v", cfg, want)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
sockets = "/etc/stickmap/sockets.yaml"
startup_delay = "250ms"
watch_airframe = true

[airframe]
pitch_gain = -0.5
deadzone = 0.1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Sockets != "/etc/stickmap/sockets.yaml" {
		t.Errorf("Sockets = %q", fc.Sockets)
	}
	if fc.StartupDelay != "250ms" {
		t.Errorf("StartupDelay = %q", fc.StartupDelay)
	}
	if fc.WatchAirframe == nil || !*fc.WatchAirframe {
		t.Errorf("WatchAirframe = %v, want true", fc.WatchAirframe)
	}
	if fc.Airframe.PitchGain == nil || *fc.Airframe.PitchGain != -0.5 {
		t.Errorf("PitchGain = %v, want -0.5", fc.Airframe.PitchGain)
	}
	if fc.Airframe.ThrustGain != nil {
		t.Errorf("ThrustGain = %v, want unset", *fc.Airframe.ThrustGain)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFileConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("startup_delay = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(bad); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/pilot")
	p := DefaultConfigPath()
	if !strings.HasSuffix(p, filepath.Join(".stickmap", "config.toml")) {
		t.Errorf("DefaultConfigPath() = %q", p)
	}
}

func TestResolveAirframe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[airframe]
thrust_gain = 3.0
roll_gain = 0.7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STICKMAP_ROLL_GAIN", "0.8")

	base := domain.DefaultAirframe()
	base.YawRateGain = 1.2
	changed := map[string]bool{"yaw-rate-gain": true}

	af, err := ResolveAirframe(path, base, changed)
	if err != nil {
		t.Fatalf("ResolveAirframe() error = %v", err)
	}
	if af.ThrustGain != 3.0 {
		t.Errorf("ThrustGain = %v, want 3.0 from file", af.ThrustGain)
	}
	if af.RollGain != 0.8 {
		t.Errorf("RollGain = %v, want 0.8 from env", af.RollGain)
	}
	if af.YawRateGain != 1.2 {
		t.Errorf("YawRateGain = %v, want 1.2 from flag", af.YawRateGain)
	}
}

func TestResolveAirframe_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[airframe]\ndeadzone = 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveAirframe(path, domain.DefaultAirframe(), nil); err == nil {
		t.Error("expected validation error")
	}
}

func TestResolveAirframe_MissingFile(t *testing.T) {
	af, err := ResolveAirframe(filepath.Join(t.TempDir(), "none.toml"), domain.DefaultAirframe(), nil)
	if err != nil {
		t.Fatalf("ResolveAirframe() error = %v", err)
	}
	if af != domain.DefaultAirframe() {
		t.Errorf("airframe = %+v, want defaults", af)
	}
}
