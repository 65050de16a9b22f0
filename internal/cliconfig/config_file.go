package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/stickmap/internal/domain"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Sockets       string       `toml:"sockets"`
	StartupDelay  string       `toml:"startup_delay"`
	DisarmLinger  string       `toml:"disarm_linger"`
	DisarmTimeout string       `toml:"disarm_timeout"`
	PIDFile       string       `toml:"pidfile"`
	LogLevel      string       `toml:"log_level"`
	LogFile       string       `toml:"log_file"`
	LogMaxSizeMB  int          `toml:"log_max_size_mb"`
	WatchAirframe *bool        `toml:"watch_airframe"`
	Airframe      FileAirframe `toml:"airframe"`
}

// FileAirframe is the [airframe] table. Absent keys keep their current value.
type FileAirframe struct {
	ThrustGain      *float64 `toml:"thrust_gain"`
	PitchGain       *float64 `toml:"pitch_gain"`
	RollGain        *float64 `toml:"roll_gain"`
	YawRateGain     *float64 `toml:"yaw_rate_gain"`
	Deadzone        *float64 `toml:"deadzone"`
	EnableThreshold *float64 `toml:"enable_threshold"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.stickmap/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".stickmap", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("sockets", fc.Sockets, &cfg.Sockets)
	s.setString("pidfile", fc.PIDFile, &cfg.PIDFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setInt("log-max-size", fc.LogMaxSizeMB, &cfg.LogMaxSizeMB)

	if err := s.setDuration("startup-delay", fc.StartupDelay, &cfg.StartupDelay); err != nil {
		return err
	}
	if err := s.setDuration("disarm-linger", fc.DisarmLinger, &cfg.DisarmLinger); err != nil {
		return err
	}
	if err := s.setDuration("disarm-timeout", fc.DisarmTimeout, &cfg.DisarmTimeout); err != nil {
		return err
	}

	s.setBool("watch-airframe", fc.WatchAirframe, &cfg.WatchAirframe)

	applyFileAirframe(s, fc.Airframe, &cfg.Airframe)
	return nil
}

func applyFileAirframe(s *configSetter, fa FileAirframe, af *domain.Airframe) {
	s.setFloat("thrust-gain", fa.ThrustGain, &af.ThrustGain)
	s.setFloat("pitch-gain", fa.PitchGain, &af.PitchGain)
	s.setFloat("roll-gain", fa.RollGain, &af.RollGain)
	s.setFloat("yaw-rate-gain", fa.YawRateGain, &af.YawRateGain)
	s.setFloat("deadzone", fa.Deadzone, &af.Deadzone)
	s.setFloat("enable-threshold", fa.EnableThreshold, &af.EnableThreshold)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
