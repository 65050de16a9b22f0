package cliconfig

import (
	"os"

	"github.com/bft-labs/stickmap/internal/domain"
)

// ApplyEnvConfig applies configuration from environment variables (STICKMAP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("sockets", os.Getenv("STICKMAP_SOCKETS"), &cfg.Sockets)
	s.setString("pidfile", os.Getenv("STICKMAP_PIDFILE"), &cfg.PIDFile)
	s.setString("log-level", os.Getenv("STICKMAP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("STICKMAP_LOG_FILE"), &cfg.LogFile)

	if err := s.setIntFromString("log-max-size", os.Getenv("STICKMAP_LOG_MAX_SIZE_MB"), &cfg.LogMaxSizeMB); err != nil {
		return err
	}
	if err := s.setDuration("startup-delay", os.Getenv("STICKMAP_STARTUP_DELAY"), &cfg.StartupDelay); err != nil {
		return err
	}
	if err := s.setDuration("disarm-linger", os.Getenv("STICKMAP_DISARM_LINGER"), &cfg.DisarmLinger); err != nil {
		return err
	}
	if err := s.setDuration("disarm-timeout", os.Getenv("STICKMAP_DISARM_TIMEOUT"), &cfg.DisarmTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch-airframe", os.Getenv("STICKMAP_WATCH_AIRFRAME"), &cfg.WatchAirframe)

	return applyEnvAirframe(s, &cfg.Airframe)
}

func applyEnvAirframe(s *configSetter, af *domain.Airframe) error {
	vars := []struct {
		flag string
		env  string
		dst  *float64
	}{
		{"thrust-gain", "STICKMAP_THRUST_GAIN", &af.ThrustGain},
		{"pitch-gain", "STICKMAP_PITCH_GAIN", &af.PitchGain},
		{"roll-gain", "STICKMAP_ROLL_GAIN", &af.RollGain},
		{"yaw-rate-gain", "STICKMAP_YAW_RATE_GAIN", &af.YawRateGain},
		{"deadzone", "STICKMAP_DEADZONE", &af.Deadzone},
		{"enable-threshold", "STICKMAP_ENABLE_THRESHOLD", &af.EnableThreshold},
	}
	for _, v := range vars {
		if err := s.setFloatFromString(v.flag, os.Getenv(v.env), v.dst); err != nil {
			return err
		}
	}
	return nil
}

// ResolveAirframe recomputes the airframe from its sources with the usual
// precedence: flags over environment over file. base holds the flag values
// (defaults for flags that were not set). A missing file is not an error.
func ResolveAirframe(path string, base domain.Airframe, changed map[string]bool) (domain.Airframe, error) {
	af := base
	s := newConfigSetter(changed)

	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return domain.Airframe{}, err
		}
		applyFileAirframe(s, fc.Airframe, &af)
	}
	if err := applyEnvAirframe(s, &af); err != nil {
		return domain.Airframe{}, err
	}
	if err := af.Validate(); err != nil {
		return domain.Airframe{}, err
	}
	return af, nil
}
