package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/stickmap/internal/domain"
)

// Default timing and logging values.
const (
	DefaultStartupDelay  = 1 * time.Second
	DefaultDisarmLinger  = 500 * time.Millisecond
	DefaultDisarmTimeout = 2 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
)

// Config holds CLI configuration for stickmap.
type Config struct {
	// Sockets is the path of the YAML socket map; empty uses built-in endpoints
	Sockets string

	StartupDelay  time.Duration
	DisarmLinger  time.Duration
	DisarmTimeout time.Duration

	PIDFile string

	LogLevel     string
	LogFile      string
	LogMaxSizeMB int

	// WatchAirframe reloads the airframe section when the config file changes
	WatchAirframe bool

	Airframe domain.Airframe
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		StartupDelay:  DefaultStartupDelay,
		DisarmLinger:  DefaultDisarmLinger,
		DisarmTimeout: DefaultDisarmTimeout,
		LogLevel:      DefaultLogLevel,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		Airframe:      domain.DefaultAirframe(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StartupDelay < 0 {
		return fmt.Errorf("%w: startup delay must not be negative", domain.ErrInvalidConfig)
	}
	if c.DisarmLinger < 0 {
		return fmt.Errorf("%w: disarm linger must not be negative", domain.ErrInvalidConfig)
	}
	if c.DisarmTimeout <= 0 {
		return fmt.Errorf("%w: disarm timeout must be positive", domain.ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = DefaultLogMaxSizeMB
	}
	return c.Airframe.Validate()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value from a pointer. Gains may be negative or
// zero, so presence is carried by the pointer instead of the value.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
