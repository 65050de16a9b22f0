package stickmap

import (
	"fmt"
	"time"

	"github.com/bft-labs/stickmap/internal/adapters/zmq"
	"github.com/bft-labs/stickmap/internal/app"
	"github.com/bft-labs/stickmap/internal/domain"
)

type (
	// Airframe holds the gains, deadzone and enable threshold of one vehicle.
	Airframe = domain.Airframe

	// Endpoint locates one ZeroMQ socket.
	Endpoint = zmq.Endpoint

	// Layout holds the endpoints of all channels.
	Layout = zmq.Layout
)

// Config holds the configuration of a Stickmap instance.
type Config struct {
	// Sockets locates the frame source and the five sinks.
	// Endpoints without an address use ipc:///tmp/stickmap_<channel>.
	Sockets Layout

	// StartupDelay is waited before the first frame is received. Zero disables it.
	StartupDelay time.Duration

	// DisarmLinger is waited after the final disable so it can drain. Zero disables it.
	DisarmLinger time.Duration

	// DisarmTimeout bounds the final disable send.
	// Default: 2 seconds
	DisarmTimeout time.Duration

	// Airframe holds the mapping constants. A zero value selects the defaults.
	Airframe Airframe
}

// DefaultConfig returns a Config with the default socket layout, timings and airframe.
func DefaultConfig() Config {
	return Config{
		Sockets:       zmq.DefaultLayout(),
		StartupDelay:  app.DefaultStartupDelay,
		DisarmLinger:  app.DefaultDisarmLinger,
		DisarmTimeout: app.DefaultDisarmTimeout,
		Airframe:      domain.DefaultAirframe(),
	}
}

// DefaultAirframe returns the stock airframe constants.
func DefaultAirframe() Airframe {
	return domain.DefaultAirframe()
}

// SetDefaults fills unset fields. Delays are left alone since zero is meaningful.
func (c *Config) SetDefaults() {
	c.Sockets = c.Sockets.WithDefaults()
	if c.DisarmTimeout <= 0 {
		c.DisarmTimeout = app.DefaultDisarmTimeout
	}
	if c.Airframe == (Airframe{}) {
		c.Airframe = domain.DefaultAirframe()
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.StartupDelay < 0 {
		return fmt.Errorf("%w: startup delay must not be negative", domain.ErrInvalidConfig)
	}
	if c.DisarmLinger < 0 {
		return fmt.Errorf("%w: disarm linger must not be negative", domain.ErrInvalidConfig)
	}
	if c.DisarmTimeout <= 0 {
		return fmt.Errorf("%w: disarm timeout must be positive", domain.ErrInvalidConfig)
	}
	return c.Airframe.Validate()
}

func (c Config) agentConfig(af Airframe) app.AgentConfig {
	return app.AgentConfig{
		StartupDelay:  c.StartupDelay,
		DisarmLinger:  c.DisarmLinger,
		DisarmTimeout: c.DisarmTimeout,
		Airframe:      af,
	}
}

// shutdownWait bounds Stop so the final disable and its linger always fit.
func (c Config) shutdownWait() time.Duration {
	return app.ShutdownWait(c.DisarmTimeout, c.DisarmLinger)
}
