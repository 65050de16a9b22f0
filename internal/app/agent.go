package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

// Default timing values.
const (
	DefaultStartupDelay  = 1 * time.Second
	DefaultDisarmLinger  = 500 * time.Millisecond
	DefaultDisarmTimeout = 2 * time.Second
)

// AgentConfig contains configuration for the mapping loop.
type AgentConfig struct {
	// StartupDelay is waited before the first receive so downstream
	// consumers can connect.
	StartupDelay time.Duration

	// DisarmLinger is waited after the final disable was sent.
	DisarmLinger time.Duration

	// DisarmTimeout bounds the final disable send.
	DisarmTimeout time.Duration

	Airframe domain.Airframe
}

// ArmEventEmitter is called when the enable decision changes.
type ArmEventEmitter interface {
	OnArmChange(armed bool, stats Stats)
}

// Agent runs the receive, map, publish loop.
type Agent struct {
	config   AgentConfig
	source   ports.FrameSource
	sinks    ports.Sinks
	logger   ports.Logger
	emitter  ArmEventEmitter
	airframe atomic.Pointer[domain.Airframe]
	stats    statsRecorder
}

// NewAgent creates a new agent with the given dependencies.
func NewAgent(
	config AgentConfig,
	source ports.FrameSource,
	sinks ports.Sinks,
	logger ports.Logger,
	emitter ArmEventEmitter,
) (*Agent, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: frame source is required", domain.ErrInvalidConfig)
	}
	if !sinks.Complete() {
		return nil, fmt.Errorf("%w: all five sinks are required", domain.ErrInvalidConfig)
	}
	if err := config.Airframe.Validate(); err != nil {
		return nil, err
	}
	if config.DisarmTimeout <= 0 {
		config.DisarmTimeout = DefaultDisarmTimeout
	}

	a := &Agent{
		config:  config,
		source:  source,
		sinks:   sinks,
		logger:  logger,
		emitter: emitter,
	}
	af := config.Airframe
	a.airframe.Store(&af)
	return a, nil
}

// Run executes the mapping loop until the context is cancelled or a
// receive or publish fails. Whatever the exit path, the final action is a
// single disable decision on the enable sink.
func (a *Agent) Run(ctx context.Context) (err error) {
	guard := newDisarmGuard(a.sinks.Enable, a.config.DisarmTimeout, a.config.DisarmLinger, a.logger)
	defer func() {
		if disarmErr := guard.Release(); disarmErr != nil {
			err = errors.Join(err, disarmErr)
		}
		a.logger.Info("mapping loop stopped", a.Stats().fields()...)
	}()

	if a.config.StartupDelay > 0 {
		a.logger.Info("waiting for consumers", ports.Duration("delay", a.config.StartupDelay))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.config.StartupDelay):
		}
	}

	a.logger.Info("mapping loop started")

	for {
		frame, err := a.source.Recv(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedFrame) {
				a.logger.Error("malformed frame, stopping", ports.Err(err))
			}
			return err
		}

		if err := a.Step(ctx, frame); err != nil {
			return err
		}
	}
}

// Step maps one frame and publishes the result. The airframe is read once,
// so a concurrent SetAirframe takes effect on the next frame.
func (a *Agent) Step(ctx context.Context, frame domain.ChannelFrame) error {
	out := domain.Map(frame, *a.airframe.Load())

	if a.stats.record(frame, out) {
		stats := a.stats.snapshot()
		if out.MotorsEnabled {
			a.logger.Info("motors armed", stats.fields()...)
		} else {
			a.logger.Info("motors disarmed by switch", append(stats.fields(), ports.Bool("valid", frame.Valid))...)
		}
		if a.emitter != nil {
			a.emitter.OnArmChange(out.MotorsEnabled, stats)
		}
	}

	return a.publish(ctx, out)
}

// publish sends the enable decision before any setpoint of the same cycle.
func (a *Agent) publish(ctx context.Context, out domain.SetpointBundle) error {
	if err := a.sinks.Enable.SendEnable(ctx, out.MotorsEnabled); err != nil {
		return fmt.Errorf("publish enable: %w", err)
	}
	if !out.HasSetpoints {
		return nil
	}

	setpoints := []struct {
		name  string
		sink  ports.ScalarSink
		value float64
	}{
		{"thrust", a.sinks.Thrust, out.Thrust},
		{"pitch rate", a.sinks.PitchRate, out.PitchRate},
		{"roll rate", a.sinks.RollRate, out.RollRate},
		{"yaw rate", a.sinks.YawRate, out.YawRate},
	}
	for _, sp := range setpoints {
		if err := sp.sink.Send(ctx, sp.value); err != nil {
			return fmt.Errorf("publish %s: %w", sp.name, err)
		}
	}
	return nil
}

// SetAirframe replaces the mapping constants used from the next frame on.
func (a *Agent) SetAirframe(af domain.Airframe) error {
	if err := af.Validate(); err != nil {
		return err
	}
	a.airframe.Store(&af)
	a.logger.Info("airframe updated",
		ports.Float64("thrust_gain", af.ThrustGain),
		ports.Float64("pitch_gain", af.PitchGain),
		ports.Float64("roll_gain", af.RollGain),
		ports.Float64("yaw_rate_gain", af.YawRateGain),
		ports.Float64("deadzone", af.Deadzone),
		ports.Float64("enable_threshold", af.EnableThreshold),
	)
	return nil
}

// Airframe returns the mapping constants currently in use.
func (a *Agent) Airframe() domain.Airframe {
	return *a.airframe.Load()
}

// Stats returns a snapshot of the loop counters.
func (a *Agent) Stats() Stats {
	return a.stats.snapshot()
}
