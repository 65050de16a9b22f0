package stickmap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/stickmap/internal/adapters/fs"
	"github.com/bft-labs/stickmap/internal/adapters/zmq"
	"github.com/bft-labs/stickmap/internal/app"
	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

// Stickmap maps receiver frames to setpoints and can be embedded in other applications.
// Use New() to create an instance, then Start() to begin mapping.
type Stickmap struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	emitter   *eventEmitterWrapper
	logger    ports.Logger

	mu       sync.RWMutex
	airframe Airframe
	agent    *app.Agent
	cancel   context.CancelFunc
	done     chan struct{}
	err      error
}

// New creates a new Stickmap instance with the given configuration.
// The instance is created in StateStopped; call Start() to begin mapping.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Stickmap, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sinks != nil && !o.sinks.Complete() {
		return nil, fmt.Errorf("%w: injected sinks are incomplete", domain.ErrInvalidConfig)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	done := make(chan struct{})
	close(done)

	return &Stickmap{
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(o.logger, emitter),
		emitter:   emitter,
		logger:    o.logger,
		airframe:  cfg.Airframe,
		done:      done,
	}, nil
}

// Start opens the transports and runs the mapping loop in the background.
// Returns immediately after the loop goroutine was started.
// Returns ErrAlreadyRunning if a run is in progress.
// Cancelling ctx ends the run the same way Stop does.
func (s *Stickmap) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	session := uuid.NewString()
	logger := sessionLogger{Logger: s.logger, session: ports.String("session", session)}

	runCtx, cancel := context.WithCancel(ctx)

	source, sinks, closeTransports, err := s.openTransports(runCtx)
	if err != nil {
		cancel()
		logger.Error("open transports failed", ports.Err(err))
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "open transports: "+err.Error())
		return err
	}

	agent, err := app.NewAgent(s.config.agentConfig(s.airframe), source, sinks, logger, s.emitter)
	if err != nil {
		cancel()
		closeTransports()
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "agent: "+err.Error())
		return err
	}

	var watcher *fs.AirframeWatcher
	if s.opts.watchPath != "" && s.opts.watchLoad != nil {
		watcher = fs.NewAirframeWatcher(s.opts.watchPath, s.opts.watchLoad, s.applyAirframe, logger)
	}

	done := make(chan struct{})
	s.agent = agent
	s.cancel = cancel
	s.done = done
	s.err = nil
	s.lifecycle.SetCancel(cancel)

	logger.Info("stickmap starting",
		ports.String("frames", s.config.Sockets.Frames.String()),
		ports.String("enable", s.config.Sockets.Enable.String()),
		ports.Bool("watch_airframe", watcher != nil),
	)

	s.lifecycle.Go(func() {
		defer close(done)

		if err := s.lifecycle.TransitionTo(app.StateRunning, "mapping loop starting"); err != nil {
			// Stop() won the race; still run so the guard disarms.
			logger.Warn("start interrupted", ports.Err(err))
		}

		g, gctx := errgroup.WithContext(runCtx)
		g.Go(func() error {
			return agent.Run(gctx)
		})
		if watcher != nil {
			g.Go(func() error {
				if err := watcher.Run(gctx); err != nil {
					logger.Warn("airframe watcher stopped", ports.Err(err))
				}
				return nil
			})
		}
		runErr := g.Wait()

		// The final disable has been sent by now; closing is safe.
		closeTransports()
		s.finish(runErr, logger)
	})

	return nil
}

// openTransports returns the frame source and sinks for one run. The frame
// source is bound to ctx so a blocking receive ends with the run. Sinks use
// their own context so the final disable can still be sent after ctx is done.
func (s *Stickmap) openTransports(ctx context.Context) (ports.FrameSource, ports.Sinks, func(), error) {
	var closers []func() error

	source := s.opts.source
	if source == nil {
		src, err := zmq.NewFrameSource(ctx, s.config.Sockets.Frames)
		if err != nil {
			return nil, ports.Sinks{}, nil, err
		}
		source = src
		closers = append(closers, src.Close)
	}

	var sinks ports.Sinks
	if s.opts.sinks != nil {
		sinks = *s.opts.sinks
	} else {
		sinkCtx, cancelSinks := context.WithCancel(context.Background())
		opened, err := zmq.OpenSinks(sinkCtx, s.config.Sockets)
		if err != nil {
			cancelSinks()
			for _, c := range closers {
				_ = c()
			}
			return nil, ports.Sinks{}, nil, err
		}
		sinks = opened
		closers = append(closers, func() error {
			defer cancelSinks()
			return zmq.CloseSinks(opened)
		})
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				s.logger.Warn("close transport", ports.Err(err))
			}
		}
	}
	return source, sinks, closeAll, nil
}

// finish records the result of a run and moves the lifecycle out of Running.
// A run that ended by cancellation counts as a clean stop unless the final
// disable failed.
func (s *Stickmap) finish(runErr error, logger ports.Logger) {
	cancelled := errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded)
	clean := runErr == nil || (cancelled && !errors.Is(runErr, domain.ErrDisarmFailed))

	s.mu.Lock()
	if !clean {
		s.err = runErr
	}
	s.mu.Unlock()

	if !clean {
		logger.Error("mapping loop failed", ports.Err(runErr))
		_ = s.lifecycle.TransitionTo(app.StateCrashed, runErr.Error())
		return
	}

	// Stop() handles its own transitions; this only covers an external cancel.
	if s.lifecycle.State() == app.StateRunning {
		if err := s.lifecycle.TransitionTo(app.StateStopping, "context cancelled"); err == nil {
			_ = s.lifecycle.TransitionTo(app.StateStopped, "context cancelled")
		}
	}
}

// Stop cancels the mapping loop and waits for it to disarm.
// Waits for the disarm timeout plus linger plus app.ShutdownTimeout before giving up.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced,
// ErrNotRunning if no run is in progress.
func (s *Stickmap) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.mu.Unlock()

	err := s.lifecycle.WaitWithTimeout(s.config.shutdownWait())
	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
		return err
	}

	// A failed final disable already moved the lifecycle to Crashed.
	_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	return s.Err()
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Stickmap) Status() State {
	return convertState(s.lifecycle.State())
}

// Done returns a channel that is closed when the current run has ended and
// the transports are closed. Before the first Start it is already closed.
func (s *Stickmap) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Err returns the error that ended the last run, or nil for a clean stop.
func (s *Stickmap) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SetAirframe replaces the mapping constants. A running loop picks them up
// on its next frame; later runs start with them.
func (s *Stickmap) SetAirframe(af Airframe) error {
	if err := af.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.airframe = af
	if s.agent != nil {
		return s.agent.SetAirframe(af)
	}
	return nil
}

// Airframe returns the mapping constants currently in use.
func (s *Stickmap) Airframe() Airframe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airframe
}

// Stats returns the counters of the current or last run.
func (s *Stickmap) Stats() Stats {
	s.mu.RLock()
	agent := s.agent
	s.mu.RUnlock()
	if agent == nil {
		return Stats{}
	}
	return agent.Stats()
}

func (s *Stickmap) applyAirframe(af Airframe) {
	if err := s.SetAirframe(af); err != nil {
		s.logger.Warn("airframe rejected", ports.Err(err))
	}
}
