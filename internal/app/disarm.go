package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

// disarmGuard sends the final disable decision exactly once.
// It is acquired before the first frame is received and released by a
// deferred call, so it fires on normal return, error, cancellation and panic.
type disarmGuard struct {
	once    sync.Once
	sink    ports.EnableSink
	timeout time.Duration
	linger  time.Duration
	logger  ports.Logger
	err     error
}

func newDisarmGuard(sink ports.EnableSink, timeout, linger time.Duration, logger ports.Logger) *disarmGuard {
	return &disarmGuard{
		sink:    sink,
		timeout: timeout,
		linger:  linger,
		logger:  logger,
	}
}

// Release sends the disable decision on the first call and returns its
// result on every call. It does not use the run context, which is usually
// already cancelled when the guard fires.
func (g *disarmGuard) Release() error {
	g.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		if err := g.sink.SendEnable(ctx, false); err != nil {
			g.err = fmt.Errorf("%w: %w", domain.ErrDisarmFailed, err)
			g.logger.Error("final disarm failed", ports.Err(err))
			return
		}
		g.logger.Info("motors disarmed", ports.Duration("linger", g.linger))

		// let the transport drain before sockets are closed
		if g.linger > 0 {
			time.Sleep(g.linger)
		}
	})
	return g.err
}
