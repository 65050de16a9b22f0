// Package stickmap maps remote-control sticks to multi-rotor setpoints.
//
// Example usage:
//
//	cfg := stickmap.DefaultConfig()
//	cfg.Sockets.Frames = stickmap.Endpoint{Address: "tcp://127.0.0.1:5560"}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := stickmap.Run(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control over the lifecycle use package pkg/stickmap directly.
package stickmap

import (
	"context"

	svc "github.com/bft-labs/stickmap/pkg/stickmap"
)

// Config holds the configuration of the mapping service.
type Config = svc.Config

// Endpoint locates one ZeroMQ socket.
type Endpoint = svc.Endpoint

// Option configures optional behavior of the mapping service.
type Option = svc.Option

// DefaultConfig returns a Config with the default socket layout, timings and airframe.
func DefaultConfig() Config {
	return svc.DefaultConfig()
}

// Run maps frames until ctx is cancelled or the loop fails.
// It returns after the final disable was sent and the sockets are closed.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	s, err := svc.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-s.Done()
	return s.Err()
}
