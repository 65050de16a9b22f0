package zmq

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/bft-labs/stickmap/internal/adapters/msgpack"
	"github.com/bft-labs/stickmap/internal/ports"
)

// Sink publishes msgpack-encoded values on a PUSH or PUB socket.
// It satisfies both ports.ScalarSink and ports.EnableSink.
type Sink struct {
	name string
	sock zmq4.Socket
	// busy holds one token while a send is in flight on sock.
	busy chan struct{}
}

// NewPushSink opens a PUSH socket for the named channel.
func NewPushSink(ctx context.Context, name string, ep Endpoint) (*Sink, error) {
	return newSink(ctx, name, zmq4.Push, ep)
}

// NewPubSink opens a PUB socket for the named channel.
func NewPubSink(ctx context.Context, name string, ep Endpoint) (*Sink, error) {
	return newSink(ctx, name, zmq4.Pub, ep)
}

func newSink(ctx context.Context, name string, kind zmq4.SocketType, ep Endpoint) (*Sink, error) {
	sock, err := newSocket(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := attach(sock, ep); err != nil {
		sock.Close()
		return nil, fmt.Errorf("sink %s %s: %w", name, ep, err)
	}
	return &Sink{name: name, sock: sock, busy: make(chan struct{}, 1)}, nil
}

// Name returns the channel name.
func (s *Sink) Name() string {
	return s.name
}

// Send publishes one float setpoint.
func (s *Sink) Send(ctx context.Context, value float64) error {
	b, err := msgpack.EncodeScalar(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	return s.send(ctx, b)
}

// SendEnable publishes the enable decision as 1 or 0.
func (s *Sink) SendEnable(ctx context.Context, enabled bool) error {
	b, err := msgpack.EncodeEnable(enabled)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	return s.send(ctx, b)
}

// send returns when the message was handed to the socket or ctx is done,
// whichever comes first. A send abandoned on ctx keeps the socket busy until
// it completes or the socket is closed; later sends wait for it under their
// own ctx.
func (s *Sink) send(ctx context.Context, b []byte) error {
	select {
	case s.busy <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("send %s: %w", s.name, ctx.Err())
	}

	done := make(chan error, 1)
	go func() {
		defer func() { <-s.busy }()
		done <- s.sock.Send(zmq4.NewMsg(b))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send %s: %w", s.name, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send %s: %w", s.name, ctx.Err())
	}
}

// Close releases the socket.
func (s *Sink) Close() error {
	return s.sock.Close()
}

var (
	_ ports.ScalarSink = (*Sink)(nil)
	_ ports.EnableSink = (*Sink)(nil)
)

// OpenSinks opens the five outbound sockets of the layout.
// ctx should outlive the mapping loop so the final disable can still be sent.
// On error every socket opened so far is closed.
func OpenSinks(ctx context.Context, layout Layout) (ports.Sinks, error) {
	var opened []*Sink
	fail := func(err error) (ports.Sinks, error) {
		for _, s := range opened {
			s.Close()
		}
		return ports.Sinks{}, err
	}

	push := func(name string, ep Endpoint) (*Sink, error) {
		s, err := NewPushSink(ctx, name, ep)
		if err == nil {
			opened = append(opened, s)
		}
		return s, err
	}

	enable, err := push(ChannelEnable, layout.Enable)
	if err != nil {
		return fail(err)
	}
	thrust, err := NewPubSink(ctx, ChannelThrust, layout.Thrust)
	if err != nil {
		return fail(err)
	}
	opened = append(opened, thrust)
	pitch, err := push(ChannelPitchRate, layout.PitchRate)
	if err != nil {
		return fail(err)
	}
	roll, err := push(ChannelRollRate, layout.RollRate)
	if err != nil {
		return fail(err)
	}
	yaw, err := push(ChannelYawRate, layout.YawRate)
	if err != nil {
		return fail(err)
	}

	return ports.Sinks{
		Enable:    enable,
		Thrust:    thrust,
		PitchRate: pitch,
		RollRate:  roll,
		YawRate:   yaw,
	}, nil
}

// CloseSinks closes every non-nil sink and joins the errors.
func CloseSinks(s ports.Sinks) error {
	var errs []error
	closers := []interface{ Close() error }{s.Enable, s.Thrust, s.PitchRate, s.RollRate, s.YawRate}
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
