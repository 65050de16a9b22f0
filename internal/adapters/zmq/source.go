package zmq

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/bft-labs/stickmap/internal/adapters/msgpack"
	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

// FrameSource implements ports.FrameSource on a SUB socket.
type FrameSource struct {
	sock     zmq4.Socket
	endpoint Endpoint
}

// NewFrameSource subscribes to every message on the given endpoint.
// Blocking receives are released when ctx is cancelled.
func NewFrameSource(ctx context.Context, ep Endpoint) (*FrameSource, error) {
	sock, err := newSocket(ctx, zmq4.Sub)
	if err != nil {
		return nil, err
	}
	if err := sock.SetOption(zmq4.OptionSubscribe, ""); err != nil {
		sock.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	if err := attach(sock, ep); err != nil {
		sock.Close()
		return nil, fmt.Errorf("frame source %s: %w", ep, err)
	}
	return &FrameSource{sock: sock, endpoint: ep}, nil
}

// Recv blocks until the next message arrives and decodes it.
func (s *FrameSource) Recv(ctx context.Context) (domain.ChannelFrame, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChannelFrame{}, err
	}

	msg, err := s.sock.Recv()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.ChannelFrame{}, ctxErr
		}
		return domain.ChannelFrame{}, fmt.Errorf("receive frame: %w", err)
	}
	return msgpack.DecodeFrame(msg.Bytes())
}

// Close releases the socket.
func (s *FrameSource) Close() error {
	return s.sock.Close()
}

var _ ports.FrameSource = (*FrameSource)(nil)
