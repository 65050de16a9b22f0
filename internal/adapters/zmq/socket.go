// Package zmq implements the receiver source and setpoint sinks on ZeroMQ sockets.
//
// The socket pattern of each channel is fixed: frames arrive on a SUB socket,
// thrust is published on a PUB socket and every other setpoint, including the
// enable decision, is sent on a PUSH socket. Endpoints either bind or connect.
package zmq

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"
)

// Channel names as registered in the socket map.
const (
	ChannelFrames    = "rc"
	ChannelEnable    = "mot_en"
	ChannelThrust    = "u_speed_ctrl"
	ChannelPitchRate = "rp_ctrl_spp_p"
	ChannelRollRate  = "rp_ctrl_spp_r"
	ChannelYawRate   = "rs_ctrl_spp_y"
)

// Endpoint locates one socket.
type Endpoint struct {
	// Address is a ZeroMQ endpoint such as "ipc:///tmp/stickmap_rc" or "tcp://127.0.0.1:5560"
	Address string

	// Bind listens on Address instead of connecting to it
	Bind bool
}

// String returns the endpoint in "connect tcp://..." form for logging.
func (e Endpoint) String() string {
	if e.Bind {
		return "bind " + e.Address
	}
	return "connect " + e.Address
}

// Layout holds the endpoints of all six channels.
type Layout struct {
	Frames    Endpoint
	Enable    Endpoint
	Thrust    Endpoint
	PitchRate Endpoint
	RollRate  Endpoint
	YawRate   Endpoint
}

// DefaultEndpointPrefix is prepended to a channel name to form its default endpoint.
const DefaultEndpointPrefix = "ipc:///tmp/stickmap_"

// DefaultEndpoint returns the connect-mode ipc endpoint for a channel.
func DefaultEndpoint(channel string) Endpoint {
	return Endpoint{Address: DefaultEndpointPrefix + channel}
}

// DefaultLayout returns the default endpoints of all channels.
func DefaultLayout() Layout {
	return Layout{}.WithDefaults()
}

// WithDefaults fills every endpoint without an address with its default.
func (l Layout) WithDefaults() Layout {
	fill := func(ep *Endpoint, channel string) {
		if ep.Address == "" {
			*ep = DefaultEndpoint(channel)
		}
	}
	fill(&l.Frames, ChannelFrames)
	fill(&l.Enable, ChannelEnable)
	fill(&l.Thrust, ChannelThrust)
	fill(&l.PitchRate, ChannelPitchRate)
	fill(&l.RollRate, ChannelRollRate)
	fill(&l.YawRate, ChannelYawRate)
	return l
}

func attach(sock zmq4.Socket, ep Endpoint) error {
	if ep.Address == "" {
		return fmt.Errorf("empty endpoint")
	}
	if ep.Bind {
		return sock.Listen(ep.Address)
	}
	return sock.Dial(ep.Address)
}

func newSocket(ctx context.Context, kind zmq4.SocketType) (zmq4.Socket, error) {
	switch kind {
	case zmq4.Sub:
		return zmq4.NewSub(ctx), nil
	case zmq4.Pub:
		return zmq4.NewPub(ctx), nil
	case zmq4.Push:
		return zmq4.NewPush(ctx), nil
	case zmq4.Pull:
		return zmq4.NewPull(ctx), nil
	default:
		return nil, fmt.Errorf("unsupported socket type %s", kind)
	}
}
