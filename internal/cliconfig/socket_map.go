package cliconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/stickmap/internal/adapters/zmq"
	"github.com/bft-labs/stickmap/internal/domain"
)

// SocketEntry is one channel in sockets.yaml.
type SocketEntry struct {
	Endpoint string `yaml:"endpoint"`
	Bind     bool   `yaml:"bind"`
}

// SocketMap maps channel names to endpoints, e.g.
//
//	rc:
//	  endpoint: tcp://127.0.0.1:5560
//	mot_en:
//	  endpoint: ipc:///run/pilot/mot_en
//	  bind: true
type SocketMap map[string]SocketEntry

// LoadSocketMap reads a YAML socket map. An empty path yields an empty map.
func LoadSocketMap(path string) (SocketMap, error) {
	if path == "" {
		return SocketMap{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := SocketMap{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse socket map %s: %w", path, err)
	}
	for name := range m {
		if !knownChannel(name) {
			return nil, fmt.Errorf("%w: unknown channel %q in %s", domain.ErrInvalidConfig, name, path)
		}
	}
	return m, nil
}

// Endpoint returns the endpoint for a channel, falling back to the default ipc path.
func (m SocketMap) Endpoint(channel string) zmq.Endpoint {
	if e, ok := m[channel]; ok && e.Endpoint != "" {
		return zmq.Endpoint{Address: e.Endpoint, Bind: e.Bind}
	}
	return zmq.DefaultEndpoint(channel)
}

// Layout resolves all channels.
func (m SocketMap) Layout() zmq.Layout {
	return zmq.Layout{
		Frames:    m.Endpoint(zmq.ChannelFrames),
		Enable:    m.Endpoint(zmq.ChannelEnable),
		Thrust:    m.Endpoint(zmq.ChannelThrust),
		PitchRate: m.Endpoint(zmq.ChannelPitchRate),
		RollRate:  m.Endpoint(zmq.ChannelRollRate),
		YawRate:   m.Endpoint(zmq.ChannelYawRate),
	}
}

func knownChannel(name string) bool {
	switch name {
	case zmq.ChannelFrames, zmq.ChannelEnable, zmq.ChannelThrust,
		zmq.ChannelPitchRate, zmq.ChannelRollRate, zmq.ChannelYawRate:
		return true
	}
	return false
}
