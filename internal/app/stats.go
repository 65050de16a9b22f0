package app

import (
	"sync"

	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

// Stats counts what the mapping loop has seen. It never influences mapping.
type Stats struct {
	Frames        uint64
	InvalidFrames uint64
	Arms          uint64
	Disarms       uint64
	Armed         bool
}

type statsRecorder struct {
	mu    sync.Mutex
	stats Stats
}

// record updates the counters and reports whether the enable decision changed.
func (r *statsRecorder) record(frame domain.ChannelFrame, out domain.SetpointBundle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Frames++
	if !frame.Valid {
		r.stats.InvalidFrames++
	}
	if out.MotorsEnabled == r.stats.Armed {
		return false
	}
	r.stats.Armed = out.MotorsEnabled
	if out.MotorsEnabled {
		r.stats.Arms++
	} else {
		r.stats.Disarms++
	}
	return true
}

func (r *statsRecorder) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (s Stats) fields() []ports.Field {
	return []ports.Field{
		ports.Uint64("frames", s.Frames),
		ports.Uint64("invalid_frames", s.InvalidFrames),
		ports.Uint64("arms", s.Arms),
		ports.Uint64("disarms", s.Disarms),
	}
}
