package stickmap

import "github.com/bft-labs/stickmap/internal/app"

// State is the lifecycle state of a Stickmap instance.
type State int

const (
	// StateStopped means no mapping loop is running.
	StateStopped State = iota
	// StateStarting means Start was called and the loop is being set up.
	StateStarting
	// StateRunning means frames are being mapped.
	StateRunning
	// StateStopping means Stop was called and the loop is disarming.
	StateStopping
	// StateCrashed means the loop ended with an error. Start may be called again.
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// CanStart reports whether Start may be called in this state.
func (s State) CanStart() bool {
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop may be called in this state.
func (s State) CanStop() bool {
	return s == StateStarting || s == StateRunning
}

// IsRunning reports whether frames are being mapped.
func (s State) IsRunning() bool {
	return s == StateRunning
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
