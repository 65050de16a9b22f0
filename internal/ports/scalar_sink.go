package ports

import "context"

// ScalarSink publishes one setpoint value per call.
// Implementations handle serialization and the socket pattern of the channel.
type ScalarSink interface {
	// Send publishes a single float value.
	Send(ctx context.Context, value float64) error

	// Close releases the underlying transport.
	Close() error
}

// EnableSink publishes the motor enable decision.
// The decision is encoded on the wire as the integer 1 or 0.
type EnableSink interface {
	// SendEnable publishes one enable decision.
	SendEnable(ctx context.Context, enabled bool) error

	// Close releases the underlying transport.
	Close() error
}

// Sinks groups the five outbound channels of the mapping loop.
type Sinks struct {
	// Enable receives the enable decision every cycle
	Enable EnableSink

	// Thrust receives the thrust setpoint on valid cycles
	Thrust ScalarSink

	// PitchRate, RollRate and YawRate receive the rate setpoints on valid cycles
	PitchRate ScalarSink
	RollRate  ScalarSink
	YawRate   ScalarSink
}

// Complete returns true if every channel has a sink.
func (s Sinks) Complete() bool {
	return s.Enable != nil && s.Thrust != nil && s.PitchRate != nil && s.RollRate != nil && s.YawRate != nil
}
