// Package log adapts logging libraries to ports.Logger.
package log

import "github.com/bft-labs/stickmap/internal/ports"

var (
	_ ports.Logger = (*ZerologAdapter)(nil)
	_ ports.Logger = NoopLogger{}
)

// NoopLogger discards everything. It is the default when an embedding
// application does not supply a logger.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() NoopLogger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...ports.Field) {}
func (NoopLogger) Info(string, ...ports.Field)  {}
func (NoopLogger) Warn(string, ...ports.Field)  {}
func (NoopLogger) Error(string, ...ports.Field) {}
