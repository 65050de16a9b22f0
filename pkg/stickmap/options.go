package stickmap

import (
	"github.com/bft-labs/stickmap/internal/adapters/fs"
	logAdapter "github.com/bft-labs/stickmap/internal/adapters/log"
	"github.com/bft-labs/stickmap/internal/domain"
	"github.com/bft-labs/stickmap/internal/ports"
)

type (
	// Logger is the interface for structured logging.
	Logger = ports.Logger

	// LogField represents a structured log field.
	LogField = ports.Field

	// ChannelFrame is one decoded receiver frame.
	ChannelFrame = domain.ChannelFrame

	// FrameSource delivers receiver frames.
	FrameSource = ports.FrameSource

	// ScalarSink receives one setpoint stream.
	ScalarSink = ports.ScalarSink

	// EnableSink receives the enable decisions.
	EnableSink = ports.EnableSink

	// Sinks groups the five outputs.
	Sinks = ports.Sinks

	// AirframeLoader reads and validates the current airframe profile.
	AirframeLoader = fs.AirframeLoader
)

// Option configures optional behavior of Stickmap.
type Option func(*options)

type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	source       ports.FrameSource
	sinks        *ports.Sinks
	watchPath    string
	watchLoad    AirframeLoader
}

func defaultOptions() options {
	return options{
		logger: logAdapter.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for lifecycle and arm events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithFrameSource replaces the ZeroMQ frame subscriber.
// The source is used for every run and is not closed by the service.
func WithFrameSource(source FrameSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithSinks replaces the ZeroMQ setpoint sockets.
// The sinks are used for every run and are not closed by the service.
func WithSinks(sinks Sinks) Option {
	return func(o *options) {
		o.sinks = &sinks
	}
}

// WithAirframeWatcher reloads the airframe whenever the file at path changes.
// load is called after each change; its result replaces the running gains.
// A failing load keeps the previous gains.
//
// Usage:
//
//	svc, err := stickmap.New(cfg,
//	    stickmap.WithAirframeWatcher(path, func() (stickmap.Airframe, error) {
//	        return readProfile(path)
//	    }),
//	)
func WithAirframeWatcher(path string, load AirframeLoader) Option {
	return func(o *options) {
		o.watchPath = path
		o.watchLoad = load
	}
}

// sessionLogger tags every line with the id of the current run.
type sessionLogger struct {
	ports.Logger
	session ports.Field
}

func (l sessionLogger) Debug(msg string, fields ...ports.Field) {
	l.Logger.Debug(msg, append(fields, l.session)...)
}

func (l sessionLogger) Info(msg string, fields ...ports.Field) {
	l.Logger.Info(msg, append(fields, l.session)...)
}

func (l sessionLogger) Warn(msg string, fields ...ports.Field) {
	l.Logger.Warn(msg, append(fields, l.session)...)
}

func (l sessionLogger) Error(msg string, fields ...ports.Field) {
	l.Logger.Error(msg, append(fields, l.session)...)
}
