// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the mapping loop and the outside world. They
// define what the loop needs from the messaging layer without specifying how
// those needs are fulfilled.
//
// # Port Interfaces
//
//   - [FrameSource]: Receives decoded channel frames from the receiver channel
//   - [ScalarSink]: Publishes one float setpoint per valid cycle
//   - [EnableSink]: Publishes the motor enable decision every cycle
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with ZeroMQ
// sockets, msgpack encoding and zerolog.
//
// This separation enables:
//   - Testing the loop without any network or process dependency
//   - Swapping the transport without changing the mapping rules
package ports
