// Package stickmap provides an embeddable stick-to-setpoint mapping service
// for multi-rotor flight-control pipelines.
//
// Stickmap receives normalized remote-control frames, turns the sticks into
// attitude-rate and thrust setpoints and drives the motor-enable interlock
// from the switch channel. It can run as the standalone stickmap CLI or be
// embedded in another Go program.
//
// # Basic Usage
//
//	cfg := stickmap.DefaultConfig()
//	cfg.Sockets.Frames = stickmap.Endpoint{Address: "tcp://127.0.0.1:5560"}
//
//	svc, err := stickmap.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := svc.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Motor Interlock
//
// Every received frame produces an enable decision, published before any
// setpoint of the same cycle. Frames without receiver signal disable the
// motors. Whenever the mapping loop ends, whether by [Stickmap.Stop],
// context cancellation, a transport error or a panic, one final disable is
// sent before the transports are closed.
//
// # Dependency Injection
//
// By default New opens ZeroMQ sockets for the endpoints in [Config.Sockets].
// Tests and embedders can supply their own transports:
//
//	svc, err := stickmap.New(cfg,
//	    stickmap.WithFrameSource(source),
//	    stickmap.WithSinks(sinks),
//	    stickmap.WithLogger(logger),
//	)
//
// Injected transports are never closed by the service.
//
// # Lifecycle States
//
// A Stickmap instance is in one of five states: [StateStopped],
// [StateStarting], [StateRunning], [StateStopping] or [StateCrashed].
// Use [Stickmap.Status] to query it and [Stickmap.Done] to wait for the end
// of a run.
package stickmap
