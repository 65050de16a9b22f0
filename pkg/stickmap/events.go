package stickmap

import "github.com/bft-labs/stickmap/internal/app"

// Stats counts frames and enable transitions of the current run.
type Stats = app.Stats

// StateChangeEvent is delivered when the lifecycle state changes.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// ArmChangeEvent is delivered when the enable decision flips.
type ArmChangeEvent struct {
	Armed bool
	Stats Stats
}

// EventHandler receives service events. Calls are synchronous: state changes
// come from the caller of Start/Stop or the run goroutine, arm changes from
// the mapping loop. Implementations must return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnArmChange(event ArmChangeEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to handle a subset.
type BaseEventHandler struct{}

// OnStateChange does nothing.
func (BaseEventHandler) OnStateChange(StateChangeEvent) {}

// OnArmChange does nothing.
func (BaseEventHandler) OnArmChange(ArmChangeEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnArmChange(armed bool, stats app.Stats) {
	if e.handler == nil {
		return
	}
	e.handler.OnArmChange(ArmChangeEvent{Armed: armed, Stats: stats})
}
