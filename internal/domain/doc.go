// Package domain contains the core entities and the stick-to-setpoint mapping for stickmap.
//
// This package is the innermost layer of the service. It has no dependencies on
// transport, serialization, file system or logging and contains only the mapping rules.
//
// # Entities
//
//   - [ChannelFrame]: one decoded remote-control packet (sticks and arming switch)
//   - [SetpointBundle]: the values emitted for one frame (enable decision and rate setpoints)
//   - [Airframe]: the per-airframe gains, deadzone and enable threshold
//
// # Mapping
//
// [Map] is a pure function of a frame and an airframe. It performs no I/O, holds no
// state between calls and cannot fail, so every call can be tested in isolation.
package domain
