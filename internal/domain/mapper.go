package domain

import "math"

// Map converts one channel frame into a setpoint bundle.
//
// Invalid frames always disarm and carry no setpoints. For valid frames the
// motors are enabled only when the switch is strictly above the enable
// threshold. The deadzone is applied to the raw stick value before the gain,
// so a deflection just above the deadzone passes through at full resolution.
// Thrust has no deadzone.
func Map(frame ChannelFrame, af Airframe) SetpointBundle {
	if !frame.Valid {
		return Disarmed()
	}

	return SetpointBundle{
		MotorsEnabled: frame.Switch > af.EnableThreshold,
		HasSetpoints:  true,
		Thrust:        af.ThrustGain * frame.Gas,
		PitchRate:     af.PitchGain * applyDeadzone(frame.Pitch, af.Deadzone),
		RollRate:      af.RollGain * applyDeadzone(frame.Roll, af.Deadzone),
		YawRate:       af.YawRateGain * applyDeadzone(frame.Yaw, af.Deadzone),
	}
}

// applyDeadzone returns 0 if the value is within the deadzone.
func applyDeadzone(v, deadzone float64) float64 {
	if math.Abs(v) < deadzone {
		return 0
	}
	return v
}
