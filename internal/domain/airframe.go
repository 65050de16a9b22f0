package domain

import (
	"fmt"
	"math"
)

// Default mapping constants.
const (
	DefaultThrustGain      = 2.0
	DefaultPitchGain       = -0.45
	DefaultRollGain        = 0.45
	DefaultYawRateGain     = 0.6
	DefaultDeadzone        = 0.05
	DefaultEnableThreshold = 0.5
)

// Airframe holds the mapping constants of one airframe.
type Airframe struct {
	ThrustGain      float64 `json:"thrust_gain"`
	PitchGain       float64 `json:"pitch_gain"`
	RollGain        float64 `json:"roll_gain"`
	YawRateGain     float64 `json:"yaw_rate_gain"`
	Deadzone        float64 `json:"deadzone"`
	EnableThreshold float64 `json:"enable_threshold"`
}

// DefaultAirframe returns the stock quadrotor gains.
func DefaultAirframe() Airframe {
	return Airframe{
		ThrustGain:      DefaultThrustGain,
		PitchGain:       DefaultPitchGain,
		RollGain:        DefaultRollGain,
		YawRateGain:     DefaultYawRateGain,
		Deadzone:        DefaultDeadzone,
		EnableThreshold: DefaultEnableThreshold,
	}
}

// Validate checks that every constant is finite and in range.
func (a Airframe) Validate() error {
	values := []struct {
		name  string
		value float64
	}{
		{"thrust gain", a.ThrustGain},
		{"pitch gain", a.PitchGain},
		{"roll gain", a.RollGain},
		{"yaw rate gain", a.YawRateGain},
		{"deadzone", a.Deadzone},
		{"enable threshold", a.EnableThreshold},
	}
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidAirframe, v.name)
		}
	}

	if a.ThrustGain < 0 {
		return fmt.Errorf("%w: thrust gain must not be negative", ErrInvalidAirframe)
	}
	if a.Deadzone < 0 || a.Deadzone >= 1 {
		return fmt.Errorf("%w: deadzone must be in [0, 1)", ErrInvalidAirframe)
	}
	if a.EnableThreshold < 0 || a.EnableThreshold > 1 {
		return fmt.Errorf("%w: enable threshold must be in [0, 1]", ErrInvalidAirframe)
	}
	return nil
}
