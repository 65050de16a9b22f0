package domain

// SetpointBundle is the output of one mapping cycle.
// MotorsEnabled is always meaningful; the numeric setpoints are only
// meaningful when HasSetpoints is true.
type SetpointBundle struct {
	MotorsEnabled bool

	// HasSetpoints is true only when the source frame was valid
	HasSetpoints bool

	Thrust    float64
	PitchRate float64
	RollRate  float64
	YawRate   float64
}

// Disarmed returns the bundle emitted for invalid frames and on shutdown.
func Disarmed() SetpointBundle {
	return SetpointBundle{}
}

// EnableValue returns the wire value of the enable decision (1 or 0).
func (b SetpointBundle) EnableValue() int {
	if b.MotorsEnabled {
		return 1
	}
	return 0
}
