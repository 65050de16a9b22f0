package domain

// ChannelFrame represents one decoded remote-control packet.
// Frames with Valid set to false carry no usable stick values.
type ChannelFrame struct {
	// Valid reports whether the receiver delivered usable stick data
	Valid bool

	// Pitch, Roll and Yaw are zero-centered stick deflections in [-1, 1]
	Pitch float64
	Roll  float64
	Yaw   float64

	// Gas is the throttle stick in [0, 1]
	Gas float64

	// Switch is the arming switch position in [0, 1]
	Switch float64
}

// InvalidFrame returns a frame that carries no stick data.
func InvalidFrame() ChannelFrame {
	return ChannelFrame{}
}
