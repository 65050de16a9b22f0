// Package msgpack implements the wire encoding of the receiver and setpoint channels.
//
// Receiver frames are msgpack arrays of the form
//
//	[valid, pitch, roll, yaw, gas, switch, ...]
//
// where valid is a bool or an integer (non-zero means valid). Invalid frames may
// consist of the validity flag alone. Trailing channels are ignored.
// Setpoints are single msgpack floats and the enable decision is the integer 1 or 0.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bft-labs/stickmap/internal/domain"
)

// frameFields is the number of array elements a valid frame must carry.
const frameFields = 6

// DecodeFrame decodes one receiver message.
func DecodeFrame(b []byte) (domain.ChannelFrame, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return domain.ChannelFrame{}, fmt.Errorf("%w: %v", domain.ErrMalformedFrame, err)
	}
	if n < 1 {
		return domain.ChannelFrame{}, fmt.Errorf("%w: empty array", domain.ErrMalformedFrame)
	}

	flag, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return domain.ChannelFrame{}, fmt.Errorf("%w: valid flag: %v", domain.ErrMalformedFrame, err)
	}
	valid, err := truthy(flag)
	if err != nil {
		return domain.ChannelFrame{}, err
	}
	if !valid {
		return domain.InvalidFrame(), nil
	}

	if n < frameFields {
		return domain.ChannelFrame{}, fmt.Errorf("%w: %d elements, want at least %d",
			domain.ErrMalformedFrame, n, frameFields)
	}

	var v [frameFields - 1]float64
	for i := range v {
		if v[i], err = decodeNumber(dec); err != nil {
			return domain.ChannelFrame{}, fmt.Errorf("element %d: %w", i+1, err)
		}
	}

	return domain.ChannelFrame{
		Valid:  true,
		Pitch:  v[0],
		Roll:   v[1],
		Yaw:    v[2],
		Gas:    v[3],
		Switch: v[4],
	}, nil
}

// EncodeFrame encodes a frame in the receiver wire format.
// Invalid frames are encoded as a one-element array.
func EncodeFrame(f domain.ChannelFrame) ([]byte, error) {
	if !f.Valid {
		return msgpack.Marshal([]interface{}{0})
	}
	return msgpack.Marshal([]interface{}{1, f.Pitch, f.Roll, f.Yaw, f.Gas, f.Switch})
}

// EncodeScalar encodes one setpoint value.
func EncodeScalar(v float64) ([]byte, error) {
	return msgpack.Marshal(v)
}

// DecodeScalar decodes a setpoint value. Integer payloads are accepted.
func DecodeScalar(b []byte) (float64, error) {
	return decodeNumber(msgpack.NewDecoder(bytes.NewReader(b)))
}

// EncodeEnable encodes the enable decision as the integer 1 or 0.
func EncodeEnable(enabled bool) ([]byte, error) {
	v := 0
	if enabled {
		v = 1
	}
	return msgpack.Marshal(v)
}

// DecodeEnable decodes an enable decision.
func DecodeEnable(b []byte) (bool, error) {
	v, err := msgpack.NewDecoder(bytes.NewReader(b)).DecodeInterfaceLoose()
	if err != nil {
		return false, err
	}
	return truthy(v)
}

func decodeNumber(dec *msgpack.Decoder) (float64, error) {
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMalformedFrame, err)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", domain.ErrMalformedFrame, v)
	}
}

func truthy(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case uint64:
		return b != 0, nil
	case float64:
		return b != 0, nil
	default:
		return false, fmt.Errorf("%w: valid flag has type %T", domain.ErrMalformedFrame, v)
	}
}
