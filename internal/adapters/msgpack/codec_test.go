package msgpack

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bft-labs/stickmap/internal/domain"
)

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := msgpack.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %v: %v", v, err)
	}
	return b
}

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		want    domain.ChannelFrame
		wantErr bool
	}{
		{
			name:    "integer valid flag with floats",
			payload: []interface{}{1, 0.02, -0.3, 0.0, 0.5, 0.9},
			want:    domain.ChannelFrame{Valid: true, Pitch: 0.02, Roll: -0.3, Gas: 0.5, Switch: 0.9},
		},
		{
			name:    "bool valid flag",
			payload: []interface{}{true, 0.2, 0.0, -0.1, 0.0, 0.1},
			want:    domain.ChannelFrame{Valid: true, Pitch: 0.2, Yaw: -0.1, Switch: 0.1},
		},
		{
			name:    "integer stick values",
			payload: []interface{}{1, 1, -1, 0, 1, 0},
			want:    domain.ChannelFrame{Valid: true, Pitch: 1, Roll: -1, Gas: 1},
		},
		{
			name:    "extra channels ignored",
			payload: []interface{}{1, 0.1, 0.2, 0.3, 0.4, 0.6, 0.7, 0.8},
			want:    domain.ChannelFrame{Valid: true, Pitch: 0.1, Roll: 0.2, Yaw: 0.3, Gas: 0.4, Switch: 0.6},
		},
		{
			name:    "invalid flag alone",
			payload: []interface{}{0},
			want:    domain.InvalidFrame(),
		},
		{
			name:    "invalid flag ignores garbage",
			payload: []interface{}{false, "x"},
			want:    domain.InvalidFrame(),
		},
		{
			name:    "valid frame too short",
			payload: []interface{}{1, 0.1, 0.2},
			wantErr: true,
		},
		{
			name:    "non-numeric stick",
			payload: []interface{}{1, "up", 0.2, 0.3, 0.4, 0.5},
			wantErr: true,
		},
		{
			name:    "string valid flag",
			payload: []interface{}{"yes", 0.1, 0.2, 0.3, 0.4, 0.5},
			wantErr: true,
		},
		{
			name:    "not an array",
			payload: 1.5,
			wantErr: true,
		},
		{
			name:    "empty array",
			payload: []interface{}{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFrame(mustMarshal(t, tt.payload))
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedFrame) {
					t.Fatalf("DecodeFrame() error = %v, want ErrMalformedFrame", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeFrame() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeFrame() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeFrame_Garbage(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xc1}); !errors.Is(err, domain.ErrMalformedFrame) {
		t.Errorf("DecodeFrame(0xc1) error = %v, want ErrMalformedFrame", err)
	}
	if _, err := DecodeFrame(nil); !errors.Is(err, domain.ErrMalformedFrame) {
		t.Errorf("DecodeFrame(nil) error = %v, want ErrMalformedFrame", err)
	}
}

func TestEncodeFrame_RoundTrip(t *testing.T) {
	frames := []domain.ChannelFrame{
		{Valid: true, Pitch: 0.25, Roll: -0.5, Yaw: 0.75, Gas: 0.3, Switch: 1},
		domain.InvalidFrame(),
	}
	for _, f := range frames {
		b, err := EncodeFrame(f)
		if err != nil {
			t.Fatalf("EncodeFrame() error: %v", err)
		}
		got, err := DecodeFrame(b)
		if err != nil {
			t.Fatalf("DecodeFrame() error: %v", err)
		}
		if got != f {
			t.Errorf("round trip = %+v, want %+v", got, f)
		}
	}
}

func TestEncodeEnable(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		b, err := EncodeEnable(enabled)
		if err != nil {
			t.Fatalf("EncodeEnable(%v) error: %v", enabled, err)
		}

		var n int
		if err := msgpack.Unmarshal(b, &n); err != nil {
			t.Fatalf("unmarshal enable: %v", err)
		}
		want := 0
		if enabled {
			want = 1
		}
		if n != want {
			t.Errorf("EncodeEnable(%v) decodes to %d, want %d", enabled, n, want)
		}

		got, err := DecodeEnable(b)
		if err != nil || got != enabled {
			t.Errorf("DecodeEnable() = %v, %v; want %v", got, err, enabled)
		}
	}
}

func TestEncodeScalar(t *testing.T) {
	b, err := EncodeScalar(-0.135)
	if err != nil {
		t.Fatalf("EncodeScalar() error: %v", err)
	}
	got, err := DecodeScalar(b)
	if err != nil {
		t.Fatalf("DecodeScalar() error: %v", err)
	}
	if got != -0.135 {
		t.Errorf("DecodeScalar() = %v, want -0.135", got)
	}

	if got, err := DecodeScalar(mustMarshal(t, 2)); err != nil || got != 2 {
		t.Errorf("DecodeScalar(int 2) = %v, %v; want 2", got, err)
	}
}
