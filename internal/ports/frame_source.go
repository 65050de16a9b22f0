package ports

import (
	"context"

	"github.com/bft-labs/stickmap/internal/domain"
)

// FrameSource delivers decoded channel frames in arrival order.
// Implementations subscribe to the receiver channel and decode each message.
type FrameSource interface {
	// Recv blocks until the next frame arrives.
	// Returns domain.ErrMalformedFrame (wrapped) when a message cannot be decoded.
	// Returns other errors for transport failures or cancellation.
	Recv(ctx context.Context) (domain.ChannelFrame, error)

	// Close releases all resources held by the source.
	Close() error
}
