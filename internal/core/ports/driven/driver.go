package driven

import "context"

// Driver is the lifecycle shared by every driver contract.
type Driver interface {
	// Connect establishes the connection to the backend.
	Connect(ctx context.Context) error

	// Disconnect releases the connection to the backend.
	// Calling Disconnect on a driver that is not connected is a no-op.
	Disconnect(ctx context.Context) error
}

// Factory constructs a driver instance. It is called exactly once, at
// registration time.
type Factory[D Driver] func() D

// Builder constructs a driver from driver-specific configuration.
// Builders are looked up by kind in a catalogue.
type Builder[D Driver] func(cfg map[string]any) (D, error)
