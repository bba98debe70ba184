package discovery

import "context"

// Scanner is the platform-specific BLE scanning interface. bleadapter
// supplies the default implementation backed by tinygo.org/x/bluetooth;
// tests supply an in-memory fake.
type Scanner interface {
	// Start begins scanning. Every observed advertisement is passed to
	// callback until the context is canceled or Stop is called.
	Start(ctx context.Context, callback func(Advertisement)) error

	// Stop ends an in-progress scan.
	Stop() error
}
