package session

import "context"

// BleTransport opens a GATT connection to a mesh peripheral. bleadapter
// provides the default implementation backed by tinygo.org/x/bluetooth.
type BleTransport interface {
	Connect(ctx context.Context, address string, rawAddr [6]byte) (Peripheral, error)
}

// Peripheral is an open GATT connection to one mesh peripheral: enough to
// write the pairing and command characteristics, read the pairing
// response, and subscribe to notifications.
type Peripheral interface {
	WriteCharacteristic(ctx context.Context, charUUID string, data []byte) error
	ReadCharacteristic(ctx context.Context, charUUID string) ([]byte, error)
	SubscribeNotify(ctx context.Context, charUUID string, handler func([]byte)) error
	Disconnect() error
}
