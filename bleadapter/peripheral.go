package bleadapter

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/awox-mesh/awox-bridge/meshproto"
	"github.com/awox-mesh/awox-bridge/session"
)

// gattPeripheral is an open connection to one mesh peripheral with its
// three characteristics resolved.
type gattPeripheral struct {
	device bluetooth.Device
	chars  map[string]bluetooth.DeviceCharacteristic
}

var _ session.Peripheral = (*gattPeripheral)(nil)

// discoverMeshService resolves the vendor mesh service and its pairing,
// command, and notification characteristics on a freshly connected
// device.
func discoverMeshService(device bluetooth.Device) (*gattPeripheral, error) {
	serviceUUID, err := bluetooth.ParseUUID(meshproto.ServiceUUID)
	if err != nil {
		return nil, fmt.Errorf("bleadapter: parsing service uuid: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		return nil, fmt.Errorf("bleadapter: mesh service not found: %w", meshproto.ErrTransportTransient)
	}

	wanted := []string{
		meshproto.PairingCharUUID,
		meshproto.CommandCharUUID,
		meshproto.NotificationCharUUID,
	}

	chars, err := services[0].DiscoverCharacteristics(nil)
	if err != nil {
		return nil, fmt.Errorf("bleadapter: discovering characteristics: %w", meshproto.ErrTransportTransient)
	}

	resolved := make(map[string]bluetooth.DeviceCharacteristic, len(wanted))
	for _, uuidStr := range wanted {
		uuid, err := bluetooth.ParseUUID(uuidStr)
		if err != nil {
			return nil, fmt.Errorf("bleadapter: parsing characteristic uuid %s: %w", uuidStr, err)
		}
		found := false
		for _, char := range chars {
			if char.UUID() == uuid {
				resolved[uuidStr] = char
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("bleadapter: characteristic %s not found: %w", uuidStr, meshproto.ErrProtocolViolation)
		}
	}

	return &gattPeripheral{device: device, chars: resolved}, nil
}

func (p *gattPeripheral) characteristic(charUUID string) (bluetooth.DeviceCharacteristic, error) {
	char, ok := p.chars[charUUID]
	if !ok {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("bleadapter: unknown characteristic %s: %w", charUUID, meshproto.ErrProtocolViolation)
	}
	return char, nil
}

// WriteCharacteristic writes data without response, the only write mode
// the mesh firmware supports.
func (p *gattPeripheral) WriteCharacteristic(_ context.Context, charUUID string, data []byte) error {
	char, err := p.characteristic(charUUID)
	if err != nil {
		return err
	}
	if _, err := char.WriteWithoutResponse(data); err != nil {
		return fmt.Errorf("bleadapter: writing %s: %w", charUUID, meshproto.ErrTransportTransient)
	}
	return nil
}

// ReadCharacteristic reads the current value of charUUID.
func (p *gattPeripheral) ReadCharacteristic(_ context.Context, charUUID string) ([]byte, error) {
	char, err := p.characteristic(charUUID)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 64)
	n, err := char.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("bleadapter: reading %s: %w", charUUID, meshproto.ErrTransportTransient)
	}
	return buf[:n], nil
}

// SubscribeNotify enables notifications on charUUID. The handler receives
// a copy of each notification's payload.
func (p *gattPeripheral) SubscribeNotify(_ context.Context, charUUID string, handler func([]byte)) error {
	char, err := p.characteristic(charUUID)
	if err != nil {
		return err
	}
	err = char.EnableNotifications(func(data []byte) {
		buf := make([]byte, len(data))
		copy(buf, data)
		handler(buf)
	})
	if err != nil {
		return fmt.Errorf("bleadapter: enabling notifications on %s: %w", charUUID, meshproto.ErrTransportTransient)
	}
	return nil
}

// Disconnect closes the GATT connection.
func (p *gattPeripheral) Disconnect() error {
	if err := p.device.Disconnect(); err != nil {
		return fmt.Errorf("bleadapter: disconnecting: %w", err)
	}
	return nil
}
