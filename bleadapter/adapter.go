package bleadapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/awox-mesh/awox-bridge/discovery"
	"github.com/awox-mesh/awox-bridge/session"
)

// Adapter wraps the platform BLE adapter. It satisfies both
// discovery.Scanner and session.BleTransport.
type Adapter struct {
	adapter *bluetooth.Adapter

	mu        sync.Mutex
	addresses map[string]bluetooth.Address
	scanning  bool
	stopCh    chan struct{}
}

var _ discovery.Scanner = (*Adapter)(nil)

var _ session.BleTransport = (*Adapter)(nil)

// New enables the default platform adapter and returns it wrapped.
func New() (*Adapter, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("bleadapter: enabling bluetooth adapter: %w", err)
	}
	return &Adapter{
		adapter:   adapter,
		addresses: make(map[string]bluetooth.Address),
	}, nil
}

// Start begins scanning, converting every scan result into a
// discovery.Advertisement for callback. It blocks until ctx is canceled,
// Stop is called, or the platform scan fails.
func (a *Adapter) Start(ctx context.Context, callback func(discovery.Advertisement)) error {
	a.mu.Lock()
	if a.scanning {
		a.mu.Unlock()
		return nil
	}
	a.scanning = true
	a.stopCh = make(chan struct{})
	stopCh := a.stopCh
	a.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			callback(a.convert(result))
		})
	}()

	select {
	case <-ctx.Done():
		a.Stop()
		return ctx.Err()
	case <-stopCh:
		return nil
	case err := <-errCh:
		a.mu.Lock()
		a.scanning = false
		a.mu.Unlock()
		if err != nil {
			return fmt.Errorf("bleadapter: scan: %w", err)
		}
		return nil
	}
}

// Stop ends an in-progress scan.
func (a *Adapter) Stop() error {
	a.mu.Lock()
	if !a.scanning {
		a.mu.Unlock()
		return nil
	}
	a.scanning = false
	close(a.stopCh)
	a.mu.Unlock()
	return a.adapter.StopScan()
}

// convert translates a platform scan result, remembering the platform
// address so Connect can reuse it.
func (a *Adapter) convert(result bluetooth.ScanResult) discovery.Advertisement {
	addressStr := result.Address.String()

	a.mu.Lock()
	a.addresses[addressStr] = result.Address
	a.mu.Unlock()

	adv := discovery.Advertisement{
		Address:     addressStr,
		RawAddr:     ParseRawAddr(addressStr),
		LocalName:   result.LocalName(),
		RSSI:        int(result.RSSI),
		Connectable: true,
		SeenAt:      time.Now(),
	}

	if mfg := result.ManufacturerData(); len(mfg) > 0 {
		adv.ManufacturerID = mfg[0].CompanyID
		adv.ManufacturerData = mfg[0].Data
	}

	return adv
}

// Connect opens a GATT connection to the peripheral at address and
// discovers the mesh service's pairing, command, and notification
// characteristics.
func (a *Adapter) Connect(ctx context.Context, address string, rawAddr [6]byte) (session.Peripheral, error) {
	a.mu.Lock()
	addr, ok := a.addresses[address]
	a.mu.Unlock()
	if !ok {
		addr.Set(address)
	}

	type connectResult struct {
		device bluetooth.Device
		err    error
	}
	done := make(chan connectResult, 1)
	go func() {
		device, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{})
		done <- connectResult{device: device, err: err}
	}()

	var device bluetooth.Device
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-done:
		if result.err != nil {
			return nil, fmt.Errorf("bleadapter: connecting to %s: %w", address, result.err)
		}
		device = result.device
	}

	peripheral, err := discoverMeshService(device)
	if err != nil {
		device.Disconnect()
		return nil, err
	}
	return peripheral, nil
}

// ParseRawAddr decodes a colon-separated MAC address string into its 6
// raw bytes. A malformed address yields the zero value.
func ParseRawAddr(address string) [6]byte {
	var raw [6]byte
	var b [6]int
	n, err := fmt.Sscanf(address, "%02X:%02X:%02X:%02X:%02X:%02X", &b[0], &b[1], &b[2], &b[3], &b[4], &b[5])
	if err != nil || n != 6 {
		return [6]byte{}
	}
	for i, v := range b {
		raw[i] = byte(v)
	}
	return raw
}
