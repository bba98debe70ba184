// Package bleadapter backs the bridge's BLE interfaces with
// tinygo.org/x/bluetooth: it implements discovery.Scanner for
// advertisement scanning and session.BleTransport for GATT connections
// to mesh peripherals.
//
// Scan results cache the platform bluetooth.Address for each peripheral,
// so a later Connect can reuse it instead of re-parsing the address
// string (which is not possible on every platform).
package bleadapter
