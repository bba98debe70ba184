// Package awoxbridge bridges a fleet of AwoX/EGLO BLE mesh lighting and plug
// peripherals onto a JSON-over-MQTT home-automation bus.
//
// # Overview
//
// The bridge scans for peripherals matching a vendor MAC prefix, opens a
// small bounded number of concurrent BLE GATT sessions, authenticates to the
// mesh, and uses any connected peripheral as a relay that forwards commands
// to, and surfaces status reports from, every other peripheral sharing the
// mesh.
//
// # Package organization
//
//   - meshproto: wire framing, AES-ECB handshake/encrypt/decrypt primitives,
//     destinations and the error taxonomy
//   - meshmodel: the device and group state tables
//   - discovery: BLE advertisement scanning and the ranked candidate pool
//   - bleadapter: a tinygo.org/x/bluetooth-backed BleTransport
//   - session: one authenticated, encrypted mesh session per BLE slot
//   - scheduler: assigns candidates to free slots and resolves overlap
//   - controller: owns the device/group tables and routes commands
//   - catalog: product-id to capability/display-metadata resolution
//   - bus: the external message-bus contract and JSON command/state grammar
//   - busmqtt: a paho.mqtt.golang-backed Bus
//   - busadapter: maps Controller state to bus publications and back
//   - hostapi: host integration points (logging, identity)
//   - bridge: top-level wiring and the run loop
//
// # Concurrency
//
// The device/group tables have a single owner: the Controller, which is
// driven from the bridge's slot-event pump and housekeeping ticker. BLE
// notification callbacks and MQTT callbacks never touch the tables
// directly — sessions forward decoded notifications over a channel, and
// inbound bus commands arrive as Controller method calls that route
// frames without reading back through the tables mid-update. Controller
// events are published only after its lock is released, so subscribers
// may call back into its accessors freely.
package awoxbridge
