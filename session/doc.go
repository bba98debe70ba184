// Package session owns one authenticated, encrypted mesh connection: the
// BLE GATT session state machine, the handshake, the paced outbound
// command queue, and notification decoding.
//
// A Session never touches the device/group tables directly — it only
// emits Events for its owner to act on, the same separation the
// controller package draws between "what a connection observed" and
// "what the bridge believes about the mesh".
package session
