// Package meshproto implements the AwoX/Telink mesh wire protocol: the
// AES-ECB handshake, per-packet encryption, 20-byte frame layout, and the
// command-code vocabulary used to talk to a connected peripheral.
//
// Nothing in this package touches BLE transport or I/O; it is pure data
// transformation so it can be exercised with table-driven tests.
package meshproto
