// Package discovery scans for BLE advertisements matching a vendor MAC
// prefix and ranks the results into a candidate pool the scheduler can
// pick connection targets from.
//
// Scanning itself is behind the Scanner interface; bleadapter supplies
// the tinygo.org/x/bluetooth-backed default. This package never opens a
// GATT connection — it only observes advertisements and orders them by
// signal strength.
package discovery
