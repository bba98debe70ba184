// Package meshmodel holds the device and group state tables: the
// in-memory record of what the bridge currently believes about every
// mesh id and group id it has seen, independent of how that state was
// learned (BLE notification, a command the bridge itself issued, or a
// catalog lookup).
package meshmodel
