// Package scheduler assigns candidate peripherals from a discovery.Pool
// to a fixed, small set of BLE slots, each backed by a session.Session.
// It enforces the connect cooldown, arms the per-attempt connect
// watchdog, resolves overlap between slots that end up covering the same
// mesh ids, and forwards every slot's decoded session.Event stream so a
// controller can update its device/group tables.
//
// The scheduler owns slot-to-peripheral assignment and each slot's
// reachable-mesh-id bookkeeping; it has no notion of devices, groups, or
// capabilities — that's the controller package, one layer up.
package scheduler
