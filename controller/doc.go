// Package controller owns the device and group tables and translates
// between bus-facing operations (set_power, set_color, ...) and the mesh
// commands a scheduler routes to the right slot. It also consumes the
// scheduler's decoded session.Event stream and turns it into device/group
// state updates and events.Event publications for a bus adapter.
//
// The controller never talks to a transport or a bus client directly: it
// depends on a narrow Router (scheduler.Scheduler satisfies it) and an
// events.EventBus, both supplied by the host at construction time.
package controller
