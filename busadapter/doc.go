// Package busadapter surfaces every mesh device and group as an entity
// on the external message bus: it publishes discovery documents, state,
// and availability, flushes stale retained availability at startup, and
// translates inbound JSON commands into controller calls.
//
// The adapter is the only component that speaks the bus's JSON grammar;
// the controller deals purely in mesh-internal values. All external↔wire
// value scaling (8-bit brightness, mireds) happens here, via the bus
// package's conversion helpers.
package busadapter
