// Package events provides a typed event system for controller-observed
// mesh activity.
//
// The events package implements a publish-subscribe pattern the Mesh
// Controller uses to tell a Bus Adapter what changed, without the
// controller depending on any particular bus implementation.
//
// # Event Bus
//
// The EventBus is the central hub for event distribution:
//
//	bus := events.NewEventBus()
//	defer bus.Close()
//
//	// Subscribe to all events
//	bus.Subscribe(func(e events.Event) {
//	    fmt.Printf("Event: %s from %s\n", e.Type(), e.DeviceID())
//	})
//
//	// Publish an event
//	bus.Publish(events.NewStateChangedEvent(meshID, "7"))
//
// # Event Types
//
//   - StateChangedEvent: a device's light/plug state changed
//   - GroupStateChangedEvent: a group's aggregate state changed
//   - DeviceOnlineEvent / DeviceOfflineEvent: debounced availability flips
//   - DiscoveryEvent: a device or group first resolved enough info to
//     publish its discovery document
//   - ConnectionStatusEvent: the scheduler-wide connection summary changed
//   - ErrorEvent: a recoverable protocol or allow-list rejection
//
// # Filtered Subscriptions
//
//	bus.SubscribeFiltered(
//	    events.And(events.WithDeviceID("7"), events.StateChanged()),
//	    func(e events.Event) {
//	        // Handle state changes for mesh id 7
//	    },
//	)
//
// # Handler Registration
//
//	registry := events.NewHandlerRegistry(bus)
//	registry.OnStateChanged(func(e *events.StateChangedEvent) {
//	    fmt.Printf("mesh %d state changed\n", e.MeshID)
//	})
//	registry.OnDeviceOffline(func(e *events.DeviceOfflineEvent) {
//	    fmt.Printf("device offline: %s\n", e.DeviceID())
//	})
//
// # Thread Safety
//
// The EventBus is fully thread-safe. Subscribers are invoked synchronously
// in the order they were registered. For async processing, subscribers
// should dispatch to their own goroutines.
package events
