package events

import "sync"

// StateChangedHandler handles device state-changed events.
type StateChangedHandler func(*StateChangedEvent)

// GroupStateChangedHandler handles group state-changed events.
type GroupStateChangedHandler func(*GroupStateChangedEvent)

// DeviceOnlineHandler handles device online events.
type DeviceOnlineHandler func(*DeviceOnlineEvent)

// DeviceOfflineHandler handles device offline events.
type DeviceOfflineHandler func(*DeviceOfflineEvent)

// DiscoveryHandler handles discovery events.
type DiscoveryHandler func(*DiscoveryEvent)

// ConnectionStatusHandler handles connection status events.
type ConnectionStatusHandler func(*ConnectionStatusEvent)

// ErrorHandler handles error events.
type ErrorHandler func(*ErrorEvent)

// HandlerRegistry provides typed event handler registration.
type HandlerRegistry struct {
	bus           *EventBus
	subscriptions []uint64
	mu            sync.Mutex
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(bus *EventBus) *HandlerRegistry {
	return &HandlerRegistry{
		bus:           bus,
		subscriptions: make([]uint64, 0),
	}
}

// track records a subscription ID for later cleanup.
func (r *HandlerRegistry) track(id uint64) {
	r.mu.Lock()
	r.subscriptions = append(r.subscriptions, id)
	r.mu.Unlock()
}

// OnStateChanged registers a handler for device state-changed events.
func (r *HandlerRegistry) OnStateChanged(handler StateChangedHandler) uint64 {
	id := r.bus.SubscribeFiltered(StateChanged(), func(e Event) {
		if evt, ok := e.(*StateChangedEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnStateChangedFor registers a handler for state-changed events from a
// specific entity id.
func (r *HandlerRegistry) OnStateChangedFor(deviceID string, handler StateChangedHandler) uint64 {
	filter := And(StateChanged(), WithDeviceID(deviceID))
	id := r.bus.SubscribeFiltered(filter, func(e Event) {
		if evt, ok := e.(*StateChangedEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnGroupStateChanged registers a handler for group state-changed events.
func (r *HandlerRegistry) OnGroupStateChanged(handler GroupStateChangedHandler) uint64 {
	id := r.bus.SubscribeFiltered(GroupStateChanged(), func(e Event) {
		if evt, ok := e.(*GroupStateChangedEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnDeviceOnline registers a handler for device online events.
func (r *HandlerRegistry) OnDeviceOnline(handler DeviceOnlineHandler) uint64 {
	id := r.bus.SubscribeFiltered(DeviceOnline(), func(e Event) {
		if evt, ok := e.(*DeviceOnlineEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnDeviceOffline registers a handler for device offline events.
func (r *HandlerRegistry) OnDeviceOffline(handler DeviceOfflineHandler) uint64 {
	id := r.bus.SubscribeFiltered(DeviceOffline(), func(e Event) {
		if evt, ok := e.(*DeviceOfflineEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnDiscovery registers a handler for discovery events.
func (r *HandlerRegistry) OnDiscovery(handler DiscoveryHandler) uint64 {
	id := r.bus.SubscribeFiltered(Discovery(), func(e Event) {
		if evt, ok := e.(*DiscoveryEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnConnectionStatus registers a handler for connection status events.
func (r *HandlerRegistry) OnConnectionStatus(handler ConnectionStatusHandler) uint64 {
	id := r.bus.SubscribeFiltered(WithEventType(EventTypeConnectionStatus), func(e Event) {
		if evt, ok := e.(*ConnectionStatusEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// OnError registers a handler for error events.
func (r *HandlerRegistry) OnError(handler ErrorHandler) uint64 {
	id := r.bus.SubscribeFiltered(Errors(), func(e Event) {
		if evt, ok := e.(*ErrorEvent); ok {
			handler(evt)
		}
	})
	r.track(id)
	return id
}

// Unsubscribe removes a specific subscription.
func (r *HandlerRegistry) Unsubscribe(id uint64) bool {
	r.mu.Lock()
	for i, subID := range r.subscriptions {
		if subID == id {
			r.subscriptions[i] = r.subscriptions[len(r.subscriptions)-1]
			r.subscriptions = r.subscriptions[:len(r.subscriptions)-1]
			break
		}
	}
	r.mu.Unlock()
	return r.bus.Unsubscribe(id)
}

// UnsubscribeAll removes all subscriptions registered through this registry.
func (r *HandlerRegistry) UnsubscribeAll() {
	r.mu.Lock()
	subs := make([]uint64, len(r.subscriptions))
	copy(subs, r.subscriptions)
	r.subscriptions = r.subscriptions[:0]
	r.mu.Unlock()

	for _, id := range subs {
		r.bus.Unsubscribe(id)
	}
}

// SubscriptionCount returns the number of subscriptions in this registry.
func (r *HandlerRegistry) SubscriptionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscriptions)
}
