package events

// Filter is a function that determines if an event should be processed.
type Filter func(Event) bool

// WithDeviceID creates a filter that matches events for a specific entity
// id (a mesh id formatted as a decimal string, or "group-<id>").
func WithDeviceID(deviceID string) Filter {
	return func(e Event) bool {
		return e.DeviceID() == deviceID
	}
}

// WithDeviceIDs creates a filter that matches events for any of the
// specified entity ids.
func WithDeviceIDs(deviceIDs ...string) Filter {
	idSet := make(map[string]bool, len(deviceIDs))
	for _, id := range deviceIDs {
		idSet[id] = true
	}
	return func(e Event) bool {
		return idSet[e.DeviceID()]
	}
}

// WithEventType creates a filter that matches events of a specific type.
func WithEventType(eventType EventType) Filter {
	return func(e Event) bool {
		return e.Type() == eventType
	}
}

// WithEventTypes creates a filter that matches events of any of the
// specified types.
func WithEventTypes(eventTypes ...EventType) Filter {
	typeSet := make(map[EventType]bool, len(eventTypes))
	for _, t := range eventTypes {
		typeSet[t] = true
	}
	return func(e Event) bool {
		return typeSet[e.Type()]
	}
}

// WithSource creates a filter that matches events from a specific source.
func WithSource(source EventSource) Filter {
	return func(e Event) bool {
		return e.Source() == source
	}
}

// WithSources creates a filter that matches events from any of the
// specified sources.
func WithSources(sources ...EventSource) Filter {
	sourceSet := make(map[EventSource]bool, len(sources))
	for _, s := range sources {
		sourceSet[s] = true
	}
	return func(e Event) bool {
		return sourceSet[e.Source()]
	}
}

// WithMeshID creates a filter that matches device-scoped events
// (StateChangedEvent, DeviceOnlineEvent, DeviceOfflineEvent) for a
// specific mesh id.
func WithMeshID(meshID uint16) Filter {
	return func(e Event) bool {
		switch evt := e.(type) {
		case *StateChangedEvent:
			return evt.MeshID == meshID
		case *DeviceOnlineEvent:
			return evt.MeshID == meshID
		case *DeviceOfflineEvent:
			return evt.MeshID == meshID
		default:
			return false
		}
	}
}

// And combines multiple filters with AND logic.
// All filters must match for the event to be accepted.
func And(filters ...Filter) Filter {
	return func(e Event) bool {
		for _, f := range filters {
			if !f(e) {
				return false
			}
		}
		return true
	}
}

// Or combines multiple filters with OR logic.
// At least one filter must match for the event to be accepted.
func Or(filters ...Filter) Filter {
	return func(e Event) bool {
		for _, f := range filters {
			if f(e) {
				return true
			}
		}
		return false
	}
}

// Not negates a filter.
func Not(filter Filter) Filter {
	return func(e Event) bool {
		return !filter(e)
	}
}

// StateChanged is a shorthand filter for device state-changed events.
func StateChanged() Filter {
	return WithEventType(EventTypeStateChanged)
}

// GroupStateChanged is a shorthand filter for group state-changed events.
func GroupStateChanged() Filter {
	return WithEventType(EventTypeGroupStateChanged)
}

// DeviceOnline is a shorthand filter for device online events.
func DeviceOnline() Filter {
	return WithEventType(EventTypeDeviceOnline)
}

// DeviceOffline is a shorthand filter for device offline events.
func DeviceOffline() Filter {
	return WithEventType(EventTypeDeviceOffline)
}

// Discovery is a shorthand filter for discovery events.
func Discovery() Filter {
	return WithEventType(EventTypeDiscovery)
}

// Errors is a shorthand filter for error events.
func Errors() Filter {
	return WithEventType(EventTypeError)
}

// FromMesh is a shorthand filter for events sourced from a BLE notification.
func FromMesh() Filter {
	return WithSource(EventSourceMesh)
}
