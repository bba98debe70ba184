package events

import "time"

// EventType identifies the type of event.
type EventType string

const (
	// EventTypeStateChanged indicates a device's state fields changed.
	EventTypeStateChanged EventType = "state_changed"

	// EventTypeDeviceOnline indicates a device came online.
	EventTypeDeviceOnline EventType = "device_online"

	// EventTypeDeviceOffline indicates a device went offline.
	EventTypeDeviceOffline EventType = "device_offline"

	// EventTypeDiscovery indicates a device or group resolved enough
	// display info to publish a discovery document for the first time.
	EventTypeDiscovery EventType = "discovery"

	// EventTypeGroupStateChanged indicates a group's aggregate state changed.
	EventTypeGroupStateChanged EventType = "group_state_changed"

	// EventTypeConnectionStatus indicates the scheduler's slot/connection
	// summary changed and should be republished.
	EventTypeConnectionStatus EventType = "connection_status"

	// EventTypeError indicates a recoverable protocol or allow-list error
	// worth surfacing to a log sink.
	EventTypeError EventType = "error"
)

// Event is the interface implemented by all event types the controller
// emits toward the bus adapter.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// DeviceID returns the bus-topic entity id: a mesh id formatted as a
	// decimal string for device events, or "group-<id>" for group events.
	DeviceID() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time

	// Source returns the event source.
	Source() EventSource
}

// EventSource indicates what triggered the event.
type EventSource string

const (
	// EventSourceMesh indicates the event originated from a decoded BLE
	// mesh notification.
	EventSourceMesh EventSource = "mesh"

	// EventSourceCommand indicates the event was synthesized locally in
	// response to an inbound bus command.
	EventSourceCommand EventSource = "command"

	// EventSourceInternal indicates the event was raised by the
	// controller's own bookkeeping (group aggregation, discovery,
	// connection summaries, errors) rather than by one decoded
	// notification.
	EventSourceInternal EventSource = "internal"
)

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	eventType EventType
	deviceID  string
	timestamp time.Time
	source    EventSource
}

// Type returns the event type.
func (e *BaseEvent) Type() EventType { return e.eventType }

// DeviceID returns the bus-topic entity id.
func (e *BaseEvent) DeviceID() string { return e.deviceID }

// Timestamp returns when the event occurred.
func (e *BaseEvent) Timestamp() time.Time { return e.timestamp }

// Source returns the event source.
func (e *BaseEvent) Source() EventSource { return e.source }

// StateChangedEvent represents a device's state fields changing, carrying
// a snapshot of those fields. The bus adapter re-reads the device from the
// controller when it renders light-state JSON.
type StateChangedEvent struct {
	BaseEvent

	MeshID          uint16
	State           bool
	ColorMode       bool
	EffectMode      bool
	WhiteBrightness uint8
	Temperature     uint8
	ColorBrightness uint8
	R, G, B         uint8
}

// NewStateChangedEvent creates a new device state-changed event.
func NewStateChangedEvent(meshID uint16, deviceID string) *StateChangedEvent {
	return &StateChangedEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeStateChanged,
			deviceID:  deviceID,
			timestamp: time.Now(),
			source:    EventSourceMesh,
		},
		MeshID: meshID,
	}
}

// WithSource sets the event source.
func (e *StateChangedEvent) WithSource(source EventSource) *StateChangedEvent {
	e.source = source
	return e
}

// GroupStateChangedEvent represents a group's aggregate state changing.
type GroupStateChangedEvent struct {
	BaseEvent

	GroupID         uint16
	State           bool
	ColorMode       bool
	EffectMode      bool
	WhiteBrightness uint8
	Temperature     uint8
	ColorBrightness uint8
	R, G, B         uint8
}

// NewGroupStateChangedEvent creates a new group state-changed event.
func NewGroupStateChangedEvent(groupID uint16, deviceID string) *GroupStateChangedEvent {
	return &GroupStateChangedEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeGroupStateChanged,
			deviceID:  deviceID,
			timestamp: time.Now(),
			source:    EventSourceInternal,
		},
		GroupID: groupID,
	}
}

// DeviceOnlineEvent indicates a device's availability became online, as
// pushed through the controller's debounce FIFO.
type DeviceOnlineEvent struct {
	BaseEvent
	MeshID uint16
}

// NewDeviceOnlineEvent creates a new device online event.
func NewDeviceOnlineEvent(meshID uint16, deviceID string) *DeviceOnlineEvent {
	return &DeviceOnlineEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeDeviceOnline,
			deviceID:  deviceID,
			timestamp: time.Now(),
			source:    EventSourceMesh,
		},
		MeshID: meshID,
	}
}

// DeviceOfflineEvent indicates a device's availability became offline.
type DeviceOfflineEvent struct {
	BaseEvent
	MeshID uint16
	Reason string
}

// NewDeviceOfflineEvent creates a new device offline event.
func NewDeviceOfflineEvent(meshID uint16, deviceID, reason string) *DeviceOfflineEvent {
	return &DeviceOfflineEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeDeviceOffline,
			deviceID:  deviceID,
			timestamp: time.Now(),
			source:    EventSourceMesh,
		},
		MeshID: meshID,
		Reason: reason,
	}
}

// DiscoveryEvent indicates a device or group resolved display info and
// should have its discovery document (re)published.
type DiscoveryEvent struct {
	BaseEvent
	IsGroup bool
}

// NewDiscoveryEvent creates a new discovery event.
func NewDiscoveryEvent(deviceID string, isGroup bool) *DiscoveryEvent {
	return &DiscoveryEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeDiscovery,
			deviceID:  deviceID,
			timestamp: time.Now(),
			source:    EventSourceInternal,
		},
		IsGroup: isGroup,
	}
}

// ConnectionStatusEvent carries the scheduler-wide connection summary
// published to P/connection_status.
type ConnectionStatusEvent struct {
	BaseEvent
	ActiveConnections int
	OnlineDevices     int
}

// NewConnectionStatusEvent creates a new connection status event.
func NewConnectionStatusEvent(active, online int) *ConnectionStatusEvent {
	return &ConnectionStatusEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeConnectionStatus,
			deviceID:  "",
			timestamp: time.Now(),
			source:    EventSourceInternal,
		},
		ActiveConnections: active,
		OnlineDevices:     online,
	}
}

// ErrorEvent represents a recoverable protocol or allow-list error worth
// logging, per the error taxonomy's warn/error surfacing policy.
type ErrorEvent struct {
	BaseEvent
	Message string
}

// NewErrorEvent creates a new error event.
func NewErrorEvent(deviceID, message string) *ErrorEvent {
	return &ErrorEvent{
		BaseEvent: BaseEvent{
			eventType: EventTypeError,
			deviceID:  deviceID,
			timestamp: time.Now(),
			source:    EventSourceInternal,
		},
		Message: message,
	}
}
