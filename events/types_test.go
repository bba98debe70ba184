package events

import (
	"testing"
	"time"
)

func TestBaseEvent(t *testing.T) {
	base := BaseEvent{
		eventType: EventTypeStateChanged,
		deviceID:  "7",
		timestamp: time.Now(),
		source:    EventSourceMesh,
	}

	if base.Type() != EventTypeStateChanged {
		t.Errorf("Type() = %v, want %v", base.Type(), EventTypeStateChanged)
	}
	if base.DeviceID() != "7" {
		t.Errorf("DeviceID() = %v, want %v", base.DeviceID(), "7")
	}
	if base.Source() != EventSourceMesh {
		t.Errorf("Source() = %v, want %v", base.Source(), EventSourceMesh)
	}
	if base.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestNewStateChangedEvent(t *testing.T) {
	event := NewStateChangedEvent(7, "7")
	event.State = true
	event.ColorBrightness = 0x64

	if event.Type() != EventTypeStateChanged {
		t.Errorf("Type() = %v, want %v", event.Type(), EventTypeStateChanged)
	}
	if event.DeviceID() != "7" {
		t.Errorf("DeviceID() = %v, want %v", event.DeviceID(), "7")
	}
	if event.MeshID != 7 {
		t.Errorf("MeshID = %v, want 7", event.MeshID)
	}
	if event.Source() != EventSourceMesh {
		t.Errorf("Source() = %v, want %v", event.Source(), EventSourceMesh)
	}
}

func TestStateChangedEvent_WithSource(t *testing.T) {
	event := NewStateChangedEvent(7, "7").WithSource(EventSourceCommand)
	if event.Source() != EventSourceCommand {
		t.Errorf("Source() = %v, want %v", event.Source(), EventSourceCommand)
	}
}

func TestNewGroupStateChangedEvent(t *testing.T) {
	event := NewGroupStateChangedEvent(3, "group-3")

	if event.Type() != EventTypeGroupStateChanged {
		t.Errorf("Type() = %v, want %v", event.Type(), EventTypeGroupStateChanged)
	}
	if event.DeviceID() != "group-3" {
		t.Errorf("DeviceID() = %v, want %v", event.DeviceID(), "group-3")
	}
	if event.GroupID != 3 {
		t.Errorf("GroupID = %v, want 3", event.GroupID)
	}
}

func TestNewDeviceOnlineEvent(t *testing.T) {
	event := NewDeviceOnlineEvent(7, "7")
	if event.Type() != EventTypeDeviceOnline {
		t.Errorf("Type() = %v, want %v", event.Type(), EventTypeDeviceOnline)
	}
	if event.MeshID != 7 {
		t.Errorf("MeshID = %v, want 7", event.MeshID)
	}
}

func TestNewDeviceOfflineEvent(t *testing.T) {
	event := NewDeviceOfflineEvent(7, "7", "slot dropped")
	if event.Type() != EventTypeDeviceOffline {
		t.Errorf("Type() = %v, want %v", event.Type(), EventTypeDeviceOffline)
	}
	if event.Reason != "slot dropped" {
		t.Errorf("Reason = %v, want %v", event.Reason, "slot dropped")
	}
}

func TestNewDiscoveryEvent(t *testing.T) {
	device := NewDiscoveryEvent("7", false)
	group := NewDiscoveryEvent("group-3", true)

	if device.Type() != EventTypeDiscovery {
		t.Errorf("Type() = %v, want %v", device.Type(), EventTypeDiscovery)
	}
	if device.IsGroup {
		t.Error("device discovery event should not be IsGroup")
	}
	if !group.IsGroup {
		t.Error("group discovery event should be IsGroup")
	}
}

func TestNewConnectionStatusEvent(t *testing.T) {
	event := NewConnectionStatusEvent(2, 5)
	if event.Type() != EventTypeConnectionStatus {
		t.Errorf("Type() = %v, want %v", event.Type(), EventTypeConnectionStatus)
	}
	if event.ActiveConnections != 2 || event.OnlineDevices != 5 {
		t.Errorf("ActiveConnections/OnlineDevices = %d/%d, want 2/5", event.ActiveConnections, event.OnlineDevices)
	}
}

func TestNewErrorEvent(t *testing.T) {
	event := NewErrorEvent("7", "unknown command code")
	if event.Type() != EventTypeError {
		t.Errorf("Type() = %v, want %v", event.Type(), EventTypeError)
	}
	if event.Message != "unknown command code" {
		t.Errorf("Message = %v, want %v", event.Message, "unknown command code")
	}
}
