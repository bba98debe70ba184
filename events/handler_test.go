package events

import (
	"sync/atomic"
	"testing"
)

func TestNewHandlerRegistry(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	registry := NewHandlerRegistry(bus)
	if registry == nil {
		t.Fatal("NewHandlerRegistry() returned nil")
	}
	if registry.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %v, want 0", registry.SubscriptionCount())
	}
}

func TestHandlerRegistry_OnStateChanged(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *StateChangedEvent
	registry.OnStateChanged(func(e *StateChangedEvent) {
		received = e
	})

	bus.Publish(NewStateChangedEvent(7, "7"))
	bus.Publish(NewDeviceOnlineEvent(7, "7")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.MeshID != 7 {
		t.Errorf("MeshID = %v, want 7", received.MeshID)
	}
}

func TestHandlerRegistry_OnStateChangedFor(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var count int
	registry.OnStateChangedFor("7", func(e *StateChangedEvent) {
		count++
	})

	bus.Publish(NewStateChangedEvent(7, "7"))
	bus.Publish(NewStateChangedEvent(9, "9")) // Should not trigger
	bus.Publish(NewStateChangedEvent(7, "7"))

	if count != 2 {
		t.Errorf("count = %v, want 2", count)
	}
}

func TestHandlerRegistry_OnGroupStateChanged(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *GroupStateChangedEvent
	registry.OnGroupStateChanged(func(e *GroupStateChangedEvent) {
		received = e
	})

	bus.Publish(NewGroupStateChangedEvent(3, "group-3"))
	bus.Publish(NewStateChangedEvent(7, "7")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.GroupID != 3 {
		t.Errorf("GroupID = %v, want 3", received.GroupID)
	}
}

func TestHandlerRegistry_OnDeviceOnline(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *DeviceOnlineEvent
	registry.OnDeviceOnline(func(e *DeviceOnlineEvent) {
		received = e
	})

	bus.Publish(NewDeviceOnlineEvent(7, "7"))
	bus.Publish(NewDeviceOfflineEvent(7, "7", "")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.MeshID != 7 {
		t.Errorf("MeshID = %v, want 7", received.MeshID)
	}
}

func TestHandlerRegistry_OnDeviceOffline(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *DeviceOfflineEvent
	registry.OnDeviceOffline(func(e *DeviceOfflineEvent) {
		received = e
	})

	bus.Publish(NewDeviceOfflineEvent(7, "7", "slot dropped"))
	bus.Publish(NewDeviceOnlineEvent(7, "7")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.Reason != "slot dropped" {
		t.Errorf("Reason = %v, want slot dropped", received.Reason)
	}
}

func TestHandlerRegistry_OnDiscovery(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *DiscoveryEvent
	registry.OnDiscovery(func(e *DiscoveryEvent) {
		received = e
	})

	bus.Publish(NewDiscoveryEvent("7", false))
	bus.Publish(NewDeviceOnlineEvent(7, "7")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.IsGroup {
		t.Error("IsGroup = true, want false")
	}
}

func TestHandlerRegistry_OnConnectionStatus(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *ConnectionStatusEvent
	registry.OnConnectionStatus(func(e *ConnectionStatusEvent) {
		received = e
	})

	bus.Publish(NewConnectionStatusEvent(2, 5))
	bus.Publish(NewDeviceOnlineEvent(7, "7")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.ActiveConnections != 2 {
		t.Errorf("ActiveConnections = %v, want 2", received.ActiveConnections)
	}
}

func TestHandlerRegistry_OnError(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var received *ErrorEvent
	registry.OnError(func(e *ErrorEvent) {
		received = e
	})

	bus.Publish(NewErrorEvent("7", "unknown command code"))
	bus.Publish(NewDeviceOnlineEvent(7, "7")) // Should not trigger

	if received == nil {
		t.Error("handler was not called")
	}
	if received.Message != "unknown command code" {
		t.Errorf("Message = %v, want unknown command code", received.Message)
	}
}

func TestHandlerRegistry_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	var count int
	id := registry.OnStateChanged(func(e *StateChangedEvent) {
		count++
	})

	bus.Publish(NewStateChangedEvent(7, "7"))
	if count != 1 {
		t.Errorf("count = %v, want 1", count)
	}

	if !registry.Unsubscribe(id) {
		t.Error("Unsubscribe() returned false")
	}
	if registry.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %v, want 0", registry.SubscriptionCount())
	}

	bus.Publish(NewStateChangedEvent(7, "7"))
	if count != 1 {
		t.Errorf("count after unsubscribe = %v, want 1", count)
	}
}

func TestHandlerRegistry_Unsubscribe_NotFound(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	if registry.Unsubscribe(999) {
		t.Error("Unsubscribe() should return false for unknown ID")
	}
}

func TestHandlerRegistry_UnsubscribeAll(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	registry.OnStateChanged(func(e *StateChangedEvent) {})
	registry.OnDeviceOnline(func(e *DeviceOnlineEvent) {})
	registry.OnDeviceOffline(func(e *DeviceOfflineEvent) {})

	if registry.SubscriptionCount() != 3 {
		t.Errorf("SubscriptionCount() = %v, want 3", registry.SubscriptionCount())
	}

	registry.UnsubscribeAll()

	if registry.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() after UnsubscribeAll = %v, want 0", registry.SubscriptionCount())
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("bus.SubscriberCount() = %v, want 0", bus.SubscriberCount())
	}
}

func TestHandlerRegistry_SubscriptionCount(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	registry := NewHandlerRegistry(bus)

	if registry.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %v, want 0", registry.SubscriptionCount())
	}

	id1 := registry.OnStateChanged(func(e *StateChangedEvent) {})
	if registry.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %v, want 1", registry.SubscriptionCount())
	}

	registry.OnDeviceOnline(func(e *DeviceOnlineEvent) {})
	if registry.SubscriptionCount() != 2 {
		t.Errorf("SubscriptionCount() = %v, want 2", registry.SubscriptionCount())
	}

	registry.Unsubscribe(id1)
	if registry.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() after unsubscribe = %v, want 1", registry.SubscriptionCount())
	}
}

func TestHandlerRegistry_MultipleRegistries(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	registry1 := NewHandlerRegistry(bus)
	registry2 := NewHandlerRegistry(bus)

	var count1, count2 atomic.Int32

	registry1.OnStateChanged(func(e *StateChangedEvent) {
		count1.Add(1)
	})
	registry2.OnStateChanged(func(e *StateChangedEvent) {
		count2.Add(1)
	})

	bus.Publish(NewStateChangedEvent(7, "7"))

	if count1.Load() != 1 {
		t.Errorf("count1 = %v, want 1", count1.Load())
	}
	if count2.Load() != 1 {
		t.Errorf("count2 = %v, want 1", count2.Load())
	}

	// Unsubscribe registry1, registry2 should still receive
	registry1.UnsubscribeAll()
	bus.Publish(NewStateChangedEvent(7, "7"))

	if count1.Load() != 1 {
		t.Errorf("count1 after unsubscribe = %v, want 1", count1.Load())
	}
	if count2.Load() != 2 {
		t.Errorf("count2 after unsubscribe = %v, want 2", count2.Load())
	}
}
