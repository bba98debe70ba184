package busadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/catalog"
	"github.com/awox-mesh/awox-bridge/events"
	"github.com/awox-mesh/awox-bridge/hostapi"
	"github.com/awox-mesh/awox-bridge/meshmodel"
	"github.com/awox-mesh/awox-bridge/meshproto"
)

type publication struct {
	topic    string
	payload  string
	retained bool
}

// fakeBus is an in-memory bus.Bus that records publications and lets
// tests inject inbound messages.
type fakeBus struct {
	mu           sync.Mutex
	published    []publication
	handlers     map[string]bus.MessageHandler
	unsubscribed []string
}

func newFakeBus() *fakeBus {
	return &fakeBus{handlers: make(map[string]bus.MessageHandler)}
}

func (f *fakeBus) Publish(topic string, payload []byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publication{topic: topic, payload: string(payload), retained: retained})
	return nil
}

func (f *fakeBus) Subscribe(topic string, handler bus.MessageHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = handler
	return nil
}

func (f *fakeBus) Unsubscribe(topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.handlers, topic)
	f.unsubscribed = append(f.unsubscribed, topic)
	return nil
}

func (f *fakeBus) inject(topic string, payload string) bool {
	f.mu.Lock()
	handler, ok := f.handlers[topic]
	f.mu.Unlock()
	if !ok {
		return false
	}
	handler(topic, []byte(payload))
	return true
}

func (f *fakeBus) publications() []publication {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publication, len(f.published))
	copy(out, f.published)
	return out
}

func (f *fakeBus) find(topic string) (publication, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.published) - 1; i >= 0; i-- {
		if f.published[i].topic == topic {
			return f.published[i], true
		}
	}
	return publication{}, false
}

// fakeCommander records controller calls in order and serves canned
// device/group records.
type fakeCommander struct {
	mu      sync.Mutex
	calls   []string
	devices map[uint16]*meshmodel.Device
	groups  map[uint16]*meshmodel.Group
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{
		devices: make(map[uint16]*meshmodel.Device),
		groups:  make(map[uint16]*meshmodel.Group),
	}
}

func (f *fakeCommander) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeCommander) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeCommander) SetPower(d meshproto.Dest, state bool) error {
	f.record("power(%d,%v)", d.Wire(), state)
	return nil
}

func (f *fakeCommander) SetColor(d meshproto.Dest, r, g, b uint8) error {
	f.record("color(%d,%d,%d,%d)", d.Wire(), r, g, b)
	return nil
}

func (f *fakeCommander) SetColorBrightness(d meshproto.Dest, v uint8) error {
	f.record("color_brightness(%d,%d)", d.Wire(), v)
	return nil
}

func (f *fakeCommander) SetWhiteBrightness(d meshproto.Dest, v uint8) error {
	f.record("white_brightness(%d,%d)", d.Wire(), v)
	return nil
}

func (f *fakeCommander) SetWhiteTemperature(d meshproto.Dest, v uint8) error {
	f.record("white_temperature(%d,%d)", d.Wire(), v)
	return nil
}

func (f *fakeCommander) SetSequencePreset(d meshproto.Dest, p uint8) error {
	f.record("sequence(%d,%d)", d.Wire(), p)
	return nil
}

func (f *fakeCommander) SetCandleMode(d meshproto.Dest) error {
	f.record("candle(%d)", d.Wire())
	return nil
}

func (f *fakeCommander) SetSequenceColorDuration(d meshproto.Dest, ms uint8) error {
	f.record("color_duration(%d,%d)", d.Wire(), ms)
	return nil
}

func (f *fakeCommander) SetSequenceFadeDuration(d meshproto.Dest, ms uint8) error {
	f.record("fade_duration(%d,%d)", d.Wire(), ms)
	return nil
}

func (f *fakeCommander) RequestStatus(d meshproto.Dest) error {
	f.record("request_status(%d)", d.Wire())
	return nil
}

func (f *fakeCommander) Device(meshID uint16) *meshmodel.Device { return f.devices[meshID] }
func (f *fakeCommander) Group(groupID uint16) *meshmodel.Group  { return f.groups[groupID] }

func colorDevice(meshID uint16) *meshmodel.Device {
	d := meshmodel.NewDevice(meshID, "0013", "A4:C1:11:22:33:44")
	d.Display = catalog.Entry{
		ProductID:    "0013",
		Name:         "Test light",
		Model:        "ESMLm_c9",
		Manufacturer: "EGLO",
		Capabilities: meshmodel.LightColor(),
	}.Display()
	return d
}

func newTestAdapter(t *testing.T) (*Adapter, *fakeBus, *fakeCommander, *events.EventBus) {
	t.Helper()
	b := newFakeBus()
	ctrl := newFakeCommander()
	eventBus := events.NewEventBus()
	adapter := New(b, ctrl, eventBus, Config{
		Topics:      bus.NewTopics("awox", "homeassistant"),
		Host:        hostapi.HostInfo{Name: "bridge-host"},
		FlushWindow: 20 * time.Millisecond,
	}, hostapi.NopLogger{})
	return adapter, b, ctrl, eventBus
}

func TestStartAnnouncesOnline(t *testing.T) {
	adapter, b, _, _ := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	pub, ok := b.find("awox/connected")
	if !ok {
		t.Fatal("connected topic never published")
	}
	if pub.payload != "online" || !pub.retained {
		t.Errorf("connected = %+v, want retained online", pub)
	}
}

func TestRetainedAvailabilityFlush(t *testing.T) {
	adapter, b, _, _ := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// A retained "online" from a previous run arrives on the wildcard
	// subscription (the broker expands the pattern to the concrete
	// topic) and is immediately invalidated.
	b.mu.Lock()
	handler := b.handlers["awox/+/availability"]
	b.mu.Unlock()
	if handler == nil {
		t.Fatal("flush subscription not active")
	}
	handler("awox/9/availability", []byte("online"))

	pub, ok := b.find("awox/9/availability")
	if !ok {
		t.Fatal("stale availability never flushed")
	}
	if pub.payload != "offline" || !pub.retained {
		t.Errorf("flush = %+v, want retained offline", pub)
	}

	// Retained "offline" is left alone.
	handler("awox/12/availability", []byte("offline"))
	if _, ok := b.find("awox/12/availability"); ok {
		t.Error("offline retained value should not be republished")
	}

	// The subscription is cancelled after the flush window.
	deadline := time.After(time.Second)
	for {
		b.mu.Lock()
		_, active := b.handlers["awox/+/availability"]
		b.mu.Unlock()
		if !active {
			break
		}
		select {
		case <-deadline:
			t.Fatal("flush subscription never cancelled")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDeviceAvailabilityEvents(t *testing.T) {
	adapter, b, _, eventBus := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	eventBus.Publish(events.NewDeviceOnlineEvent(5, "5"))
	pub, ok := b.find("awox/5/availability")
	if !ok || pub.payload != "online" || !pub.retained {
		t.Fatalf("availability = %+v, want retained online", pub)
	}

	eventBus.Publish(events.NewDeviceOfflineEvent(5, "5", "debounced"))
	pub, _ = b.find("awox/5/availability")
	if pub.payload != "offline" {
		t.Errorf("availability = %+v, want offline", pub)
	}
}

func TestStateChangedPublishesLightJSON(t *testing.T) {
	adapter, b, ctrl, eventBus := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	d := colorDevice(7)
	d.State = true
	d.ColorMode = true
	d.ColorBrightness = 0x64
	d.R, d.G, d.B = 255, 10, 0
	ctrl.devices[7] = d

	evt := events.NewStateChangedEvent(7, "7")
	eventBus.Publish(evt)

	pub, ok := b.find("awox/7/state")
	if !ok {
		t.Fatal("state never published")
	}
	var state map[string]any
	if err := json.Unmarshal([]byte(pub.payload), &state); err != nil {
		t.Fatalf("state payload not JSON: %v", err)
	}
	if state["state"] != "ON" || state["color_mode"] != "rgb" {
		t.Errorf("state = %v", state)
	}
	color, _ := state["color"].(map[string]any)
	if color["r"] != float64(255) {
		t.Errorf("color = %v", color)
	}
	if state["brightness"] != float64(255) {
		t.Errorf("brightness = %v, want 255", state["brightness"])
	}
}

func TestStateHeldBackUntilModelResolves(t *testing.T) {
	adapter, b, ctrl, eventBus := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctrl.devices[9] = meshmodel.NewDevice(9, "", "")
	eventBus.Publish(events.NewStateChangedEvent(9, "9"))

	if _, ok := b.find("awox/9/state"); ok {
		t.Error("state published before the device model resolved")
	}
}

func TestPlugStatePublishesOnOff(t *testing.T) {
	adapter, b, ctrl, eventBus := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	d := meshmodel.NewDevice(4, "0097", "A4:C1:11:22:33:99")
	d.Display = catalog.Entry{ProductID: "0097", Name: "Plug", Capabilities: meshmodel.Plug()}.Display()
	d.State = true
	ctrl.devices[4] = d

	eventBus.Publish(events.NewStateChangedEvent(4, "4"))

	pub, ok := b.find("awox/4/state")
	if !ok || pub.payload != "ON" {
		t.Fatalf("plug state = %+v, want ON", pub)
	}
}

func TestDiscoverySubscribesCommandTopic(t *testing.T) {
	adapter, b, ctrl, eventBus := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctrl.devices[7] = colorDevice(7)
	eventBus.Publish(events.NewDiscoveryEvent("7", false))

	pub, ok := b.find("homeassistant/light/awox-A4:C1:11:22:33:44/config")
	if !ok {
		t.Fatal("discovery document never published")
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(pub.payload), &doc); err != nil {
		t.Fatalf("discovery payload not JSON: %v", err)
	}
	if doc["schema"] != "json" {
		t.Errorf("schema = %v, want json", doc["schema"])
	}
	if doc["command_topic"] != "awox/7/command" {
		t.Errorf("command_topic = %v", doc["command_topic"])
	}

	b.mu.Lock()
	_, subscribed := b.handlers["awox/7/command"]
	b.mu.Unlock()
	if !subscribed {
		t.Error("command topic not subscribed after discovery")
	}
}

func TestGroupDiscoveryAndState(t *testing.T) {
	adapter, b, ctrl, eventBus := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	g := meshmodel.NewGroup(3)
	g.Display = colorDevice(1).Display
	g.State = true
	g.WhiteBrightness = 0x7F
	g.Temperature = 0x7F
	ctrl.groups[3] = g

	eventBus.Publish(events.NewDiscoveryEvent("group-3", true))
	if _, ok := b.find("homeassistant/light/group-3/config"); !ok {
		t.Fatal("group discovery document never published")
	}

	eventBus.Publish(events.NewGroupStateChangedEvent(3, "group-3"))
	pub, ok := b.find("awox/group-3/state")
	if !ok {
		t.Fatal("group state never published")
	}
	var state map[string]any
	if err := json.Unmarshal([]byte(pub.payload), &state); err != nil {
		t.Fatalf("group state not JSON: %v", err)
	}
	if state["state"] != "ON" || state["color_temp"] != float64(370) {
		t.Errorf("group state = %v", state)
	}
}

func TestCloseDropsConnected(t *testing.T) {
	adapter, b, _, _ := newTestAdapter(t)
	if err := adapter.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	adapter.Close()

	pub, _ := b.find("awox/connected")
	if pub.payload != "offline" {
		t.Errorf("connected after Close = %+v, want offline", pub)
	}
}
