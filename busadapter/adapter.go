package busadapter

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/events"
	"github.com/awox-mesh/awox-bridge/hostapi"
	"github.com/awox-mesh/awox-bridge/meshmodel"
	"github.com/awox-mesh/awox-bridge/meshproto"
)

// DefaultFlushWindow is how long the retained-availability flush
// subscription stays active after Start.
const DefaultFlushWindow = 3 * time.Second

// Commander is the controller surface the adapter drives.
// *controller.Controller satisfies it.
type Commander interface {
	SetPower(dest meshproto.Dest, state bool) error
	SetColor(dest meshproto.Dest, r, g, b uint8) error
	SetColorBrightness(dest meshproto.Dest, value uint8) error
	SetWhiteBrightness(dest meshproto.Dest, value uint8) error
	SetWhiteTemperature(dest meshproto.Dest, value uint8) error
	SetSequencePreset(dest meshproto.Dest, preset uint8) error
	SetCandleMode(dest meshproto.Dest) error
	SetSequenceColorDuration(dest meshproto.Dest, ms uint8) error
	SetSequenceFadeDuration(dest meshproto.Dest, ms uint8) error
	RequestStatus(dest meshproto.Dest) error

	Device(meshID uint16) *meshmodel.Device
	Group(groupID uint16) *meshmodel.Group
}

// Config holds the adapter's wiring: topic layout, host identity, and
// the startup flush window.
type Config struct {
	Topics      bus.Topics
	Host        hostapi.HostInfo
	FlushWindow time.Duration
}

// Adapter bridges the controller's event stream onto the bus and inbound
// bus commands back into controller calls.
type Adapter struct {
	bus         bus.Bus
	ctrl        Commander
	eventBus    *events.EventBus
	topics      bus.Topics
	host        hostapi.HostInfo
	log         hostapi.Logger
	flushWindow time.Duration

	mu         sync.Mutex
	subscribed map[string]struct{}
	subID      uint64
}

// New builds an Adapter. The log sink may be nil.
func New(b bus.Bus, ctrl Commander, eventBus *events.EventBus, cfg Config, log hostapi.Logger) *Adapter {
	if log == nil {
		log = hostapi.NopLogger{}
	}
	flushWindow := cfg.FlushWindow
	if flushWindow == 0 {
		flushWindow = DefaultFlushWindow
	}
	return &Adapter{
		bus:         b,
		ctrl:        ctrl,
		eventBus:    eventBus,
		topics:      cfg.Topics,
		host:        cfg.Host,
		log:         log,
		flushWindow: flushWindow,
		subscribed:  make(map[string]struct{}),
	}
}

// Start announces the bridge as online, flushes stale retained
// availability, and begins translating controller events to bus
// publications. It returns once the startup sequence is in motion; the
// flush subscription is cancelled in the background after the flush
// window.
func (a *Adapter) Start(ctx context.Context) error {
	if err := a.bus.Publish(a.topics.Connected(), []byte(bus.PayloadOnline), true); err != nil {
		return err
	}

	if err := a.bus.Subscribe(a.topics.AvailabilityPattern(), a.flushRetained); err != nil {
		return err
	}
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(a.flushWindow):
		}
		if err := a.bus.Unsubscribe(a.topics.AvailabilityPattern()); err != nil {
			a.log.Warnf("busadapter: cancelling availability flush: %v", err)
		}
	}()

	a.mu.Lock()
	a.subID = a.eventBus.Subscribe(a.handleEvent)
	a.mu.Unlock()
	return nil
}

// Close stops event translation and drops the bridge-liveness topic to
// offline.
func (a *Adapter) Close() {
	a.mu.Lock()
	subID := a.subID
	a.mu.Unlock()
	if subID != 0 {
		a.eventBus.Unsubscribe(subID)
	}
	if err := a.bus.Publish(a.topics.Connected(), []byte(bus.PayloadOffline), true); err != nil {
		a.log.Warnf("busadapter: publishing offline: %v", err)
	}
}

// flushRetained invalidates a stale retained "online" left over from a
// previous run; live availability is republished by the controller once
// devices actually report in.
func (a *Adapter) flushRetained(topic string, payload []byte) {
	if string(payload) != bus.PayloadOnline {
		return
	}
	entity := a.topics.EntityFromAvailability(topic)
	if entity == "" {
		return
	}
	if err := a.bus.Publish(topic, []byte(bus.PayloadOffline), true); err != nil {
		a.log.Warnf("busadapter: flushing retained availability for %s: %v", entity, err)
	}
}

func (a *Adapter) handleEvent(e events.Event) {
	switch evt := e.(type) {
	case *events.StateChangedEvent:
		a.publishDeviceState(a.ctrl.Device(evt.MeshID))
	case *events.GroupStateChangedEvent:
		a.publishGroupState(a.ctrl.Group(evt.GroupID))
	case *events.DeviceOnlineEvent:
		a.publishAvailability(e.DeviceID(), true)
	case *events.DeviceOfflineEvent:
		a.publishAvailability(e.DeviceID(), false)
	case *events.DiscoveryEvent:
		a.handleDiscovery(evt)
	case *events.ErrorEvent:
		a.log.Warnf("busadapter: %s: %s", e.DeviceID(), evt.Message)
	}
}

func (a *Adapter) handleDiscovery(evt *events.DiscoveryEvent) {
	entityID := evt.DeviceID()
	if evt.IsGroup {
		groupID, ok := parseGroupEntityID(entityID)
		if !ok {
			return
		}
		a.publishGroupDiscovery(a.ctrl.Group(groupID))
	} else {
		meshID, ok := parseDeviceEntityID(entityID)
		if !ok {
			return
		}
		a.publishDeviceDiscovery(a.ctrl.Device(meshID))
	}
	a.ensureCommandSubscription(entityID)
}

// ensureCommandSubscription subscribes to an entity's command topic
// exactly once.
func (a *Adapter) ensureCommandSubscription(entityID string) {
	a.mu.Lock()
	if _, ok := a.subscribed[entityID]; ok {
		a.mu.Unlock()
		return
	}
	a.subscribed[entityID] = struct{}{}
	a.mu.Unlock()

	topic := a.topics.Command(entityID)
	err := a.bus.Subscribe(topic, func(_ string, payload []byte) {
		a.handleCommand(entityID, payload)
	})
	if err != nil {
		a.log.Errorf("busadapter: subscribing to %s: %v", topic, err)
	}
}

func parseDeviceEntityID(entityID string) (uint16, bool) {
	n, err := strconv.ParseUint(entityID, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

func parseGroupEntityID(entityID string) (uint16, bool) {
	rest, ok := strings.CutPrefix(entityID, "group-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 15)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}
