package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/awox-mesh/awox-bridge/catalog"
	"github.com/awox-mesh/awox-bridge/events"
	"github.com/awox-mesh/awox-bridge/meshmodel"
	"github.com/awox-mesh/awox-bridge/meshproto"
	"github.com/awox-mesh/awox-bridge/scheduler"
	"github.com/awox-mesh/awox-bridge/session"
)

// Router is the narrow scheduler surface the controller needs to push
// commands onto the mesh. *scheduler.Scheduler satisfies this directly.
type Router interface {
	Route(dest meshproto.Dest, command byte, payload []byte) error
}

// pendingAvailability is one entry of the availability debounce FIFO.
type pendingAvailability struct {
	meshID uint16
	online bool
	at     time.Time
}

// Controller owns the device and group tables: it is the only component
// permitted to mutate them.
//
// Event publication always happens after c.mu is released — subscribers
// (the bus adapter in particular) call straight back into the
// controller's accessors, so publishing under the lock would deadlock.
type Controller struct {
	cfg     Config
	router  Router
	catalog catalog.CatalogResolver
	bus     *events.EventBus

	mu      sync.Mutex
	devices map[uint16]*meshmodel.Device
	groups  map[uint16]*meshmodel.Group
	pending []pendingAvailability
}

// New builds a Controller. catalogResolver and bus must not be nil; a host
// wanting to ignore events can pass events.NewEventBus() with no
// subscribers.
func New(router Router, catalogResolver catalog.CatalogResolver, bus *events.EventBus, cfg Config) *Controller {
	return &Controller{
		cfg:     cfg,
		router:  router,
		catalog: catalogResolver,
		bus:     bus,
		devices: make(map[uint16]*meshmodel.Device),
		groups:  make(map[uint16]*meshmodel.Group),
	}
}

// MeshIDForMAC implements scheduler.DeviceLookup: it resolves a
// previously-learned MAC back to its mesh id so the scheduler can
// cross-link scan candidates to already-known devices.
func (c *Controller) MeshIDForMAC(mac string) (uint16, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.devices {
		if d.MAC == mac {
			return d.MeshID, true
		}
	}
	return 0, false
}

var _ scheduler.DeviceLookup = (*Controller)(nil)

// GetDeviceByMAC performs a linear lookup; MACs
// are learned asynchronously from ADDRESS_REPORT frames so there is no
// index to keep consistent.
func (c *Controller) GetDeviceByMAC(mac string) *meshmodel.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.devices {
		if d.MAC == mac {
			return d
		}
	}
	return nil
}

// Device returns the device record for meshID, or nil if unknown.
func (c *Controller) Device(meshID uint16) *meshmodel.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.devices[meshID]
}

// Devices returns every known device.
func (c *Controller) Devices() []*meshmodel.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*meshmodel.Device, 0, len(c.devices))
	for _, d := range c.devices {
		out = append(out, d)
	}
	return out
}

// Group returns the group record for groupID, or nil if unknown.
func (c *Controller) Group(groupID uint16) *meshmodel.Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groups[groupID]
}

// Groups returns every known group.
func (c *Controller) Groups() []*meshmodel.Group {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*meshmodel.Group, 0, len(c.groups))
	for _, g := range c.groups {
		out = append(out, g)
	}
	return out
}

// getOrCreateDevice returns the existing device record for meshID, or, if
// meshID is allow-listed, creates one and enqueues its device-info and
// group-membership probes. Returns nil if meshID is rejected by the
// allow-list, with the rejection appended to out. Callers must hold c.mu.
func (c *Controller) getOrCreateDevice(meshID uint16, now time.Time, out *[]events.Event) *meshmodel.Device {
	if d, ok := c.devices[meshID]; ok {
		return d
	}
	if !c.cfg.meshIDAllowed(meshID) {
		*out = append(*out, events.NewErrorEvent(itoa(meshID), "mesh id rejected by allow-list"))
		return nil
	}

	d := meshmodel.NewDevice(meshID, "", "")
	d.DeviceInfoRequested = now
	c.devices[meshID] = d

	c.routeLocked(meshproto.DeviceDest(meshID), meshproto.CommandQueryDeviceInfo, []byte{0x10, 0x00})
	c.routeLocked(meshproto.DeviceDest(meshID), meshproto.CommandQueryGroupMembership, []byte{0x0A, 0x01})

	return d
}

// getOrCreateGroup upserts a group record, links it to device, and
// recomputes the group's aggregate state. Callers must hold c.mu.
func (c *Controller) getOrCreateGroup(groupID uint16, device *meshmodel.Device) *meshmodel.Group {
	g, ok := c.groups[groupID]
	if !ok {
		g = meshmodel.NewGroup(groupID)
		c.groups[groupID] = g
	}
	g.AddDevice(device)
	g.Recompute()
	return g
}

func (c *Controller) routeLocked(dest meshproto.Dest, command byte, payload []byte) {
	if c.router == nil {
		return
	}
	_ = c.router.Route(dest, command, payload)
}

// publishAll dispatches collected events. Callers must NOT hold c.mu.
func (c *Controller) publishAll(evts []events.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range evts {
		c.bus.Publish(e)
	}
}

func itoa(meshID uint16) string {
	return fmt.Sprintf("%d", meshID)
}

func groupDeviceID(groupID uint16) string {
	return fmt.Sprintf("group-%d", groupID)
}

// ProcessSlotEvent dispatches one scheduler.SlotEvent to the appropriate
// device/group update. It is the single entry point a host's main loop
// calls for everything the scheduler forwards on its Events() channel.
func (c *Controller) ProcessSlotEvent(now time.Time, evt scheduler.SlotEvent) {
	switch {
	case evt.Event.OnlineStatus != nil:
		c.handleOnlineStatus(now, evt.Event.OnlineStatus)
	case evt.Event.Status != nil:
		c.handleStatus(now, evt.Event.Status)
	case evt.Event.Address != nil:
		c.handleAddress(evt.Event.Address)
	case evt.Event.GroupIDs != nil:
		c.handleGroupIDs(evt.Event.GroupIDs)
	case evt.Event.Disconnected != nil:
		c.handleDisconnected(now, evt.Event.Disconnected)
	}
}

func (c *Controller) handleOnlineStatus(now time.Time, r *session.OnlineStatusReport) {
	var evts []events.Event
	c.mu.Lock()
	d := c.getOrCreateDevice(r.MeshID, now, &evts)
	if d != nil {
		c.applyLightState(now, d, r.Online, r.State, r.ColorMode, r.TransitionMode, r.WhiteBrightness, r.Temperature, r.ColorBrightness, r.R, r.G, r.B, &evts)
	}
	c.mu.Unlock()
	c.publishAll(evts)
}

func (c *Controller) handleStatus(now time.Time, r *session.StatusReport) {
	var evts []events.Event
	c.mu.Lock()
	d := c.getOrCreateDevice(r.MeshID, now, &evts)
	if d != nil {
		c.applyLightState(now, d, r.Online, r.State, r.ColorMode, r.TransitionMode, r.WhiteBrightness, r.Temperature, r.ColorBrightness, r.R, r.G, r.B, &evts)
	}
	c.mu.Unlock()
	c.publishAll(evts)
}

// applyLightState is the common update path for 0xDC and 0xDB reports: it
// records the new state, pushes an availability transition onto the
// debounce FIFO when online flips, and recomputes any group the device
// belongs to. Callers must hold c.mu; publications are appended to out.
func (c *Controller) applyLightState(now time.Time, d *meshmodel.Device, online, state, colorMode, transitionMode bool, whiteBrightness, temperature, colorBrightness, r, g, b uint8, out *[]events.Event) {
	wasOnline := d.Online
	d.Online = online
	d.LastOnline = now
	d.State = state
	d.ColorMode = colorMode
	d.TransitionMode = transitionMode
	d.WhiteBrightness = whiteBrightness
	d.Temperature = temperature
	d.ColorBrightness = colorBrightness
	d.R, d.G, d.B = r, g, b

	if online != wasOnline {
		c.pending = append(c.pending, pendingAvailability{meshID: d.MeshID, online: online, at: now})
		c.routeLocked(meshproto.DeviceDest(d.MeshID), meshproto.CommandGetStatus, []byte{0x10})
	}

	sc := events.NewStateChangedEvent(d.MeshID, itoa(d.MeshID))
	sc.State = d.State
	sc.ColorMode = d.ColorMode
	sc.EffectMode = d.EffectMode()
	sc.WhiteBrightness = d.WhiteBrightness
	sc.Temperature = d.Temperature
	sc.ColorBrightness = d.ColorBrightness
	sc.R, sc.G, sc.B = d.R, d.G, d.B
	*out = append(*out, sc)

	c.recomputeGroupsFor(d, out)
}

func (c *Controller) recomputeGroupsFor(d *meshmodel.Device, out *[]events.Event) {
	for _, groupID := range d.GroupIDs {
		g, ok := c.groups[groupID]
		if !ok {
			continue
		}
		g.ColorMode = d.ColorMode
		g.SequenceMode = d.SequenceMode
		g.CandleMode = d.CandleMode
		g.WhiteBrightness = d.WhiteBrightness
		g.Temperature = d.Temperature
		g.ColorBrightness = d.ColorBrightness
		g.R, g.G, g.B = d.R, d.G, d.B
		g.Recompute()
		gc := events.NewGroupStateChangedEvent(groupID, groupDeviceID(groupID))
		gc.State = g.State
		gc.ColorMode = g.ColorMode
		gc.EffectMode = g.EffectMode()
		gc.WhiteBrightness = g.WhiteBrightness
		gc.Temperature = g.Temperature
		gc.ColorBrightness = g.ColorBrightness
		gc.R, gc.G, gc.B = g.R, g.G, g.B
		*out = append(*out, gc)
	}
}

func (c *Controller) handleAddress(r *session.AddressReport) {
	var evts []events.Event
	c.mu.Lock()

	d, ok := c.devices[r.MeshID]
	if !ok {
		c.mu.Unlock()
		return
	}

	mac := fmt.Sprintf("%s:%02X:%02X:%02X:%02X", c.cfg.AddressPrefix, r.MAC[0], r.MAC[1], r.MAC[2], r.MAC[3])
	if !c.cfg.macAllowed(mac) {
		c.mu.Unlock()
		c.publishAll([]events.Event{events.NewErrorEvent(itoa(r.MeshID), "mac rejected by allow-list")})
		return
	}

	d.MAC = mac
	d.ProductID = r.ProductID

	entry := c.catalog.Resolve(r.ProductID)
	d.Display = entry.Display()
	d.SendDiscovery = true

	evts = append(evts, events.NewDiscoveryEvent(itoa(d.MeshID), false))
	c.mu.Unlock()
	c.publishAll(evts)
}

func (c *Controller) handleGroupIDs(r *session.GroupIDReport) {
	var evts []events.Event
	c.mu.Lock()

	d, ok := c.devices[r.MeshID]
	if !ok {
		c.mu.Unlock()
		return
	}

	d.GroupIDs = d.GroupIDs[:0]
	for _, raw := range r.GroupIDs {
		groupID := uint16(raw)
		d.GroupIDs = append(d.GroupIDs, groupID)
		g := c.getOrCreateGroup(groupID, d)
		if g.Display == nil && d.Display != nil {
			g.Display = d.Display
			evts = append(evts, events.NewDiscoveryEvent(groupDeviceID(groupID), true))
		}
	}
	c.mu.Unlock()
	c.publishAll(evts)
}

// handleDisconnected marks every mesh id the dropped slot had linked as
// offline; each surfaces on the bus after debounce.
func (c *Controller) handleDisconnected(now time.Time, d *session.DisconnectedEvent) {
	var evts []events.Event
	c.mu.Lock()
	for _, meshID := range d.LinkedMeshIDs {
		dev, ok := c.devices[meshID]
		if !ok || !dev.Online {
			continue
		}
		dev.Online = false
		c.pending = append(c.pending, pendingAvailability{meshID: meshID, online: false, at: now})
		c.recomputeGroupsFor(dev, &evts)
	}
	c.mu.Unlock()
	c.publishAll(evts)
}

// Tick runs the controller's periodic bookkeeping: re-asking unresolved
// devices for their info and flushing due entries from the availability
// debounce FIFO. A host's main loop calls this once per scheduling pass.
func (c *Controller) Tick(now time.Time) {
	var evts []events.Event
	c.mu.Lock()

	for _, d := range c.devices {
		if d.SendDiscovery || d.DeviceInfoRequested.IsZero() {
			continue
		}
		if now.Sub(d.DeviceInfoRequested) <= c.cfg.DeviceInfoReissue {
			continue
		}
		d.DeviceInfoRequested = now
		c.routeLocked(meshproto.DeviceDest(d.MeshID), meshproto.CommandQueryDeviceInfo, []byte{0x10, 0x00})
		c.routeLocked(meshproto.DeviceDest(d.MeshID), meshproto.CommandQueryGroupMembership, []byte{0x0A, 0x01})
	}

	kept := c.pending[:0]
	for _, p := range c.pending {
		if now.Sub(p.at) < c.cfg.AvailabilityDebounce {
			kept = append(kept, p)
			continue
		}
		if d, ok := c.devices[p.meshID]; ok && d.Online == p.online {
			if p.online {
				evts = append(evts, events.NewDeviceOnlineEvent(p.meshID, itoa(p.meshID)))
			} else {
				evts = append(evts, events.NewDeviceOfflineEvent(p.meshID, itoa(p.meshID), "debounced"))
			}
		}
	}
	c.pending = kept

	c.mu.Unlock()
	c.publishAll(evts)
}
