package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/awox-mesh/awox-bridge/discovery"
	"github.com/awox-mesh/awox-bridge/meshproto"
	"github.com/awox-mesh/awox-bridge/session"
)

// Config holds the scheduler's timing thresholds.
type Config struct {
	MinRSSI         int
	StartupDelay    time.Duration
	CooldownRelaxed time.Duration
	CooldownForced  time.Duration
	ConnectWatchdog time.Duration
}

// DefaultConfig returns the stock thresholds: -90 dBm floor, a
// 10s startup delay, a 5s/20s connect-attempt cooldown, and a 20s connect
// watchdog.
func DefaultConfig() Config {
	return Config{
		MinRSSI:         -90,
		StartupDelay:    10 * time.Second,
		CooldownRelaxed: 5 * time.Second,
		CooldownForced:  20 * time.Second,
		ConnectWatchdog: 20 * time.Second,
	}
}

// DeviceLookup is the narrow view into the controller's device table the
// scheduler needs: resolving a candidate's MAC to an already-known mesh
// id, so candidate selection can fold it into the pool.
type DeviceLookup interface {
	MeshIDForMAC(mac string) (uint16, bool)
}

// SlotEvent is a session.Event tagged with the slot index it came from,
// forwarded unmodified so a controller can update its device/group
// tables; the scheduler itself only inspects it to maintain reachability.
type SlotEvent struct {
	SlotIndex int
	Event     session.Event
}

// Scheduler assigns candidate peripherals from a Pool to a fixed set of
// Slots, enforces the connect cooldown and watchdog, and resolves
// overlap between slots covering the same mesh ids.
type Scheduler struct {
	cfg    Config
	pool   *discovery.Pool
	lookup DeviceLookup
	slots  []*Slot

	bootTime time.Time

	mu          sync.Mutex
	lastAttempt time.Time

	events chan SlotEvent
}

// New builds a Scheduler with numSlots sessions, each sharing transport
// and combinedKey. bootTime should be the scheduler's true construction
// time (overridable for tests that don't want to wait out StartupDelay).
func New(transport session.BleTransport, combinedKey [meshproto.KeySize]byte, pool *discovery.Pool, lookup DeviceLookup, numSlots int, cfg Config, bootTime time.Time) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		pool:     pool,
		lookup:   lookup,
		bootTime: bootTime,
		events:   make(chan SlotEvent, 256),
	}
	for i := 0; i < numSlots; i++ {
		s.slots = append(s.slots, newSlot(i, session.New(transport, combinedKey)))
	}
	return s
}

// Slots returns the scheduler's slots in index order.
func (s *Scheduler) Slots() []*Slot { return s.slots }

// Events returns the channel every slot's decoded session events are
// forwarded on, tagged with their slot index.
func (s *Scheduler) Events() <-chan SlotEvent { return s.events }

// Run starts one goroutine per slot draining its session's event channel
// until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	for _, slot := range s.slots {
		go s.pumpSlot(ctx, slot)
	}
}

func (s *Scheduler) pumpSlot(ctx context.Context, slot *Slot) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-slot.sess.Events():
			if !ok {
				return
			}
			s.applyReachability(slot, evt)
			select {
			case s.events <- SlotEvent{SlotIndex: slot.Index, Event: evt}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// applyReachability keeps the slot's reachable set current: any report
// for a mesh id adds
// it to the slot's reachable set; an online=false 0xDC report removes it;
// a disconnect frees the peripheral and clears the set entirely (the
// cleared ids are still forwarded on the DisconnectedEvent for the
// controller to mark offline).
func (s *Scheduler) applyReachability(slot *Slot, evt session.Event) {
	switch {
	case evt.OnlineStatus != nil:
		if evt.OnlineStatus.Online {
			slot.addReachable(evt.OnlineStatus.MeshID)
		} else {
			slot.removeReachable(evt.OnlineStatus.MeshID)
		}
	case evt.Status != nil:
		slot.addReachable(evt.Status.MeshID)
	case evt.Address != nil:
		slot.addReachable(evt.Address.MeshID)
	case evt.GroupIDs != nil:
		slot.addReachable(evt.GroupIDs.MeshID)
	case evt.Disconnected != nil:
		address := slot.PeripheralAddress()
		slot.clearReachable()
		slot.freePeripheral()
		if address != "" {
			s.pool.SetConnected(address, false)
		}
	}
}

// Tick runs one scheduling pass: the readiness gate, the cooldown gate,
// overlap resolution, and at most one new connect attempt.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	if !s.ready(now) {
		return
	}

	s.mu.Lock()
	sinceLast := now.Sub(s.lastAttempt)
	s.mu.Unlock()

	anyEstablished := false
	for _, slot := range s.slots {
		if slot.Established() {
			anyEstablished = true
			break
		}
	}

	proceed := (!anyEstablished && sinceLast > s.cfg.CooldownRelaxed) || sinceLast > s.cfg.CooldownForced
	if !proceed {
		return
	}

	s.ResolveOverlaps(ctx)

	var free *Slot
	for _, slot := range s.slots {
		if slot.Free() {
			free = slot
			break
		}
	}
	if free == nil {
		return
	}

	candidate := s.pickCandidate()
	if candidate == nil {
		return
	}

	s.mu.Lock()
	s.lastAttempt = now
	s.mu.Unlock()

	s.pool.SetConnected(candidate.Address, true)
	go s.connect(ctx, free, candidate)
}

func (s *Scheduler) ready(now time.Time) bool {
	if now.Sub(s.bootTime) <= s.cfg.StartupDelay {
		return false
	}
	return s.pool.Len() > 0
}

func (s *Scheduler) connect(ctx context.Context, slot *Slot, candidate *discovery.Candidate) {
	// Bind before dialing so a tick during the connect window never
	// hands the same slot a second candidate.
	slot.bindPeripheral(candidate.Address, candidate.RawAddr)

	connectCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectWatchdog)
	defer cancel()

	if err := slot.sess.Connect(connectCtx, candidate.Address, candidate.RawAddr); err != nil {
		slot.freePeripheral()
		s.pool.SetConnected(candidate.Address, false)
	}
}

// pickCandidate selects the next connection target: cross-link
// known mesh ids by MAC, then walk the pool in RSSI order for the first
// entry that is unconnected, above the RSSI floor, and not already
// reachable via some other established slot.
func (s *Scheduler) pickCandidate() *discovery.Candidate {
	all := s.pool.Best(0)

	if s.lookup != nil {
		for _, c := range all {
			if c.MeshID != 0 {
				continue
			}
			if id, ok := s.lookup.MeshIDForMAC(c.Address); ok {
				s.pool.SetMeshID(c.Address, id)
				c.MeshID = id
			}
		}
	}

	union := s.unionReachable()

	for _, c := range all {
		if c.Connected {
			continue
		}
		if c.RSSI < s.cfg.MinRSSI {
			continue
		}
		if c.MeshID != 0 {
			if _, seen := union[c.MeshID]; seen {
				continue
			}
		}
		return c
	}
	return nil
}

func (s *Scheduler) unionReachable() map[uint16]struct{} {
	union := make(map[uint16]struct{})
	for _, slot := range s.slots {
		if !slot.Established() {
			continue
		}
		for _, id := range slot.ReachableMeshIDs() {
			union[id] = struct{}{}
		}
	}
	return union
}

// Route sends a command to dest, routing it to the single first slot
// whose reachable set contains it (device destinations only), or
// falling back to every established slot otherwise — groups and
// broadcasts are not generally reflected in a slot's reachable set.
func (s *Scheduler) Route(dest meshproto.Dest, command byte, payload []byte) error {
	if !dest.IsGroup() && !dest.IsBroadcast() {
		for _, slot := range s.slots {
			if slot.PeripheralAddress() == "" {
				continue
			}
			if slot.Reaches(dest.ID()) {
				return slot.Send(dest, command, payload)
			}
		}
	}

	var firstErr error
	for _, slot := range s.slots {
		if !slot.Established() {
			continue
		}
		if err := slot.Send(dest, command, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveOverlaps keeps two slots from redundantly covering the same
// mesh population: for every pair of adjacent
// slots that are both established, if their reachable sets intersect,
// the slot with the strictly larger set is dropped (a tie drops the
// first of the pair). Dropping clears the reachable set and disconnects
// the session; the resulting DisconnectedEvent carries the cleared ids
// for the controller to mark offline.
func (s *Scheduler) ResolveOverlaps(ctx context.Context) {
	for i := 0; i+1 < len(s.slots); i++ {
		a, b := s.slots[i], s.slots[i+1]
		if !a.Established() || !b.Established() {
			continue
		}
		if !intersects(a.ReachableMeshIDs(), b.ReachableMeshIDs()) {
			continue
		}

		// The slot with the smaller reach is the more specialized,
		// likely closer peer; the larger one is the redundant relay.
		drop := a
		if a.reachableCount() < b.reachableCount() {
			drop = b
		}
		s.dropSlot(ctx, drop)
	}
}

func (s *Scheduler) dropSlot(ctx context.Context, slot *Slot) {
	linked := slot.clearReachable()
	go func() {
		_ = slot.sess.Disconnect(linked)
	}()
}

func intersects(a, b []uint16) bool {
	set := make(map[uint16]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
