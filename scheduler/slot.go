package scheduler

import (
	"sort"
	"sync"

	"github.com/awox-mesh/awox-bridge/meshproto"
	"github.com/awox-mesh/awox-bridge/session"
)

// Slot is a long-lived binding of a slot index to a session.Session. Its
// peripheral changes over the process lifetime as the scheduler connects,
// drops, and reconnects it; the Session itself is created once and reused.
type Slot struct {
	Index int

	sess *session.Session

	mu        sync.Mutex
	address   string
	rawAddr   [6]byte
	reachable map[uint16]struct{}
}

func newSlot(index int, sess *session.Session) *Slot {
	return &Slot{
		Index:     index,
		sess:      sess,
		reachable: make(map[uint16]struct{}),
	}
}

// Free reports whether the slot has no peripheral bound.
func (s *Slot) Free() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address == ""
}

// PeripheralAddress returns the currently bound peripheral's address, or
// "" if the slot is free.
func (s *Slot) PeripheralAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Established reports whether the slot's session has completed the
// handshake and may have commands routed to it.
func (s *Slot) Established() bool {
	return s.sess.State() == session.StateEstablished
}

// Send queues a command frame on this slot's session.
func (s *Slot) Send(dest meshproto.Dest, command byte, payload []byte) error {
	return s.sess.Send(dest, command, payload)
}

// ReachableMeshIDs returns a sorted snapshot of the mesh ids this slot has
// observed reachable.
func (s *Slot) ReachableMeshIDs() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint16, 0, len(s.reachable))
	for id := range s.reachable {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reaches reports whether meshID is currently in this slot's reachable
// set.
func (s *Slot) Reaches(meshID uint16) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reachable[meshID]
	return ok
}

func (s *Slot) reachableCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reachable)
}

func (s *Slot) addReachable(meshID uint16) {
	s.mu.Lock()
	s.reachable[meshID] = struct{}{}
	s.mu.Unlock()
}

func (s *Slot) removeReachable(meshID uint16) {
	s.mu.Lock()
	delete(s.reachable, meshID)
	s.mu.Unlock()
}

// clearReachable empties the slot's reachable set and returns the mesh
// ids it held, so the caller can mark them offline.
func (s *Slot) clearReachable() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint16, 0, len(s.reachable))
	for id := range s.reachable {
		out = append(out, id)
	}
	s.reachable = make(map[uint16]struct{})
	return out
}

func (s *Slot) bindPeripheral(address string, rawAddr [6]byte) {
	s.mu.Lock()
	s.address = address
	s.rawAddr = rawAddr
	s.mu.Unlock()
}

func (s *Slot) freePeripheral() {
	s.mu.Lock()
	s.address = ""
	s.mu.Unlock()
}
