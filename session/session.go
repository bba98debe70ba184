package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/awox-mesh/awox-bridge/meshproto"
)

// DefaultPacingInterval is the minimum wall-clock gap enforced between two
// frames written on the same session's command characteristic.
const DefaultPacingInterval = 180 * time.Millisecond

// EventBacklog is the size of the buffered channel Events() returns. A full
// backlog means the owner isn't draining fast enough; sends then block,
// which in turn stalls notification delivery from the peripheral.
const EventBacklog = 64

type queuedFrame struct {
	dest    meshproto.Dest
	command byte
	payload []byte
}

// Session is one authenticated, encrypted GATT connection to a mesh
// peripheral: the handshake, the session key and packet counter, the paced
// outbound command queue, and notification decoding into Events.
type Session struct {
	transport      BleTransport
	combinedKey    [meshproto.KeySize]byte
	pacingInterval time.Duration

	mu          sync.Mutex
	state       State
	peripheral  Peripheral
	sessionKey  [meshproto.KeySize]byte
	reverseAddr [6]byte
	counter     meshproto.Counter

	queueMu sync.Mutex
	queue   []queuedFrame
	wake    chan struct{}

	events   chan Event
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithPacingInterval overrides DefaultPacingInterval.
func WithPacingInterval(d time.Duration) Option {
	return func(s *Session) { s.pacingInterval = d }
}

// New builds a Session bound to the given transport and long-term mesh
// credential. Connect must be called before any command can be sent.
func New(transport BleTransport, combinedKey [meshproto.KeySize]byte, opts ...Option) *Session {
	s := &Session{
		transport:      transport,
		combinedKey:    combinedKey,
		pacingInterval: DefaultPacingInterval,
		state:          StateInit,
		wake:           make(chan struct{}, 1),
		events:         make(chan Event, EventBacklog),
		stopCh:         make(chan struct{}),
	}
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Events returns the channel notifications are delivered on. The owner must
// keep draining it for the lifetime of the session.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Connect opens the GATT connection, runs the pairing handshake, derives
// the session key, subscribes to notifications, and starts the paced
// command pump. On any failure the session is left in StateIdle and the
// peripheral, if opened, is disconnected.
func (s *Session) Connect(ctx context.Context, address string, rawAddr [6]byte) error {
	s.mu.Lock()
	s.stopCh = make(chan struct{})
	s.stopOnce = sync.Once{}
	s.mu.Unlock()

	s.setState(StateConnecting)

	peripheral, err := s.transport.Connect(ctx, address, rawAddr)
	if err != nil {
		s.setState(StateIdle)
		return fmt.Errorf("session: connecting to %s: %w", address, err)
	}

	s.setState(StateConnected)

	var reverseAddr [6]byte
	reverse6(reverseAddr[:], rawAddr[:])

	sessionKey, err := s.handshake(ctx, peripheral)
	if err != nil {
		peripheral.Disconnect()
		s.setState(StateIdle)
		return err
	}

	s.mu.Lock()
	s.peripheral = peripheral
	s.sessionKey = sessionKey
	s.reverseAddr = reverseAddr
	s.counter = 0
	s.mu.Unlock()

	if err := peripheral.SubscribeNotify(ctx, meshproto.NotificationCharUUID, s.handleNotification); err != nil {
		peripheral.Disconnect()
		s.setState(StateIdle)
		return fmt.Errorf("session: subscribing to notifications: %w", meshproto.ErrTransportTransient)
	}

	s.setState(StateEstablished)

	s.wg.Add(1)
	go s.pump()

	// The firmware's own first move on a fresh session is a broadcast
	// status poll; enqueueing it here instead of leaving it to the
	// owner keeps every session's counter starting the same way.
	if err := s.Send(meshproto.BroadcastDest(), meshproto.CommandGetStatus, []byte{0x10}); err != nil {
		return fmt.Errorf("session: queuing initial status poll: %w", err)
	}

	return nil
}

func (s *Session) handshake(ctx context.Context, peripheral Peripheral) ([meshproto.KeySize]byte, error) {
	var sessionKey [meshproto.KeySize]byte

	s.setState(StateAuthenticating)

	clientNonce, err := meshproto.NewClientNonce()
	if err != nil {
		return sessionKey, fmt.Errorf("session: %w", err)
	}

	req := meshproto.PairingRequest(s.combinedKey, clientNonce)
	if err := peripheral.WriteCharacteristic(ctx, meshproto.PairingCharUUID, req); err != nil {
		return sessionKey, fmt.Errorf("session: writing pairing request: %w", meshproto.ErrTransportTransient)
	}

	resp, err := peripheral.ReadCharacteristic(ctx, meshproto.PairingCharUUID)
	if err != nil {
		return sessionKey, fmt.Errorf("session: reading pairing response: %w", meshproto.ErrTransportTransient)
	}

	serverNonce, err := meshproto.ParsePairingResponse(resp)
	if err != nil {
		return sessionKey, err
	}

	return meshproto.DeriveSessionKey(s.combinedKey, clientNonce, serverNonce), nil
}

// Send enqueues a command frame for dest. The queue is drained at most one
// frame per pacing interval; Send itself never blocks on the network.
func (s *Session) Send(dest meshproto.Dest, command byte, payload []byte) error {
	if s.State() != StateEstablished {
		return fmt.Errorf("session: send while not established: %w", meshproto.ErrProtocolViolation)
	}

	s.queueMu.Lock()
	s.queue = append(s.queue, queuedFrame{dest: dest, command: command, payload: payload})
	s.queueMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

func (s *Session) pump() {
	defer s.wg.Done()

	var lastSend time.Time
	timer := time.NewTimer(s.pacingInterval)
	defer timer.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.wake:
		case <-timer.C:
		}

		s.queueMu.Lock()
		if len(s.queue) == 0 {
			s.queueMu.Unlock()
			timer.Reset(s.pacingInterval)
			continue
		}
		next := s.queue[0]
		s.queueMu.Unlock()

		if wait := s.pacingInterval - time.Since(lastSend); wait > 0 {
			timer.Reset(wait)
			continue
		}

		if err := s.writeFrame(next); err == nil {
			s.queueMu.Lock()
			if len(s.queue) > 0 {
				s.queue = s.queue[1:]
			}
			s.queueMu.Unlock()
		}
		lastSend = time.Now()
		timer.Reset(s.pacingInterval)
	}
}

func (s *Session) writeFrame(qf queuedFrame) error {
	s.mu.Lock()
	peripheral := s.peripheral
	if peripheral == nil {
		s.mu.Unlock()
		return fmt.Errorf("session: writing command frame: no open connection: %w", meshproto.ErrTransportTransient)
	}
	counter := s.counter.Next()
	sessionKey := s.sessionKey
	reverseAddr := s.reverseAddr
	s.mu.Unlock()

	frame := meshproto.NewFrame(counter, qf.dest.Wire(), qf.command, qf.payload)
	meshproto.EncryptFrame(&frame, sessionKey, reverseAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := peripheral.WriteCharacteristic(ctx, meshproto.CommandCharUUID, frame[:]); err != nil {
		return fmt.Errorf("session: writing command frame: %w", meshproto.ErrTransportTransient)
	}
	return nil
}

func (s *Session) handleNotification(data []byte) {
	s.mu.Lock()
	sessionKey := s.sessionKey
	reverseAddr := s.reverseAddr
	s.mu.Unlock()

	packet := make([]byte, len(data))
	copy(packet, data)
	if err := meshproto.DecryptFrame(packet, sessionKey, reverseAddr); err != nil {
		return
	}

	evt, ok := parseNotification(packet)
	if !ok {
		return
	}

	select {
	case s.events <- evt:
	case <-s.stopCh:
	}
}

// Disconnect tears the GATT connection down and stops the command pump.
// linkedMeshIDs should be the caller's current view of which mesh ids were
// reachable through this session; it is forwarded verbatim on the
// DisconnectedEvent.
func (s *Session) Disconnect(linkedMeshIDs []uint16) error {
	s.setState(StateDisconnecting)

	s.mu.Lock()
	peripheral := s.peripheral
	s.peripheral = nil
	s.mu.Unlock()

	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()

	var err error
	if peripheral != nil {
		err = peripheral.Disconnect()
	}
	s.setState(StateIdle)

	select {
	case s.events <- Event{Disconnected: &DisconnectedEvent{LinkedMeshIDs: linkedMeshIDs}}:
	default:
	}

	if err != nil {
		return fmt.Errorf("session: disconnecting: %w", err)
	}
	return nil
}

func reverse6(dst, src []byte) {
	for i := 0; i < 6; i++ {
		dst[i] = src[5-i]
	}
}
