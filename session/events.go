package session

// Event is something a Session observed that its owner needs to act on.
// Exactly one of the typed fields is non-nil.
type Event struct {
	OnlineStatus *OnlineStatusReport
	Status       *StatusReport
	Address      *AddressReport
	GroupIDs     *GroupIDReport
	Disconnected *DisconnectedEvent
}

// lightState is the common on/off/color payload carried by both status
// report shapes.
type lightState struct {
	Online          bool
	State           bool
	ColorMode       bool
	TransitionMode  bool
	WhiteBrightness uint8
	Temperature     uint8
	ColorBrightness uint8
	R, G, B         uint8
}

// OnlineStatusReport is a 0xDC notification: a device announcing itself
// and its current state, typically in response to a broadcast status
// request.
type OnlineStatusReport struct {
	MeshID uint16
	lightState
}

// StatusReport is a 0xDB notification: an unsolicited state change from
// one specific device.
type StatusReport struct {
	MeshID uint16
	lightState
}

// AddressReport is a 0xE1 notification: a device's resolved MAC and
// product id, sent once after a status request identifies a previously
// unseen mesh id.
type AddressReport struct {
	MeshID    uint16
	ProductID string
	MAC       [4]byte
}

// GroupIDReport is a 0xD4 notification: the group ids one device
// currently belongs to.
type GroupIDReport struct {
	MeshID   uint16
	GroupIDs []uint8
}

// DisconnectedEvent is emitted by Session.Disconnect, carrying the mesh ids
// the caller passed as linked. It is dropped if the event backlog is full,
// and a link lost without a Disconnect call raises no event.
type DisconnectedEvent struct {
	LinkedMeshIDs []uint16
}
