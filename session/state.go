package session

// State is the lifecycle of one BLE mesh session.
type State int

const (
	StateInit State = iota
	StateIdle
	StateConnecting
	StateConnected
	StateAuthenticating
	StateEstablished
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateAuthenticating:
		return "authenticating"
	case StateEstablished:
		return "established"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}
