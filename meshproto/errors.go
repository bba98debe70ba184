package meshproto

import "errors"

// Error taxonomy for the mesh session and framer. Callers should compare
// with errors.Is.
var (
	// ErrTransportTransient marks a retryable BLE transport failure (GATT
	// open/read/write). The caller should drop the frame or abort the
	// connect attempt and let the scheduler retry on its own cooldown.
	ErrTransportTransient = errors.New("meshproto: transient transport failure")

	// ErrAuthRejected is returned when the pairing characteristic replies
	// with 0x0E: the mesh credentials were not accepted by the peripheral.
	ErrAuthRejected = errors.New("meshproto: mesh credentials rejected by peripheral")

	// ErrProtocolViolation marks malformed or unexpected protocol data:
	// an unrecognized or truncated pairing response, a send on a session
	// that is not established, or a write to an unknown characteristic.
	// A notification shorter than the frame header is ErrFrameTooShort.
	ErrProtocolViolation = errors.New("meshproto: protocol violation")

	// ErrModelNotYetKnown names a command that targets a device whose MAC
	// or capability set has not been resolved. No function in this module
	// returns it.
	ErrModelNotYetKnown = errors.New("meshproto: device model not yet known")

	// ErrAllowlistReject names a status frame for a mesh id or MAC that is
	// not present in a non-empty allow-list. No function in this module
	// returns it.
	ErrAllowlistReject = errors.New("meshproto: mesh id rejected by allow-list")

	// ErrWatchdogTimeout names a slot that fails to reach the established
	// state before its connect watchdog expires. The scheduler enforces the
	// watchdog with a context deadline on Connect and does not return it.
	ErrWatchdogTimeout = errors.New("meshproto: connect watchdog expired")

	// ErrFrameTooShort is returned by DecryptFrame when the notification
	// is shorter than the minimum 7-byte header.
	ErrFrameTooShort = errors.New("meshproto: frame shorter than header")
)
