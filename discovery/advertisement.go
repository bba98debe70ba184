package discovery

import (
	"fmt"
	"time"
)

// Advertisement is a single BLE advertisement report, trimmed to the
// fields the candidate pool and vendor filter need.
type Advertisement struct {
	Address          string
	RawAddr          [6]byte
	LocalName        string
	RSSI             int
	Connectable      bool
	ManufacturerID   uint16
	ManufacturerData []byte
	SeenAt           time.Time
}

// ReverseAddr returns the advertisement's MAC address with its byte order
// reversed, the form the mesh protocol's per-packet crypto expects.
func (a Advertisement) ReverseAddr() [6]byte {
	var out [6]byte
	for i := 0; i < 6; i++ {
		out[i] = a.RawAddr[5-i]
	}
	return out
}

// MatchesVendorPrefix reports whether the advertisement's MAC address
// starts with the given vendor OUI prefix (e.g. "A4:C1:38").
func (a Advertisement) MatchesVendorPrefix(prefix [3]byte) bool {
	return a.RawAddr[0] == prefix[0] && a.RawAddr[1] == prefix[1] && a.RawAddr[2] == prefix[2]
}

// String renders the advertisement the way a scan log line would.
func (a Advertisement) String() string {
	return fmt.Sprintf("%s %q rssi=%d connectable=%v", a.Address, a.LocalName, a.RSSI, a.Connectable)
}
