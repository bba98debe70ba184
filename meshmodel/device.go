package meshmodel

import "time"

// DisplayInfo is the catalog-resolved, user-facing metadata for a device:
// everything needed to build a discovery document, cached on the device
// after the first successful resolution so repeated publications don't
// re-resolve it.
type DisplayInfo struct {
	ProductID    string
	Name         string
	Model        string
	Manufacturer string
	Icon         string
	Capabilities Capabilities
}

// Device is everything the bridge knows about one mesh peripheral.
type Device struct {
	MeshID    uint16
	ProductID string
	MAC       string

	Display *DisplayInfo
	Version string

	SendDiscovery       bool
	Online              bool
	LastOnline          time.Time
	DeviceInfoRequested time.Time

	State           bool
	ColorMode       bool
	TransitionMode  bool
	SequenceMode    bool
	CandleMode      bool
	WhiteBrightness uint8
	Temperature     uint8
	ColorBrightness uint8
	R, G, B         uint8

	// GroupIDs is the set of group ids this device has reported
	// membership in, learned from 0xD4 GROUP_ID_REPORT notifications.
	GroupIDs []uint16
}

// InGroup reports whether the device has reported membership in groupID.
func (d *Device) InGroup(groupID uint16) bool {
	for _, g := range d.GroupIDs {
		if g == groupID {
			return true
		}
	}
	return false
}

// EffectMode reports whether an effect (sequence or candle) currently
// overrides the device's plain color/white mode.
func (d *Device) EffectMode() bool {
	return d.SequenceMode || d.CandleMode
}

// NewDevice creates a device record for a freshly discovered mesh id. The
// display info is resolved lazily by the controller on first address
// report, not here, so construction never depends on the catalog.
func NewDevice(meshID uint16, productID, mac string) *Device {
	return &Device{
		MeshID:    meshID,
		ProductID: productID,
		MAC:       mac,
	}
}

// CanPublishState reports whether the device has enough resolved
// information (a display info entry) to publish a meaningful state or
// discovery document.
func (d *Device) CanPublishState() bool {
	return d.Display != nil
}

// StateString renders a human-readable one-line summary, in the same
// shape the firmware's own debug log line used: mesh id, on/off, the
// active color or temperature/brightness pair, and online/offline.
func (d *Device) StateString() string {
	out := itoa(int(d.MeshID)) + ": " + onOff(d.State) + " "
	if d.ColorMode {
		out += "#" + hexRGB(d.R, d.G, d.B) + " (" + itoa(int(d.ColorBrightness)) + "%)"
	} else {
		out += "temp: " + itoa(int(d.Temperature)) + " (" + itoa(int(d.WhiteBrightness)) + "%)"
	}
	if d.Online {
		out += " ONLINE"
	} else {
		out += " OFFLINE"
	}
	return out
}
