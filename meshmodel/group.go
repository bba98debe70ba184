package meshmodel

import "time"

// GroupBit is the offset added to a group id to form its mesh wire
// destination; mirrored from meshproto.GroupBit so this package doesn't
// need to import meshproto just for a constant.
const GroupBit = 0x8000

// Group is a named collection of devices that share a group id and can be
// addressed as a single mesh destination.
type Group struct {
	GroupID uint16
	Name    string

	Display    *DisplayInfo
	LastOnline time.Time

	Online bool

	State           bool
	ColorMode       bool
	TransitionMode  bool
	SequenceMode    bool
	CandleMode      bool
	WhiteBrightness uint8
	Temperature     uint8
	ColorBrightness uint8
	R, G, B         uint8

	devices []*Device
}

// EffectMode reports whether an effect (sequence or candle) currently
// overrides the group's plain color/white mode.
func (g *Group) EffectMode() bool {
	return g.SequenceMode || g.CandleMode
}

// Recompute re-derives the group's aggregate Online/State from its member
// devices: online iff any member is online, state iff any member is on.
// The group's remaining attributes (color, brightness, effect flags)
// mirror whichever member most recently reported them; callers update
// those directly and call Recompute only for the Online/State pair.
func (g *Group) Recompute() {
	g.Online = false
	g.State = false
	for _, d := range g.devices {
		if d.Online {
			g.Online = true
		}
		if d.State {
			g.State = true
		}
	}
}

// NewGroup creates a group record, defaulting its display name to
// "group-<id>" until the host overrides it.
func NewGroup(groupID uint16) *Group {
	return &Group{
		GroupID: groupID,
		Name:    "group-" + itoa(int(groupID)),
	}
}

// Dest returns the group's mesh wire destination: group id + 0x8000.
func (g *Group) Dest() uint16 { return g.GroupID + GroupBit }

// CanPublishState reports whether the group has at least one device with
// resolved display info, so its aggregate state is meaningful to publish.
func (g *Group) CanPublishState() bool {
	for _, d := range g.devices {
		if d.CanPublishState() {
			return true
		}
	}
	return false
}

// Devices returns the group's member devices.
func (g *Group) Devices() []*Device {
	return g.devices
}

// AddDevice adds a device to the group, deduplicating by mesh id.
func (g *Group) AddDevice(d *Device) {
	for _, existing := range g.devices {
		if existing.MeshID == d.MeshID {
			return
		}
	}
	g.devices = append(g.devices, d)
}

// StateString renders the same one-line summary shape as Device.StateString,
// prefixed with the group id and wire destination.
func (g *Group) StateString() string {
	out := "group " + itoa(int(g.GroupID)) + ": (" + itoa(int(g.Dest())) + ") " + onOff(g.State) + " "
	if g.ColorMode {
		out += "#" + hexRGB(g.R, g.G, g.B) + " (" + itoa(int(g.ColorBrightness)) + "%)"
	} else {
		out += "temp: " + itoa(int(g.Temperature)) + " (" + itoa(int(g.WhiteBrightness)) + "%)"
	}
	if g.Online {
		out += " ONLINE"
	} else {
		out += " OFFLINE"
	}
	return out
}
