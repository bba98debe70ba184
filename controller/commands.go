package controller

import "github.com/awox-mesh/awox-bridge/meshproto"

// SetPower turns dest on or off.
func (c *Controller) SetPower(dest meshproto.Dest, state bool) error {
	var on byte
	if state {
		on = 1
	}
	return c.router.Route(dest, meshproto.CommandSetPower, []byte{on, 0, 0})
}

// SetColor switches dest into color mode and sets its RGB value.
func (c *Controller) SetColor(dest meshproto.Dest, r, g, b uint8) error {
	return c.router.Route(dest, meshproto.CommandSetColor, []byte{0x04, r, g, b})
}

// SetColorBrightness sets dest's color-mode brightness. value is already
// in wire units (0x0A-0x64, i.e. 10-100); unit conversion from an external scale is the
// bus adapter's job, not the controller's.
func (c *Controller) SetColorBrightness(dest meshproto.Dest, value uint8) error {
	return c.router.Route(dest, meshproto.CommandSetColorBrightness, []byte{value})
}

// SetWhiteBrightness sets dest's white-mode brightness, in wire units.
func (c *Controller) SetWhiteBrightness(dest meshproto.Dest, value uint8) error {
	return c.router.Route(dest, meshproto.CommandSetWhiteBrightness, []byte{value})
}

// SetWhiteTemperature sets dest's white-mode color temperature, in wire
// units.
func (c *Controller) SetWhiteTemperature(dest meshproto.Dest, value uint8) error {
	return c.router.Route(dest, meshproto.CommandSetWhiteTemperature, []byte{value})
}

// SetSequencePreset starts one of the device's built-in color sequences.
func (c *Controller) SetSequencePreset(dest meshproto.Dest, preset uint8) error {
	return c.router.Route(dest, meshproto.CommandSetSequencePreset, []byte{preset})
}

// SetCandleMode starts the device's flickering-candle effect.
func (c *Controller) SetCandleMode(dest meshproto.Dest) error {
	return c.router.Route(dest, meshproto.CommandSetCandleMode, nil)
}

// SetSequenceColorDuration sets how long a sequence preset holds each
// color before advancing, in milliseconds (low byte only, per the wire
// format).
func (c *Controller) SetSequenceColorDuration(dest meshproto.Dest, ms uint8) error {
	return c.router.Route(dest, meshproto.CommandSequenceColorDur, []byte{ms})
}

// SetSequenceFadeDuration sets how long a sequence preset takes to
// cross-fade between colors, in milliseconds (low byte only).
func (c *Controller) SetSequenceFadeDuration(dest meshproto.Dest, ms uint8) error {
	return c.router.Route(dest, meshproto.CommandSequenceFadeDur, []byte{ms})
}

// QueryDeviceVersion asks dest for its firmware version. The request shares
// the device-info opcode. No reply to it is decoded, so it never fills in
// Device.Version.
func (c *Controller) QueryDeviceVersion(dest meshproto.Dest) error {
	return c.router.Route(dest, meshproto.CommandQueryDeviceVersion, []byte{0x10, 0x02})
}

// RequestStatus asks dest to report its current state. A session sends the
// same poll as a broadcast once, right after it connects.
func (c *Controller) RequestStatus(dest meshproto.Dest) error {
	return c.router.Route(dest, meshproto.CommandGetStatus, []byte{0x10})
}
