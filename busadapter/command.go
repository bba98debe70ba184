package busadapter

import (
	"strings"

	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/meshproto"
)

// entityState is the slice of current state applyCommand needs to
// interpret a relative command (toggle, bare brightness, effect clear);
// it is filled from either a device or a group record.
type entityState struct {
	state     bool
	colorMode bool
	r, g, b   uint8
	temp      uint8
}

// handleCommand parses one inbound command payload and applies it to the
// entity's mesh destination.
func (a *Adapter) handleCommand(entityID string, payload []byte) {
	cmd, err := bus.ParseCommand(payload)
	if err != nil {
		a.log.Warnf("busadapter: malformed command for %s: %v", entityID, err)
		return
	}

	var dest meshproto.Dest
	var current entityState

	if groupID, ok := parseGroupEntityID(entityID); ok {
		g := a.ctrl.Group(groupID)
		if g == nil {
			a.log.Warnf("busadapter: command for unknown group %s", entityID)
			return
		}
		dest = meshproto.GroupDest(groupID)
		current = entityState{state: g.State, colorMode: g.ColorMode, r: g.R, g: g.G, b: g.B, temp: g.Temperature}
	} else if meshID, ok := parseDeviceEntityID(entityID); ok {
		d := a.ctrl.Device(meshID)
		if d == nil {
			a.log.Warnf("busadapter: command for unknown device %s", entityID)
			return
		}
		dest = meshproto.DeviceDest(meshID)
		current = entityState{state: d.State, colorMode: d.ColorMode, r: d.R, g: d.G, b: d.B, temp: d.Temperature}
	} else {
		a.log.Warnf("busadapter: command for unparseable entity %q", entityID)
		return
	}

	a.applyCommand(dest, current, cmd)
}

// applyCommand issues the controller calls for one command message, in a
// fixed order: durations first, then color, brightness, color
// temperature, effect, and finally power state. A color key switches the
// brightness interpretation to the color path for the rest of the
// message; a color_temp key switches it to the white path.
func (a *Adapter) applyCommand(dest meshproto.Dest, current entityState, cmd bus.Command) {
	colorMode := current.colorMode
	if cmd.Color != nil {
		colorMode = true
	} else if cmd.ColorTemp != nil {
		colorMode = false
	}

	// Only the low byte of a duration goes on the wire, so values above
	// 255ms wrap rather than saturate.
	if cmd.FadeDuration != nil {
		a.ctrl.SetSequenceFadeDuration(dest, uint8(*cmd.FadeDuration))
	}
	if cmd.ColorDuration != nil {
		a.ctrl.SetSequenceColorDuration(dest, uint8(*cmd.ColorDuration))
	}

	if cmd.Color != nil {
		a.ctrl.SetColor(dest, cmd.Color.R, cmd.Color.G, cmd.Color.B)
	}

	if cmd.Brightness != nil {
		if colorMode {
			a.ctrl.SetColorBrightness(dest, bus.ColorBrightnessToWire(*cmd.Brightness))
		} else {
			a.ctrl.SetWhiteBrightness(dest, bus.WhiteBrightnessToWire(*cmd.Brightness))
		}
	}

	if cmd.ColorTemp != nil {
		a.ctrl.SetWhiteTemperature(dest, bus.TemperatureToWire(*cmd.ColorTemp))
	}

	if cmd.Effect != nil {
		switch strings.ToLower(*cmd.Effect) {
		case bus.EffectColorLoop:
			a.ctrl.SetSequencePreset(dest, 0)
		case bus.EffectCandle:
			a.ctrl.SetCandleMode(dest)
		default:
			// Anything else clears the running effect by re-asserting
			// the plain color or white value.
			if colorMode {
				a.ctrl.SetColor(dest, current.r, current.g, current.b)
			} else {
				a.ctrl.SetWhiteTemperature(dest, current.temp)
			}
		}
	}

	if cmd.State != nil {
		switch strings.ToLower(*cmd.State) {
		case "on":
			a.ctrl.SetPower(dest, true)
		case "off":
			a.ctrl.SetPower(dest, false)
		case "toggle":
			a.ctrl.SetPower(dest, !current.state)
		default:
			a.log.Warnf("busadapter: unknown state value %q", *cmd.State)
		}
	}
}
