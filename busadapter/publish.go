package busadapter

import (
	"encoding/json"
	"strconv"

	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/meshmodel"
)

func (a *Adapter) publishAvailability(entityID string, online bool) {
	payload := bus.PayloadOffline
	if online {
		payload = bus.PayloadOnline
	}
	if err := a.bus.Publish(a.topics.Availability(entityID), []byte(payload), true); err != nil {
		a.log.Errorf("busadapter: publishing availability for %s: %v", entityID, err)
	}
}

func (a *Adapter) publishDeviceState(d *meshmodel.Device) {
	if d == nil {
		return
	}
	if !d.CanPublishState() {
		a.log.Warnf("busadapter: state for device %d held back until its model resolves", d.MeshID)
		return
	}
	entityID := strconv.Itoa(int(d.MeshID))

	if d.Display.Capabilities.Component == meshmodel.ComponentSwitch {
		a.publishPlugState(entityID, d.State)
		return
	}

	state := lightStateJSON(d.State, d.ColorMode, d.EffectMode(),
		d.WhiteBrightness, d.Temperature, d.ColorBrightness, d.R, d.G, d.B)
	a.publishJSON(a.topics.State(entityID), state)
}

func (a *Adapter) publishGroupState(g *meshmodel.Group) {
	if g == nil || g.Display == nil {
		return
	}
	entityID := "group-" + strconv.Itoa(int(g.GroupID))

	if g.Display.Capabilities.Component == meshmodel.ComponentSwitch {
		a.publishPlugState(entityID, g.State)
		return
	}

	state := lightStateJSON(g.State, g.ColorMode, g.EffectMode(),
		g.WhiteBrightness, g.Temperature, g.ColorBrightness, g.R, g.G, g.B)
	a.publishJSON(a.topics.State(entityID), state)
}

func (a *Adapter) publishPlugState(entityID string, on bool) {
	payload := bus.PayloadOff
	if on {
		payload = bus.PayloadOn
	}
	if err := a.bus.Publish(a.topics.State(entityID), []byte(payload), true); err != nil {
		a.log.Errorf("busadapter: publishing state for %s: %v", entityID, err)
	}
}

// lightStateJSON renders the state document for a light entity. An
// active effect reports color_mode "brightness"; otherwise the mode
// follows the device's color/white path.
func lightStateJSON(on, colorMode, effectMode bool, whiteBrightness, temperature, colorBrightness, r, g, b uint8) bus.LightState {
	state := bus.LightState{State: bus.PayloadOff}
	if on {
		state.State = bus.PayloadOn
	}

	switch {
	case effectMode:
		state.ColorMode = bus.ColorModeBrightness
		state.Brightness = uint8(bus.ColorBrightnessFromWire(colorBrightness))
		state.Color = &bus.RGB{R: r, G: g, B: b}
	case colorMode:
		state.ColorMode = bus.ColorModeRGB
		state.Brightness = uint8(bus.ColorBrightnessFromWire(colorBrightness))
		state.Color = &bus.RGB{R: r, G: g, B: b}
	default:
		state.ColorMode = bus.ColorModeColorTemp
		state.Brightness = uint8(bus.WhiteBrightnessFromWire(whiteBrightness))
		state.ColorTemp = bus.TemperatureFromWire(temperature)
	}
	return state
}

func (a *Adapter) publishJSON(topic string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		a.log.Errorf("busadapter: encoding %s: %v", topic, err)
		return
	}
	if err := a.bus.Publish(topic, data, true); err != nil {
		a.log.Errorf("busadapter: publishing %s: %v", topic, err)
	}
}

func (a *Adapter) publishDeviceDiscovery(d *meshmodel.Device) {
	if d == nil || d.Display == nil || d.MAC == "" {
		return
	}
	entityID := strconv.Itoa(int(d.MeshID))
	objectID := "awox-" + d.MAC

	doc := a.discoveryDocument(entityID, objectID, d.Display)
	doc.Device.SWVersion = d.Version
	a.publishJSON(a.topics.DiscoveryConfig(string(d.Display.Capabilities.Component), objectID), doc)
}

func (a *Adapter) publishGroupDiscovery(g *meshmodel.Group) {
	if g == nil || g.Display == nil {
		return
	}
	entityID := "group-" + strconv.Itoa(int(g.GroupID))

	display := *g.Display
	if g.Name != "" {
		display.Name = g.Name
	} else {
		display.Name = entityID
	}
	display.Model = "Mesh group"

	doc := a.discoveryDocument(entityID, entityID, &display)
	a.publishJSON(a.topics.DiscoveryConfig(string(display.Capabilities.Component), entityID), doc)
}

// discoveryDocument renders the per-entity configuration document. The
// capability set decides which light features the document advertises; a
// plain switch carries none of them.
func (a *Adapter) discoveryDocument(entityID, objectID string, display *meshmodel.DisplayInfo) bus.DiscoveryDocument {
	caps := display.Capabilities

	doc := bus.DiscoveryDocument{
		Name:         display.Name,
		UniqueID:     objectID,
		ObjectID:     objectID,
		Icon:         display.Icon,
		StateTopic:   a.topics.State(entityID),
		CommandTopic: a.topics.Command(entityID),
		Availability: []bus.DiscoveryAvailability{
			{Topic: a.topics.Availability(entityID)},
			{Topic: a.topics.Status()},
		},
		AvailabilityMode: "all",
		Device: bus.DiscoveryDevice{
			Identifiers:  []string{objectID},
			Name:         display.Name,
			Model:        display.Model,
			Manufacturer: display.Manufacturer,
			ViaDevice:    a.host.Name,
		},
	}

	if caps.Component != meshmodel.ComponentLight {
		return doc
	}

	doc.Schema = "json"
	doc.Brightness = caps.Has(meshmodel.FeatureWhiteBrightness) || caps.Has(meshmodel.FeatureColorBrightness)
	if doc.Brightness {
		doc.BrightnessScale = 255
	}

	var modes []string
	if caps.Has(meshmodel.FeatureColor) {
		modes = append(modes, bus.ColorModeRGB)
	}
	if caps.Has(meshmodel.FeatureWhiteTemperature) {
		modes = append(modes, bus.ColorModeColorTemp)
		doc.MinMireds = bus.MiredsMin
		doc.MaxMireds = bus.MiredsMax
	}
	if len(modes) == 0 && doc.Brightness {
		modes = append(modes, bus.ColorModeBrightness)
	}
	if len(modes) > 0 {
		doc.ColorMode = true
		doc.SupportedColorModes = modes
	}

	if caps.Has(meshmodel.FeatureColor) {
		doc.Effect = true
		doc.EffectList = []string{bus.EffectColorLoop, bus.EffectCandle}
	}

	return doc
}
