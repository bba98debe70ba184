package bus

import "encoding/json"

// ColorMode values in a light-state document.
const (
	ColorModeRGB        = "rgb"
	ColorModeColorTemp  = "color_temp"
	ColorModeBrightness = "brightness"
)

// Effect names accepted on the command topic. Anything else clears the
// active effect.
const (
	EffectColorLoop = "color loop"
	EffectCandle    = "candle"
)

// RGB is the color triplet used in both state and command documents.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// LightState is the JSON document published on a light entity's state
// topic. Plugs publish a bare "ON"/"OFF" string instead.
type LightState struct {
	State      string `json:"state"`
	ColorMode  string `json:"color_mode,omitempty"`
	Brightness uint8  `json:"brightness"`
	ColorTemp  int    `json:"color_temp,omitempty"`
	Color      *RGB   `json:"color,omitempty"`
}

// Command is one inbound JSON message on an entity's command topic. Every
// field is optional; absence means "no change".
type Command struct {
	State         *string `json:"state,omitempty"`
	Color         *RGB    `json:"color,omitempty"`
	Brightness    *int    `json:"brightness,omitempty"`
	ColorTemp     *int    `json:"color_temp,omitempty"`
	Effect        *string `json:"effect,omitempty"`
	FadeDuration  *int    `json:"fade_duration,omitempty"`
	ColorDuration *int    `json:"color_duration,omitempty"`
}

// ParseCommand decodes an inbound command payload.
func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	err := json.Unmarshal(payload, &cmd)
	return cmd, err
}

// DiscoveryDevice is the device block shared by every discovery document
// an entity of the same physical device publishes.
type DiscoveryDevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	SWVersion    string   `json:"sw_version,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

// DiscoveryAvailability is one entry of a discovery document's
// availability list.
type DiscoveryAvailability struct {
	Topic string `json:"topic"`
}

// DiscoveryDocument is the per-entity configuration document published
// under the discovery prefix. Field presence tracks the entity's
// capability set: a plain plug omits Schema and the light fields from
// Brightness on, while still carrying availability and device info.
type DiscoveryDocument struct {
	Schema              string                  `json:"schema,omitempty"`
	Name                string                  `json:"name"`
	UniqueID            string                  `json:"unique_id"`
	ObjectID            string                  `json:"object_id,omitempty"`
	Icon                string                  `json:"icon,omitempty"`
	StateTopic          string                  `json:"state_topic"`
	CommandTopic        string                  `json:"command_topic"`
	Availability        []DiscoveryAvailability `json:"availability,omitempty"`
	AvailabilityMode    string                  `json:"availability_mode,omitempty"`
	Device              DiscoveryDevice         `json:"device"`
	Brightness          bool                    `json:"brightness,omitempty"`
	BrightnessScale     int                     `json:"brightness_scale,omitempty"`
	ColorMode           bool                    `json:"color_mode,omitempty"`
	SupportedColorModes []string                `json:"supported_color_modes,omitempty"`
	MinMireds           int                     `json:"min_mireds,omitempty"`
	MaxMireds           int                     `json:"max_mireds,omitempty"`
	Effect              bool                    `json:"effect,omitempty"`
	EffectList          []string                `json:"effect_list,omitempty"`
}

// SlotStatus is one slot's entry in the connection summary.
type SlotStatus struct {
	Connected bool     `json:"connected"`
	MAC       string   `json:"mac,omitempty"`
	MeshID    uint16   `json:"mesh_id,omitempty"`
	Devices   int      `json:"devices"`
	MeshIDs   []uint16 `json:"mesh_ids"`
}

// ConnectionStatus is the periodic summary published on
// Topics.ConnectionStatus; slot entries are keyed "connection_<i>".
type ConnectionStatus struct {
	Now               int64                 `json:"now"`
	ActiveConnections int                   `json:"active_connections"`
	OnlineDevices     int                   `json:"online_devices"`
	Connections       map[string]SlotStatus `json:"-"`
}

// MarshalJSON flattens the per-slot map into the top-level object so the
// document reads {"now":..., "connection_0": {...}, ...}.
func (c ConnectionStatus) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, 3+len(c.Connections))
	flat["now"] = c.Now
	flat["active_connections"] = c.ActiveConnections
	flat["online_devices"] = c.OnlineDevices
	for key, slot := range c.Connections {
		flat[key] = slot
	}
	return json.Marshal(flat)
}
