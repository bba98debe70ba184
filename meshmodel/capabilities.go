package meshmodel

// Feature is one bit of a device's capability set, mirroring the
// FEATURE_* flags the original firmware component exposes per product
// id.
type Feature uint8

const (
	FeatureLightMode Feature = 1 << iota
	FeatureColor
	FeatureWhiteBrightness
	FeatureWhiteTemperature
	FeatureColorBrightness
)

// ComponentType is the external-bus component kind a device is
// represented as: "light" for anything with FeatureLightMode, "switch"
// for a plain on/off plug.
type ComponentType string

const (
	ComponentLight  ComponentType = "light"
	ComponentSwitch ComponentType = "switch"
)

// Capabilities is a device's feature bitmask plus the component type it
// implies for discovery/state publication.
type Capabilities struct {
	Component ComponentType
	features  Feature
}

// NewCapabilities builds a Capabilities value from a component type and
// the set of features it supports.
func NewCapabilities(component ComponentType, features ...Feature) Capabilities {
	c := Capabilities{Component: component}
	for _, f := range features {
		c.features |= f
	}
	return c
}

// Has reports whether the capability set includes the given feature.
func (c Capabilities) Has(f Feature) bool {
	return c.features&f != 0
}

// LightColor is the capability set for a full-color mesh light: mode,
// RGB color, white brightness, white temperature and color brightness.
func LightColor() Capabilities {
	return NewCapabilities(ComponentLight,
		FeatureLightMode, FeatureColor, FeatureWhiteBrightness,
		FeatureWhiteTemperature, FeatureColorBrightness)
}

// LightWhiteTemperature is the capability set for a tunable-white-only
// mesh light.
func LightWhiteTemperature() Capabilities {
	return NewCapabilities(ComponentLight,
		FeatureLightMode, FeatureWhiteBrightness, FeatureWhiteTemperature)
}

// LightWhite is the capability set for a dimmable-only mesh light.
func LightWhite() Capabilities {
	return NewCapabilities(ComponentLight, FeatureLightMode, FeatureWhiteBrightness)
}

// Plug is the capability set for a plain on/off mesh switch.
func Plug() Capabilities {
	return NewCapabilities(ComponentSwitch)
}
