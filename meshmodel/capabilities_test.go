package meshmodel

import "testing"

func TestLightColorHasAllFeatures(t *testing.T) {
	c := LightColor()
	if c.Component != ComponentLight {
		t.Fatalf("component = %q, want light", c.Component)
	}
	for _, f := range []Feature{FeatureLightMode, FeatureColor, FeatureWhiteBrightness, FeatureWhiteTemperature, FeatureColorBrightness} {
		if !c.Has(f) {
			t.Fatalf("LightColor missing feature %b", f)
		}
	}
}

func TestLightWhiteHasNoColor(t *testing.T) {
	c := LightWhite()
	if c.Has(FeatureColor) {
		t.Fatalf("LightWhite should not have FeatureColor")
	}
	if !c.Has(FeatureLightMode) || !c.Has(FeatureWhiteBrightness) {
		t.Fatalf("LightWhite missing expected features")
	}
}

func TestPlugIsSwitchWithNoFeatures(t *testing.T) {
	c := Plug()
	if c.Component != ComponentSwitch {
		t.Fatalf("component = %q, want switch", c.Component)
	}
	if c.Has(FeatureLightMode) {
		t.Fatalf("a plug should not carry FeatureLightMode")
	}
}
