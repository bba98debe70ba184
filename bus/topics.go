package bus

import "strings"

// DefaultPrefix is the topic prefix the bridge's own topics live under.
const DefaultPrefix = "awox"

// DefaultDiscoveryPrefix is where discovery documents are published; the
// home-automation host watches this subtree.
const DefaultDiscoveryPrefix = "homeassistant"

// Topics renders every topic the bridge publishes or subscribes to, so
// the layout lives in one place instead of being rebuilt with Sprintf at
// each call site.
type Topics struct {
	Prefix          string
	DiscoveryPrefix string
}

// NewTopics builds a Topics using the defaults for any empty prefix.
func NewTopics(prefix, discoveryPrefix string) Topics {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if discoveryPrefix == "" {
		discoveryPrefix = DefaultDiscoveryPrefix
	}
	return Topics{Prefix: prefix, DiscoveryPrefix: discoveryPrefix}
}

// Connected is the retained bridge-liveness topic, also used as the MQTT
// last-will topic so the broker flips it to "offline" if the bridge dies.
func (t Topics) Connected() string { return t.Prefix + "/connected" }

// ConnectionStatus carries the periodic per-slot connection summary.
func (t Topics) ConnectionStatus() string { return t.Prefix + "/connection_status" }

// Status is the host-maintained availability gate discovered entities
// reference in their discovery documents.
func (t Topics) Status() string { return t.Prefix + "/status" }

// Availability is the retained per-entity online/offline topic.
func (t Topics) Availability(entityID string) string {
	return t.Prefix + "/" + entityID + "/availability"
}

// AvailabilityPattern matches every entity's availability topic; the
// adapter subscribes to it briefly at startup to flush stale retained
// state.
func (t Topics) AvailabilityPattern() string { return t.Prefix + "/+/availability" }

// EntityFromAvailability extracts the entity id from a concrete
// availability topic, or "" if the topic doesn't match the pattern.
func (t Topics) EntityFromAvailability(topic string) string {
	rest, ok := strings.CutPrefix(topic, t.Prefix+"/")
	if !ok {
		return ""
	}
	entity, ok := strings.CutSuffix(rest, "/availability")
	if !ok || strings.Contains(entity, "/") {
		return ""
	}
	return entity
}

// State is the retained per-entity state topic.
func (t Topics) State(entityID string) string {
	return t.Prefix + "/" + entityID + "/state"
}

// Command is the per-entity inbound command topic.
func (t Topics) Command(entityID string) string {
	return t.Prefix + "/" + entityID + "/command"
}

// DiscoveryConfig is where an entity's discovery document is published.
// component is "light" or "switch"; objectID is "awox-<MAC>" for devices
// and "group-<id>" for groups.
func (t Topics) DiscoveryConfig(component, objectID string) string {
	return t.DiscoveryPrefix + "/" + component + "/" + objectID + "/config"
}
