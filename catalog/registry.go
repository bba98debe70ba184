package catalog

import (
	"sync"

	"github.com/awox-mesh/awox-bridge/meshmodel"
)

// Entry is the catalog record for one product id.
type Entry struct {
	ProductID    string
	Name         string
	Model        string
	Manufacturer string
	Icon         string
	Capabilities meshmodel.Capabilities
}

// Display converts an Entry into the meshmodel.DisplayInfo cached on a
// resolved device or group.
func (e Entry) Display() *meshmodel.DisplayInfo {
	return &meshmodel.DisplayInfo{
		ProductID:    e.ProductID,
		Name:         e.Name,
		Model:        e.Model,
		Manufacturer: e.Manufacturer,
		Icon:         e.Icon,
		Capabilities: e.Capabilities,
	}
}

// CatalogResolver resolves a product id to its display/capability entry.
// The controller depends on this interface, never on the concrete
// registry, so a host can supply its own catalog (e.g. loaded from a
// config file) instead of the built-in StaticResolver.
type CatalogResolver interface {
	Resolve(productID string) Entry
}

// unknownIcon and unknownManufacturer match what the firmware component
// falls back to for a product id it has never seen.
const (
	unknownManufacturer = "AwoX"
	unknownIcon         = "mdi:lightbulb-help-outline"
)

// StaticResolver is a package-level, concurrency-safe registry of known
// product ids, with a graceful fallback for anything unregistered.
type StaticResolver struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStaticResolver creates an empty resolver. Use Register to populate it,
// or DefaultResolver for the built-in AwoX/EGLO product table.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{entries: make(map[string]Entry)}
}

// Register adds or replaces a catalog entry.
func (r *StaticResolver) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ProductID] = e
}

// Resolve returns the registered entry for productID, or a generic
// "unknown device" entry with FeatureLightMode+FeatureWhiteBrightness so
// the bridge can still publish a minimally useful state.
func (r *StaticResolver) Resolve(productID string) Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[productID]; ok {
		return e
	}
	return Entry{
		ProductID:    productID,
		Name:         "Unknown device type",
		Model:        "Unknown device, product id: " + productID,
		Manufacturer: unknownManufacturer,
		Icon:         unknownIcon,
		Capabilities: meshmodel.LightWhite(),
	}
}

// Exists reports whether productID has a registered entry.
func (r *StaticResolver) Exists(productID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[productID]
	return ok
}

// Count returns the number of registered entries.
func (r *StaticResolver) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

var (
	defaultOnce     sync.Once
	defaultResolver *StaticResolver
)

// DefaultResolver returns the package-wide resolver pre-populated with
// registerDefaultDevices. Most hosts can use this directly; tests should
// build their own with NewStaticResolver to avoid cross-test leakage.
func DefaultResolver() *StaticResolver {
	defaultOnce.Do(func() {
		defaultResolver = NewStaticResolver()
		registerDefaultDevices(defaultResolver)
	})
	return defaultResolver
}
