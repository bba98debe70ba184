package bridge

import (
	"fmt"
	"time"

	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/hostapi"
)

// Config is everything a host declares about the mesh and the bus. Only
// the mesh credentials are mandatory.
type Config struct {
	// MeshName and MeshPassword are the mesh credentials, each
	// zero-padded to 16 bytes for the pairing handshake.
	MeshName     string
	MeshPassword string

	// TopicPrefix and DiscoveryPrefix locate the bridge's topics on the
	// bus; empty values take the bus package defaults.
	TopicPrefix     string
	DiscoveryPrefix string

	// AddressPrefix filters scan results to the vendor's MAC space.
	AddressPrefix string

	// MinRSSI is the floor below which a candidate is never selected.
	MinRSSI int

	// Slots is how many concurrent mesh sessions to maintain.
	Slots int

	// AllowedMeshIDs and AllowedMACs optionally restrict which devices
	// the bridge will model; empty means allow all.
	AllowedMeshIDs []uint16
	AllowedMACs    []string

	// Host identifies the controller device in discovery documents.
	Host hostapi.HostInfo

	// TickInterval is the cadence of the scheduler/controller
	// housekeeping loop.
	TickInterval time.Duration

	// StatusInterval is how often the connection summary is published.
	StatusInterval time.Duration
}

// Defaults, applied by New for any zero field.
const (
	DefaultAddressPrefix  = "A4:C1"
	DefaultMinRSSI        = -90
	DefaultSlots          = 2
	DefaultTickInterval   = 250 * time.Millisecond
	DefaultStatusInterval = 30 * time.Second
)

func (c *Config) withDefaults() error {
	if c.MeshName == "" || c.MeshPassword == "" {
		return fmt.Errorf("bridge: mesh name and password are required")
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = bus.DefaultPrefix
	}
	if c.DiscoveryPrefix == "" {
		c.DiscoveryPrefix = bus.DefaultDiscoveryPrefix
	}
	if c.AddressPrefix == "" {
		c.AddressPrefix = DefaultAddressPrefix
	}
	if c.MinRSSI == 0 {
		c.MinRSSI = DefaultMinRSSI
	}
	if c.Slots <= 0 {
		c.Slots = DefaultSlots
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.StatusInterval <= 0 {
		c.StatusInterval = DefaultStatusInterval
	}
	return nil
}
