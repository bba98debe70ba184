// Package bridge wires the bridge's components together — scanner,
// candidate pool, scheduler, controller, and bus adapter — and runs
// them under one supervised loop until the context is canceled.
package bridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/busadapter"
	"github.com/awox-mesh/awox-bridge/catalog"
	"github.com/awox-mesh/awox-bridge/controller"
	"github.com/awox-mesh/awox-bridge/discovery"
	"github.com/awox-mesh/awox-bridge/events"
	"github.com/awox-mesh/awox-bridge/hostapi"
	"github.com/awox-mesh/awox-bridge/meshproto"
	"github.com/awox-mesh/awox-bridge/scheduler"
	"github.com/awox-mesh/awox-bridge/session"
)

// Option configures a Bridge at construction time.
type Option func(*Bridge)

// WithLogger sets the log sink; the default discards everything.
func WithLogger(log hostapi.Logger) Option {
	return func(b *Bridge) { b.log = log }
}

// WithScanner sets the BLE scanner; typically a *bleadapter.Adapter.
func WithScanner(s discovery.Scanner) Option {
	return func(b *Bridge) { b.scanner = s }
}

// WithTransport sets the GATT transport; typically the same
// *bleadapter.Adapter as the scanner.
func WithTransport(t session.BleTransport) Option {
	return func(b *Bridge) { b.transport = t }
}

// WithBus sets the message-bus client; typically a *busmqtt.Client.
func WithBus(busClient bus.Bus) Option {
	return func(b *Bridge) { b.busClient = busClient }
}

// WithCatalog overrides the built-in product catalog.
func WithCatalog(resolver catalog.CatalogResolver) Option {
	return func(b *Bridge) { b.catalogResolver = resolver }
}

// Bridge owns the full component graph for one mesh.
type Bridge struct {
	cfg    Config
	topics bus.Topics
	log    hostapi.Logger

	scanner         discovery.Scanner
	transport       session.BleTransport
	busClient       bus.Bus
	catalogResolver catalog.CatalogResolver

	pool     *discovery.Pool
	sched    *scheduler.Scheduler
	ctrl     *controller.Controller
	eventBus *events.EventBus
	adapter  *busadapter.Adapter
}

// New validates cfg, applies defaults, and assembles the component
// graph. The scanner, transport, and bus client must be supplied via
// options.
func New(cfg Config, opts ...Option) (*Bridge, error) {
	if err := cfg.withDefaults(); err != nil {
		return nil, err
	}

	b := &Bridge{
		cfg: cfg,
		log: hostapi.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.scanner == nil {
		return nil, fmt.Errorf("bridge: a scanner is required (WithScanner)")
	}
	if b.transport == nil {
		return nil, fmt.Errorf("bridge: a BLE transport is required (WithTransport)")
	}
	if b.busClient == nil {
		return nil, fmt.Errorf("bridge: a bus client is required (WithBus)")
	}
	if b.catalogResolver == nil {
		b.catalogResolver = catalog.DefaultResolver()
	}

	b.topics = bus.NewTopics(cfg.TopicPrefix, cfg.DiscoveryPrefix)
	b.pool = discovery.NewPool()
	b.eventBus = events.NewEventBus()

	combined := meshproto.CombineNamePassword(cfg.MeshName, cfg.MeshPassword)

	ctrlCfg := controller.DefaultConfig()
	ctrlCfg.AddressPrefix = cfg.AddressPrefix
	if len(cfg.AllowedMeshIDs) > 0 {
		ctrlCfg.AllowedMeshIDs = make(map[uint16]struct{}, len(cfg.AllowedMeshIDs))
		for _, id := range cfg.AllowedMeshIDs {
			ctrlCfg.AllowedMeshIDs[id] = struct{}{}
		}
	}
	if len(cfg.AllowedMACs) > 0 {
		ctrlCfg.AllowedMACs = make(map[string]struct{}, len(cfg.AllowedMACs))
		for _, mac := range cfg.AllowedMACs {
			ctrlCfg.AllowedMACs[strings.ToUpper(mac)] = struct{}{}
		}
	}

	schedCfg := scheduler.DefaultConfig()
	schedCfg.MinRSSI = cfg.MinRSSI

	// The controller and scheduler reference each other (commands route
	// down, MAC lookups route up), so the scheduler is built first with
	// a late-bound lookup.
	lookup := &lateLookup{}
	b.sched = scheduler.New(b.transport, combined, b.pool, lookup, cfg.Slots, schedCfg, time.Now())
	b.ctrl = controller.New(b.sched, b.catalogResolver, b.eventBus, ctrlCfg)
	lookup.resolver = b.ctrl

	b.adapter = busadapter.New(b.busClient, b.ctrl, b.eventBus, busadapter.Config{
		Topics: b.topics,
		Host:   cfg.Host,
	}, b.log)

	return b, nil
}

// lateLookup breaks the construction cycle between scheduler and
// controller.
type lateLookup struct {
	resolver scheduler.DeviceLookup
}

func (l *lateLookup) MeshIDForMAC(mac string) (uint16, bool) {
	if l.resolver == nil {
		return 0, false
	}
	return l.resolver.MeshIDForMAC(mac)
}

// Controller exposes the controller for hosts that want to drive the
// mesh programmatically alongside the bus.
func (b *Bridge) Controller() *controller.Controller { return b.ctrl }

// Events exposes the internal event bus for host-side observers.
func (b *Bridge) Events() *events.EventBus { return b.eventBus }

// Run starts every component and blocks until ctx is canceled or a
// component fails. On return the bus adapter has announced the bridge
// offline.
func (b *Bridge) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	b.sched.Run(ctx)

	if err := b.adapter.Start(ctx); err != nil {
		return fmt.Errorf("bridge: starting bus adapter: %w", err)
	}
	defer b.adapter.Close()

	g.Go(func() error { return b.runScanner(ctx) })
	g.Go(func() error { return b.runEventPump(ctx) })
	g.Go(func() error { return b.runTicker(ctx) })
	g.Go(func() error { return b.runStatusPublisher(ctx) })

	err := g.Wait()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// runScanner feeds vendor-prefixed advertisements into the candidate
// pool.
func (b *Bridge) runScanner(ctx context.Context) error {
	err := b.scanner.Start(ctx, func(adv discovery.Advertisement) {
		if !strings.HasPrefix(strings.ToUpper(adv.Address), b.cfg.AddressPrefix) {
			return
		}
		if len(b.cfg.AllowedMACs) > 0 && !containsFold(b.cfg.AllowedMACs, adv.Address) {
			return
		}
		b.pool.Observe(adv)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("bridge: scanner: %w", err)
	}
	return nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// runEventPump forwards every slot event into the controller.
func (b *Bridge) runEventPump(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-b.sched.Events():
			b.ctrl.ProcessSlotEvent(time.Now(), evt)
		}
	}
}

// runTicker drives the periodic housekeeping: pool staleness decay, the
// scheduler's connect pass, and the controller's re-ask and
// availability-debounce queues.
func (b *Bridge) runTicker(ctx context.Context) error {
	ticker := time.NewTicker(b.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			b.pool.SweepStale(now, discovery.DefaultStaleAfter)
			b.sched.Tick(ctx, now)
			b.ctrl.Tick(now)
		}
	}
}

// runStatusPublisher periodically publishes the per-slot connection
// summary.
func (b *Bridge) runStatusPublisher(ctx context.Context) error {
	ticker := time.NewTicker(b.cfg.StatusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			b.publishConnectionStatus(now)
		}
	}
}

func (b *Bridge) publishConnectionStatus(now time.Time) {
	status := bus.ConnectionStatus{
		Now:         now.Unix(),
		Connections: make(map[string]bus.SlotStatus),
	}

	for _, d := range b.ctrl.Devices() {
		if d.Online {
			status.OnlineDevices++
		}
	}

	for _, slot := range b.sched.Slots() {
		established := slot.Established()
		if established {
			status.ActiveConnections++
		}
		entry := bus.SlotStatus{
			Connected: established,
			MAC:       slot.PeripheralAddress(),
			MeshIDs:   slot.ReachableMeshIDs(),
		}
		entry.Devices = len(entry.MeshIDs)
		if id, ok := b.ctrl.MeshIDForMAC(entry.MAC); ok {
			entry.MeshID = id
		}
		status.Connections[fmt.Sprintf("connection_%d", slot.Index)] = entry
	}

	data, err := status.MarshalJSON()
	if err != nil {
		b.log.Errorf("bridge: encoding connection status: %v", err)
		return
	}
	if err := b.busClient.Publish(b.topics.ConnectionStatus(), data, false); err != nil {
		b.log.Warnf("bridge: publishing connection status: %v", err)
	}
}
