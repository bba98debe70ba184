// awox-bridge connects an AwoX/EGLO BLE lighting mesh to an MQTT
// home-automation bus.
//
// Usage:
//
//	awox-bridge -broker tcp://192.168.1.10:1883 -mesh-name MyMesh -mesh-password secret [options]
//
// Options:
//
//	-broker string           MQTT broker URL (env AWOX_BROKER)
//	-mqtt-user string        MQTT username (env AWOX_MQTT_USER)
//	-mqtt-password string    MQTT password (env AWOX_MQTT_PASSWORD)
//	-mesh-name string        Mesh name (env AWOX_MESH_NAME)
//	-mesh-password string    Mesh password (env AWOX_MESH_PASSWORD)
//	-topic-prefix string     Bus topic prefix (default "awox")
//	-discovery-prefix string Discovery topic prefix (default "homeassistant")
//	-address-prefix string   Vendor MAC prefix filter (default "A4:C1")
//	-min-rssi int            Minimum candidate RSSI (default -90)
//	-slots int               Concurrent mesh sessions (default 2)
//	-host-name string        Controller name used in discovery documents
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/awox-mesh/awox-bridge/bleadapter"
	"github.com/awox-mesh/awox-bridge/bridge"
	"github.com/awox-mesh/awox-bridge/bus"
	"github.com/awox-mesh/awox-bridge/busmqtt"
	"github.com/awox-mesh/awox-bridge/hostapi"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	var (
		broker          = flag.String("broker", envOr("AWOX_BROKER", "tcp://localhost:1883"), "MQTT broker URL")
		mqttUser        = flag.String("mqtt-user", envOr("AWOX_MQTT_USER", ""), "MQTT username")
		mqttPassword    = flag.String("mqtt-password", envOr("AWOX_MQTT_PASSWORD", ""), "MQTT password")
		meshName        = flag.String("mesh-name", envOr("AWOX_MESH_NAME", ""), "mesh name")
		meshPassword    = flag.String("mesh-password", envOr("AWOX_MESH_PASSWORD", ""), "mesh password")
		topicPrefix     = flag.String("topic-prefix", envOr("AWOX_TOPIC_PREFIX", ""), "bus topic prefix")
		discoveryPrefix = flag.String("discovery-prefix", envOr("AWOX_DISCOVERY_PREFIX", ""), "discovery topic prefix")
		addressPrefix   = flag.String("address-prefix", envOr("AWOX_ADDRESS_PREFIX", ""), "vendor MAC prefix filter")
		minRSSI         = flag.Int("min-rssi", bridge.DefaultMinRSSI, "minimum candidate RSSI")
		slots           = flag.Int("slots", bridge.DefaultSlots, "concurrent mesh sessions")
		hostName        = flag.String("host-name", "awox-bridge", "controller name used in discovery documents")
	)
	flag.Parse()

	if *meshName == "" || *meshPassword == "" {
		fmt.Fprintln(os.Stderr, "awox-bridge: -mesh-name and -mesh-password are required")
		flag.Usage()
		os.Exit(2)
	}

	logger := hostapi.NewStdLogger(log.Default())

	if err := run(*broker, *mqttUser, *mqttPassword, bridge.Config{
		MeshName:        *meshName,
		MeshPassword:    *meshPassword,
		TopicPrefix:     *topicPrefix,
		DiscoveryPrefix: *discoveryPrefix,
		AddressPrefix:   *addressPrefix,
		MinRSSI:         *minRSSI,
		Slots:           *slots,
		Host:            hostapi.HostInfo{Name: *hostName},
	}, logger); err != nil {
		logger.Errorf("awox-bridge: %v", err)
		os.Exit(1)
	}
}

func run(broker, mqttUser, mqttPassword string, cfg bridge.Config, logger hostapi.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ble, err := bleadapter.New()
	if err != nil {
		return err
	}

	topics := bus.NewTopics(cfg.TopicPrefix, cfg.DiscoveryPrefix)
	mqttOpts := []busmqtt.Option{
		busmqtt.WithWill(topics.Connected(), bus.PayloadOffline),
	}
	if mqttUser != "" {
		mqttOpts = append(mqttOpts, busmqtt.WithAuth(mqttUser, mqttPassword))
	}
	busClient := busmqtt.New(broker, mqttOpts...)
	if err := busClient.Connect(ctx); err != nil {
		return err
	}
	defer busClient.Close()

	b, err := bridge.New(cfg,
		bridge.WithLogger(logger),
		bridge.WithScanner(ble),
		bridge.WithTransport(ble),
		bridge.WithBus(busClient),
	)
	if err != nil {
		return err
	}

	logger.Infof("awox-bridge: connected to %s, bridging mesh %q", broker, cfg.MeshName)
	return b.Run(ctx)
}
