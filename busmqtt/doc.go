// Package busmqtt implements the bus.Bus contract on top of
// paho.mqtt.golang: retained publishes, wildcard subscriptions, a
// last-will on the bridge-liveness topic, and automatic reconnection
// with resubscription.
package busmqtt
