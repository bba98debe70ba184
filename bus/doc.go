// Package bus defines the contract between the bridge and its external
// message broker: the narrow publish/subscribe interface the bridge
// consumes, the topic layout, and the JSON grammar for light state,
// inbound commands, discovery documents, and the connection summary.
//
// The package is transport-agnostic; busmqtt provides the default
// implementation backed by paho.mqtt.golang, and tests use an in-memory
// fake.
package bus
