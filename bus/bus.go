package bus

// MessageHandler receives one inbound message on a subscribed topic.
type MessageHandler func(topic string, payload []byte)

// Bus is the narrow message-broker surface the bridge consumes. busmqtt
// provides the default implementation; tests supply an in-memory fake.
type Bus interface {
	// Publish sends payload on topic. Retained messages are redelivered
	// by the broker to late subscribers.
	Publish(topic string, payload []byte, retained bool) error

	// Subscribe registers handler for every message matching topic,
	// which may contain broker wildcards ("+", "#").
	Subscribe(topic string, handler MessageHandler) error

	// Unsubscribe removes a subscription previously made with Subscribe.
	Unsubscribe(topic string) error
}

// Availability payloads.
const (
	PayloadOnline  = "online"
	PayloadOffline = "offline"
)

// Plug state payloads.
const (
	PayloadOn  = "ON"
	PayloadOff = "OFF"
)
