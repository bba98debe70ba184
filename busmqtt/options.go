package busmqtt

import (
	"crypto/tls"
	"time"
)

// Option is a function that configures the client.
type Option func(*options)

// options holds the client configuration.
type options struct {
	clientID       string
	username       string
	password       string
	tlsConfig      *tls.Config
	willTopic      string
	willPayload    string
	qos            byte
	reconnect      bool
	connectTimeout time.Duration
	maxConnectWait time.Duration
}

func defaultOptions() *options {
	return &options{
		qos:            0,
		reconnect:      true,
		connectTimeout: 30 * time.Second,
		maxConnectWait: 2 * time.Minute,
	}
}

func applyOptions(o *options, opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithClientID sets the MQTT client ID. A random one is generated when
// unset.
func WithClientID(id string) Option {
	return func(o *options) { o.clientID = id }
}

// WithAuth sets username/password authentication.
func WithAuth(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithTLSConfig sets a custom TLS configuration for the broker
// connection.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) { o.tlsConfig = cfg }
}

// WithQoS sets the QoS level used for publishes and subscriptions.
func WithQoS(qos byte) Option {
	return func(o *options) { o.qos = qos }
}

// WithReconnect enables or disables automatic reconnection (default on).
func WithReconnect(enabled bool) Option {
	return func(o *options) { o.reconnect = enabled }
}

// WithWill sets a last-will message the broker publishes (retained) if
// the client drops without disconnecting cleanly.
func WithWill(topic, payload string) Option {
	return func(o *options) {
		o.willTopic = topic
		o.willPayload = payload
	}
}

// WithConnectTimeout sets the per-attempt connect timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) { o.connectTimeout = d }
}

// WithMaxConnectWait bounds the total time Connect retries before giving
// up.
func WithMaxConnectWait(d time.Duration) Option {
	return func(o *options) { o.maxConnectWait = d }
}
