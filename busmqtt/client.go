package busmqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/awox-mesh/awox-bridge/bus"
)

// Client is a bus.Bus backed by an MQTT broker.
type Client struct {
	broker string
	opts   *options

	client mqtt.Client

	mu            sync.Mutex
	subscriptions map[string]bus.MessageHandler
	closed        bool
}

var _ bus.Bus = (*Client)(nil)

// New creates a Client for the given broker URL (e.g.
// "tcp://192.168.1.10:1883"). Connect must be called before any publish
// or subscribe.
func New(broker string, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)

	if options.clientID == "" {
		options.clientID = "awox-bridge-" + uuid.NewString()
	}

	return &Client{
		broker:        broker,
		opts:          options,
		subscriptions: make(map[string]bus.MessageHandler),
	}
}

// Connect establishes the broker connection, retrying with exponential
// backoff until it succeeds, ctx is canceled, or the configured maximum
// wait elapses.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("busmqtt: client is closed")
	}
	if c.client == nil {
		mqttOpts := mqtt.NewClientOptions().
			AddBroker(c.broker).
			SetClientID(c.opts.clientID).
			SetAutoReconnect(c.opts.reconnect).
			SetConnectTimeout(c.opts.connectTimeout).
			SetOnConnectHandler(c.onConnect)

		if c.opts.username != "" {
			mqttOpts.SetUsername(c.opts.username)
			mqttOpts.SetPassword(c.opts.password)
		}
		if c.opts.tlsConfig != nil {
			mqttOpts.SetTLSConfig(c.opts.tlsConfig)
		}
		if c.opts.willTopic != "" {
			mqttOpts.SetWill(c.opts.willTopic, c.opts.willPayload, c.opts.qos, true)
		}

		c.client = mqtt.NewClient(mqttOpts)
	}
	client := c.client
	c.mu.Unlock()

	attempt := func() error {
		token := client.Connect()
		if !token.WaitTimeout(c.opts.connectTimeout) {
			return fmt.Errorf("busmqtt: connect timed out")
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("busmqtt: connect: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.opts.maxConnectWait
	return backoff.Retry(attempt, backoff.WithContext(policy, ctx))
}

// onConnect re-establishes every active subscription after an initial or
// re-connect; paho does not replay subscriptions across reconnects unless
// session persistence is on.
func (c *Client) onConnect(client mqtt.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for topic, handler := range c.subscriptions {
		client.Subscribe(topic, c.opts.qos, wrapHandler(handler))
	}
}

func wrapHandler(handler bus.MessageHandler) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	}
}

// Publish sends payload on topic.
func (c *Client) Publish(topic string, payload []byte, retained bool) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return fmt.Errorf("busmqtt: publish before Connect")
	}

	token := client.Publish(topic, c.opts.qos, retained, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("busmqtt: publishing to %s: %w", topic, err)
	}
	return nil
}

// Subscribe registers handler for topic, surviving reconnects.
func (c *Client) Subscribe(topic string, handler bus.MessageHandler) error {
	c.mu.Lock()
	c.subscriptions[topic] = handler
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return fmt.Errorf("busmqtt: subscribe before Connect")
	}

	token := client.Subscribe(topic, c.opts.qos, wrapHandler(handler))
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("busmqtt: subscribing to %s: %w", topic, err)
	}
	return nil
}

// Unsubscribe removes an active subscription.
func (c *Client) Unsubscribe(topic string) error {
	c.mu.Lock()
	delete(c.subscriptions, topic)
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return nil
	}

	token := client.Unsubscribe(topic)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("busmqtt: unsubscribing from %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker. The client cannot be reused.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	client := c.client
	c.mu.Unlock()
	if client != nil && client.IsConnected() {
		client.Disconnect(250)
	}
}
