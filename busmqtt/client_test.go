package busmqtt

import (
	"crypto/tls"
	"strings"
	"testing"
	"time"
)

func TestNewGeneratesClientID(t *testing.T) {
	c := New("tcp://localhost:1883")
	if !strings.HasPrefix(c.opts.clientID, "awox-bridge-") {
		t.Errorf("clientID = %q, want awox-bridge- prefix", c.opts.clientID)
	}

	c2 := New("tcp://localhost:1883")
	if c.opts.clientID == c2.opts.clientID {
		t.Error("two clients generated the same client ID")
	}
}

func TestOptions(t *testing.T) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	c := New("ssl://broker:8883",
		WithClientID("fixed"),
		WithAuth("user", "pass"),
		WithTLSConfig(tlsCfg),
		WithQoS(1),
		WithReconnect(false),
		WithWill("awox/connected", "offline"),
		WithConnectTimeout(5*time.Second),
		WithMaxConnectWait(time.Minute),
	)

	if c.opts.clientID != "fixed" {
		t.Errorf("clientID = %q, want fixed", c.opts.clientID)
	}
	if c.opts.username != "user" || c.opts.password != "pass" {
		t.Errorf("auth = %q/%q", c.opts.username, c.opts.password)
	}
	if c.opts.tlsConfig != tlsCfg {
		t.Error("tlsConfig not applied")
	}
	if c.opts.qos != 1 {
		t.Errorf("qos = %d, want 1", c.opts.qos)
	}
	if c.opts.reconnect {
		t.Error("reconnect should be disabled")
	}
	if c.opts.willTopic != "awox/connected" || c.opts.willPayload != "offline" {
		t.Errorf("will = %q/%q", c.opts.willTopic, c.opts.willPayload)
	}
	if c.opts.connectTimeout != 5*time.Second {
		t.Errorf("connectTimeout = %v", c.opts.connectTimeout)
	}
	if c.opts.maxConnectWait != time.Minute {
		t.Errorf("maxConnectWait = %v", c.opts.maxConnectWait)
	}
}

func TestPublishBeforeConnect(t *testing.T) {
	c := New("tcp://localhost:1883")
	if err := c.Publish("topic", []byte("x"), false); err == nil {
		t.Error("Publish before Connect should fail")
	}
}

func TestSubscribeBeforeConnectIsRemembered(t *testing.T) {
	c := New("tcp://localhost:1883")
	if err := c.Subscribe("topic", func(string, []byte) {}); err == nil {
		t.Error("Subscribe before Connect should return an error")
	}
	// The handler is still recorded so onConnect replays it once the
	// connection comes up.
	c.mu.Lock()
	_, ok := c.subscriptions["topic"]
	c.mu.Unlock()
	if !ok {
		t.Error("subscription not recorded")
	}
}
