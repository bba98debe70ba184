package bus

import "testing"

func TestTopics(t *testing.T) {
	topics := NewTopics("awox", "homeassistant")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"connected", topics.Connected(), "awox/connected"},
		{"connection status", topics.ConnectionStatus(), "awox/connection_status"},
		{"status", topics.Status(), "awox/status"},
		{"availability", topics.Availability("5"), "awox/5/availability"},
		{"availability pattern", topics.AvailabilityPattern(), "awox/+/availability"},
		{"state", topics.State("5"), "awox/5/state"},
		{"command", topics.Command("group-3"), "awox/group-3/command"},
		{"discovery", topics.DiscoveryConfig("light", "awox-A4:C1:11:22:33:44"), "homeassistant/light/awox-A4:C1:11:22:33:44/config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNewTopicsDefaults(t *testing.T) {
	topics := NewTopics("", "")
	if topics.Prefix != DefaultPrefix {
		t.Errorf("Prefix = %q, want %q", topics.Prefix, DefaultPrefix)
	}
	if topics.DiscoveryPrefix != DefaultDiscoveryPrefix {
		t.Errorf("DiscoveryPrefix = %q, want %q", topics.DiscoveryPrefix, DefaultDiscoveryPrefix)
	}
}

func TestEntityFromAvailability(t *testing.T) {
	topics := NewTopics("awox", "")

	tests := []struct {
		topic string
		want  string
	}{
		{"awox/9/availability", "9"},
		{"awox/group-3/availability", "group-3"},
		{"awox/connected", ""},
		{"other/9/availability", ""},
		{"awox/9/state", ""},
		{"awox/a/b/availability", ""},
	}

	for _, tt := range tests {
		if got := topics.EntityFromAvailability(tt.topic); got != tt.want {
			t.Errorf("EntityFromAvailability(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}
