package discovery

import (
	"testing"
	"time"
)

func advAt(addr string, rssi int, t time.Time) Advertisement {
	return Advertisement{Address: addr, RSSI: rssi, SeenAt: t}
}

func TestPoolBestOrdersByDescendingRSSI(t *testing.T) {
	p := NewPool()
	now := time.Unix(1000, 0)
	p.Observe(advAt("aa", -80, now))
	p.Observe(advAt("bb", -40, now))
	p.Observe(advAt("cc", -60, now))

	best := p.Best(3)
	if len(best) != 3 {
		t.Fatalf("Best(3) returned %d candidates", len(best))
	}
	want := []string{"bb", "cc", "aa"}
	for i, addr := range want {
		if best[i].Address != addr {
			t.Fatalf("Best()[%d].Address = %q, want %q", i, best[i].Address, addr)
		}
	}
}

func TestPoolBestBreaksTiesByAddress(t *testing.T) {
	p := NewPool()
	now := time.Unix(1000, 0)
	p.Observe(advAt("zz", -50, now))
	p.Observe(advAt("aa", -50, now))

	best := p.Best(2)
	if best[0].Address != "aa" || best[1].Address != "zz" {
		t.Fatalf("tie-break order = %v, want [aa zz]", []string{best[0].Address, best[1].Address})
	}
}

func TestPoolObserveUpdatesExistingCandidate(t *testing.T) {
	p := NewPool()
	now := time.Unix(1000, 0)
	p.Observe(advAt("aa", -80, now))
	p.Observe(advAt("aa", -20, now.Add(time.Second)))

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after re-observing the same address", p.Len())
	}
	best := p.Best(1)
	if best[0].RSSI != -20 {
		t.Fatalf("RSSI after update = %d, want -20", best[0].RSSI)
	}
}

func TestPoolRemove(t *testing.T) {
	p := NewPool()
	now := time.Unix(1000, 0)
	p.Observe(advAt("aa", -50, now))
	p.Remove("aa")
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after Remove", p.Len())
	}
}

func TestPoolSweepStaleDecaysRSSIButKeepsRecord(t *testing.T) {
	p := NewPool()
	now := time.Unix(1000, 0)
	p.Observe(advAt("fresh", -50, now))
	p.Observe(advAt("stale", -50, now.Add(-30*time.Second)))

	decayed := p.SweepStale(now, 20*time.Second)
	if len(decayed) != 1 || decayed[0] != "stale" {
		t.Fatalf("SweepStale decayed %v, want [stale]", decayed)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 — stale entries persist, they don't get removed", p.Len())
	}
	c, ok := p.Get("stale")
	if !ok || c.RSSI != RSSIUnavailable {
		t.Fatalf("stale candidate RSSI = %v, want %d", c, RSSIUnavailable)
	}

	again := p.SweepStale(now, 20*time.Second)
	if len(again) != 0 {
		t.Fatalf("re-sweeping an already-decayed candidate reported %v, want none", again)
	}
}

func TestPoolSetConnectedAndMeshID(t *testing.T) {
	p := NewPool()
	now := time.Unix(1000, 0)
	p.Observe(advAt("aa", -50, now))

	if !p.SetConnected("aa", true) {
		t.Fatalf("SetConnected on known address should report true")
	}
	if p.SetConnected("missing", true) {
		t.Fatalf("SetConnected on unknown address should report false")
	}
	if !p.SetMeshID("aa", 7) {
		t.Fatalf("SetMeshID on known address should report true")
	}

	c, ok := p.Get("aa")
	if !ok || !c.Connected || c.MeshID != 7 {
		t.Fatalf("Get(aa) = %+v, want Connected=true MeshID=7", c)
	}
}
