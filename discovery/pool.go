package discovery

import (
	"sync"
	"time"

	"github.com/google/btree"
)

// RSSIUnavailable is the sentinel RSSI value a stale candidate decays to,
// low enough that the scheduler's min-RSSI filter rejects it without a
// separate staleness check.
const RSSIUnavailable = -9999

// Candidate is one mesh peripheral currently or formerly visible on the
// air, ranked by signal strength: unique by address, long-lived once
// observed, its RSSI decaying to RSSIUnavailable instead of the record
// being removed when advertisements stop.
type Candidate struct {
	Address   string
	RawAddr   [6]byte
	RSSI      int
	SeenAt    time.Time
	Connected bool
	MeshID    uint16 // 0 until cross-linked to a known mesh id
}

// candidateLess orders candidates by descending RSSI, breaking ties by
// address so the ordering is stable across re-insertions with the same
// signal strength.
func candidateLess(a, b *Candidate) bool {
	if a.RSSI != b.RSSI {
		return a.RSSI > b.RSSI
	}
	return a.Address < b.Address
}

// DefaultStaleAfter is how long a candidate may go unobserved before its
// RSSI decays to RSSIUnavailable.
const DefaultStaleAfter = 20 * time.Second

// Pool is the ranked candidate pool the scheduler draws connection
// targets from: every peripheral ever seen, kept sorted by descending
// RSSI, with stale entries decayed (not deleted) by age.
type Pool struct {
	mu         sync.Mutex
	tree       *btree.BTreeG[*Candidate]
	byAddr     map[string]*Candidate
	staleAfter time.Duration
}

// NewPool creates an empty candidate pool using DefaultStaleAfter.
func NewPool() *Pool {
	return &Pool{
		tree:       btree.NewG(32, candidateLess),
		byAddr:     make(map[string]*Candidate),
		staleAfter: DefaultStaleAfter,
	}
}

// reinsert re-keys c in the tree after mutate changes a field that
// candidateLess orders on (RSSI or Address). Callers must hold p.mu.
func (p *Pool) reinsert(c *Candidate, mutate func(*Candidate)) {
	p.tree.Delete(c)
	mutate(c)
	p.tree.ReplaceOrInsert(c)
}

// Observe records a fresh advertisement, updating RSSI/SeenAt for an
// already-known address or inserting a new candidate. Every upsert also
// triggers a staleness sweep of the whole pool (the
// btree ordering keeps the pool "sorted" continuously, so no separate
// sort step is needed).
func (p *Pool) Observe(adv Advertisement) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.byAddr[adv.Address]; ok {
		p.reinsert(old, func(c *Candidate) {
			c.RSSI = adv.RSSI
			c.SeenAt = adv.SeenAt
			c.RawAddr = adv.RawAddr
		})
	} else {
		c := &Candidate{
			Address: adv.Address,
			RawAddr: adv.RawAddr,
			RSSI:    adv.RSSI,
			SeenAt:  adv.SeenAt,
		}
		p.byAddr[adv.Address] = c
		p.tree.ReplaceOrInsert(c)
	}

	p.sweepStaleLocked(adv.SeenAt)
}

// sweepStaleLocked is SweepStale's body, for callers already holding p.mu.
func (p *Pool) sweepStaleLocked(now time.Time) []string {
	var decayed []string
	for addr, c := range p.byAddr {
		if c.RSSI == RSSIUnavailable {
			continue
		}
		if now.Sub(c.SeenAt) > p.staleAfter {
			p.reinsert(c, func(c *Candidate) { c.RSSI = RSSIUnavailable })
			decayed = append(decayed, addr)
		}
	}
	return decayed
}

// Remove drops a candidate from the pool entirely. Not used by the
// normal scan/stale lifecycle (pool entries persist for the run) but kept
// for hosts that want to forget a peripheral explicitly, e.g. after an
// allow-list change.
func (p *Pool) Remove(address string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.byAddr[address]; ok {
		p.tree.Delete(old)
		delete(p.byAddr, address)
	}
}

// SetConnected marks whether a candidate's peripheral currently owns a
// GATT session, so the scheduler's "connected == false" selection filter
// can see it. Reports whether the address was known.
func (p *Pool) SetConnected(address string, connected bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.byAddr[address]
	if !ok {
		return false
	}
	c.Connected = connected
	return true
}

// SetMeshID cross-links a candidate to the mesh id learned for it (by MAC)
// from the device table, so candidate selection can tell "never seen in
// any live session" apart from "known, but not reachable right now".
func (p *Pool) SetMeshID(address string, meshID uint16) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.byAddr[address]
	if !ok {
		return false
	}
	c.MeshID = meshID
	return true
}

// Get returns a copy of the candidate for address, if known.
func (p *Pool) Get(address string) (*Candidate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.byAddr[address]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

// Best returns up to n candidates, highest RSSI first. n <= 0 returns
// every candidate.
func (p *Pool) Best(n int) []*Candidate {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*Candidate, 0)
	p.tree.Ascend(func(c *Candidate) bool {
		cp := *c
		out = append(out, &cp)
		return n <= 0 || len(out) < n
	})
	return out
}

// Len returns the number of candidates currently in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byAddr)
}

// SweepStale decays the RSSI of every candidate not seen within
// staleAfter of now to RSSIUnavailable, leaving the record itself in the
// pool. Returns the addresses decayed by this sweep; a candidate already
// at the sentinel is not reported again.
func (p *Pool) SweepStale(now time.Time, staleAfter time.Duration) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.staleAfter
	p.staleAfter = staleAfter
	defer func() { p.staleAfter = prev }()
	return p.sweepStaleLocked(now)
}
