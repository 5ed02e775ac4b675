// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// topology.go - the Topology aggregate: ordered connections, the final
// ledger and optional rank-3 pair statistics.
//
// Concurrency: a Topology is mutated only by the stages of the build that
// created it. Once Build returns it is read-only and every accessor returns
// a copy, so it may be shared between goroutines.

package topology

import (
	"github.com/go-logr/logr"
)

// Topology is the output of a build.
type Topology struct {
	cfg    Config
	ledger *PortLedger
	conns  []Connection
	pairs  map[GroupPairKey]int // nil when pair statistics are off
	log    logr.Logger

	saturation *Saturation
	sweeps     int
}

// Saturation records the event that ended rank-3 generation: the group
// pair being serviced and the first of its two picked routers that could
// not take LPC(3) more ports.
type Saturation struct {
	GroupA int           `json:"group_a" yaml:"group_a"`
	GroupB int           `json:"group_b" yaml:"group_b"`
	Router RouterAddress `json:"router" yaml:"router"`
	Used   int           `json:"used" yaml:"used"`
	Sweep  int           `json:"sweep" yaml:"sweep"`
}

func newTopology(cfg Config, bc buildConfig) *Topology {
	t := &Topology{
		cfg:    cfg,
		ledger: NewPortLedger(cfg),
		log:    bc.log,
	}
	if bc.pairStats {
		t.pairs = make(map[GroupPairKey]int)
	}
	return t
}

// connect commits one logical connection of rank r between a and b: both
// ends are checked before either is charged, so a refusal leaves the
// ledger untouched.
func (t *Topology) connect(a, b RouterAddress, r Rank) error {
	n := t.cfg.LPC(r)
	if _, err := t.ledger.check(a, n); err != nil {
		return err
	}
	if _, err := t.ledger.check(b, n); err != nil {
		return err
	}
	// Both checks passed; Allocate cannot fail now.
	_ = t.ledger.Allocate(a, n)
	_ = t.ledger.Allocate(b, n)

	t.conns = append(t.conns, Connection{A: a, B: b, Rank: r, Links: n})
	return nil
}

// Config returns the configuration the topology was built from.
func (t *Topology) Config() Config { return t.cfg }

// Connections returns every logical connection in generation order
// (rank 1, then rank 2, then rank 3).
func (t *Topology) Connections() []Connection {
	out := make([]Connection, len(t.conns))
	copy(out, t.conns)
	return out
}

// ConnectionsOfRank returns the connections of rank r in generation order.
func (t *Topology) ConnectionsOfRank(r Rank) []Connection {
	var out []Connection
	for _, c := range t.conns {
		if c.Rank == r {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of logical connections of rank r.
func (t *Topology) Count(r Rank) int {
	n := 0
	for _, c := range t.conns {
		if c.Rank == r {
			n++
		}
	}
	return n
}

// LinkCount returns the number of physical links of rank r.
func (t *Topology) LinkCount(r Rank) int {
	n := 0
	for _, c := range t.conns {
		if c.Rank == r {
			n += c.Links
		}
	}
	return n
}

// Links expands every connection into its physical links, preserving
// generation order; a Connection with Links=k yields k consecutive entries.
func (t *Topology) Links() []Link {
	total := 0
	for _, c := range t.conns {
		total += c.Links
	}
	out := make([]Link, 0, total)
	for _, c := range t.conns {
		for i := 0; i < c.Links; i++ {
			out = append(out, Link{A: c.A, B: c.B, Rank: c.Rank})
		}
	}
	return out
}

// Usage returns the ports committed by router a.
func (t *Topology) Usage(a RouterAddress) int { return t.ledger.UsageOf(a) }

// Ledger returns a copy of the port ledger.
func (t *Topology) Ledger() *PortLedger { return t.ledger.Clone() }

// Saturation reports what ended rank-3 generation. ok is false when rank 3
// never ran into the budget (fewer than two groups, or rank 3 not staged).
func (t *Topology) Saturation() (s Saturation, ok bool) {
	if t.saturation == nil {
		return Saturation{}, false
	}
	return *t.saturation, true
}

// Sweeps is the number of passes rank 3 made over all group pairs.
func (t *Topology) Sweeps() int { return t.sweeps }
