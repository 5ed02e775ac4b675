// SPDX-License-Identifier: MIT
// Package: dragonfly/analysis
//
// graph.go - conversion of a Topology into a gonum graph.
//
// Node IDs are the ledger's flat router index (group·C + chassis)·S + slot,
// so node order equals address order and conversions are O(1) both ways.

package analysis

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/dragonfly/topology"
)

// Indexer maps router addresses of one configuration to gonum node IDs.
type Indexer struct {
	cfg topology.Config
}

// NewIndexer returns the indexer for cfg.
func NewIndexer(cfg topology.Config) Indexer { return Indexer{cfg: cfg} }

// ID returns the node ID of a.
func (ix Indexer) ID(a topology.RouterAddress) int64 {
	return int64((a.Group*ix.cfg.ChassisPerGroup+a.Chassis)*ix.cfg.SlotsPerChassis + a.Slot)
}

// Address returns the router of node ID id.
func (ix Indexer) Address(id int64) topology.RouterAddress {
	s := int64(ix.cfg.SlotsPerChassis)
	c := int64(ix.cfg.ChassisPerGroup)
	return topology.Addr(int(id/(s*c)), int((id/s)%c), int(id%s))
}

// Graph builds the router graph of t: one node per router (connected or not)
// and one edge per router pair joined by at least one connection of any
// rank in ranks (all ranks when ranks is empty).
// Complexity: O(V + E).
func Graph(t *topology.Topology, ranks ...topology.Rank) *simple.UndirectedGraph {
	cfg := t.Config()
	ix := NewIndexer(cfg)
	g := simple.NewUndirectedGraph()

	for id := 0; id < cfg.Routers(); id++ {
		g.AddNode(simple.Node(int64(id)))
	}

	keep := rankFilter(ranks)
	for _, c := range t.Connections() {
		if !keep(c.Rank) {
			continue
		}
		u, v := ix.ID(c.A), ix.ID(c.B)
		if g.HasEdgeBetween(u, v) {
			continue
		}
		g.SetEdge(g.NewEdge(g.Node(u), g.Node(v)))
	}

	return g
}

func rankFilter(ranks []topology.Rank) func(topology.Rank) bool {
	if len(ranks) == 0 {
		return func(topology.Rank) bool { return true }
	}
	set := make(map[topology.Rank]bool, len(ranks))
	for _, r := range ranks {
		set[r] = true
	}
	return func(r topology.Rank) bool { return set[r] }
}

// addresses converts a gonum node sequence back into router addresses.
func (ix Indexer) addresses(nodes []graph.Node) []topology.RouterAddress {
	out := make([]topology.RouterAddress, len(nodes))
	for i, n := range nodes {
		out[i] = ix.Address(n.ID())
	}
	return out
}
