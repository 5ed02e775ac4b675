// SPDX-License-Identifier: MIT
// Package: dragonfly/analysis
//
// report.go - one-shot structural summary of a topology.

package analysis

import (
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/dragonfly/topology"
)

// RankSummary describes one rank: how many connections and links it holds
// and the spread of ports it consumes per router.
type RankSummary struct {
	Rank        topology.Rank `json:"rank" yaml:"rank"`
	Connections int           `json:"connections" yaml:"connections"`
	Links       int           `json:"links" yaml:"links"`
	MinPorts    int           `json:"min_ports" yaml:"min_ports"`
	MaxPorts    int           `json:"max_ports" yaml:"max_ports"`
}

// Report is the structural summary of a topology.
type Report struct {
	Routers    int                       `json:"routers" yaml:"routers"`
	PortBudget int                       `json:"port_budget" yaml:"port_budget"`
	MinUsed    int                       `json:"min_used" yaml:"min_used"`
	MaxUsed    int                       `json:"max_used" yaml:"max_used"`
	FreePorts  int                       `json:"free_ports" yaml:"free_ports"`
	Ranks      []RankSummary             `json:"ranks" yaml:"ranks"`
	GroupPairs []topology.GroupPairTotal `json:"group_pairs" yaml:"group_pairs"`

	// Components is the number of connected components of the router graph;
	// a healthy dragonfly has exactly one.
	Components int `json:"components" yaml:"components"`

	// Diameter is the largest minimal hop count between any two routers,
	// or -1 when the graph is disconnected. Zero when skipped.
	Diameter int `json:"diameter" yaml:"diameter"`

	Saturation *topology.Saturation `json:"saturation,omitempty" yaml:"saturation,omitempty"`
}

// Connected reports whether every router can reach every other one.
func (r Report) Connected() bool { return r.Components <= 1 }

// Option tunes Analyze.
type Option func(*options)

type options struct {
	diameter bool
}

// WithDiameter enables or disables the all-pairs diameter computation
// (enabled by default). It costs one shortest-path tree per router.
func WithDiameter(enabled bool) Option {
	return func(o *options) { o.diameter = enabled }
}

// Analyze summarizes t.
//
// Complexity: O(V + E) for the summaries and components, plus
// O(V·(V+E)·log V) for the diameter unless disabled.
func Analyze(t *topology.Topology, opts ...Option) Report {
	o := options{diameter: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := t.Config()
	ledger := t.Ledger()
	minUsed, maxUsed := ledger.Extremes()

	rep := Report{
		Routers:    cfg.Routers(),
		PortBudget: cfg.PortBudget,
		MinUsed:    minUsed,
		MaxUsed:    maxUsed,
		FreePorts:  cfg.Routers()*cfg.PortBudget - ledger.Total(),
		Ranks:      rankSummaries(t),
		GroupPairs: t.GroupPairTotals(),
	}
	if sat, ok := t.Saturation(); ok {
		rep.Saturation = &sat
	}

	r := NewRouter(t)
	rep.Components = len(topo.ConnectedComponents(r.g))

	if o.diameter {
		rep.Diameter = diameter(r)
	}

	return rep
}

func diameter(r *Router) int {
	d := 0
	nodes := r.g.Nodes()
	for nodes.Next() {
		ecc, all := r.eccentricity(nodes.Node().ID())
		if !all {
			return -1
		}
		if ecc > d {
			d = ecc
		}
	}
	return d
}

// rankSummaries computes, per rank, the connection and link totals and the
// min/max ports a router spends on that rank.
func rankSummaries(t *topology.Topology) []RankSummary {
	cfg := t.Config()
	ix := NewIndexer(cfg)
	out := make([]RankSummary, 0, len(topology.Ranks))

	for _, rank := range topology.Ranks {
		ports := make([]int, cfg.Routers())
		s := RankSummary{Rank: rank}
		for _, c := range t.ConnectionsOfRank(rank) {
			s.Connections++
			s.Links += c.Links
			ports[ix.ID(c.A)] += c.Links
			ports[ix.ID(c.B)] += c.Links
		}
		if len(ports) > 0 {
			s.MinPorts, s.MaxPorts = ports[0], ports[0]
			for _, p := range ports[1:] {
				if p < s.MinPorts {
					s.MinPorts = p
				}
				if p > s.MaxPorts {
					s.MaxPorts = p
				}
			}
		}
		out = append(out, s)
	}

	return out
}
