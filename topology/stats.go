// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// stats.go - rank-3 aggregation: per-router-pair counters, per-group-pair
// totals and the router population report.
//
// Determinism: every slice is sorted by key (address order), never by map
// iteration order.

package topology

import (
	"golang.org/x/exp/slices"
)

// PairStat is the number of rank-3 connections between one router pair.
type PairStat struct {
	Key         GroupPairKey `json:"key" yaml:"key"`
	Connections int          `json:"connections" yaml:"connections"`
}

// GroupPairTotal aggregates rank-3 connectivity between two groups.
type GroupPairTotal struct {
	GroupA      int `json:"group_a" yaml:"group_a"`
	GroupB      int `json:"group_b" yaml:"group_b"`
	Connections int `json:"connections" yaml:"connections"`
	Links       int `json:"links" yaml:"links"`
}

// PopulationEntry is one line of the router population report: a router
// pair, its rank-3 connection count and the final usage of both routers.
type PopulationEntry struct {
	Key         GroupPairKey `json:"key" yaml:"key"`
	Connections int          `json:"connections" yaml:"connections"`
	UsedA       int          `json:"used_a" yaml:"used_a"`
	UsedB       int          `json:"used_b" yaml:"used_b"`
}

// recordPair bumps the counter of the canonical key of (a, b).
func (t *Topology) recordPair(a, b RouterAddress) {
	if t.pairs == nil {
		return
	}
	t.pairs[NewGroupPairKey(a, b)]++
}

// PairStats returns the rank-3 counters sorted by key, or nil when the
// topology was built WithPairStats(false).
// Complexity: O(P log P) for P distinct pairs.
func (t *Topology) PairStats() []PairStat {
	if t.pairs == nil {
		return nil
	}
	out := make([]PairStat, 0, len(t.pairs))
	for k, n := range t.pairs {
		out = append(out, PairStat{Key: k, Connections: n})
	}
	slices.SortFunc(out, func(x, y PairStat) int { return x.Key.Compare(y.Key) })

	return out
}

// GroupPairTotals sums rank-3 connections per (GroupA < GroupB) pair. It is
// derived from the connection list and is available regardless of
// WithPairStats.
func (t *Topology) GroupPairTotals() []GroupPairTotal {
	type gp struct{ a, b int }
	acc := make(map[gp]*GroupPairTotal)
	for _, c := range t.conns {
		if c.Rank != RankInterGroup {
			continue
		}
		k := gp{c.A.Group, c.B.Group}
		if k.b < k.a {
			k.a, k.b = k.b, k.a
		}
		tot, ok := acc[k]
		if !ok {
			tot = &GroupPairTotal{GroupA: k.a, GroupB: k.b}
			acc[k] = tot
		}
		tot.Connections++
		tot.Links += c.Links
	}

	out := make([]GroupPairTotal, 0, len(acc))
	for _, tot := range acc {
		out = append(out, *tot)
	}
	slices.SortFunc(out, func(x, y GroupPairTotal) int {
		if x.GroupA != y.GroupA {
			return cmpInt(x.GroupA, y.GroupA)
		}
		return cmpInt(x.GroupB, y.GroupB)
	})

	return out
}

// Population joins PairStats with the final ledger; nil when pair
// statistics are off.
func (t *Topology) Population() []PopulationEntry {
	stats := t.PairStats()
	if stats == nil {
		return nil
	}
	out := make([]PopulationEntry, len(stats))
	for i, s := range stats {
		out[i] = PopulationEntry{
			Key:         s.Key,
			Connections: s.Connections,
			UsedA:       t.ledger.UsageOf(s.Key.A),
			UsedB:       t.ledger.UsageOf(s.Key.B),
		}
	}
	return out
}
