// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// impl_rank_three.go - rank-3 (inter-group) greedy matching.
//
// Algorithm:
//   1. Fewer than two groups: no rank-3 connections, the stage is a no-op.
//   2. A sweep visits every group pair (G,H), G<H, ascending. For each pair
//      it picks the least-used router of G and of H (FewestPorts, ties to
//      lowest chassis then slot).
//   3. If either pick cannot take LPC(3) more ports, the whole rank-3
//      generation stops at once: later pairs of the same sweep are not
//      visited even if their routers still have room (first saturation wins).
//   4. Otherwise the connection is committed and the canonical router-pair
//      counter is bumped.
//   5. Sweeps repeat until step 3 fires.
//
// Termination: every commit raises two usage counts by LPC(3) ≥ 1 and every
// count is capped by the budget, so the number of commits is finite and a
// sweep without saturation always commits at least once.
//
// Exhaustion is the designed end of this stage, never an error.

package topology

import "fmt"

// RankThree returns the Stage running the budget-constrained inter-group matching.
func RankThree() Stage {
	return func(t *Topology) error {
		if t.cfg.GroupsPerSystem < 2 {
			t.log.V(1).Info("rank skipped", "rank", RankInterGroup.String(), "groups", t.cfg.GroupsPerSystem)
			return nil
		}

		before := len(t.conns)
		for {
			t.sweeps++
			committed, sat, err := t.sweep()
			if err != nil {
				return fmt.Errorf("%s: sweep %d: %w", MethodRankThree, t.sweeps, err)
			}
			if sat != nil {
				t.saturation = sat
				t.log.V(1).Info("rank-3 budget exhausted",
					"sweep", sat.Sweep,
					"groupA", sat.GroupA,
					"groupB", sat.GroupB,
					"router", sat.Router.String(),
					"used", sat.Used,
				)
				break
			}
			if committed == 0 {
				break
			}
		}

		t.log.V(1).Info("rank built", "rank", RankInterGroup.String(),
			"connections", len(t.conns)-before, "sweeps", t.sweeps)
		return nil
	}
}

// sweep makes one pass over all group pairs. It returns the number of
// connections committed and, when a picked router could not take another
// rank-3 connection, the Saturation that ends the stage.
func (t *Topology) sweep() (committed int, sat *Saturation, err error) {
	lpc := t.cfg.LPCRank3
	groups := t.cfg.GroupsPerSystem

	for g := 0; g < groups-1; g++ {
		for h := g + 1; h < groups; h++ {
			a, err := t.ledger.FewestPorts(g)
			if err != nil {
				return committed, nil, err
			}
			b, err := t.ledger.FewestPorts(h)
			if err != nil {
				return committed, nil, err
			}

			for _, end := range [2]RouterAddress{a, b} {
				if !t.ledger.CanAllocate(end, lpc) {
					return committed, &Saturation{
						GroupA: g,
						GroupB: h,
						Router: end,
						Used:   t.ledger.UsageOf(end),
						Sweep:  t.sweeps,
					}, nil
				}
			}

			if err := t.connect(a, b, RankInterGroup); err != nil {
				return committed, nil, err
			}
			t.recordPair(a, b)
			committed++
		}
	}

	return committed, nil, nil
}
