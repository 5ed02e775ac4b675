// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// impl_rank_two.go - rank-2 (intra-group) mesh.
//
// Contract:
//   • For every group and slot, one connection per unordered chassis pair
//     {i,j}, i<j, between the routers sitting in that slot: a K_C replicated
//     once per slot.
//   • Each connection charges LPC(2) to both ends.
//   • Same precondition as rank 1: a shortfall fails the build.
//
// Determinism: emission order is (group, i, j, slot) lexicographic, so all
// slots of one chassis pair are cabled together.
// Complexity: O(G·S·C²).

package topology

import "fmt"

// RankTwo returns the Stage building the intra-group complete graphs.
func RankTwo() Stage {
	return func(t *Topology) error {
		cfg := t.cfg
		before := len(t.conns)

		for g := 0; g < cfg.GroupsPerSystem; g++ {
			for i := 0; i < cfg.ChassisPerGroup-1; i++ {
				for j := i + 1; j < cfg.ChassisPerGroup; j++ {
					for s := 0; s < cfg.SlotsPerChassis; s++ {
						u, v := Addr(g, i, s), Addr(g, j, s)
						if err := t.connect(u, v, RankIntraGroup); err != nil {
							return fmt.Errorf("%s: %s -- %s: %w", MethodRankTwo, u, v, err)
						}
					}
				}
			}
		}

		t.log.V(1).Info("rank built", "rank", RankIntraGroup.String(), "connections", len(t.conns)-before)
		return nil
	}
}
