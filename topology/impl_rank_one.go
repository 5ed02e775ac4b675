// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// impl_rank_one.go - rank-1 (intra-chassis) mesh.
//
// Contract:
//   • For every group and chassis, one connection per unordered slot pair
//     {i,j}, i<j: a K_S on the chassis' routers.
//   • Each connection charges LPC(1) to both ends.
//   • A budget shortfall is a precondition violation: the stage fails with
//     ErrPortBudgetExceeded and the build returns no topology.
//
// Determinism: emission order is (group, chassis, i, j) lexicographic.
// Complexity: O(G·C·S²).

package topology

import "fmt"

// RankOne returns the Stage building the intra-chassis complete graphs.
func RankOne() Stage {
	return func(t *Topology) error {
		cfg := t.cfg
		before := len(t.conns)

		for g := 0; g < cfg.GroupsPerSystem; g++ {
			for c := 0; c < cfg.ChassisPerGroup; c++ {
				for i := 0; i < cfg.SlotsPerChassis-1; i++ {
					for j := i + 1; j < cfg.SlotsPerChassis; j++ {
						u, v := Addr(g, c, i), Addr(g, c, j)
						if err := t.connect(u, v, RankIntraChassis); err != nil {
							return fmt.Errorf("%s: %s -- %s: %w", MethodRankOne, u, v, err)
						}
					}
				}
			}
		}

		t.log.V(1).Info("rank built", "rank", RankIntraChassis.String(), "connections", len(t.conns)-before)
		return nil
	}
}
