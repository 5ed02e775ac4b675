// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// api.go - thin public entry-points for the topology package.
//
// Design contract:
//   - One orchestrator: BuildWith(cfg, opts, stages...). Validates cfg,
//     creates the ledger, runs the stages in order.
//   - Build is BuildWith with the canonical stage list RankOne, RankTwo,
//     RankThree; ranks are generated in that order and never interleave.
//   - Determinism: equal Config and stage order ⇒ identical connections and
//     identical final ledger.
//   - Safety: never panic; a failing stage aborts the build and no partial
//     topology is returned.

package topology

import (
	"fmt"
)

// Stage appends one batch of connections to t and charges their ports to
// t's ledger. Stages MUST:
//   - Emit connections in a stable, documented order.
//   - Commit a connection only after both ends passed the budget check.
//   - Return sentinel-wrapped errors; never panic.
type Stage func(t *Topology) error

// DefaultStages returns the dragonfly generation order: rank 1, 2, 3.
func DefaultStages() []Stage {
	return []Stage{RankOne(), RankTwo(), RankThree()}
}

// Build generates the full dragonfly topology for cfg.
//
// Errors:
//   - ErrInvalidConfig:      cfg failed validation.
//   - ErrPortBudgetExceeded: the port budget cannot host the rank-1/rank-2
//     meshes. Rank-3 exhaustion is never an error.
//
// Complexity: O(G·C·S² + G·S·C²) for ranks 1-2, plus
// O(rank-3 connections × RoutersPerGroup) for the greedy matching.
func Build(cfg Config, opts ...Option) (*Topology, error) {
	return BuildWith(cfg, opts, DefaultStages()...)
}

// BuildWith validates cfg, creates an empty Topology and applies stages in
// order. Any stage error is wrapped as "Build: %w" and returned immediately
// with a nil Topology.
func BuildWith(cfg Config, opts []Option, stages ...Stage) (*Topology, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodBuild, err)
	}

	bc := newBuildConfig(opts...)
	t := newTopology(cfg, bc)

	for i, stage := range stages {
		if stage == nil {
			return nil, fmt.Errorf("%s: stage %d: %w", MethodBuild, i, ErrNilStage)
		}
		if err := stage(t); err != nil {
			bc.log.Error(err, "topology build failed", "stage", i, "config", cfg.String())
			return nil, fmt.Errorf("%s: %w", MethodBuild, err)
		}
	}

	minUsed, maxUsed := t.ledger.Extremes()
	bc.log.V(1).Info("topology built",
		"routers", t.ledger.Len(),
		"connections", len(t.conns),
		"minPortsUsed", minUsed,
		"maxPortsUsed", maxUsed,
		"portBudget", cfg.PortBudget,
	)

	return t, nil
}
