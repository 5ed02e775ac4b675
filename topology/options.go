// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// options.go - functional options for Build.
//
// Contract:
//   • Options are functional (type Option func(*buildConfig)).
//   • Options never panic: a logger without a sink falls back to
//     logr.Discard().
//   • Options do not change the topology produced for a Config; they only
//     control diagnostics (logging) and bookkeeping (pair statistics).

package topology

import "github.com/go-logr/logr"

// Option customizes a build by mutating a buildConfig before the first stage runs.
type Option func(*buildConfig)

type buildConfig struct {
	log       logr.Logger
	pairStats bool
}

func newBuildConfig(opts ...Option) buildConfig {
	bc := buildConfig{
		log:       logr.Discard(),
		pairStats: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&bc)
		}
	}
	return bc
}

// WithLogger routes stage progress to l at verbosity 1.
func WithLogger(l logr.Logger) Option {
	return func(bc *buildConfig) {
		if l.GetSink() == nil {
			bc.log = logr.Discard()
			return
		}
		bc.log = l
	}
}

// WithPairStats toggles the per-router-pair rank-3 counters (on by default).
// With stats off, PairStats and Population return nil.
func WithPairStats(enabled bool) Option {
	return func(bc *buildConfig) {
		bc.pairStats = enabled
	}
}
