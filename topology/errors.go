// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// errors.go - sentinel errors for the topology package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached with %w at the failure site ("<Method>: ...: %w").
//   • Rank-3 port exhaustion is NOT an error: it is the normal end of the
//     greedy matching and is reported through the connections it produced.
//   • A single-group system is NOT an error: rank 3 is skipped.

package topology

import "errors"

// ErrInvalidConfig indicates a configuration value outside its allowed range
// (non-positive dimension or LPC, negative port budget, more than
// MaxRouters routers).
var ErrInvalidConfig = errors.New("topology: invalid configuration")

// ErrPortBudgetExceeded indicates that committing a connection would push a
// router past its port budget. Returned by PortLedger.Allocate, and fatal
// when raised by the rank-1 or rank-2 mesh: the budget cannot host the full
// intra-chassis/intra-group mesh and no topology is returned.
var ErrPortBudgetExceeded = errors.New("topology: port budget exceeded")

// ErrUnknownRouter indicates a RouterAddress outside the configured system.
var ErrUnknownRouter = errors.New("topology: unknown router")

// ErrNegativeAmount indicates an attempt to allocate a negative number of
// ports; ledger counts only grow.
var ErrNegativeAmount = errors.New("topology: negative port amount")

// ErrInvalidAddress indicates a malformed "<group>-<chassis>-<slot>" string.
var ErrInvalidAddress = errors.New("topology: invalid router address")

// ErrNilStage indicates a nil Stage passed to BuildWith.
var ErrNilStage = errors.New("topology: nil stage")
