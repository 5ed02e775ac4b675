// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// connection.go - Connection (one logical connection) and Link (one
// physical cable). A Connection of rank r stands for LPC(r) links between
// the same two routers; Topology.Links expands them.

package topology

import "fmt"

// Connection is one logical connection between two routers.
type Connection struct {
	A     RouterAddress `json:"a" yaml:"a"`
	B     RouterAddress `json:"b" yaml:"b"`
	Rank  Rank          `json:"rank" yaml:"rank"`
	Links int           `json:"links" yaml:"links"`
}

// Link is one physical link; Connection.Links of them share endpoints and rank.
type Link struct {
	A    RouterAddress
	B    RouterAddress
	Rank Rank
}

// String renders c as "a -- b (rankN x links)".
func (c Connection) String() string {
	return fmt.Sprintf("%s -- %s (%s x%d)", c.A, c.B, c.Rank, c.Links)
}

// Touches reports whether router a is one of c's endpoints.
func (c Connection) Touches(a RouterAddress) bool {
	return c.A == a || c.B == a
}

// GroupPairKey is the canonical (A < B) key of a rank-3 router pair; the
// same physical pair aggregates to the same key whichever end was picked
// first.
type GroupPairKey struct {
	A RouterAddress `json:"a" yaml:"a"`
	B RouterAddress `json:"b" yaml:"b"`
}

// NewGroupPairKey orders a and b canonically.
func NewGroupPairKey(a, b RouterAddress) GroupPairKey {
	lo, hi := canonicalPair(a, b)
	return GroupPairKey{A: lo, B: hi}
}

// String renders k as "a=b", the key format of the population report.
func (k GroupPairKey) String() string {
	return k.A.String() + "=" + k.B.String()
}

// Compare orders keys by A, then B.
func (k GroupPairKey) Compare(o GroupPairKey) int {
	if c := k.A.Compare(o.A); c != 0 {
		return c
	}
	return k.B.Compare(o.B)
}
