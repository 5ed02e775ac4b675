// Package analysis inspects a built dragonfly topology as a graph.
//
// The connection list is collapsed into a simple undirected gonum graph
// (parallel links between the same two routers become one edge, since hop
// counts do not depend on link multiplicity). On that graph the package
// reports connectivity, the hop diameter and per-router hop routes, and
// summarizes per-rank port consumption from the topology's ledger.
//
// Everything here is read-only with respect to the topology.
package analysis
