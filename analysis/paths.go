// SPDX-License-Identifier: MIT
// Package: dragonfly/analysis
//
// paths.go - hop-count routing over the router graph.
//
// Every edge weighs 1, so a shortest path minimizes hops, which is what
// minimal dragonfly routing does. Shortest-path trees come from
// path.DijkstraFrom and are computed per source.

package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/dragonfly/topology"
)

// ErrNoRoute indicates that two routers are in different components.
var ErrNoRoute = errors.New("analysis: no route between routers")

// Router finds hop routes on one topology. Shortest-path trees are cached
// per source; a Router is not safe for concurrent use.
type Router struct {
	ix    Indexer
	g     *simple.UndirectedGraph
	cache map[int64]path.Shortest
}

// NewRouter prepares hop routing over every rank of t.
func NewRouter(t *topology.Topology) *Router {
	return &Router{
		ix:    NewIndexer(t.Config()),
		g:     Graph(t),
		cache: make(map[int64]path.Shortest),
	}
}

func (r *Router) tree(from int64) path.Shortest {
	sp, ok := r.cache[from]
	if !ok {
		sp = path.DijkstraFrom(r.g.Node(from), r.g)
		r.cache[from] = sp
	}
	return sp
}

// Route returns the routers on a minimal-hop path from a to b, inclusive.
//
// Errors:
//   - topology.ErrUnknownRouter: a or b is outside the system.
//   - ErrNoRoute: b is unreachable from a.
func (r *Router) Route(a, b topology.RouterAddress) ([]topology.RouterAddress, error) {
	cfg := r.ix.cfg
	for _, end := range [2]topology.RouterAddress{a, b} {
		if !cfg.Contains(end) {
			return nil, fmt.Errorf("Route(%s, %s): %s: %w", a, b, end, topology.ErrUnknownRouter)
		}
	}

	nodes, w := r.tree(r.ix.ID(a)).To(r.ix.ID(b))
	if math.IsInf(w, 1) || len(nodes) == 0 {
		return nil, fmt.Errorf("Route(%s, %s): %w", a, b, ErrNoRoute)
	}

	return r.ix.addresses(nodes), nil
}

// Hops returns the minimal hop count from a to b.
func (r *Router) Hops(a, b topology.RouterAddress) (int, error) {
	route, err := r.Route(a, b)
	if err != nil {
		return 0, err
	}
	return len(route) - 1, nil
}

// eccentricity is the largest hop count from node id to any reachable node,
// plus whether every node was reachable.
func (r *Router) eccentricity(id int64) (int, bool) {
	sp := r.tree(id)
	ecc, all := 0, true
	nodes := r.g.Nodes()
	for nodes.Next() {
		w := sp.WeightTo(nodes.Node().ID())
		if math.IsInf(w, 1) {
			all = false
			continue
		}
		if h := int(w); h > ecc {
			ecc = h
		}
	}
	return ecc, all
}
