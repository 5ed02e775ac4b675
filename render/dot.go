// SPDX-License-Identifier: MIT
// Package: dragonfly/render
//
// dot.go - Graphviz output.
//
// Layout: one undirected graph; tiny red dot nodes; one subgraph per rank
// ("rank1", "rank2", "rank3") whose edge color tells the ranks apart; one
// `"a" -- "b";` line per physical link, so multi-link connections show as
// parallel edges.

package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/dragonfly/topology"
)

// Default rank colors of the dotfile.
const (
	DefaultRank1Color = "green"
	DefaultRank2Color = "black"
	DefaultRank3Color = "blue"
	DefaultGraphName  = "dragonfly"
)

// DOTOption customizes WriteDOT.
type DOTOption func(*dotConfig)

type dotConfig struct {
	name   string
	colors map[topology.Rank]string
}

func newDOTConfig(opts ...DOTOption) dotConfig {
	dc := dotConfig{
		name: DefaultGraphName,
		colors: map[topology.Rank]string{
			topology.RankIntraChassis: DefaultRank1Color,
			topology.RankIntraGroup:   DefaultRank2Color,
			topology.RankInterGroup:   DefaultRank3Color,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&dc)
		}
	}
	return dc
}

// WithGraphName sets the graph identifier; empty names keep the default.
// Names that are not plain DOT identifiers are written quoted.
func WithGraphName(name string) DOTOption {
	return func(dc *dotConfig) {
		if name != "" {
			dc.name = name
		}
	}
}

// WithRankColor sets the edge color of one rank's subgraph.
func WithRankColor(r topology.Rank, color string) DOTOption {
	return func(dc *dotConfig) {
		if r.Valid() && color != "" {
			dc.colors[r] = color
		}
	}
}

// WriteDOT writes links as a Graphviz graph. Links keep their input order
// inside each rank subgraph.
func WriteDOT(w io.Writer, links []topology.Link, opts ...DOTOption) error {
	dc := newDOTConfig(opts...)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "graph %s {\n", dotID(dc.name))
	fmt.Fprintln(bw, "    overlap=false;")
	fmt.Fprintln(bw, "    splines=true;")
	fmt.Fprintln(bw, `    node [label="",width=0.05,height=0.05,style=filled,color=red];`)

	for _, r := range topology.Ranks {
		fmt.Fprintf(bw, "    subgraph %s {\n", r)
		fmt.Fprintf(bw, "        edge [color=%s];\n", dc.colors[r])
		for _, l := range links {
			if l.Rank == r {
				fmt.Fprintf(bw, "        %q -- %q;\n", l.A.String(), l.B.String())
			}
		}
		fmt.Fprintln(bw, "    }")
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}

// dotID returns name bare when it is a DOT identifier ([A-Za-z_][A-Za-z0-9_]*)
// and as a quoted string otherwise.
func dotID(name string) string {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return strconv.Quote(name)
		}
	}
	return name
}
