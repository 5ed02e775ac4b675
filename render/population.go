// SPDX-License-Identifier: MIT
// Package: dragonfly/render
//
// population.go - the router population report: one line per rank-3
// router pair with its connection count and both routers' final usage.

package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/dragonfly/topology"
)

// WritePopulation writes one "%20s %d from %d and %d" line per entry.
func WritePopulation(w io.Writer, entries []topology.PopulationEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintf(bw, "%20s %d from %d and %d\n", e.Key, e.Connections, e.UsedA, e.UsedB)
	}
	return bw.Flush()
}
