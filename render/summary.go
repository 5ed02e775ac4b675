// SPDX-License-Identifier: MIT
// Package: dragonfly/render
//
// summary.go - terminal tables for an analysis.Report.

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/dragonfly/analysis"
)

// WriteSummary prints the per-rank table, the group-pair table and the
// headline figures of rep.
func WriteSummary(w io.Writer, rep analysis.Report) error {
	ranks := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RANK", "CONNECTIONS", "LINKS", "MIN PORTS", "MAX PORTS")
	for _, r := range rep.Ranks {
		ranks.Row(r.Rank.String(), itoa(r.Connections), itoa(r.Links), itoa(r.MinPorts), itoa(r.MaxPorts))
	}

	if _, err := fmt.Fprintln(w, ranks.String()); err != nil {
		return err
	}

	if len(rep.GroupPairs) > 0 {
		pairs := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("GROUP A", "GROUP B", "CONNECTIONS", "LINKS")
		for _, p := range rep.GroupPairs {
			pairs.Row(itoa(p.GroupA), itoa(p.GroupB), itoa(p.Connections), itoa(p.Links))
		}
		if _, err := fmt.Fprintln(w, pairs.String()); err != nil {
			return err
		}
	}

	diameter := itoa(rep.Diameter)
	if rep.Diameter < 0 {
		diameter = "disconnected"
	}
	_, err := fmt.Fprintf(w,
		"routers=%d budget=%d used=[%d,%d] free=%d components=%d diameter=%s\n",
		rep.Routers, rep.PortBudget, rep.MinUsed, rep.MaxUsed, rep.FreePorts, rep.Components, diameter,
	)
	if err != nil {
		return err
	}

	if s := rep.Saturation; s != nil {
		_, err = fmt.Fprintf(w, "rank3 stopped in sweep %d at groups %d/%d: router %s uses %d of %d ports\n",
			s.Sweep, s.GroupA, s.GroupB, s.Router, s.Used, rep.PortBudget)
	}
	return err
}

func itoa(n int) string { return strconv.Itoa(n) }
