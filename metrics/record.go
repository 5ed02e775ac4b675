// SPDX-License-Identifier: MIT
// Package: dragonfly/metrics
//
// record.go - filling the registry from a topology.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/dragonfly/topology"
)

// ObserveTopology records the structure and port usage of t.
func (r *Registry) ObserveTopology(t *topology.Topology) {
	cfg := t.Config()
	ledger := t.Ledger()

	r.RoutersTotal.Set(float64(ledger.Len()))
	r.PortBudget.Set(float64(ledger.Budget()))

	for _, rank := range topology.Ranks {
		r.ConnectionsTotal.WithLabelValues(rank.String()).Set(float64(t.Count(rank)))
		r.LinksTotal.WithLabelValues(rank.String()).Set(float64(t.LinkCount(rank)))
	}

	for _, p := range t.GroupPairTotals() {
		r.GroupPairLinks.WithLabelValues(strconv.Itoa(p.GroupA), strconv.Itoa(p.GroupB)).Set(float64(p.Links))
	}
	r.Rank3PairsTotal.Set(float64(len(t.PairStats())))

	ledger.Each(func(_ topology.RouterAddress, used int) {
		r.PortUsage.Observe(float64(used))
	})
	lo, hi := ledger.Extremes()
	r.PortUsageMin.Set(float64(lo))
	r.PortUsageMax.Set(float64(hi))
	r.FreePortsTotal.Set(float64(cfg.Routers()*ledger.Budget() - ledger.Total()))

	r.Rank3Sweeps.Set(float64(t.Sweeps()))
	if _, ok := t.Saturation(); ok {
		r.Rank3Saturated.Set(1)
	} else {
		r.Rank3Saturated.Set(0)
	}
}

// RecordBuild records one build attempt.
func (r *Registry) RecordBuild(err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.BuildsTotal.WithLabelValues(status).Inc()
	r.BuildDuration.Observe(duration.Seconds())
}

// WriteTextfile writes the registry in the text exposition format, atomically
// replacing filename.
func (r *Registry) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.registry)
}
