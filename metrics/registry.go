// SPDX-License-Identifier: MIT
// Package: dragonfly/metrics
//
// registry.go - metric definitions.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "dragonfly"

// PortUsageBuckets covers budgets up to 48 ports in steps of 4.
var PortUsageBuckets = prometheus.LinearBuckets(4, 4, 12)

// Registry holds the topology metrics.
type Registry struct {
	registry *prometheus.Registry

	// Structure
	RoutersTotal     prometheus.Gauge
	ConnectionsTotal *prometheus.GaugeVec
	LinksTotal       *prometheus.GaugeVec
	GroupPairLinks   *prometheus.GaugeVec
	Rank3PairsTotal  prometheus.Gauge

	// Ports
	PortBudget     prometheus.Gauge
	PortUsage      prometheus.Histogram
	PortUsageMin   prometheus.Gauge
	PortUsageMax   prometheus.Gauge
	FreePortsTotal prometheus.Gauge

	// Rank-3 generation
	Rank3Sweeps    prometheus.Gauge
	Rank3Saturated prometheus.Gauge

	// Builds
	BuildsTotal   *prometheus.CounterVec
	BuildDuration prometheus.Histogram
}

// NewRegistry creates a Registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initStructureMetrics()
	r.initPortMetrics()
	r.initBuildMetrics()
	return r
}

// Gatherer exposes the underlying registry, e.g. for promhttp or testutil.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

func (r *Registry) initStructureMetrics() {
	r.RoutersTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "routers_total",
			Help:      "Number of routers in the system",
		},
	)

	r.ConnectionsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "connections_total",
			Help:      "Logical connections per rank",
		},
		[]string{"rank"},
	)

	r.LinksTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "links_total",
			Help:      "Physical links per rank",
		},
		[]string{"rank"},
	)

	r.GroupPairLinks = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "group_pair_links",
			Help:      "Rank-3 physical links between two groups",
		},
		[]string{"group_a", "group_b"},
	)

	r.Rank3PairsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "rank3_router_pairs_total",
			Help:      "Distinct router pairs joined by at least one rank-3 connection",
		},
	)
}

func (r *Registry) initPortMetrics() {
	r.PortBudget = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "port_budget",
			Help:      "Ports per router available for network links",
		},
	)

	r.PortUsage = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "router_ports_used",
			Help:      "Distribution of consumed ports per router",
			Buckets:   PortUsageBuckets,
		},
	)

	r.PortUsageMin = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "router_ports_used_min",
			Help:      "Fewest ports consumed by any router",
		},
	)

	r.PortUsageMax = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "router_ports_used_max",
			Help:      "Most ports consumed by any router",
		},
	)

	r.FreePortsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "free_ports_total",
			Help:      "Unused ports summed over all routers",
		},
	)
}

func (r *Registry) initBuildMetrics() {
	r.Rank3Sweeps = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "rank3_sweeps",
			Help:      "Sweeps over all group pairs performed by rank-3 generation",
		},
	)

	r.Rank3Saturated = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "rank3_saturated",
			Help:      "1 when rank-3 generation stopped on a saturated router, 0 otherwise",
		},
	)

	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "builds_total",
			Help:      "Topology builds by outcome",
		},
		[]string{"status"},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "build_duration_seconds",
			Help:      "Topology build duration in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)
}
