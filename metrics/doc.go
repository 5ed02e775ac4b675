// SPDX-License-Identifier: MIT

// Package metrics describes a built topology as Prometheus metrics.
//
// A Registry owns a private prometheus.Registry, so several can coexist in
// one process (tests, batch runs). ObserveTopology is meant to be called once
// per topology; the port-usage histogram accumulates across calls.
// WriteTextfile produces the node-exporter textfile format.
package metrics
