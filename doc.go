// Package dragonfly generates the wiring of a dragonfly interconnect: which
// router connects to which, at what packaging level, over how many links.
//
// 🚀 What is dragonfly?
//
//	A deterministic topology generator for HPC networks built from
//	groups of chassis of routers:
//		• Rank 1: all-to-all inside each chassis (backplane)
//		• Rank 2: all-to-all between same-slot routers of a group (copper)
//		• Rank 3: round-robin between groups until a router runs out of ports (optical)
//		• Port ledger: every router has a fixed budget; nothing ever overdraws it
//
// ✨ Why choose dragonfly?
//
//   - Deterministic - identical configuration, identical output, byte for byte
//   - Checked - invalid or infeasible configurations fail before any wiring
//   - Inspectable - gonum-backed analysis, Graphviz, YAML/JSON, Prometheus
//
// Packages:
//
//	topology/  - Config, RouterAddress, PortLedger, rank stages, Build
//	analysis/  - connectivity, minimal routes and diameter over gonum graphs
//	render/    - Graphviz DOT, population report, YAML/JSON documents, summary tables
//	config/    - layered configuration (file, DRAGONFLY_* env, flags) through viper
//	metrics/   - Prometheus registry and textfile export
//	logging/   - zap-backed logr loggers
//	cmd/dragonfly - the command-line generator
//
// Quick ASCII example, one group of two chassis with two slots:
//
//	    0-0-0 ── 0-0-1      (rank 1)
//	      │        │        (rank 2)
//	    0-1-0 ── 0-1-1      (rank 1)
//
//	go install github.com/katalvlaran/dragonfly/cmd/dragonfly@latest
package dragonfly
