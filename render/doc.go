// Package render turns a built topology into artifacts for people and
// tools: a Graphviz dotfile with one subgraph per rank, the router
// population report, a pointer-free YAML/JSON document that can be stored
// and rendered again later, and lipgloss summary tables of an
// analysis.Report.
//
// Renderers only read; they never alter the topology they are given.
package render
