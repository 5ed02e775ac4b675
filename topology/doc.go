// Package topology computes the static cabling plan of a three-rank
// dragonfly interconnect.
//
// A system is G groups of C chassis of S slots; every (group, chassis, slot)
// triple holds exactly one router, identified by a RouterAddress. Each
// router has a fixed port budget. Build wires the routers in three ranks:
//
//   - Rank 1 (intra-chassis): every pair of slots in a chassis, K_S per chassis.
//   - Rank 2 (intra-group): the same slot across every pair of chassis in a
//     group, K_C per slot.
//   - Rank 3 (inter-group): a greedy sweep over group pairs that always
//     connects the least-used router of each group, repeated until the first
//     pick that cannot take another connection ends the stage.
//
// Every logical connection at rank r consumes LPC(r) ports on both ends
// (LPC = links per connection) and is tracked in a PortLedger whose counts
// never exceed the budget. Ranks 1 and 2 are expected to fit; if they do not,
// Build fails with ErrPortBudgetExceeded instead of returning an
// over-committed plan. Running out of ports during rank 3 is the normal end
// of the algorithm.
//
// Quick start:
//
//	cfg := topology.DefaultConfig()
//	t, err := topology.Build(cfg)
//	if err != nil { ... }
//	for _, c := range t.Connections() {
//	    fmt.Println(c.A, c.B, c.Rank)
//	}
//
// The build is single-threaded and deterministic: equal configurations give
// identical connection sequences and ledgers. Stages are composable through
// BuildWith, mirroring how custom fixtures are assembled.
package topology
