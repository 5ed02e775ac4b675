// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// ledger.go - PortLedger, the single piece of mutable state of a build.
//
// Contract:
//   • Every router of the Config starts at zero.
//   • usage(a) ≤ budget after every successful Allocate; a failing Allocate
//     leaves the entry untouched.
//   • Counts only grow (negative amounts are rejected).
//   • The ledger never rolls back: a caller committing a two-ended
//     connection checks both ends with CanAllocate before charging either.
//
// Storage: a flat []int indexed by (group·C + chassis)·S + slot, so address
// order and index order coincide and every scan is deterministic.
//
// Concurrency: not safe for concurrent mutation; a build owns its ledger.

package topology

import "fmt"

// PortLedger tracks committed ports per router.
type PortLedger struct {
	cfg   Config
	usage []int
}

// RouterUsage is one ledger entry.
type RouterUsage struct {
	Router RouterAddress `json:"router" yaml:"router"`
	Used   int           `json:"used" yaml:"used"`
}

// NewPortLedger returns a zeroed ledger covering every router of cfg.
// Complexity: O(Routers).
func NewPortLedger(cfg Config) *PortLedger {
	n := cfg.Routers()
	if n < 0 {
		n = 0
	}
	return &PortLedger{cfg: cfg, usage: make([]int, n)}
}

// Budget is the per-router port limit.
func (l *PortLedger) Budget() int { return l.cfg.PortBudget }

// Len is the number of routers tracked.
func (l *PortLedger) Len() int { return len(l.usage) }

func (l *PortLedger) index(a RouterAddress) (int, bool) {
	if !l.cfg.Contains(a) {
		return 0, false
	}
	return (a.Group*l.cfg.ChassisPerGroup+a.Chassis)*l.cfg.SlotsPerChassis + a.Slot, true
}

func (l *PortLedger) address(i int) RouterAddress {
	s := l.cfg.SlotsPerChassis
	c := l.cfg.ChassisPerGroup
	return Addr(i/(s*c), (i/s)%c, i%s)
}

// Allocate charges amount ports to router a.
//
// Errors:
//   - ErrUnknownRouter:      a is outside the system.
//   - ErrNegativeAmount:     amount < 0.
//   - ErrPortBudgetExceeded: usage(a)+amount > budget; usage is unchanged.
//
// Complexity: O(1).
func (l *PortLedger) Allocate(a RouterAddress, amount int) error {
	i, err := l.check(a, amount)
	if err != nil {
		return err
	}
	l.usage[i] += amount

	return nil
}

// CanAllocate reports whether Allocate(a, amount) would succeed.
func (l *PortLedger) CanAllocate(a RouterAddress, amount int) bool {
	_, err := l.check(a, amount)
	return err == nil
}

// check validates an allocation without applying it and returns the slot index.
func (l *PortLedger) check(a RouterAddress, amount int) (int, error) {
	i, ok := l.index(a)
	if !ok {
		return 0, fmt.Errorf("%s(%s): %w", MethodAllocate, a, ErrUnknownRouter)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%s(%s, %d): %w", MethodAllocate, a, amount, ErrNegativeAmount)
	}
	// usage ≤ budget, so budget-usage cannot overflow where usage+amount could.
	if used := l.usage[i]; amount > l.cfg.PortBudget-used {
		return 0, fmt.Errorf("%s(%s, %d): %d of %d ports already used: %w",
			MethodAllocate, a, amount, used, l.cfg.PortBudget, ErrPortBudgetExceeded)
	}
	return i, nil
}

// UsageOf returns the ports committed by router a (0 for unknown routers).
func (l *PortLedger) UsageOf(a RouterAddress) int {
	i, ok := l.index(a)
	if !ok {
		return 0
	}
	return l.usage[i]
}

// Remaining returns budget − usage for router a (0 for unknown routers).
func (l *PortLedger) Remaining(a RouterAddress) int {
	i, ok := l.index(a)
	if !ok {
		return 0
	}
	return l.cfg.PortBudget - l.usage[i]
}

// FewestPorts returns the router of group with the minimum usage. Ties go to
// the lowest chassis, then the lowest slot: the scan runs in address order
// and only a strictly smaller usage replaces the current pick.
//
// Errors: ErrUnknownRouter when group is outside the system.
// Complexity: O(RoutersPerGroup).
func (l *PortLedger) FewestPorts(group int) (RouterAddress, error) {
	if group < 0 || group >= l.cfg.GroupsPerSystem {
		return RouterAddress{}, fmt.Errorf("FewestPorts(group=%d): %w", group, ErrUnknownRouter)
	}

	per := l.cfg.RoutersPerGroup()
	lo := group * per
	best := lo
	for i := lo + 1; i < lo+per; i++ {
		if l.usage[i] < l.usage[best] {
			best = i
		}
	}

	return l.address(best), nil
}

// Each calls fn for every router in address order.
func (l *PortLedger) Each(fn func(a RouterAddress, used int)) {
	for i, u := range l.usage {
		fn(l.address(i), u)
	}
}

// Snapshot copies the ledger in address order.
// Complexity: O(Routers).
func (l *PortLedger) Snapshot() []RouterUsage {
	out := make([]RouterUsage, len(l.usage))
	for i, u := range l.usage {
		out[i] = RouterUsage{Router: l.address(i), Used: u}
	}
	return out
}

// Extremes returns the smallest and largest usage over all routers;
// both are 0 for an empty ledger.
func (l *PortLedger) Extremes() (minUsed, maxUsed int) {
	if len(l.usage) == 0 {
		return 0, 0
	}
	minUsed, maxUsed = l.usage[0], l.usage[0]
	for _, u := range l.usage[1:] {
		if u < minUsed {
			minUsed = u
		}
		if u > maxUsed {
			maxUsed = u
		}
	}
	return minUsed, maxUsed
}

// Total is the sum of committed ports over all routers.
func (l *PortLedger) Total() int {
	sum := 0
	for _, u := range l.usage {
		sum += u
	}
	return sum
}

// Clone returns an independent copy.
func (l *PortLedger) Clone() *PortLedger {
	cp := make([]int, len(l.usage))
	copy(cp, l.usage)
	return &PortLedger{cfg: l.cfg, usage: cp}
}
