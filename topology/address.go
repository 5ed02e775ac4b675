// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// address.go - RouterAddress, the only router identity in the system.
//
// Determinism:
//   • Compare orders by group, then chassis, then slot. Every "lowest"
//     choice in this package (tie-breaks, canonical pair keys, report
//     order) uses this order.
//   • String/ParseRouterAddress round-trip "<group>-<chassis>-<slot>".

package topology

import (
	"fmt"
	"strconv"
	"strings"
)

// RouterAddress identifies exactly one router by its position in the
// packaging hierarchy. There is no router entity beyond this triple.
type RouterAddress struct {
	Group   int `json:"group" yaml:"group"`
	Chassis int `json:"chassis" yaml:"chassis"`
	Slot    int `json:"slot" yaml:"slot"`
}

// Addr is shorthand for RouterAddress{group, chassis, slot}.
func Addr(group, chassis, slot int) RouterAddress {
	return RouterAddress{Group: group, Chassis: chassis, Slot: slot}
}

// String renders a as "<group>-<chassis>-<slot>".
func (a RouterAddress) String() string {
	return strconv.Itoa(a.Group) + "-" + strconv.Itoa(a.Chassis) + "-" + strconv.Itoa(a.Slot)
}

// Compare returns -1, 0 or +1 as a sorts before, equal to, or after b.
func (a RouterAddress) Compare(b RouterAddress) int {
	switch {
	case a.Group != b.Group:
		return cmpInt(a.Group, b.Group)
	case a.Chassis != b.Chassis:
		return cmpInt(a.Chassis, b.Chassis)
	default:
		return cmpInt(a.Slot, b.Slot)
	}
}

// Less reports whether a sorts strictly before b.
func (a RouterAddress) Less(b RouterAddress) bool {
	return a.Compare(b) < 0
}

// ParseRouterAddress is the inverse of RouterAddress.String.
func ParseRouterAddress(s string) (RouterAddress, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return RouterAddress{}, fmt.Errorf("ParseRouterAddress(%q): want 3 fields, got %d: %w", s, len(parts), ErrInvalidAddress)
	}

	var idx [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return RouterAddress{}, fmt.Errorf("ParseRouterAddress(%q): field %d: %w", s, i, ErrInvalidAddress)
		}
		idx[i] = n
	}

	return Addr(idx[0], idx[1], idx[2]), nil
}

// canonicalPair orders two addresses so the same physical pair always
// yields the same (low, high) tuple regardless of argument order.
func canonicalPair(a, b RouterAddress) (RouterAddress, RouterAddress) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

func cmpInt(x, y int) int {
	if x < y {
		return -1
	}
	if x > y {
		return 1
	}
	return 0
}
