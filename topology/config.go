// SPDX-License-Identifier: MIT
// Package: dragonfly/topology
//
// config.go - the immutable system description every stage reads.
//
// Design:
//   • Config is passed by VALUE into Build and copied into the Topology;
//     nothing in this package keeps process-wide configuration.
//   • DefaultConfig reproduces a Cray XC Aries system: 48-port routers with
//     8 ports taken by NICs, 16 slots × 6 chassis per group, two groups.
//   • Validate is the only gate: stages assume a validated Config.

package topology

import "fmt"

// Config describes the packaging hierarchy and the port economics of one
// dragonfly system. Field keys match the external configuration record.
type Config struct {
	// PortBudget is the maximum number of ports any router may commit across
	// all three ranks, at most MaxPortBudget.
	PortBudget int `json:"port_budget" yaml:"port_budget" mapstructure:"port_budget" validate:"min=0,max=65536"`

	// SlotsPerChassis is the size of the rank-1 complete graph.
	SlotsPerChassis int `json:"slots_per_chassis" yaml:"slots_per_chassis" mapstructure:"slots_per_chassis" validate:"min=1"`

	// ChassisPerGroup is the size of the rank-2 complete graph (one per slot).
	ChassisPerGroup int `json:"chassis_per_group" yaml:"chassis_per_group" mapstructure:"chassis_per_group" validate:"min=1"`

	// GroupsPerSystem is the number of groups taking part in rank-3 matching.
	GroupsPerSystem int `json:"groups_per_system" yaml:"groups_per_system" mapstructure:"groups_per_system" validate:"min=1"`

	// LPCRank1..3 are the ports consumed per logical connection at each rank.
	LPCRank1 int `json:"lpc_rank1" yaml:"lpc_rank1" mapstructure:"lpc_rank1" validate:"min=1"`
	LPCRank2 int `json:"lpc_rank2" yaml:"lpc_rank2" mapstructure:"lpc_rank2" validate:"min=1"`
	LPCRank3 int `json:"lpc_rank3" yaml:"lpc_rank3" mapstructure:"lpc_rank3" validate:"min=1"`
}

// DefaultConfig returns the reference Aries system.
func DefaultConfig() Config {
	return Config{
		PortBudget:      DefaultPortBudget,
		SlotsPerChassis: DefaultSlotsPerChassis,
		ChassisPerGroup: DefaultChassisPerGroup,
		GroupsPerSystem: DefaultGroupsPerSystem,
		LPCRank1:        DefaultLPCRank1,
		LPCRank2:        DefaultLPCRank2,
		LPCRank3:        DefaultLPCRank3,
	}
}

// Validate checks every field against its struct-tag constraint, then
// bounds the system size by MaxRouters, and returns the first violation
// wrapped in ErrInvalidConfig.
// Complexity: O(1).
func (c Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return fmt.Errorf("%s: %v: %w", MethodValidate, err, ErrInvalidConfig)
	}
	if err := c.checkSize(); err != nil {
		return fmt.Errorf("%s: %v: %w", MethodValidate, err, ErrInvalidConfig)
	}

	return nil
}

// checkSize multiplies the dimensions one at a time against MaxRouters, so
// the product is never computed past the cap and cannot overflow.
// Requires every dimension ≥ 1.
func (c Config) checkSize() error {
	n := 1
	for _, d := range [...]int{c.GroupsPerSystem, c.ChassisPerGroup, c.SlotsPerChassis} {
		if d > MaxRouters/n {
			return fmt.Errorf("system of %d×%d×%d routers: more than %d routers",
				c.GroupsPerSystem, c.ChassisPerGroup, c.SlotsPerChassis, MaxRouters)
		}
		n *= d
	}

	return nil
}

// LPC returns the links-per-connection value of rank r, or 0 for an unknown rank.
func (c Config) LPC(r Rank) int {
	switch r {
	case RankIntraChassis:
		return c.LPCRank1
	case RankIntraGroup:
		return c.LPCRank2
	case RankInterGroup:
		return c.LPCRank3
	default:
		return 0
	}
}

// RoutersPerGroup is ChassisPerGroup × SlotsPerChassis.
func (c Config) RoutersPerGroup() int {
	return c.ChassisPerGroup * c.SlotsPerChassis
}

// Routers is the total router count of the system.
func (c Config) Routers() int {
	return c.GroupsPerSystem * c.RoutersPerGroup()
}

// IntraGroupDemand is the number of ports ranks 1 and 2 charge to every
// router: (S-1)·LPC1 + (C-1)·LPC2. The meshes fit iff it is ≤ PortBudget.
func (c Config) IntraGroupDemand() int {
	return (c.SlotsPerChassis-1)*c.LPCRank1 + (c.ChassisPerGroup-1)*c.LPCRank2
}

// Contains reports whether a addresses a router of this system.
func (c Config) Contains(a RouterAddress) bool {
	return a.Group >= 0 && a.Group < c.GroupsPerSystem &&
		a.Chassis >= 0 && a.Chassis < c.ChassisPerGroup &&
		a.Slot >= 0 && a.Slot < c.SlotsPerChassis
}

// String renders the config in its external key=value form.
func (c Config) String() string {
	return fmt.Sprintf(
		"port_budget=%d slots_per_chassis=%d chassis_per_group=%d groups_per_system=%d lpc_rank1=%d lpc_rank2=%d lpc_rank3=%d",
		c.PortBudget, c.SlotsPerChassis, c.ChassisPerGroup, c.GroupsPerSystem, c.LPCRank1, c.LPCRank2, c.LPCRank3,
	)
}
