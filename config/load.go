// SPDX-License-Identifier: MIT
// Package: dragonfly/config
//
// load.go - viper-backed Load and the per-field flag set.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/dragonfly/topology"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DRAGONFLY"

// ErrConfigFile indicates an unreadable or malformed configuration file.
var ErrConfigFile = errors.New("config: cannot read configuration file")

// field binds one Config member to its viper key and flag.
type field struct {
	key   string // mapstructure key, also the file key
	flag  string
	usage string
	ref   func(c *topology.Config) *int
}

var fields = []field{
	{"port_budget", "port-budget", "ports per router available for network links",
		func(c *topology.Config) *int { return &c.PortBudget }},
	{"slots_per_chassis", "slots", "routers per chassis",
		func(c *topology.Config) *int { return &c.SlotsPerChassis }},
	{"chassis_per_group", "chassis", "chassis per group",
		func(c *topology.Config) *int { return &c.ChassisPerGroup }},
	{"groups_per_system", "groups", "groups in the system",
		func(c *topology.Config) *int { return &c.GroupsPerSystem }},
	{"lpc_rank1", "lpc-rank1", "links per rank-1 connection",
		func(c *topology.Config) *int { return &c.LPCRank1 }},
	{"lpc_rank2", "lpc-rank2", "links per rank-2 connection",
		func(c *topology.Config) *int { return &c.LPCRank2 }},
	{"lpc_rank3", "lpc-rank3", "links per rank-3 connection",
		func(c *topology.Config) *int { return &c.LPCRank3 }},
}

// RegisterFlags adds one int flag per Config field to fs, defaulting to
// topology.DefaultConfig().
func RegisterFlags(fs *pflag.FlagSet) {
	def := topology.DefaultConfig()
	for _, f := range fields {
		fs.Int(f.flag, *f.ref(&def), f.usage)
	}
}

// Load merges defaults, the optional file at path, the environment and the
// flags of fs (nil allowed) into a validated Config.
func Load(path string, fs *pflag.FlagSet) (topology.Config, error) {
	v := viper.New()

	def := topology.DefaultConfig()
	for _, f := range fields {
		v.SetDefault(f.key, *f.ref(&def))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, f := range fields {
			if pf := fs.Lookup(f.flag); pf != nil {
				if err := v.BindPFlag(f.key, pf); err != nil {
					return topology.Config{}, fmt.Errorf("Load: bind --%s: %w", f.flag, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return topology.Config{}, fmt.Errorf("Load(%s): %v: %w", path, err, ErrConfigFile)
		}
	}

	var cfg topology.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return topology.Config{}, fmt.Errorf("Load: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return topology.Config{}, fmt.Errorf("Load: %w", err)
	}

	return cfg, nil
}
