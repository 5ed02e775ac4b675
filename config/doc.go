// SPDX-License-Identifier: MIT

// Package config loads a topology.Config from layered sources through viper.
//
// Precedence, highest first:
//
//  1. command-line flags registered by RegisterFlags (only when set),
//  2. DRAGONFLY_* environment variables (DRAGONFLY_PORT_BUDGET, ...),
//  3. the YAML or JSON file passed to Load,
//  4. topology.DefaultConfig().
//
// The merged record is validated with Config.Validate before it is returned,
// so a nil error means the value is ready for topology.Build.
package config
