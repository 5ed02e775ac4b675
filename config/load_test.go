// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/dragonfly/config"
	"github.com/katalvlaran/dragonfly/topology"
)

var _ = Describe("Load", func() {
	var fs *pflag.FlagSet

	setenv := func(key, value string) {
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, key)
	}

	BeforeEach(func() {
		fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
		config.RegisterFlags(fs)
	})

	It("returns the defaults without file, env or flags", func() {
		cfg, err := config.Load("", fs)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(topology.DefaultConfig()))
	})

	It("accepts a nil flag set", func() {
		cfg, err := config.Load("", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(topology.DefaultConfig()))
	})

	It("reads every field from a YAML file", func() {
		cfg, err := config.Load(filepath.Join("testdata", "small.yaml"), fs)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(topology.Config{
			PortBudget: 10, SlotsPerChassis: 2, ChassisPerGroup: 2, GroupsPerSystem: 2,
			LPCRank1: 1, LPCRank2: 1, LPCRank3: 1,
		}))
	})

	It("fills fields missing from a JSON file with defaults", func() {
		cfg, err := config.Load(filepath.Join("testdata", "partial.json"), fs)
		Expect(err).NotTo(HaveOccurred())

		want := topology.DefaultConfig()
		want.GroupsPerSystem = 4
		want.LPCRank3 = 2
		Expect(cfg).To(Equal(want))
	})

	Context("with overrides", func() {
		BeforeEach(func() {
			setenv("DRAGONFLY_PORT_BUDGET", "12")
			setenv("DRAGONFLY_GROUPS_PER_SYSTEM", "3")
		})

		It("lets the environment override the file", func() {
			cfg, err := config.Load(filepath.Join("testdata", "small.yaml"), fs)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PortBudget).To(Equal(12))
			Expect(cfg.GroupsPerSystem).To(Equal(3))
			Expect(cfg.SlotsPerChassis).To(Equal(2))
		})

		It("lets set flags override the environment", func() {
			Expect(fs.Parse([]string{"--groups=5"})).To(Succeed())

			cfg, err := config.Load(filepath.Join("testdata", "small.yaml"), fs)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GroupsPerSystem).To(Equal(5))
			Expect(cfg.PortBudget).To(Equal(12))
		})
	})

	It("rejects values that fail validation", func() {
		Expect(fs.Parse([]string{"--slots=0"})).To(Succeed())

		_, err := config.Load("", fs)
		Expect(err).To(MatchError(topology.ErrInvalidConfig))
		Expect(err.Error()).To(ContainSubstring("slots_per_chassis"))
	})

	It("reports a missing file", func() {
		_, err := config.Load(filepath.Join("testdata", "absent.yaml"), fs)
		Expect(err).To(MatchError(config.ErrConfigFile))
	})

	It("reports a malformed file", func() {
		bad := filepath.Join(GinkgoT().TempDir(), "bad.yaml")
		Expect(os.WriteFile(bad, []byte("port_budget: [\n"), 0o600)).To(Succeed())

		_, err := config.Load(bad, fs)
		Expect(err).To(MatchError(config.ErrConfigFile))
	})
})
