// File: builder_impl_test.go
// Package topology_test contains functional tests for the rank stages,
// verifying mesh shapes, the greedy rank-3 matching, budget enforcement
// and the reported statistics.
package topology_test

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/dragonfly/topology"
)

// pairKey identifies an unordered router pair.
type pairKey struct{ U, V topology.RouterAddress }

func keyOf(c topology.Connection) pairKey {
	k := topology.NewGroupPairKey(c.A, c.B)
	return pairKey{k.A, k.B}
}

// cfgOf builds a Config in the external field order:
// budget, slots, chassis, groups, lpc1, lpc2, lpc3.
func cfgOf(budget, slots, chassis, groups, lpc1, lpc2, lpc3 int) topology.Config {
	return topology.Config{
		PortBudget:      budget,
		SlotsPerChassis: slots,
		ChassisPerGroup: chassis,
		GroupsPerSystem: groups,
		LPCRank1:        lpc1,
		LPCRank2:        lpc2,
		LPCRank3:        lpc3,
	}
}

// StageSuite exercises the rank stages under various configurations.
type StageSuite struct {
	suite.Suite
}

func TestStageSuite(t *testing.T) {
	suite.Run(t, new(StageSuite))
}

func (s *StageSuite) build(cfg topology.Config, opts ...topology.Option) *topology.Topology {
	opts = append([]topology.Option{topology.WithLogger(testr.New(s.T()))}, opts...)
	topo, err := topology.Build(cfg, opts...)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), topo)
	return topo
}

// TestRankOneCompleteGraph verifies K_S per chassis, each pair exactly once.
func (s *StageSuite) TestRankOneCompleteGraph() {
	cfg := cfgOf(100, 5, 3, 2, 1, 1, 1)
	topo := s.build(cfg)

	perChassis := make(map[[2]int]map[pairKey]int)
	for _, c := range topo.ConnectionsOfRank(topology.RankIntraChassis) {
		require.Equal(s.T(), c.A.Group, c.B.Group)
		require.Equal(s.T(), c.A.Chassis, c.B.Chassis)
		require.NotEqual(s.T(), c.A.Slot, c.B.Slot)
		id := [2]int{c.A.Group, c.A.Chassis}
		if perChassis[id] == nil {
			perChassis[id] = make(map[pairKey]int)
		}
		perChassis[id][keyOf(c)]++
	}

	require.Len(s.T(), perChassis, 2*3)
	for id, pairs := range perChassis {
		require.Len(s.T(), pairs, 5*4/2, "chassis %v", id)
		for k, n := range pairs {
			require.Equal(s.T(), 1, n, "pair %v repeated", k)
		}
	}
}

// TestRankTwoCompleteGraph verifies K_C per slot per group.
func (s *StageSuite) TestRankTwoCompleteGraph() {
	cfg := cfgOf(100, 3, 4, 2, 1, 2, 1)
	topo := s.build(cfg)

	perSlot := make(map[[2]int]map[pairKey]int)
	for _, c := range topo.ConnectionsOfRank(topology.RankIntraGroup) {
		require.Equal(s.T(), c.A.Group, c.B.Group)
		require.Equal(s.T(), c.A.Slot, c.B.Slot)
		require.NotEqual(s.T(), c.A.Chassis, c.B.Chassis)
		require.Equal(s.T(), 2, c.Links)
		id := [2]int{c.A.Group, c.A.Slot}
		if perSlot[id] == nil {
			perSlot[id] = make(map[pairKey]int)
		}
		perSlot[id][keyOf(c)]++
	}

	require.Len(s.T(), perSlot, 2*3)
	for id, pairs := range perSlot {
		require.Len(s.T(), pairs, 4*3/2, "slot %v", id)
	}
}

// TestGenerationOrder verifies rank 1 entries precede rank 2, which precede rank 3.
func (s *StageSuite) TestGenerationOrder() {
	topo := s.build(cfgOf(20, 3, 3, 3, 1, 1, 1))

	last := topology.Rank(0)
	for i, c := range topo.Connections() {
		require.GreaterOrEqual(s.T(), c.Rank, last, "rank went backwards at %d", i)
		last = c.Rank
	}
	require.Equal(s.T(), topology.RankInterGroup, last)
}

// TestSmallScenario checks the {10,2,2,2,1,1,1} system end to end.
func (s *StageSuite) TestSmallScenario() {
	topo := s.build(cfgOf(10, 2, 2, 2, 1, 1, 1))

	require.Equal(s.T(), 4, topo.Count(topology.RankIntraChassis))
	require.Equal(s.T(), 4, topo.Count(topology.RankIntraGroup))
	require.Equal(s.T(), 32, topo.Count(topology.RankInterGroup))

	// Round-robin over (c0,s0),(c0,s1),(c1,s0),(c1,s1) in both groups.
	order := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, c := range topo.ConnectionsOfRank(topology.RankInterGroup) {
		cs := order[i%4]
		require.Equal(s.T(), topology.Addr(0, cs[0], cs[1]), c.A, "connection %d", i)
		require.Equal(s.T(), topology.Addr(1, cs[0], cs[1]), c.B, "connection %d", i)
	}

	for _, u := range topo.Ledger().Snapshot() {
		require.Equal(s.T(), 10, u.Used, "router %s", u.Router)
	}

	sat, ok := topo.Saturation()
	require.True(s.T(), ok)
	require.Equal(s.T(), 0, sat.GroupA)
	require.Equal(s.T(), 1, sat.GroupB)
	require.Equal(s.T(), topology.Addr(0, 0, 0), sat.Router)
	require.Equal(s.T(), 10, sat.Used)
	require.Equal(s.T(), 33, topo.Sweeps())
}

// TestDefaultSystem checks the reference Aries system: every router ends at 40.
func (s *StageSuite) TestDefaultSystem() {
	topo := s.build(topology.DefaultConfig())

	require.Equal(s.T(), 2*6*120, topo.Count(topology.RankIntraChassis))
	require.Equal(s.T(), 2*16*15, topo.Count(topology.RankIntraGroup))
	require.Equal(s.T(), 3*2*16*15, topo.LinkCount(topology.RankIntraGroup))
	require.Equal(s.T(), 96*10, topo.Count(topology.RankInterGroup))

	minUsed, maxUsed := topo.Ledger().Extremes()
	require.Equal(s.T(), 40, minUsed)
	require.Equal(s.T(), 40, maxUsed)
}

// TestSingleGroup verifies rank 3 is skipped and the ledger holds ranks 1-2 only.
func (s *StageSuite) TestSingleGroup() {
	cfg := cfgOf(50, 4, 3, 1, 1, 2, 1)
	topo := s.build(cfg)

	require.Empty(s.T(), topo.ConnectionsOfRank(topology.RankInterGroup))
	require.Empty(s.T(), topo.PairStats())
	require.Empty(s.T(), topo.GroupPairTotals())
	_, ok := topo.Saturation()
	require.False(s.T(), ok)

	for _, u := range topo.Ledger().Snapshot() {
		require.Equal(s.T(), cfg.IntraGroupDemand(), u.Used, "router %s", u.Router)
	}
}

// TestFirstSaturationWins verifies that one saturated pair stops rank 3
// for every pair, even those with spare capacity.
func (s *StageSuite) TestFirstSaturationWins() {
	topo := s.build(cfgOf(3, 1, 1, 3, 1, 1, 1))

	got := topo.ConnectionsOfRank(topology.RankInterGroup)
	require.Len(s.T(), got, 4)
	require.Equal(s.T(), []pairKey{
		{topology.Addr(0, 0, 0), topology.Addr(1, 0, 0)},
		{topology.Addr(0, 0, 0), topology.Addr(2, 0, 0)},
		{topology.Addr(1, 0, 0), topology.Addr(2, 0, 0)},
		{topology.Addr(0, 0, 0), topology.Addr(1, 0, 0)},
	}, []pairKey{keyOf(got[0]), keyOf(got[1]), keyOf(got[2]), keyOf(got[3])})

	// Group 2's router still has a free port; the stop is global.
	require.Equal(s.T(), 3, topo.Usage(topology.Addr(0, 0, 0)))
	require.Equal(s.T(), 3, topo.Usage(topology.Addr(1, 0, 0)))
	require.Equal(s.T(), 2, topo.Usage(topology.Addr(2, 0, 0)))

	sat, ok := topo.Saturation()
	require.True(s.T(), ok)
	require.Equal(s.T(), 0, sat.GroupA)
	require.Equal(s.T(), 2, sat.GroupB)
	require.Equal(s.T(), 2, sat.Sweep)
}

// TestRankThreeMultiLinkBudget verifies the check adds LPC(3) before comparing:
// a router at 3 of 4 ports cannot take a 2-link connection.
func (s *StageSuite) TestRankThreeMultiLinkBudget() {
	topo := s.build(cfgOf(4, 2, 1, 2, 1, 1, 2))

	require.Equal(s.T(), 2, topo.Count(topology.RankInterGroup))
	require.Equal(s.T(), 4, topo.LinkCount(topology.RankInterGroup))
	for _, u := range topo.Ledger().Snapshot() {
		require.Equal(s.T(), 3, u.Used, "router %s", u.Router)
	}

	topo = s.build(cfgOf(5, 2, 1, 2, 1, 1, 2))
	require.Equal(s.T(), 4, topo.Count(topology.RankInterGroup))
	for _, u := range topo.Ledger().Snapshot() {
		require.Equal(s.T(), 5, u.Used, "router %s", u.Router)
	}
}

// TestZeroBudget verifies a system without room produces no connections at all.
func (s *StageSuite) TestZeroBudget() {
	topo := s.build(cfgOf(0, 1, 1, 4, 1, 1, 1))
	require.Empty(s.T(), topo.Connections())
	require.Equal(s.T(), 1, topo.Sweeps())
}

// TestPairStats verifies canonical keys, counts and the population report.
func (s *StageSuite) TestPairStats() {
	topo := s.build(cfgOf(10, 2, 2, 2, 1, 1, 1))

	stats := topo.PairStats()
	require.Len(s.T(), stats, 4)
	total := 0
	for i, st := range stats {
		require.True(s.T(), st.Key.A.Less(st.Key.B))
		require.NotEqual(s.T(), st.Key.A.Group, st.Key.B.Group)
		require.Equal(s.T(), 8, st.Connections)
		if i > 0 {
			require.Negative(s.T(), stats[i-1].Key.Compare(st.Key))
		}
		total += st.Connections
	}
	require.Equal(s.T(), topo.Count(topology.RankInterGroup), total)

	pop := topo.Population()
	require.Len(s.T(), pop, 4)
	require.Equal(s.T(), "0-0-0=1-0-0", pop[0].Key.String())
	require.Equal(s.T(), 10, pop[0].UsedA)
	require.Equal(s.T(), 10, pop[0].UsedB)

	require.Equal(s.T(), []topology.GroupPairTotal{
		{GroupA: 0, GroupB: 1, Connections: 32, Links: 32},
	}, topo.GroupPairTotals())
}

// TestPairStatsDisabled verifies WithPairStats(false) drops counters only.
func (s *StageSuite) TestPairStatsDisabled() {
	on := s.build(cfgOf(10, 2, 2, 2, 1, 1, 1))
	off := s.build(cfgOf(10, 2, 2, 2, 1, 1, 1), topology.WithPairStats(false))

	require.Nil(s.T(), off.PairStats())
	require.Nil(s.T(), off.Population())
	require.Equal(s.T(), on.Connections(), off.Connections())
	require.Equal(s.T(), on.GroupPairTotals(), off.GroupPairTotals())
}

// TestLinksExpansion verifies each connection expands into LPC physical links.
func (s *StageSuite) TestLinksExpansion() {
	topo := s.build(cfgOf(30, 2, 2, 2, 1, 3, 2))

	links := topo.Links()
	want := 0
	for _, r := range topology.Ranks {
		want += topo.LinkCount(r)
	}
	require.Len(s.T(), links, want)

	// first rank-2 connection is 0-0-0 -- 0-1-0 carried by 3 consecutive links
	i := topo.Count(topology.RankIntraChassis)
	for k := 0; k < 3; k++ {
		require.Equal(s.T(), topology.Link{
			A: topology.Addr(0, 0, 0), B: topology.Addr(0, 1, 0), Rank: topology.RankIntraGroup,
		}, links[i+k])
	}
}

// TestAccessorsReturnCopies verifies a built topology cannot be mutated through accessors.
func (s *StageSuite) TestAccessorsReturnCopies() {
	topo := s.build(cfgOf(10, 2, 2, 2, 1, 1, 1))

	conns := topo.Connections()
	conns[0].Links = 99
	require.Equal(s.T(), 1, topo.Connections()[0].Links)

	l := topo.Ledger()
	require.NoError(s.T(), l.Allocate(topology.Addr(0, 0, 0), 0))
	require.Error(s.T(), l.Allocate(topology.Addr(0, 0, 0), 1))
	require.Equal(s.T(), 10, topo.Usage(topology.Addr(0, 0, 0)))
}

// BudgetSuite exercises precondition violations and option edge cases.
type BudgetSuite struct {
	suite.Suite
}

func TestBudgetSuite(t *testing.T) {
	suite.Run(t, new(BudgetSuite))
}

// TestRankOneOverflow verifies a too-small budget fails fast with no topology.
func (s *BudgetSuite) TestRankOneOverflow() {
	topo, err := topology.Build(cfgOf(2, 4, 1, 1, 1, 1, 1))
	require.Nil(s.T(), topo)
	require.True(s.T(), errors.Is(err, topology.ErrPortBudgetExceeded), "got %v", err)
	require.Contains(s.T(), err.Error(), topology.MethodRankOne)
	require.Contains(s.T(), err.Error(), "0-0-0 -- 0-0-3")
}

// TestRankTwoOverflow verifies the rank-2 mesh is checked the same way.
func (s *BudgetSuite) TestRankTwoOverflow() {
	topo, err := topology.Build(cfgOf(3, 1, 3, 1, 1, 2, 1))
	require.Nil(s.T(), topo)
	require.True(s.T(), errors.Is(err, topology.ErrPortBudgetExceeded), "got %v", err)
	require.Contains(s.T(), err.Error(), topology.MethodRankTwo)
}

// TestInvalidConfig verifies validation runs before any stage.
func (s *BudgetSuite) TestInvalidConfig() {
	topo, err := topology.Build(cfgOf(10, 0, 1, 1, 1, 1, 1))
	require.Nil(s.T(), topo)
	require.True(s.T(), errors.Is(err, topology.ErrInvalidConfig), "got %v", err)
}

// TestNilStage verifies BuildWith rejects nil stages.
func (s *BudgetSuite) TestNilStage() {
	topo, err := topology.BuildWith(cfgOf(10, 2, 2, 2, 1, 1, 1), nil, topology.RankOne(), nil)
	require.Nil(s.T(), topo)
	require.True(s.T(), errors.Is(err, topology.ErrNilStage), "got %v", err)
}

// TestCustomStages verifies BuildWith runs only the stages it is given.
func (s *BudgetSuite) TestCustomStages() {
	topo, err := topology.BuildWith(cfgOf(10, 2, 2, 2, 1, 1, 1), nil, topology.RankThree())
	require.NoError(s.T(), err)
	require.Zero(s.T(), topo.Count(topology.RankIntraChassis))
	require.Zero(s.T(), topo.Count(topology.RankIntraGroup))
	// all 8 routers start empty, so rank 3 alone takes 40 connections
	require.Equal(s.T(), 40, topo.Count(topology.RankInterGroup))
}

// TestZeroLoggerOption verifies an empty logr.Logger is accepted.
func (s *BudgetSuite) TestZeroLoggerOption() {
	var zero logr.Logger
	topo, err := topology.Build(cfgOf(10, 2, 2, 2, 1, 1, 1), topology.WithLogger(zero), nil)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), topo)
}
