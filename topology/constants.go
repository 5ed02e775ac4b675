// Package topology defines shared constants used by the rank builders,
// so error prefixes and rank tags stay consistent across stages.
package topology

//-----------------------------------------------------------------------------
// Method Name Constants
//   used to prefix errors with the operation name for context.
//-----------------------------------------------------------------------------

const (
	// MethodBuild is the canonical name for the Build orchestrator.
	MethodBuild = "Build"
	// MethodRankOne is the canonical name for the rank-1 stage.
	MethodRankOne = "RankOne"
	// MethodRankTwo is the canonical name for the rank-2 stage.
	MethodRankTwo = "RankTwo"
	// MethodRankThree is the canonical name for the rank-3 stage.
	MethodRankThree = "RankThree"
	// MethodAllocate is the canonical name for PortLedger.Allocate.
	MethodAllocate = "Allocate"
	// MethodValidate is the canonical name for Config.Validate.
	MethodValidate = "Validate"
)

//-----------------------------------------------------------------------------
// Ranks
//-----------------------------------------------------------------------------

// Rank is the level of the dragonfly hierarchy a connection belongs to.
type Rank int

const (
	// RankIntraChassis links every pair of slots inside one chassis.
	RankIntraChassis Rank = 1
	// RankIntraGroup links the same slot across every pair of chassis in a group.
	RankIntraGroup Rank = 2
	// RankInterGroup links routers of different groups.
	RankInterGroup Rank = 3
)

// Ranks lists every rank in generation order.
var Ranks = [...]Rank{RankIntraChassis, RankIntraGroup, RankInterGroup}

// Valid reports whether r is one of the three dragonfly ranks.
func (r Rank) Valid() bool {
	return r >= RankIntraChassis && r <= RankInterGroup
}

// String renders the rank as "rank1", "rank2" or "rank3".
func (r Rank) String() string {
	switch r {
	case RankIntraChassis:
		return "rank1"
	case RankIntraGroup:
		return "rank2"
	case RankInterGroup:
		return "rank3"
	default:
		return "rank?"
	}
}

//-----------------------------------------------------------------------------
// Default Cray XC (Aries) geometry
//-----------------------------------------------------------------------------

const (
	// DefaultRouterPorts is the physical port count of one Aries router.
	DefaultRouterPorts = 48
	// DefaultNICPorts is the number of router ports reserved for NICs.
	DefaultNICPorts = 8
	// DefaultPortBudget is the number of ports left for the network fabric.
	DefaultPortBudget = DefaultRouterPorts - DefaultNICPorts
	// DefaultSlotsPerChassis is the number of router slots in one chassis.
	DefaultSlotsPerChassis = 16
	// DefaultChassisPerGroup is two cabinets of three chassis each.
	DefaultChassisPerGroup = 6
	// DefaultGroupsPerSystem is the number of groups in the default system.
	DefaultGroupsPerSystem = 2
	// DefaultLPCRank1 is the number of links per rank-1 connection.
	DefaultLPCRank1 = 1
	// DefaultLPCRank2 is the number of links per rank-2 connection.
	DefaultLPCRank2 = 3
	// DefaultLPCRank3 is the number of links per rank-3 connection.
	DefaultLPCRank3 = 1
)

const (
	// MaxRouters caps GroupsPerSystem × ChassisPerGroup × SlotsPerChassis.
	MaxRouters = 1 << 24
	// MaxPortBudget caps PortBudget; it must match the max= tag on Config.
	MaxPortBudget = 1 << 16
)
