package trajectory

import "crisiscast/internal/intel"

// DefaultHorizon is the fixed simulation horizon in days. The horizon is the
// only bounded resource inside a trajectory and guarantees termination.
const DefaultHorizon = 90

// RegimePosture is the primary regime's response state.
type RegimePosture string

const (
	RegimeStatusQuo   RegimePosture = "status_quo"
	RegimeEscalating  RegimePosture = "escalating"
	RegimeCrackdown   RegimePosture = "crackdown"
	RegimeConcessions RegimePosture = "concessions"
	RegimeCollapsed   RegimePosture = "collapsed"
)

// ProtestIntensity is the protest movement's state.
type ProtestIntensity string

const (
	ProtestDeclining  ProtestIntensity = "declining"
	ProtestStable     ProtestIntensity = "stable"
	ProtestEscalating ProtestIntensity = "escalating"
	ProtestOrganized  ProtestIntensity = "organized"
	ProtestCollapsed  ProtestIntensity = "collapsed"
)

// ExternalPosture is the external actor's escalation ladder. Public
// commitment to escalation is politically costly to reverse, so the ladder
// only advances, never retreats, once entered.
type ExternalPosture int

const (
	ExternalNone ExternalPosture = iota
	ExternalRhetorical
	ExternalInformational
	ExternalEconomic
	ExternalCovert
	ExternalCyber
	ExternalKinetic
	ExternalGround
)

var externalNames = []string{
	"none", "rhetorical", "informational", "economic", "covert", "cyber", "kinetic", "ground",
}

func (e ExternalPosture) String() string {
	if int(e) < 0 || int(e) >= len(externalNames) {
		return "unknown"
	}
	return externalNames[e]
}

// StressTier is the economic stress level derived each day from the
// exogenous indicators. It modifies downstream hazards multiplicatively.
type StressTier string

const (
	StressStable    StressTier = "stable"
	StressPressured StressTier = "pressured"
	StressCritical  StressTier = "critical"
)

// Multiplier returns the hazard multiplier applied to stress-sensitive
// decision points (protest escalation, defection, collapse).
func (s StressTier) Multiplier() float64 {
	switch s {
	case StressPressured:
		return 1.15
	case StressCritical:
		return 1.3
	default:
		return 1.0
	}
}

// stressTier maps the composite stress index onto the fixed thresholds.
func stressTier(index float64) StressTier {
	switch {
	case index < 0.35:
		return StressStable
	case index < 0.6:
		return StressPressured
	default:
		return StressCritical
	}
}

// StabilityTier is a secondary country's stability state. Higher is worse;
// cascade effects only move the tier upward.
type StabilityTier int

const (
	TierStable StabilityTier = iota
	TierStrained
	TierCrisis
)

var tierNames = []string{"stable", "strained", "crisis"}

func (t StabilityTier) String() string {
	if int(t) < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

func tierByName(name string) StabilityTier {
	for i, n := range tierNames {
		if n == name {
			return StabilityTier(i)
		}
	}
	return TierStable
}

// Outcome is a terminal, mutually exclusive absorbing state. Once set, no
// further state mutation happens for the run.
type Outcome string

const (
	OutcomeCollapse          Outcome = "regime_collapse"
	OutcomeFragmentation     Outcome = "state_fragmentation"
	OutcomeManagedTransition Outcome = "managed_transition"
	OutcomeSuppression       Outcome = "protests_suppressed"
	OutcomeStatusQuo         Outcome = "status_quo_survives"
)

// Outcomes lists every terminal tag in a fixed order for aggregation.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeCollapse,
		OutcomeFragmentation,
		OutcomeManagedTransition,
		OutcomeSuppression,
		OutcomeStatusQuo,
	}
}

// CountryState is one secondary country's mutable per-run state.
type CountryState struct {
	Name string
	Tier StabilityTier
}

// State is the per-run mutable trajectory state, mutated in place across the
// daily loop. One State per run; never shared.
type State struct {
	Day        int
	Regime     RegimePosture
	Protest    ProtestIntensity
	External   ExternalPosture
	Stress     StressTier
	Anchors    AnchorSet
	Countries  []CountryState
	Outcome    Outcome
	OutcomeDay int
}

// NewState builds the day-zero state. Protests are ongoing at simulation
// start; that is what makes the scenario a crisis.
func NewState(countries []intel.Country) *State {
	st := &State{
		Regime:   RegimeStatusQuo,
		Protest:  ProtestStable,
		External: ExternalNone,
		Stress:   StressStable,
	}
	for _, c := range countries {
		st.Countries = append(st.Countries, CountryState{
			Name: c.Name,
			Tier: tierByName(c.InitialTier),
		})
	}
	return st
}

// Terminal reports whether an absorbing outcome has been reached.
func (s *State) Terminal() bool {
	return s.Outcome != ""
}
