package trajectory

// Anchor enumerates the endogenous trigger events whose first-occurrence day
// parameterizes window-based priors. An anchor is set at most once per run,
// the first time its trigger condition becomes true, and is never cleared.
type Anchor int

const (
	AnchorEscalationStart Anchor = iota
	AnchorCrackdownStart
	AnchorConcessionsStart
	AnchorDefection
	AnchorEthnicCoordination
	AnchorEthnicUprising
	AnchorLeaderDeath
	AnchorCollapse
	AnchorKineticAction
	anchorCount
)

// AnchorStart is the name of the fixed anchor pinned to simulation day 1.
// It is not part of the Anchor enumeration because it is never "set".
const AnchorStart = "start"

var anchorNames = [anchorCount]string{
	"escalation_start",
	"crackdown_start",
	"concessions_start",
	"defection",
	"ethnic_coordination",
	"ethnic_uprising",
	"leader_death",
	"collapse",
	"kinetic_action",
}

func (a Anchor) String() string {
	if a < 0 || a >= anchorCount {
		return "unknown"
	}
	return anchorNames[a]
}

// AnchorByName maps a priors anchor name to the enumeration.
func AnchorByName(name string) (Anchor, bool) {
	for i, n := range anchorNames {
		if n == name {
			return Anchor(i), true
		}
	}
	return 0, false
}

// KnownAnchors returns the full set of valid anchor names for the resolver,
// including the fixed "start" anchor.
func KnownAnchors() map[string]bool {
	known := make(map[string]bool, anchorCount+1)
	known[AnchorStart] = true
	for _, n := range anchorNames {
		known[n] = true
	}
	return known
}

// AnchorSet records the day each trigger event first occurred. Days are
// 1-based; zero means the anchor is unset. The fixed-size array plus the
// single set-once accessor makes the immutability invariant structural
// rather than a convention scattered through the update steps.
type AnchorSet [anchorCount]int

// SetOnce records the anchor day if the anchor is still unset. Calling it
// again with the anchor already set is a no-op and reports false.
func (s *AnchorSet) SetOnce(a Anchor, day int) bool {
	if s[a] != 0 {
		return false
	}
	s[a] = day
	return true
}

// Day returns the anchor day and whether the anchor has been set.
func (s *AnchorSet) Day(a Anchor) (int, bool) {
	return s[a], s[a] != 0
}

// IsSet reports whether the trigger event has occurred in this run.
func (s *AnchorSet) IsSet(a Anchor) bool {
	return s[a] != 0
}
