package trajectory

import "crisiscast/internal/priors"

// anchorDay resolves a descriptor's anchor name against the run state.
// The fixed "start" anchor (or an empty anchor) is day 1; endogenous anchors
// are looked up in the anchor set and report false while unset.
func anchorDay(st *State, name string) (int, bool) {
	if name == "" || name == AnchorStart {
		return 1, true
	}
	a, ok := AnchorByName(name)
	if !ok {
		return 0, false
	}
	return st.Anchors.Day(a)
}

// WindowActive reports whether a descriptor's evaluation window is open on
// the state's current day.
//
// For window basis with anchor day s, offset o and length n, the window is
// active on exactly the days s+o .. s+o+n-1, inclusive both ends. If the
// anchor is unset the window is never active: events cannot be evaluated
// before their trigger exists. Days past the horizon are simply never
// reached, so windows spilling over the horizon truncate silently.
//
// Instant basis is active on exactly one day (anchor day plus offset); daily
// basis is active on every day.
func WindowActive(st *State, d priors.Descriptor) bool {
	switch d.Basis {
	case priors.BasisDaily:
		return true
	case priors.BasisInstant:
		day, ok := anchorDay(st, d.Anchor)
		return ok && st.Day == day+d.OffsetDays
	default: // window
		day, ok := anchorDay(st, d.Anchor)
		if !ok {
			return false
		}
		start := day + d.OffsetDays
		return st.Day >= start && st.Day <= start+d.WindowDays-1
	}
}

// ProtestsActive reports whether the protest movement still exists as a
// coherent force. Conditional events defined as "given protests persist"
// must not fire once the precondition has structurally ceased to hold,
// regardless of elapsed days — collapsed and declining are excluded.
func ProtestsActive(st *State) bool {
	switch st.Protest {
	case ProtestStable, ProtestEscalating, ProtestOrganized:
		return true
	}
	return false
}
