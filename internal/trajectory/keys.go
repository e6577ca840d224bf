package trajectory

import "crisiscast/internal/priors"

// Priors keys for the engine's fixed set of decision points. The set is
// enumerated, not dynamic: the resolver fails fast before any simulation
// starts if one is absent, rather than defaulting silently.
const (
	KeyLeaderDeath           = "leader_death"
	KeyProtestEscalation     = "protest_escalation"
	KeyProtestDeescalation   = "protest_deescalation"
	KeyProtestOrganization   = "protest_organization"
	KeyCrackdown             = "crackdown_given_escalation"
	KeyConcessions           = "concessions_given_escalation"
	KeyDefectionCrackdown    = "defection_given_crackdown"
	KeyDefectionConcessions  = "defection_given_concessions"
	KeyEthnicCoordination    = "ethnic_coordination_given_escalation"
	KeyEthnicUprising        = "ethnic_uprising_given_coordination"
	KeyCollapseDefection     = "collapse_given_defection"
	KeyCollapseLeaderDeath   = "collapse_given_leader_death"
	KeyManagedTransition     = "managed_transition_given_concessions"
	KeyExternalInformational = "external_informational_given_escalation"
	KeyExternalEconomic      = "external_economic_given_crackdown"
	KeyExternalCovert        = "external_covert_given_defection"
	KeyExternalCyber         = "external_cyber_given_crackdown"
	KeyExternalKinetic       = "external_kinetic_given_defection"
	KeyExternalGround        = "external_ground_given_kinetic"
)

// RequiredKeys returns every priors key the engine reads, excluding
// secondary-country cascade keys, which come from the intelligence document.
func RequiredKeys() []string {
	return []string{
		KeyLeaderDeath,
		KeyProtestEscalation,
		KeyProtestDeescalation,
		KeyProtestOrganization,
		KeyCrackdown,
		KeyConcessions,
		KeyDefectionCrackdown,
		KeyDefectionConcessions,
		KeyEthnicCoordination,
		KeyEthnicUprising,
		KeyCollapseDefection,
		KeyCollapseLeaderDeath,
		KeyManagedTransition,
		KeyExternalInformational,
		KeyExternalEconomic,
		KeyExternalCovert,
		KeyExternalCyber,
		KeyExternalKinetic,
		KeyExternalGround,
	}
}

// Registry builds the resolver registry for a run: engine keys plus the
// cascade keys referenced by the intelligence document's country table.
func Registry(cascadeKeys []string, horizon int) priors.Registry {
	return priors.Registry{
		Required: append(RequiredKeys(), cascadeKeys...),
		Anchors:  KnownAnchors(),
		Horizon:  horizon,
	}
}
