package trajectory

// The daily update sequence. Order is fixed and load-bearing: each step may
// read state mutated by earlier steps on the same day, never by later ones.

// stepLeaderMortality checks the unconditional leader-death hazard. It runs
// every day over the full horizon regardless of other state.
func (t *Trajectory) stepLeaderMortality() {
	if t.state.Anchors.IsSet(AnchorLeaderDeath) {
		return
	}
	if t.fires(KeyLeaderDeath, 1) {
		t.setAnchor(AnchorLeaderDeath)
	}
}

// stepProtests updates protest intensity. Economic stress raises the
// escalation hazard; an ongoing crackdown raises the de-escalation hazard.
// The first entry into escalating or organized sets the escalation anchor.
func (t *Trajectory) stepProtests() {
	st := t.state
	if st.Protest == ProtestCollapsed {
		return
	}

	switch {
	// Organization is a separate windowed pathway out of escalation.
	case st.Protest == ProtestEscalating && t.fires(KeyProtestOrganization, 1):
		st.Protest = ProtestOrganized
	case t.fires(KeyProtestEscalation, st.Stress.Multiplier()):
		st.Protest = escalateProtest(st.Protest)
	default:
		suppression := 1.0
		if st.Regime == RegimeCrackdown {
			suppression = 1.5
		}
		if t.fires(KeyProtestDeescalation, suppression) {
			st.Protest = deescalateProtest(st.Protest)
		}
	}

	if st.Protest == ProtestEscalating || st.Protest == ProtestOrganized {
		t.setAnchor(AnchorEscalationStart)
		if st.Regime == RegimeStatusQuo {
			st.Regime = RegimeEscalating
		}
	}
}

func escalateProtest(p ProtestIntensity) ProtestIntensity {
	switch p {
	case ProtestDeclining:
		return ProtestStable
	case ProtestStable:
		return ProtestEscalating
	case ProtestEscalating:
		return ProtestOrganized
	}
	return p
}

func deescalateProtest(p ProtestIntensity) ProtestIntensity {
	switch p {
	case ProtestOrganized:
		return ProtestEscalating
	case ProtestEscalating:
		return ProtestStable
	case ProtestStable:
		return ProtestDeclining
	case ProtestDeclining:
		return ProtestCollapsed
	}
	return p
}

// stepRegimeResponse resolves the regime's entry into crackdown or
// concessions. Both windows are anchored to the protest-escalation anchor,
// so neither can fire before escalation exists. Entering either response
// sets its own anchor.
func (t *Trajectory) stepRegimeResponse() {
	st := t.state
	switch st.Regime {
	case RegimeCrackdown, RegimeConcessions, RegimeCollapsed:
		return
	}
	if t.fires(KeyCrackdown, 1) {
		st.Regime = RegimeCrackdown
		t.setAnchor(AnchorCrackdownStart)
		return
	}
	if t.fires(KeyConcessions, 1) {
		st.Regime = RegimeConcessions
		t.setAnchor(AnchorConcessionsStart)
	}
}

// stepDefection checks security-force defection, gated by window activity
// (anchored to whichever regime response occurred) and by the protests-
// still-active condition.
func (t *Trajectory) stepDefection() {
	st := t.state
	if st.Anchors.IsSet(AnchorDefection) {
		return
	}
	if !ProtestsActive(st) {
		return
	}
	mult := st.Stress.Multiplier()
	if t.fires(KeyDefectionCrackdown, mult) || t.fires(KeyDefectionConcessions, mult) {
		t.setAnchor(AnchorDefection)
	}
}

// stepEthnicPathway runs the fragmentation pathway: a coordination event,
// then a separate windowed uprising declaration anchored to it.
func (t *Trajectory) stepEthnicPathway() {
	st := t.state
	if !st.Anchors.IsSet(AnchorEthnicCoordination) {
		if t.fires(KeyEthnicCoordination, 1) {
			t.setAnchor(AnchorEthnicCoordination)
		}
		return
	}
	if !st.Anchors.IsSet(AnchorEthnicUprising) && t.fires(KeyEthnicUprising, 1) {
		t.setAnchor(AnchorEthnicUprising)
	}
}

// externalRungs maps each window-gated trigger to the rung it advances the
// ladder to. Evaluated low to high; a rung already reached is skipped.
var externalRungs = []struct {
	key    string
	target ExternalPosture
}{
	{KeyExternalInformational, ExternalInformational},
	{KeyExternalEconomic, ExternalEconomic},
	{KeyExternalCovert, ExternalCovert},
	{KeyExternalCyber, ExternalCyber},
	{KeyExternalKinetic, ExternalKinetic},
	{KeyExternalGround, ExternalGround},
}

// stepExternalPosture advances the external actor's monotone ladder. The
// ladder never regresses; rhetorical posture follows automatically once the
// protest escalation anchor exists.
func (t *Trajectory) stepExternalPosture() {
	st := t.state
	if st.External < ExternalRhetorical && st.Anchors.IsSet(AnchorEscalationStart) {
		st.External = ExternalRhetorical
	}
	for _, r := range externalRungs {
		if st.External >= r.target {
			continue
		}
		if t.fires(r.key, 1) {
			st.External = r.target
		}
	}
	if st.External >= ExternalKinetic {
		t.setAnchor(AnchorKineticAction)
	}
}

// stepTerminalDetection evaluates the absorbing conditions in fixed priority
// order: collapse, fragmentation, managed transition, suppression. The first
// one that holds sets the outcome tag and day; every later step and day is a
// no-op for this run.
func (t *Trajectory) stepTerminalDetection() {
	st := t.state
	mult := st.Stress.Multiplier()

	if t.fires(KeyCollapseDefection, mult) || t.fires(KeyCollapseLeaderDeath, mult) {
		st.Regime = RegimeCollapsed
		t.setAnchor(AnchorCollapse)
		t.terminate(OutcomeCollapse)
		return
	}
	if st.Anchors.IsSet(AnchorEthnicUprising) {
		t.terminate(OutcomeFragmentation)
		return
	}
	if t.fires(KeyManagedTransition, 1) {
		t.terminate(OutcomeManagedTransition)
		return
	}
	if st.Regime == RegimeCrackdown && st.Protest == ProtestCollapsed {
		t.terminate(OutcomeSuppression)
	}
}

// stepCascades evaluates the secondary-country coupling. It runs after the
// primary-country steps so cascades respond only to events resolved earlier
// in the same day's order, never to same-day future state. Coupling is
// one-directional and reuses the same window/anchor/hazard machinery.
func (t *Trajectory) stepCascades() {
	if t.cfg.Intel == nil {
		return
	}
	for i := range t.state.Countries {
		c := &t.state.Countries[i]
		if c.Tier == TierCrisis {
			continue
		}
		for _, rule := range t.cfg.Intel.Countries[i].Cascades {
			if !t.fires(rule.Key, 1) {
				continue
			}
			target := TierStrained
			if rule.Effect == "crisis" {
				target = TierCrisis
			}
			if target > c.Tier {
				c.Tier = target
			}
		}
	}
}
