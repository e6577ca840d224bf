// Package trajectory implements the discrete-time state machine that drives
// a single stochastic crisis trajectory from day 1 to the horizon or to one
// of the mutually exclusive terminal outcomes.
package trajectory

import (
	"math/rand"

	"crisiscast/internal/intel"
	"crisiscast/internal/priors"
	"crisiscast/internal/sampling"
)

// Config parameterizes a single trajectory. The same config is shared
// read-only by every run in an ensemble.
type Config struct {
	Horizon int
	Table   priors.Table
	Intel   *intel.Document
}

// Record is the immutable summary of one finished trajectory, the only
// thing a run hands back to the ensemble.
type Record struct {
	Outcome    Outcome
	OutcomeDay int
	Events     map[string]bool
	StressDays map[StressTier]int
	Cascades   map[string]StabilityTier
}

// Trajectory owns one run's mutable state, sampler cache and random stream.
// Runs are fully independent; nothing here is shared or synchronized.
type Trajectory struct {
	cfg     Config
	sampler *sampling.Sampler
	rng     *rand.Rand
	state   *State
	stress  map[StressTier]int
}

// New creates the trajectory for a given run index. The run's stream is
// derived deterministically from the base seed and the index, so results do
// not depend on the degree of parallelism.
func New(cfg Config, baseSeed int64, run int) *Trajectory {
	if cfg.Horizon <= 0 {
		cfg.Horizon = DefaultHorizon
	}
	rng := sampling.NewRunRNG(baseSeed, run)
	var countries []intel.Country
	if cfg.Intel != nil {
		countries = cfg.Intel.Countries
	}
	return &Trajectory{
		cfg:     cfg,
		sampler: sampling.NewSampler(cfg.Table, rng),
		rng:     rng,
		state:   NewState(countries),
		stress:  make(map[StressTier]int, 3),
	}
}

// State exposes the run's mutable state for white-box tests.
func (t *Trajectory) State() *State {
	return t.state
}

// Step advances the trajectory by one day, executing the fixed daily update
// sequence. Once a terminal outcome is set the day counter still advances
// for bookkeeping but no further stochastic decisions are made.
func (t *Trajectory) Step() {
	t.state.Day++
	if t.state.Terminal() {
		return
	}

	// Economic stress is derived deterministically from the exogenous
	// indicators before any stochastic step reads it.
	if t.cfg.Intel != nil {
		t.state.Stress = stressTier(t.cfg.Intel.Economic.StressIndex(t.state.Day))
	}
	t.stress[t.state.Stress]++

	t.stepLeaderMortality()
	t.stepProtests()
	t.stepRegimeResponse()
	t.stepDefection()
	t.stepEthnicPathway()
	t.stepExternalPosture()
	t.stepTerminalDetection()
	t.stepCascades()
}

// Run executes the full daily loop and returns the run summary. If no
// absorbing condition fires by the horizon's last day, the run resolves to
// the default status-quo-survives outcome.
func (t *Trajectory) Run() Record {
	for t.state.Day < t.cfg.Horizon {
		t.Step()
	}
	if !t.state.Terminal() {
		t.state.Outcome = OutcomeStatusQuo
		t.state.OutcomeDay = t.cfg.Horizon
	}
	return t.record()
}

// fires evaluates one daily stochastic decision. Window-based priors are
// gated on window activity first; the realized probability is drawn once per
// run (sampler cache) and converted to a constant daily hazard, which a
// fresh uniform draw is compared against. The multiplier scales the hazard
// for stress-sensitive decision points.
func (t *Trajectory) fires(key string, multiplier float64) bool {
	desc, ok := t.sampler.Descriptor(key)
	if !ok {
		return false
	}
	if !WindowActive(t.state, desc) {
		return false
	}
	h := t.sampler.DailyHazard(key) * multiplier
	if h > 1 {
		h = 1
	}
	return t.rng.Float64() < h
}

// setAnchor records the current day for an anchor, first occurrence only.
func (t *Trajectory) setAnchor(a Anchor) {
	t.state.Anchors.SetOnce(a, t.state.Day)
}

func (t *Trajectory) terminate(o Outcome) {
	t.state.Outcome = o
	t.state.OutcomeDay = t.state.Day
}

func (t *Trajectory) record() Record {
	events := make(map[string]bool, int(anchorCount))
	for a := Anchor(0); a < anchorCount; a++ {
		events[a.String()] = t.state.Anchors.IsSet(a)
	}
	cascades := make(map[string]StabilityTier, len(t.state.Countries))
	for _, c := range t.state.Countries {
		cascades[c.Name] = c.Tier
	}
	return Record{
		Outcome:    t.state.Outcome,
		OutcomeDay: t.state.OutcomeDay,
		Events:     events,
		StressDays: t.stress,
		Cascades:   cascades,
	}
}
