// Package sampling resolves analyst probabilities into per-run realized
// values and converts window probabilities into calibrated daily hazards.
package sampling

import (
	"fmt"
	"math/rand"

	"crisiscast/internal/priors"
)

// Sampler draws one realized probability per key per run and caches it for
// the run's lifetime. Parameter uncertainty (how confident the analyst is in
// 8% vs 12%) is resolved once per run; day-to-day stochastic outcomes are
// resolved separately by comparing fresh uniform draws against the derived
// daily hazard. The two sources of randomness must not be conflated.
//
// The cache is owned by one trajectory; there is no process-wide state.
type Sampler struct {
	table priors.Table
	rng   *rand.Rand
	cache map[string]float64
}

// NewSampler creates a sampler over a resolved table using the run's stream.
func NewSampler(table priors.Table, rng *rand.Rand) *Sampler {
	return &Sampler{
		table: table,
		rng:   rng,
		cache: make(map[string]float64, len(table)),
	}
}

// Sample returns the realized probability for key, drawing it on first use.
// Keys are validated by the resolver before any trajectory starts, so an
// unknown key here is a programming error, not bad input.
func (s *Sampler) Sample(key string) float64 {
	if v, ok := s.cache[key]; ok {
		return v
	}
	desc, ok := s.table[key]
	if !ok {
		panic(fmt.Sprintf("sampling: key %q absent from resolved priors table", key))
	}
	v := Draw(desc, s.rng)
	s.cache[key] = v
	return v
}

// DailyHazard returns the per-day probability for key: window-based priors
// are converted via the constant-hazard identity, daily and instant priors
// use the realized value as-is.
func (s *Sampler) DailyHazard(key string) float64 {
	p := s.Sample(key)
	if d := s.table[key]; d.Basis == priors.BasisWindow {
		return DailyHazard(p, d.WindowDays)
	}
	return clamp01(p)
}

// Descriptor exposes the resolved descriptor for a key so callers can
// evaluate window activity without a second table.
func (s *Sampler) Descriptor(key string) (priors.Descriptor, bool) {
	d, ok := s.table[key]
	return d, ok
}
