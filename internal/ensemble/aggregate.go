package ensemble

import (
	"math"
	"math/rand"
	"slices"

	"crisiscast/internal/sampling"
	"crisiscast/internal/trajectory"
)

// bootstrapResamples is the fixed resample count for the percentile
// bootstrap on outcome frequencies.
const bootstrapResamples = 1000

// aggregate reduces the finished records into the result document. It runs
// single-threaded after all trajectories complete; no streaming aggregation.
func aggregate(records []trajectory.Record, cfg Config) *Result {
	n := len(records)

	// 1. Outcome counts and landing days
	counts := make(map[trajectory.Outcome]int, len(trajectory.Outcomes()))
	days := make(map[trajectory.Outcome][]int, len(trajectory.Outcomes()))
	for _, rec := range records {
		counts[rec.Outcome]++
		days[rec.Outcome] = append(days[rec.Outcome], rec.OutcomeDay)
	}

	// 2. Percentile bootstrap over whole-record resamples. All outcome tags
	// share each resample, preserving their anti-correlation. The bootstrap
	// stream is seeded one past the last run index so it never collides with
	// a trajectory stream and the document stays byte-reproducible.
	ci := bootstrapOutcomeCIs(records, sampling.RunSeed(cfg.Seed, n))

	outcomes := make(map[string]OutcomeStat, len(counts))
	for _, tag := range trajectory.Outcomes() {
		stat := OutcomeStat{
			Probability: round4(float64(counts[tag]) / float64(n)),
			CILow:       round4(ci[tag][0]),
			CIHigh:      round4(ci[tag][1]),
		}
		if ds := days[tag]; len(ds) > 0 {
			slices.Sort(ds)
			stat.MedianDay = ds[int(float64(len(ds))*0.50)]
			stat.P85Day = ds[int(float64(len(ds))*0.85)]
		}
		outcomes[string(tag)] = stat
	}

	// 3. Event-flag occurrence frequencies
	eventCounts := make(map[string]int)
	for _, rec := range records {
		for name, happened := range rec.Events {
			if happened {
				eventCounts[name]++
			}
		}
	}
	// Every record carries the full flag set, so the first one names them all.
	events := make(map[string]float64, len(records[0].Events))
	for name := range records[0].Events {
		events[name] = round4(float64(eventCounts[name]) / float64(n))
	}

	// 4. Stress tier shares over evaluated run-days
	var stable, pressured, critical int
	for _, rec := range records {
		stable += rec.StressDays[trajectory.StressStable]
		pressured += rec.StressDays[trajectory.StressPressured]
		critical += rec.StressDays[trajectory.StressCritical]
	}
	var stress StressSummary
	if total := stable + pressured + critical; total > 0 {
		stress = StressSummary{
			StableShare:    round4(float64(stable) / float64(total)),
			PressuredShare: round4(float64(pressured) / float64(total)),
			CriticalShare:  round4(float64(critical) / float64(total)),
		}
	}

	// 5. Regional cascade frequencies
	strainedCounts := make(map[string]int)
	crisisCounts := make(map[string]int)
	for _, rec := range records {
		for country, tier := range rec.Cascades {
			if tier >= trajectory.TierStrained {
				strainedCounts[country]++
			}
			if tier >= trajectory.TierCrisis {
				crisisCounts[country]++
			}
		}
	}
	cascades := make(map[string]CountryStat, len(strainedCounts))
	if len(records) > 0 {
		for country := range records[0].Cascades {
			cascades[country] = CountryStat{
				StrainedFrequency: round4(float64(strainedCounts[country]) / float64(n)),
				CrisisFrequency:   round4(float64(crisisCounts[country]) / float64(n)),
			}
		}
	}

	return &Result{
		Runs:     n,
		Seed:     cfg.Seed,
		Horizon:  cfg.Horizon,
		Outcomes: outcomes,
		Events:   events,
		Stress:   stress,
		Cascades: cascades,
	}
}

// bootstrapOutcomeCIs computes 95% percentile-bootstrap intervals for every
// outcome frequency.
func bootstrapOutcomeCIs(records []trajectory.Record, seed int64) map[trajectory.Outcome][2]float64 {
	n := len(records)
	tags := trajectory.Outcomes()
	rng := rand.New(rand.NewSource(seed))

	fractions := make(map[trajectory.Outcome][]float64, len(tags))
	for _, tag := range tags {
		fractions[tag] = make([]float64, 0, bootstrapResamples)
	}

	resampleCounts := make(map[trajectory.Outcome]int, len(tags))
	for b := 0; b < bootstrapResamples; b++ {
		for _, tag := range tags {
			resampleCounts[tag] = 0
		}
		for i := 0; i < n; i++ {
			resampleCounts[records[rng.Intn(n)].Outcome]++
		}
		for _, tag := range tags {
			fractions[tag] = append(fractions[tag], float64(resampleCounts[tag])/float64(n))
		}
	}

	ci := make(map[trajectory.Outcome][2]float64, len(tags))
	for _, tag := range tags {
		fs := fractions[tag]
		slices.Sort(fs)
		lo := fs[int(float64(bootstrapResamples)*0.025)]
		hi := fs[int(float64(bootstrapResamples)*0.975)]
		ci[tag] = [2]float64{lo, hi}
	}
	return ci
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
