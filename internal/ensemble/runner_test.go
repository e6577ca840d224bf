package ensemble

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"crisiscast/internal/intel"
	"crisiscast/internal/priors"
	"crisiscast/internal/trajectory"
)

// stochasticTable gives every decision point a small hazard so ensembles
// exercise real randomness without always absorbing early.
func stochasticTable() priors.Table {
	table := make(priors.Table)
	for _, key := range trajectory.RequiredKeys() {
		table[key] = priors.Descriptor{
			Key: key, Dist: priors.DistFixed, Basis: priors.BasisDaily,
			Low: 0.01, Mode: 0.01, High: 0.01,
		}
	}
	table[trajectory.KeyCrackdown] = priors.Descriptor{
		Key: trajectory.KeyCrackdown, Dist: priors.DistBetaPert, Basis: priors.BasisWindow,
		Low: 0.3, Mode: 0.5, High: 0.8, Anchor: "escalation_start", WindowDays: 14,
	}
	return table
}

func testIntel() *intel.Document {
	return &intel.Document{
		Economic: intel.Economic{InflationPct: 45, UnemploymentPct: 12, CurrencyDepreciationPct: 30},
		Countries: []intel.Country{
			{Name: "iraq", Cascades: []intel.CascadeRule{{Key: "iraq_crisis_given_collapse", Effect: "crisis"}}},
		},
	}
}

func withCascadeKeys(table priors.Table) priors.Table {
	table["iraq_crisis_given_collapse"] = priors.Descriptor{
		Key: "iraq_crisis_given_collapse", Dist: priors.DistFixed, Basis: priors.BasisWindow,
		Low: 0.45, Mode: 0.45, High: 0.45, Anchor: "collapse", WindowDays: 30,
	}
	return table
}

func runOnce(t *testing.T, workers int) []byte {
	t.Helper()
	r := NewRunner(Config{Runs: 200, Seed: 42, Workers: workers}, withCascadeKeys(stochasticTable()), testIntel())
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRun_ByteReproducible(t *testing.T) {
	a := runOnce(t, 4)
	b := runOnce(t, 4)
	if string(a) != string(b) {
		t.Error("identical seed and inputs produced different result documents")
	}
}

func TestRun_IndependentOfWorkerCount(t *testing.T) {
	serial := runOnce(t, 1)
	parallel := runOnce(t, 8)
	if diff := cmp.Diff(string(serial), string(parallel)); diff != "" {
		t.Errorf("worker count changed the result (-serial +parallel):\n%s", diff)
	}
}

func TestRun_ProbabilitiesSumToOne(t *testing.T) {
	r := NewRunner(Config{Runs: 500, Seed: 7, Workers: 4}, withCascadeKeys(stochasticTable()), testIntel())
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, stat := range res.Outcomes {
		sum += stat.Probability
	}
	// Rounding to 4 decimals can shift the total slightly.
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("outcome probabilities sum to %v, want 1", sum)
	}

	for tag, stat := range res.Outcomes {
		if stat.CILow > stat.Probability || stat.CIHigh < stat.Probability {
			t.Errorf("%s: point %v outside CI [%v, %v]", tag, stat.Probability, stat.CILow, stat.CIHigh)
		}
	}
}

func TestRun_RejectsNonPositiveRuns(t *testing.T) {
	r := NewRunner(Config{Runs: 0, Seed: 1}, stochasticTable(), nil)
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("expected error for zero runs")
	}
}
