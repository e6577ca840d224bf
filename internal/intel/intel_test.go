package intel

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestStressIndex_Weighting(t *testing.T) {
	e := Economic{InflationPct: 50, UnemploymentPct: 20, CurrencyDepreciationPct: 30}
	// 0.4*0.5 + 0.3*0.2 + 0.3*0.3 = 0.35
	if got := e.StressIndex(1); math.Abs(got-0.35) > 1e-12 {
		t.Errorf("stress index = %v, want 0.35", got)
	}
}

func TestStressIndex_ShocksApplyOnTheirDayOnly(t *testing.T) {
	e := Economic{
		InflationPct: 10,
		DailyShocks:  []Shock{{Day: 30, Magnitude: 0.5}},
	}
	base := e.StressIndex(29)
	shocked := e.StressIndex(30)
	if math.Abs(shocked-base-0.5) > 1e-12 {
		t.Errorf("shock day index = %v, base = %v, want difference 0.5", shocked, base)
	}
	if e.StressIndex(31) != base {
		t.Error("shock leaked past its day")
	}
}

func TestStressIndex_NeverNegative(t *testing.T) {
	e := Economic{DailyShocks: []Shock{{Day: 1, Magnitude: -2}}}
	if got := e.StressIndex(1); got != 0 {
		t.Errorf("stress index = %v, want clamp at 0", got)
	}
}

func TestLoad_ValidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intel.json")
	content := `{
		"version": "2026-08",
		"economic": {
			"inflation_pct": 42.5,
			"unemployment_pct": 11.2,
			"currency_depreciation_pct": 35.0,
			"daily_shocks": [{"day": 14, "magnitude": 0.2}]
		},
		"countries": [
			{
				"name": "iraq",
				"initial_tier": "strained",
				"cascades": [{"key": "iraq_crisis_given_collapse", "effect": "crisis"}]
			}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Economic.InflationPct != 42.5 {
		t.Errorf("inflation = %v, want 42.5", doc.Economic.InflationPct)
	}
	keys := doc.CascadeKeys()
	if len(keys) != 1 || keys[0] != "iraq_crisis_given_collapse" {
		t.Errorf("cascade keys = %v", keys)
	}
}

func TestLoad_SchemaRejectsBadTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intel.json")
	content := `{
		"economic": {"inflation_pct": 10},
		"countries": [{"name": "iraq", "initial_tier": "wobbly"}]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema error for unknown tier name")
	}
}
