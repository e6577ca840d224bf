package priors

import (
	"strings"
	"testing"
)

func f(v float64) *float64 { return &v }

func testRegistry() Registry {
	return Registry{
		Required: []string{"crackdown_given_escalation"},
		Anchors: map[string]bool{
			"start":            true,
			"escalation_start": true,
			"crackdown_start":  true,
		},
		Horizon: 90,
	}
}

func TestResolveTable_Defaulting(t *testing.T) {
	doc := &Document{Priors: map[string]RawDescriptor{
		"crackdown_given_escalation": {
			Low: f(0.2), Mode: f(0.4), High: f(0.7),
			Anchor: "escalation_start", WindowDays: 14,
		},
	}}

	table, _, err := ResolveTable(doc, testRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := table["crackdown_given_escalation"]
	if d.Dist != DistBetaPert {
		t.Errorf("dist = %q, want default beta_pert", d.Dist)
	}
	if d.Basis != BasisWindow {
		t.Errorf("basis = %q, want window inferred from window_days", d.Basis)
	}
}

func TestResolveTable_PointValueDefaults(t *testing.T) {
	doc := &Document{Priors: map[string]RawDescriptor{
		"crackdown_given_escalation": {
			P: f(0.25), Anchor: "escalation_start", WindowDays: 7,
		},
	}}

	table, _, err := ResolveTable(doc, testRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := table["crackdown_given_escalation"]
	if d.Dist != DistFixed {
		t.Errorf("bare point value should resolve to fixed, got %q", d.Dist)
	}
	if d.Mode != 0.25 || d.Low != 0.25 || d.High != 0.25 {
		t.Errorf("mode should default to point value: %+v", d)
	}
}

func TestResolveTable_HardErrors(t *testing.T) {
	cases := []struct {
		name    string
		raw     RawDescriptor
		wantErr string
	}{
		{
			name:    "probability out of range",
			raw:     RawDescriptor{Mode: f(1.3), Anchor: "start", WindowDays: 7},
			wantErr: "outside [0,1]",
		},
		{
			name:    "non-monotone triple",
			raw:     RawDescriptor{Low: f(0.5), Mode: f(0.3), High: f(0.8), Anchor: "start", WindowDays: 7},
			wantErr: "monotone",
		},
		{
			name:    "window without anchor",
			raw:     RawDescriptor{Mode: f(0.4), Basis: "window", WindowDays: 7},
			wantErr: "requires an anchor",
		},
		{
			name:    "window length zero",
			raw:     RawDescriptor{Mode: f(0.4), Basis: "window", Anchor: "start"},
			wantErr: "window_days > 0",
		},
		{
			name:    "unknown anchor",
			raw:     RawDescriptor{Mode: f(0.4), Anchor: "no_such_event", WindowDays: 7},
			wantErr: "unknown anchor",
		},
		{
			name:    "no value at all",
			raw:     RawDescriptor{Anchor: "start", WindowDays: 7},
			wantErr: "neither p nor mode",
		},
		{
			name:    "unknown distribution",
			raw:     RawDescriptor{Mode: f(0.4), Dist: "gaussian", Anchor: "start", WindowDays: 7},
			wantErr: "unknown distribution",
		},
	}

	for _, tc := range cases {
		doc := &Document{Priors: map[string]RawDescriptor{
			"crackdown_given_escalation": tc.raw,
		}}
		_, _, err := ResolveTable(doc, testRegistry())
		if err == nil {
			t.Errorf("%s: expected hard error, got none", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestResolveTable_MissingRequiredKey(t *testing.T) {
	doc := &Document{Priors: map[string]RawDescriptor{}}
	_, _, err := ResolveTable(doc, testRegistry())
	if err == nil || !strings.Contains(err.Error(), "required key is missing") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestResolveTable_SoftWarnings(t *testing.T) {
	doc := &Document{Priors: map[string]RawDescriptor{
		"crackdown_given_escalation": {
			Mode: f(0.4), Anchor: "escalation_start", WindowDays: 14,
		},
		// Name hints 30 days but the field says 45.
		"defection_30d_given_crackdown": {
			Mode: f(0.1), Anchor: "crackdown_start", WindowDays: 45,
		},
		// Window can spill past the 90-day horizon.
		"late_collapse_check": {
			Mode: f(0.2), Anchor: "crackdown_start", OffsetDays: 30, WindowDays: 90,
		},
	}}

	table, audit, err := ResolveTable(doc, testRegistry())
	if err != nil {
		t.Fatalf("soft findings must never block: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("all keys should resolve, got %d", len(table))
	}

	wantFragments := []string{
		"suggests a 30-day window but window_days is 45",
		"can extend past the 90-day horizon",
		"not used by any decision point",
	}
	for _, frag := range wantFragments {
		found := false
		for _, w := range audit.Warnings {
			if strings.Contains(w.Message, frag) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing warning containing %q in %v", frag, audit.Warnings)
		}
	}
}
