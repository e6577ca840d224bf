// Package intel models the intelligence input document: exogenous economic
// indicators for the primary country and the secondary-country cascade table.
// The document is produced by an external curation pipeline; this package
// only loads and validates it.
package intel

import (
	"bytes"
	"encoding/json"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/intel.schema.json
var intelSchema string

// Document is the on-disk shape of the intelligence input.
type Document struct {
	Version   string    `json:"version,omitempty"`
	Economic  Economic  `json:"economic"`
	Countries []Country `json:"countries,omitempty"`
}

// Economic holds the exogenous indicators the daily stress tier is derived
// from. Indicators are scalars over the whole horizon; discrete shocks
// (sanctions round, currency run) are expressed as per-day additions.
type Economic struct {
	InflationPct            float64 `json:"inflation_pct"`
	UnemploymentPct         float64 `json:"unemployment_pct"`
	CurrencyDepreciationPct float64 `json:"currency_depreciation_pct"`
	DailyShocks             []Shock `json:"daily_shocks,omitempty"`
}

// Shock is a one-day addition to the stress index.
type Shock struct {
	Day       int     `json:"day"`
	Magnitude float64 `json:"magnitude"`
}

// Country describes one secondary country coupled to the primary crisis.
// Coupling is one-directional: cascade rules reference priors whose windows
// are anchored to primary-country anchor days only.
type Country struct {
	Name        string        `json:"name"`
	InitialTier string        `json:"initial_tier,omitempty"`
	Cascades    []CascadeRule `json:"cascades,omitempty"`
}

// CascadeRule binds a priors key to its effect on the country's stability
// tier when the windowed hazard fires.
type CascadeRule struct {
	Key    string `json:"key"`
	Effect string `json:"effect,omitempty"` // "strain" (default) or "crisis"
}

// StressIndex returns the composite economic stress index for a given day.
// The weighting is fixed: indicator levels are normalized to [0,1]-ish scale
// by dividing percentages by 100, then combined 40/30/30.
func (e Economic) StressIndex(day int) float64 {
	idx := 0.4*e.InflationPct/100 + 0.3*e.UnemploymentPct/100 + 0.3*e.CurrencyDepreciationPct/100
	for _, s := range e.DailyShocks {
		if s.Day == day {
			idx += s.Magnitude
		}
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// CascadeKeys returns every priors key referenced by the country table, in
// document order. These become required keys for the resolver.
func (d *Document) CascadeKeys() []string {
	var keys []string
	for _, c := range d.Countries {
		for _, r := range c.Cascades {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Load reads and schema-validates an intelligence document.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intelligence document: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("intel.schema.json", strings.NewReader(intelSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("intel.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("intelligence document %s: %w", path, err)
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("intelligence document %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode intelligence document %s: %w", path, err)
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("decode intelligence document %s: unexpected trailing JSON payload", path)
	}
	return &doc, nil
}
