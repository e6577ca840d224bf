package ensemble

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutcomeStat is one terminal outcome's frequency with its bootstrap
// confidence interval.
type OutcomeStat struct {
	Probability float64 `json:"probability"`
	CILow       float64 `json:"ci_low"`
	CIHigh      float64 `json:"ci_high"`
	// MedianDay and P85Day locate when the outcome tends to land, over the
	// runs that reached it. Zero when the outcome never occurred.
	MedianDay int `json:"median_day,omitempty"`
	P85Day    int `json:"p85_day,omitempty"`
}

// CountryStat is one secondary country's cascade frequencies.
type CountryStat struct {
	StrainedFrequency float64 `json:"strained_frequency"`
	CrisisFrequency   float64 `json:"crisis_frequency"`
}

// StressSummary reports the share of evaluated run-days spent in each
// economic stress tier across the whole ensemble.
type StressSummary struct {
	StableShare    float64 `json:"stable_share"`
	PressuredShare float64 `json:"pressured_share"`
	CriticalShare  float64 `json:"critical_share"`
}

// Result is the ensemble output document. Its schema is the sole artifact
// downstream reporting tools depend on and must remain stable.
type Result struct {
	Runs     int                    `json:"runs"`
	Seed     int64                  `json:"seed"`
	Horizon  int                    `json:"horizon_days"`
	Outcomes map[string]OutcomeStat `json:"outcomes"`
	Events   map[string]float64     `json:"events"`
	Stress   StressSummary          `json:"economic_stress"`
	Cascades map[string]CountryStat `json:"regional_cascades"`
}

// WriteFile marshals the result to path. encoding/json emits map keys in
// sorted order, so equal inputs produce byte-identical documents.
func (r *Result) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
