package priors

import "fmt"

// Dist identifies the sampling distribution for a prior.
type Dist string

const (
	// DistBetaPert concentrates mass near the mode while respecting the
	// stated low/high bounds. Standard choice for expert elicitation.
	DistBetaPert Dist = "beta_pert"
	// DistTriangular is a plain triangular distribution over low/mode/high.
	DistTriangular Dist = "triangular"
	// DistFixed always returns the mode unchanged.
	DistFixed Dist = "fixed"
)

// Basis identifies how a probability value is spread over time.
type Basis string

const (
	// BasisWindow: probability of the event occurring anywhere inside an
	// anchored window of WindowDays days. Converted to a constant daily
	// hazard at simulation time.
	BasisWindow Basis = "window"
	// BasisInstant: probability evaluated as-is on a single decision day
	// (anchor day plus offset).
	BasisInstant Basis = "instant"
	// BasisDaily: per-day probability applied on every day of the horizon.
	BasisDaily Basis = "daily"
)

// RawDescriptor is one analyst-supplied prior exactly as it appears in the
// priors document. Pointer fields distinguish "absent" from a literal zero.
type RawDescriptor struct {
	P          *float64 `json:"p,omitempty"`
	Low        *float64 `json:"low,omitempty"`
	Mode       *float64 `json:"mode,omitempty"`
	High       *float64 `json:"high,omitempty"`
	Dist       string   `json:"dist,omitempty"`
	Basis      string   `json:"basis,omitempty"`
	Anchor     string   `json:"anchor,omitempty"`
	OffsetDays int      `json:"offset_days,omitempty"`
	WindowDays int      `json:"window_days,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
}

// Descriptor is a fully resolved and validated prior. Every field is
// populated; the trajectory engine never sees a partial descriptor.
type Descriptor struct {
	Key        string  `json:"key"`
	Dist       Dist    `json:"dist"`
	Basis      Basis   `json:"basis"`
	Low        float64 `json:"low"`
	Mode       float64 `json:"mode"`
	High       float64 `json:"high"`
	Anchor     string  `json:"anchor,omitempty"`
	OffsetDays int     `json:"offset_days,omitempty"`
	WindowDays int     `json:"window_days,omitempty"`
}

// Table is the resolved prior set keyed by decision point.
type Table map[string]Descriptor

// Document is the on-disk shape of the priors input.
type Document struct {
	Version     string                   `json:"version,omitempty"`
	DefaultDist string                   `json:"default_dist,omitempty"`
	Priors      map[string]RawDescriptor `json:"priors"`
}

// Warning is a non-blocking audit finding. Warnings never stop a run; they
// are collected into the QA side document for after-the-fact review.
type Warning struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Audit collects the resolver's non-blocking findings.
type Audit struct {
	Warnings []Warning `json:"warnings"`
}

func (a *Audit) warnf(key, format string, args ...any) {
	a.Warnings = append(a.Warnings, Warning{Key: key, Message: fmt.Sprintf(format, args...)})
}

// QADocument is the resolved-priors side artifact written next to the
// forecast result. External reviewers audit the run from this file alone.
type QADocument struct {
	Warnings []Warning `json:"warnings"`
	Resolved Table     `json:"resolved_priors"`
}
