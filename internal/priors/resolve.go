package priors

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Registry describes what the trajectory engine expects from a priors table.
// The engine's decision points are a fixed enumeration, so the full key set
// is known before any trajectory runs.
type Registry struct {
	Required []string        // keys that must resolve or the whole run aborts
	Anchors  map[string]bool // valid anchor names, including the fixed "start"
	Horizon  int             // simulation horizon in days
}

// windowNamePattern matches a window-length hint embedded in a key name,
// e.g. "crackdown_within_14d" or "defection_30d_post_crackdown".
var windowNamePattern = regexp.MustCompile(`_(\d+)d(_|$)`)

// ResolveTable normalizes and validates a raw priors document against the
// registry. Hard validation failures abort before any trajectory runs: the
// returned error joins every failure found, and no table is returned. Soft
// findings are collected into the Audit and never block execution.
//
// This function never touches random state; sampling happens per run.
func ResolveTable(doc *Document, reg Registry) (Table, *Audit, error) {
	defaultDist := DistBetaPert
	if doc.DefaultDist != "" {
		d, err := parseDist(doc.DefaultDist)
		if err != nil {
			return nil, nil, fmt.Errorf("default_dist: %w", err)
		}
		defaultDist = d
	}

	table := make(Table, len(doc.Priors))
	audit := &Audit{Warnings: []Warning{}}
	var errs []error

	// Sorted key order keeps error and warning output stable across runs.
	keys := make([]string, 0, len(doc.Priors))
	for k := range doc.Priors {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		desc, err := resolveOne(key, doc.Priors[key], defaultDist, reg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		table[key] = desc
		auditOne(audit, desc, reg)
	}

	// Required keys must be present: the engine depends on them, and
	// defaulting a missing decision point silently is judged strictly
	// worse than a crash.
	for _, req := range reg.Required {
		if _, ok := table[req]; !ok {
			// A key present in the document but absent from the table
			// already produced a resolution error above.
			if _, present := doc.Priors[req]; !present {
				errs = append(errs, fmt.Errorf("%s: required key is missing from the priors document", req))
			}
		}
	}

	// Keys the engine never reads are legitimate (analysts keep context
	// priors in the same document) but worth flagging.
	requiredSet := make(map[string]bool, len(reg.Required))
	for _, req := range reg.Required {
		requiredSet[req] = true
	}
	for _, key := range keys {
		if !requiredSet[key] {
			audit.warnf(key, "key is not used by any decision point in the current engine")
		}
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return table, audit, nil
}

// resolveOne fills defaults and validates a single descriptor.
func resolveOne(key string, raw RawDescriptor, defaultDist Dist, reg Registry) (Descriptor, error) {
	// 1. Resolve the central value. Mode defaults to the point value.
	var mode float64
	switch {
	case raw.Mode != nil:
		mode = *raw.Mode
	case raw.P != nil:
		mode = *raw.P
	default:
		return Descriptor{}, fmt.Errorf("%s: neither p nor mode is given", key)
	}

	// 2. Bounds default to the mode (degenerate interval).
	low, high := mode, mode
	if raw.Low != nil {
		low = *raw.Low
	}
	if raw.High != nil {
		high = *raw.High
	}

	// 3. Distribution kind. A bare point value with no bounds is fixed;
	// anything with bounds takes the configured default.
	var dist Dist
	switch {
	case raw.Dist != "":
		d, err := parseDist(raw.Dist)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%s: %w", key, err)
		}
		dist = d
	case raw.Low == nil && raw.High == nil:
		dist = DistFixed
	default:
		dist = defaultDist
	}

	// 4. Time basis: window iff a window length is present.
	var basis Basis
	switch {
	case raw.Basis != "":
		b, err := parseBasis(raw.Basis)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%s: %w", key, err)
		}
		basis = b
	case raw.WindowDays > 0:
		basis = BasisWindow
	default:
		basis = BasisInstant
	}

	desc := Descriptor{
		Key:        key,
		Dist:       dist,
		Basis:      basis,
		Low:        low,
		Mode:       mode,
		High:       high,
		Anchor:     raw.Anchor,
		OffsetDays: raw.OffsetDays,
		WindowDays: raw.WindowDays,
	}

	// 5. Hard validation.
	for _, v := range []struct {
		name  string
		value float64
	}{{"low", low}, {"mode", mode}, {"high", high}} {
		if v.value < 0 || v.value > 1 {
			return Descriptor{}, fmt.Errorf("%s: %s=%v is outside [0,1]", key, v.name, v.value)
		}
	}
	if raw.P != nil && (*raw.P < 0 || *raw.P > 1) {
		return Descriptor{}, fmt.Errorf("%s: p=%v is outside [0,1]", key, *raw.P)
	}
	if !(low <= mode && mode <= high) {
		return Descriptor{}, fmt.Errorf("%s: low/mode/high must be monotone, got %v/%v/%v", key, low, mode, high)
	}
	if desc.OffsetDays < 0 {
		return Descriptor{}, fmt.Errorf("%s: offset_days=%d is negative", key, desc.OffsetDays)
	}
	if basis == BasisWindow {
		if desc.Anchor == "" {
			return Descriptor{}, fmt.Errorf("%s: window basis requires an anchor", key)
		}
		if desc.WindowDays <= 0 {
			return Descriptor{}, fmt.Errorf("%s: window basis requires window_days > 0, got %d", key, desc.WindowDays)
		}
	}
	if desc.Anchor != "" && !reg.Anchors[desc.Anchor] {
		return Descriptor{}, fmt.Errorf("%s: unknown anchor %q", key, desc.Anchor)
	}

	return desc, nil
}

// auditOne records the soft findings for a resolved descriptor.
func auditOne(audit *Audit, desc Descriptor, reg Registry) {
	// Window-length hint in the key name inconsistent with the literal field.
	if m := windowNamePattern.FindStringSubmatch(desc.Key); m != nil && desc.Basis == BasisWindow {
		if hinted, err := strconv.Atoi(m[1]); err == nil && hinted != desc.WindowDays {
			audit.warnf(desc.Key, "key name suggests a %d-day window but window_days is %d", hinted, desc.WindowDays)
		}
	}

	// A window that can spill past the horizon is silently truncated at run
	// time: days past the horizon are simply never evaluated. Several
	// default priors do this intentionally, so it is a warning, not an error.
	if desc.Basis == BasisWindow && reg.Horizon > 0 {
		if desc.OffsetDays+desc.WindowDays > reg.Horizon {
			audit.warnf(desc.Key, "window (offset %d + length %d) can extend past the %d-day horizon and will be truncated",
				desc.OffsetDays, desc.WindowDays, reg.Horizon)
		}
	}
}

func parseDist(s string) (Dist, error) {
	switch Dist(s) {
	case DistBetaPert, DistTriangular, DistFixed:
		return Dist(s), nil
	}
	return "", fmt.Errorf("unknown distribution kind %q", s)
}

func parseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case BasisWindow, BasisInstant, BasisDaily:
		return Basis(s), nil
	}
	return "", fmt.Errorf("unknown time basis %q", s)
}
