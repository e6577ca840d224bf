package priors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "priors.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidDocument(t *testing.T) {
	path := writeDoc(t, `{
		"version": "2026-08",
		"default_dist": "beta_pert",
		"priors": {
			"crackdown_given_escalation": {
				"low": 0.3, "mode": 0.5, "high": 0.8,
				"anchor": "escalation_start", "window_days": 14,
				"rationale": "historical base rate for comparable uprisings"
			}
		}
	}`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, ok := doc.Priors["crackdown_given_escalation"]
	if !ok {
		t.Fatal("key missing after load")
	}
	if raw.WindowDays != 14 || *raw.Mode != 0.5 {
		t.Errorf("descriptor fields lost in decode: %+v", raw)
	}
}

func TestLoad_SchemaRejectsWrongTypes(t *testing.T) {
	path := writeDoc(t, `{
		"priors": {
			"crackdown_given_escalation": {"mode": "half", "window_days": 14}
		}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema validation error for string mode")
	}
}

func TestLoad_SchemaRejectsUnknownFields(t *testing.T) {
	path := writeDoc(t, `{
		"priors": {
			"crackdown_given_escalation": {"mode": 0.5, "window_length": 14}
		}
	}`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for misspelled field")
	}
	if !strings.Contains(err.Error(), "crackdown_given_escalation") && !strings.Contains(err.Error(), "window_length") {
		t.Errorf("error should point at the offending field: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
