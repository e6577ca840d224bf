package priors

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

//go:embed schema/priors.schema.json
var priorsSchema string

// Load reads and schema-validates a priors document. Schema validation runs
// before unmarshalling so malformed documents fail with a pointable error
// rather than decoding into zero values.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read priors document: %w", err)
	}

	schema, err := compileSchema("priors.schema.json", priorsSchema)
	if err != nil {
		return nil, err
	}
	if err := validateAgainstSchema(schema, raw); err != nil {
		return nil, fmt.Errorf("priors document %s: %w", path, err)
	}

	var doc Document
	if err := strictUnmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode priors document %s: %w", path, err)
	}
	return &doc, nil
}

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func validateAgainstSchema(schema *jsonschema.Schema, raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	return schema.Validate(payload)
}

func strictUnmarshal(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("unexpected trailing JSON payload")
	}
	return nil
}
