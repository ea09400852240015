// Package jsonschema checks recovered model output against a JSON Schema
// generated from the record enumerations.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fwojciec/wardrobe"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var _ wardrobe.Validator = (*Validator)(nil)

// Validator implements wardrobe.Validator with one compiled schema per variant.
type Validator struct {
	schemas map[wardrobe.Variant]*jsonschema.Schema
}

// NewValidator compiles the schemas for both variants.
func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[wardrobe.Variant]*jsonschema.Schema)}
	for _, variant := range []wardrobe.Variant{wardrobe.VariantPage, wardrobe.VariantImage} {
		schema, err := compile(variant)
		if err != nil {
			return nil, wardrobe.WrapError(wardrobe.EINTERNAL, err, "compile %s schema", variant)
		}
		v.schemas[variant] = schema
	}
	return v, nil
}

// Validate returns ESCHEMA if obj does not conform to the variant schema:
// isClothing must be a boolean, enumerated fields must hold an allowed value
// or null, and the remaining fields must be strings or null.
func (v *Validator) Validate(variant wardrobe.Variant, obj map[string]any) error {
	schema, ok := v.schemas[variant]
	if !ok {
		return wardrobe.Errorf(wardrobe.EINVALID, "unknown variant %q", string(variant))
	}
	if err := schema.Validate(obj); err != nil {
		return wardrobe.WrapError(wardrobe.ESCHEMA, err, "%s record does not match schema", variant)
	}
	return nil
}

// Schema returns the JSON Schema document for a variant.
func Schema(variant wardrobe.Variant) map[string]any {
	props := make(map[string]any)
	for _, key := range variant.Keys() {
		switch key {
		case wardrobe.KeyIsClothing:
			props[key] = map[string]any{"type": "boolean"}
		case wardrobe.KeyPrice:
			props[key] = map[string]any{"type": []string{"string", "number", "null"}}
		default:
			if slices.Contains(wardrobe.EnumeratedKeys, key) {
				props[key] = map[string]any{"enum": nullable(wardrobe.Enumeration(variant, key))}
				continue
			}
			props[key] = map[string]any{"type": []string{"string", "null"}}
		}
	}
	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"required":   []string{wardrobe.KeyIsClothing},
		"properties": props,
	}
}

// nullable returns values followed by null, as a JSON Schema enum.
func nullable(values []string) []any {
	enum := make([]any, 0, len(values)+1)
	for _, s := range values {
		enum = append(enum, s)
	}
	return append(enum, nil)
}

func compile(variant wardrobe.Variant) (*jsonschema.Schema, error) {
	b, err := json.Marshal(Schema(variant))
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	url := fmt.Sprintf("%s.json", variant)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(url)
}
