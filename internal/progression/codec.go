package progression

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/formwiz/internal/catalog"
)

const catalogSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "name", "description", "forms"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string"},
			"description": {"type": "string"},
			"forms": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id", "categoryId", "name", "route", "completed"],
					"properties": {
						"id": {"type": "string", "minLength": 1},
						"categoryId": {"type": "string", "minLength": 1},
						"name": {"type": "string"},
						"route": {"type": "string"},
						"completed": {"type": "boolean"}
					}
				}
			}
		}
	}
}`

const fieldMapSchemaJSON = `{
	"type": "object",
	"additionalProperties": {
		"oneOf": [
			{"type": "string"},
			{"type": "number"},
			{"type": "boolean"},
			{"type": "array", "items": {"type": "string"}}
		]
	}
}`

var (
	schemasOnce    sync.Once
	catalogSchema  *jsonschema.Schema
	fieldMapSchema *jsonschema.Schema
	schemasErr     error
)

func compileSchemas() error {
	schemasOnce.Do(func() {
		catalogSchema, schemasErr = compileSchema("snapshot://formCategories.json", catalogSchemaJSON)
		if schemasErr != nil {
			return
		}
		fieldMapSchema, schemasErr = compileSchema("snapshot://formData.json", fieldMapSchemaJSON)
	})
	return schemasErr
}

func compileSchema(url, def string) (*jsonschema.Schema, error) {
	var parsed any
	if err := json.Unmarshal([]byte(def), &parsed); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", url, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource %s: %w", url, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", url, err)
	}
	return compiled, nil
}

// validateAgainst parses raw as JSON and checks it against sch.
func validateAgainst(sch *jsonschema.Schema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// EncodeCatalog serializes c as the formCategories snapshot.
func EncodeCatalog(c catalog.Catalog) ([]byte, error) {
	out := c.Clone()
	if out == nil {
		out = catalog.Catalog{}
	}
	for i := range out {
		if out[i].Forms == nil {
			out[i].Forms = []catalog.FormInfo{}
		}
	}
	return json.Marshal(out)
}

// DecodeCatalog parses a formCategories snapshot. The snapshot must satisfy
// the JSON schema and the catalog's structural checks.
func DecodeCatalog(raw []byte) (catalog.Catalog, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	if err := validateAgainst(catalogSchema, raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyFormCategories, err)
	}
	var c catalog.Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyFormCategories, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyFormCategories, err)
	}
	return c, nil
}

// EncodeData serializes m as the formData snapshot.
func EncodeData(m catalog.FieldMap) ([]byte, error) {
	if m == nil {
		m = catalog.FieldMap{}
	}
	return json.Marshal(m)
}

// DecodeData parses a formData snapshot.
func DecodeData(raw []byte) (catalog.FieldMap, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	if err := validateAgainst(fieldMapSchema, raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyFormData, err)
	}
	m := catalog.FieldMap{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyFormData, err)
	}
	return m, nil
}

// Reconcile returns a copy of static carrying the completion flags of stored.
// Forms are matched by id and category; anything in stored that the static
// definition does not know is dropped.
func Reconcile(static, stored catalog.Catalog) catalog.Catalog {
	out := static.Clone()
	for i := range out {
		for j := range out[i].Forms {
			f := &out[i].Forms[j]
			prev, ok := stored.Form(f.ID)
			if ok && prev.CategoryID == f.CategoryID && prev.Completed {
				f.Completed = true
			}
		}
	}
	return out
}
