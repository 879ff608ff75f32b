// In file: internal/tools/validator.go
package tools

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// rootField names the whole payload in a ValidationError.
const rootField = "(root)"

// SchemaValidator checks raw invocation arguments against a tool's declared
// parameters. Compiled schemas are cached per tool name; the cache is shared
// by concurrent invocations.
type SchemaValidator struct {
	mu    sync.Mutex
	cache map[string]*gojsonschema.Schema
}

// NewSchemaValidator creates a new schema validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		cache: make(map[string]*gojsonschema.Schema),
	}
}

// Validate returns a normalized copy of raw: fields the schema does not declare
// are dropped, null optional fields are treated as absent, and declared
// defaults fill in missing fields. The normalized object is then validated,
// and the first offending field is reported as a *ValidationError.
func (sv *SchemaValidator) Validate(tool Tool, raw map[string]any) (Args, error) {
	name := tool.Function.Name
	params := tool.Function.Parameters

	args := make(Args, len(params.Properties))
	for key, prop := range params.Properties {
		if v, ok := raw[key]; ok && v != nil {
			args[key] = v
			continue
		}
		if prop != nil && prop.Default != nil {
			args[key] = prop.Default
		}
	}

	schema, err := sv.getSchema(name, params)
	if err != nil {
		return nil, &ValidationError{Tool: name, Field: rootField, Detail: fmt.Sprintf("invalid parameter schema: %v", err)}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(args)))
	if err != nil {
		return nil, &ValidationError{Tool: name, Field: rootField, Detail: err.Error()}
	}
	if !result.Valid() {
		return nil, toValidationError(name, result.Errors())
	}
	return args, nil
}

// getSchema retrieves or compiles the schema for a tool.
func (sv *SchemaValidator) getSchema(name string, params JSONSchema) (*gojsonschema.Schema, error) {
	sv.mu.Lock()
	defer sv.mu.Unlock()

	if schema, ok := sv.cache[name]; ok {
		return schema, nil
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(params))
	if err != nil {
		return nil, err
	}
	sv.cache[name] = schema
	return schema, nil
}

// Forget drops the cached schema for a tool so the next validation recompiles it.
func (sv *SchemaValidator) Forget(name string) {
	sv.mu.Lock()
	delete(sv.cache, name)
	sv.mu.Unlock()
}

func toValidationError(tool string, errs []gojsonschema.ResultError) *ValidationError {
	first := errs[0]
	field := first.Field()
	// Missing properties are reported against the parent object.
	if first.Type() == "required" {
		if prop, ok := first.Details()["property"].(string); ok {
			field = prop
		}
	}
	if field == "" {
		field = rootField
	}

	details := make([]string, len(errs))
	for i, e := range errs {
		details[i] = e.String()
	}
	return &ValidationError{
		Tool:   tool,
		Field:  field,
		Detail: strings.Join(details, "; "),
	}
}
