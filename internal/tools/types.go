// In file: internal/tools/types.go

// Package tools implements the tool dispatch gateway: the catalogue of named,
// schema-described actions that a conversation controller may invoke, the
// validator that guards them, and the executors that perform their effects.
//
// The wire types below are provider-agnostic and are translated into the
// specific formats of the LLM APIs (OpenAI, Gemini) by the llm package.
package tools

import "math"

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool defines the schema for a function that can be described to an LLM.
// This is what Describe hands to the conversation controller.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function defines the name, description, and parameters of a callable tool.
type Function struct {
	// Name is unique within a catalogue (e.g., "bookAppointment").
	Name string `json:"name"`
	// Description is what the LLM reads to decide when to use the tool.
	Description string `json:"description"`
	// Parameters defines the arguments the function accepts.
	Parameters JSONSchema `json:"parameters"`
}

// JSONSchema provides a structured, type-safe representation of the JSON Schema
// used for defining tool parameters.
type JSONSchema struct {
	// Type is "object" for the top-level parameters node, and a primitive
	// ("string", "number", "integer", "boolean") for properties.
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	// Properties describes the parameters of an object.
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Required lists the mandatory parameter names.
	Required []string `json:"required,omitempty"`
	// Default is applied by the validator when an optional field is absent.
	Default any `json:"default,omitempty"`
	// Minimum bounds numeric properties.
	Minimum *float64 `json:"minimum,omitempty"`
}

// ToolCall represents a request *from* the LLM to execute a specific tool.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction holds the name and arguments of a function call requested by the LLM.
type ToolCallFunction struct {
	Name string `json:"name"`
	// Arguments is a JSON object encoded as a string, as the providers send it.
	Arguments string `json:"arguments"`
}

// NewFunctionTool is a helper that builds a Tool with the "function" type.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ObjectSchema builds the top-level parameters node for a tool.
func ObjectSchema(properties map[string]*JSONSchema, required ...string) JSONSchema {
	if properties == nil {
		properties = map[string]*JSONSchema{}
	}
	return JSONSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Args is a validated, normalized argument object. Executors only ever see
// Args that passed the SchemaValidator, so the accessors below do not need
// to report type errors.
type Args map[string]any

// String returns the string value of key, or "" when absent.
func (a Args) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the integral value of key. JSON numbers arrive as float64.
func (a Args) Int(key string) int {
	switch v := a[key].(type) {
	case float64:
		return int(math.Round(v))
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Has reports whether key is present.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}
