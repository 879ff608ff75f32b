package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_Validate(t *testing.T) {
	validator := NewSchemaValidator()
	tool := NewFunctionTool("lookup", "test", ObjectSchema(map[string]*JSONSchema{
		"patient_id": {Type: "string"},
		"limit":      {Type: "number", Default: 5},
		"note":       {Type: "string"},
	}, "patient_id"))

	t.Run("defaults are applied", func(t *testing.T) {
		args, err := validator.Validate(tool, map[string]any{"patient_id": "P1"})
		require.NoError(t, err)
		assert.Equal(t, "P1", args.String("patient_id"))
		assert.Equal(t, 5, args.Int("limit"))
		assert.False(t, args.Has("note"))
	})

	t.Run("explicit value beats default", func(t *testing.T) {
		args, err := validator.Validate(tool, map[string]any{"patient_id": "P1", "limit": float64(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, args.Int("limit"))
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		args, err := validator.Validate(tool, map[string]any{"patient_id": "P1", "colour": "blue"})
		require.NoError(t, err)
		assert.False(t, args.Has("colour"))
	})

	t.Run("null optional field is treated as absent", func(t *testing.T) {
		args, err := validator.Validate(tool, map[string]any{"patient_id": "P1", "note": nil})
		require.NoError(t, err)
		assert.False(t, args.Has("note"))
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := validator.Validate(tool, map[string]any{"limit": float64(3)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "patient_id", verr.Field)
		assert.Equal(t, "lookup", verr.Tool)
	})

	t.Run("wrong primitive type", func(t *testing.T) {
		_, err := validator.Validate(tool, map[string]any{"patient_id": "P1", "limit": "lots"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "limit", verr.Field)
	})

	t.Run("nil arguments", func(t *testing.T) {
		_, err := validator.Validate(tool, nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "patient_id", verr.Field)
	})

	t.Run("schema is compiled once", func(t *testing.T) {
		_, _ = validator.Validate(tool, map[string]any{"patient_id": "P1"})
		_, exists := validator.cache["lookup"]
		assert.True(t, exists)

		validator.Forget("lookup")
		_, exists = validator.cache["lookup"]
		assert.False(t, exists)
	})
}

func TestSchemaValidator_EmptySchema(t *testing.T) {
	validator := NewSchemaValidator()
	tool := NewFunctionTool("noop", "test", ObjectSchema(nil))

	args, err := validator.Validate(tool, map[string]any{"anything": 1})
	require.NoError(t, err)
	assert.Empty(t, args)
}
