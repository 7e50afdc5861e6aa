package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchInput struct {
	Query string `json:"query" jsonschema:"required,description=The place name and kind to search for"`
}

func TestNewDefinitionReflectsSchema(t *testing.T) {
	t.Parallel()

	def, err := NewDefinition("search_places", "Search for nearby places", searchInput{})
	require.NoError(t, err)
	require.NotNil(t, def.Parameters)

	data, err := json.Marshal(def.Parameters)
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema should have properties")
	assert.Contains(t, props, "query")

	required, ok := schema["required"].([]any)
	require.True(t, ok, "schema should mark query required")
	assert.Contains(t, required, "query")
}

func TestNewDefinitionRejectsNonStructInput(t *testing.T) {
	t.Parallel()

	_, err := NewDefinition("bad", "not a struct", 42)
	assert.Error(t, err)

	_, err = NewDefinition("", "empty name", searchInput{})
	assert.Error(t, err)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewInMemoryRegistry()
	def, err := NewDefinition("search_places", "Search for nearby places", searchInput{})
	require.NoError(t, err)

	require.NoError(t, reg.Register("search_places", *def))
	assert.True(t, reg.Has("search_places"))
	assert.Equal(t, 1, reg.Count())

	got, err := reg.Get("search_places")
	require.NoError(t, err)
	assert.Equal(t, "search_places", got.Name)

	_, err = reg.Get("lookup_weather")
	assert.Error(t, err)
}

func TestRegistryRejectsMismatchedName(t *testing.T) {
	t.Parallel()

	reg := NewInMemoryRegistry()
	err := reg.Register("a", Definition{Name: "b"})
	assert.Error(t, err)
}
