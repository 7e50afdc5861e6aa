package tools

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Definition describes a tool that can be advertised to AI models. The actual
// dispatch of a requested tool lives with the orchestrator; the definition
// only carries the declaration the provider sees.
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// NewDefinition creates a Definition whose parameter schema is reflected from
// the given input struct. Field-level constraints come from jsonschema struct
// tags on the input type.
func NewDefinition(name, description string, input interface{}) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name cannot be empty")
	}
	inputType := reflect.TypeOf(input)
	if inputType == nil || inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input must be a struct, got %T", input)
	}

	// Expand definitions inline instead of using $refs so the schema can be
	// embedded verbatim in provider requests.
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(input)
	if schema.Type == "" && schema.Ref == "" {
		schema.Type = "object"
	}

	return &Definition{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}, nil
}
