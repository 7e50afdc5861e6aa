package turns

import (
	"gopkg.in/yaml.v3"
)

// ToYAML serializes a Turn for artifact dumps and debug logging.
func ToYAML(t *Turn) ([]byte, error) {
	return yaml.Marshal(t)
}

// FromYAML deserializes a Turn previously written by ToYAML.
func FromYAML(data []byte) (*Turn, error) {
	var t Turn
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
