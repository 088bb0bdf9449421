package compare

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// JSONFormatter formats a comparison set as JSON; amounts are decimal strings
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(compSet)
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	return string(data), nil
}

// YAMLFormatter formats a comparison set as YAML using the JSON field names
type YAMLFormatter struct{}

// Format generates YAML output. The set is routed through JSON so that the keys
// match the JSON formatter.
func (yf *YAMLFormatter) Format(compSet *ComparisonSet) (string, error) {
	raw, err := json.Marshal(compSet)
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("failed to convert comparison: %w", err)
	}
	data, err := yaml.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	return string(data), nil
}
