package pie

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec defines the deserialization contract for dataset bytes arriving
// from a Source. Implement this interface to feed charts from alternative
// formats like CSV exports or custom binary telemetry.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// AutoCodec sniffs the payload and decodes JSON when it looks like JSON,
// YAML otherwise. This is the Feed default so a watched file can switch
// formats without reconfiguration.
type AutoCodec struct{}

// Unmarshal deserializes bytes into v, detecting the format from content.
func (AutoCodec) Unmarshal(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// ContentType returns a generic type; the actual format is sniffed per call.
func (AutoCodec) ContentType() string {
	return "application/octet-stream"
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
	_ Codec = AutoCodec{}
)
