package bounded

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Format names used in DecodeError and TypeError.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatSQL  = "sql"
)

// decode validates raw and stores it. The receiver is left untouched on error.
func (s *String[B]) decode(format, raw string) error {
	v, err := New[B](raw)
	if err != nil {
		return &DecodeError{Format: format, Err: err}
	}
	*s = v
	return nil
}

// MarshalJSON encodes s as a JSON string.
func (s String[B]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.inner)
}

// UnmarshalJSON accepts only a JSON string. null and every other JSON type
// fail with *json.UnmarshalTypeError.
func (s *String[B]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeOf(*s)}
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.decode(FormatJSON, raw)
}

// MarshalText returns the inner string. Used by text-based encoders such as TOML.
func (s String[B]) MarshalText() ([]byte, error) {
	return []byte(s.inner), nil
}

// UnmarshalText validates text as a String.
func (s *String[B]) UnmarshalText(text []byte) error {
	return s.decode(FormatText, string(text))
}

// MarshalYAML encodes s as a YAML string scalar.
func (s String[B]) MarshalYAML() (any, error) {
	return s.inner, nil
}

// UnmarshalYAML accepts only a !!str scalar node.
func (s *String[B]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		got := node.ShortTag()
		if node.Kind != yaml.ScalarNode {
			got = yamlKind(node.Kind)
		}
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: %s, got %s", node.Line, expecting(s.Range()), got),
		}}
	}
	return s.decode(FormatYAML, node.Value)
}

// UnmarshalTOML implements toml.Unmarshaler. TOML values other than strings
// fail with *TypeError.
func (s *String[B]) UnmarshalTOML(data any) error {
	raw, ok := data.(string)
	if !ok {
		return &TypeError{Format: FormatTOML, Got: fmt.Sprintf("%T", data), Range: s.Range()}
	}
	return s.decode(FormatTOML, raw)
}

func yamlKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}
