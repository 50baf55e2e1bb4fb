package codec

import (
	"fmt"
	"io"

	"ontocheck/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports an ontology document from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Document, error) {
	var wd wireDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&wd); err != nil {
		if err == io.EOF {
			return domain.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return decodeDocument(&wd)
}

// Export exports an ontology document to YAML
func (c *YAMLCodec) Export(doc *domain.Document, w io.Writer) error {
	wd, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(wd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// UnmarshalYAML accepts a scalar class name or a composite mapping
func (e *Expression) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			return fmt.Errorf("line %d: empty class name", value.Line)
		}
		*e = Expression{Class: value.Value}
		return nil
	case yaml.MappingNode:
		var n expressionNode
		if err := value.Decode(&n); err != nil {
			return err
		}
		parsed, err := n.expression()
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*e = parsed
		return nil
	}
	return fmt.Errorf("line %d: class expression must be a name or a mapping", value.Line)
}

// MarshalYAML writes named classes as scalars
func (e Expression) MarshalYAML() (interface{}, error) {
	if e.Class != "" {
		return e.Class, nil
	}
	return e.node(), nil
}
