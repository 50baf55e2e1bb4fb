package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"ontocheck/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports an ontology document from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Document, error) {
	var wd wireDocument
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&wd); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return decodeDocument(&wd)
}

// Export exports an ontology document to JSON
func (c *JSONCodec) Export(doc *domain.Document, w io.Writer) error {
	wd, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(wd); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// UnmarshalJSON accepts a class name string or a composite object
func (e *Expression) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("empty class name")
		}
		*e = Expression{Class: name}
		return nil
	}

	var n expressionNode
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&n); err != nil {
		return fmt.Errorf("class expression must be a name or an object: %w", err)
	}
	parsed, err := n.expression()
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalJSON writes named classes as strings
func (e Expression) MarshalJSON() ([]byte, error) {
	if e.Class != "" {
		return json.Marshal(e.Class)
	}
	return json.Marshal(e.node())
}
