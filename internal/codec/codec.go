// Package codec reads and writes ontology documents.
//
// YAML and JSON share one document structure: an optional iri and version
// followed by an axioms list. Each entry names its kind and carries the
// fields that kind needs. Class expressions are written as a bare class
// name or as a single-key node:
//
//	classes: [Person, {intersection_of: [Human, Agent]}]
package codec

import (
	"io"

	"ontocheck/internal/domain"
)

// Importer interface for importing ontology documents from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Document, error)
	Format() string
}

// Exporter interface for exporting ontology documents to various formats
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
}

// Codec both imports and exports a format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format identifier ("yaml", "yml" or
// "json")
func ForFormat(format string) (Codec, bool) {
	switch format {
	case "yaml", "yml":
		return NewYAMLCodec(), true
	case "json":
		return NewJSONCodec(), true
	}
	return nil, false
}
