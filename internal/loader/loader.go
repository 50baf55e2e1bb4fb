// Package loader reads ontology documents from disk.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ontocheck/internal/codec"
	"ontocheck/internal/domain"
)

// FormatFor returns the codec format implied by a file extension
func FormatFor(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, ok := codec.ForFormat(ext); !ok {
		return "", fmt.Errorf("unsupported document format %q: %s", ext, path)
	}
	return ext, nil
}

// LoadFile loads an ontology document, choosing the codec by extension
func LoadFile(path string) (*domain.Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Parse(format, data)
}

// Parse decodes document bytes in the given format
func Parse(format string, data []byte) (*domain.Document, error) {
	c, ok := codec.ForFormat(format)
	if !ok {
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	doc, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveFile writes a document, choosing the codec by extension
func SaveFile(path string, doc *domain.Document) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	c, _ := codec.ForFormat(format)

	var buf bytes.Buffer
	if err := c.Export(doc, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
