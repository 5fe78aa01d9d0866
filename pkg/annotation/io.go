package annotation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadDocument decodes a JSON document from an io.Reader.
// Use [ReadDocumentFile] for files or pass bytes.NewReader for in-memory data.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ReadDocumentYAML decodes a YAML document from an io.Reader.
// JSON is the canonical format; YAML input exists for hand-written fixtures
// and annotation exports that favor readability.
func ReadDocumentYAML(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ReadDocumentFile reads a document file and decodes it based on the file
// extension: .yaml and .yml are decoded as YAML, everything else as JSON.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err := ReadDocumentYAML(f)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", path, err)
		}
		return d, nil
	default:
		d, err := ReadDocument(f)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", path, err)
		}
		return d, nil
	}
}

// WriteDocument writes a document as indented JSON to an io.Writer.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDocumentFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// IsDocumentFile reports whether the path looks like a readable document
// file based on its extension.
func IsDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
