package doc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document has no root element")
)

// EncodeYAML writes root as a YAML document.
func EncodeYAML(w io.Writer, root *Element) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a YAML document.
func DecodeYAML(r io.Reader) (*Element, error) {
	var root Element
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if root.Name == "" {
		return nil, ErrEmptyDocument
	}
	return &root, nil
}

// EncodeJSON writes root as indented JSON.
func EncodeJSON(w io.Writer, root *Element) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// DecodeJSON reads a JSON document.
func DecodeJSON(r io.Reader) (*Element, error) {
	var root Element
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if root.Name == "" {
		return nil, ErrEmptyDocument
	}
	return &root, nil
}

// Load reads a document from disk. The codec is chosen by extension:
// .yaml/.yml or .json.
func Load(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	case ".json":
		return DecodeJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Save writes root to path, choosing the codec by extension.
func Save(path string, root *Element) error {
	var encode func(io.Writer, *Element) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		encode = EncodeYAML
	case ".json":
		encode = EncodeJSON
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	if err := encode(f, root); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
