// Package seed loads the initial catalog from a YAML (or JSON) document.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rebzseven/rebzseven/internal/library/catalog"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default returns the built-in catalog.
func Default() (catalog.Seed, error) {
	s, err := Parse(defaultCatalog)
	if err != nil {
		return catalog.Seed{}, fmt.Errorf("default catalog: %w", err)
	}
	return s, nil
}

// Load reads a seed document from path. An empty path returns Default.
func Load(path string) (catalog.Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return catalog.Seed{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a seed document. Unknown fields are rejected so typos in
// hand-written seed files surface at startup.
func Parse(data []byte) (catalog.Seed, error) {
	var s catalog.Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return catalog.Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}
	return s, nil
}

// Write encodes a seed document as YAML.
func Write(w io.Writer, s catalog.Seed) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode seed: %w", err)
	}
	return enc.Close()
}
