package layout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML or JSON layout. Unknown fields are rejected.
func Decode(r io.Reader) (*Guild, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var g Guild
	if err := dec.Decode(&g); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("layout is empty")
		}
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	return &g, nil
}

// LoadFile decodes and validates the layout at path. Relative image paths in the
// layout resolve against the file's directory.
func LoadFile(path string) (*Guild, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve layout path: %w", err)
	}
	g.BaseDir = filepath.Dir(abs)

	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}
