package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk YAML layout. Lists rather than maps keep the
// authored order.
//
//	sections:
//	  - name: Basic Sciences
//	    subsections:
//	      - name: Anatomy
//	        topics: [Upper Limb, Lower Limb]
type document struct {
	Sections []SectionSpec `yaml:"sections"`
}

// Parse decodes a YAML taxonomy document. Unknown fields are rejected.
func Parse(r io.Reader) (*Taxonomy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	return New(doc.Sections)
}

// LoadFile reads and validates the taxonomy at path.
func LoadFile(path string) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Encode writes t in the format Parse reads.
func (t *Taxonomy) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Sections: t.Specs()}); err != nil {
		return fmt.Errorf("encode taxonomy: %w", err)
	}
	return enc.Close()
}

// WriteFile encodes t to path, replacing it atomically.
func (t *Taxonomy) WriteFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := t.Encode(f); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
