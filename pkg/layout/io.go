package layout

import (
	"encoding/json"
	"io"
	"os"

	"github.com/picforge/picforge/pkg/component"
	"github.com/picforge/picforge/pkg/errors"
)

// Write serializes the component tree as indented JSON.
func Write(c *component.Component, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(c)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cannot encode layout %q", c.Name())
	}
	return nil
}

// WriteFile serializes the component tree to a JSON file.
func WriteFile(c *component.Component, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot create %s", path)
	}
	defer f.Close()
	if err := Write(c, f); err != nil {
		return err
	}
	return f.Close()
}

// Read parses a serialized layout.
func Read(r io.Reader) (*Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "cannot decode layout")
	}
	return &l, nil
}

// ReadFile parses a layout from a JSON file.
func ReadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Marshal serializes the component tree to JSON bytes.
func Marshal(c *component.Component) ([]byte, error) {
	data, err := json.MarshalIndent(Export(c), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot encode layout %q", c.Name())
	}
	return data, nil
}

// Unmarshal parses a serialized layout from JSON bytes.
func Unmarshal(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "cannot decode layout")
	}
	return &l, nil
}
