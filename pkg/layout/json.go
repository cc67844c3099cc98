package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// ReadJSON decodes a layout description from r and validates it.
//
// The input is a JSON object with a "version" and an optional "root":
//
//	{
//	  "version": 1,
//	  "name": "main",
//	  "root": {
//	    "kind": "split", "orientation": "H", "proportion": 0.3,
//	    "left":  {"kind": "simple", "id": "tree"},
//	    "right": {"kind": "tabbed", "tabs": ["editor", "preview"], "selected": 0}
//	  }
//	}
//
// A version newer than [FormatVersion] is rejected. ReadJSON returns an
// INVALID_LAYOUT error when the JSON is malformed or fails [Description.Validate].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Description{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode")
	}
	if d.Version > FormatVersion {
		return Description{}, errors.New(errors.ErrCodeInvalidLayout, "unsupported layout version %d", d.Version)
	}
	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	return d, nil
}

// ImportJSON reads the layout file at path using [ReadJSON].
func ImportJSON(path string) (Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return Description{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes d as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(d Description, w io.Writer) error {
	if d.Version == 0 {
		d.Version = FormatVersion
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to the file at path using [WriteJSON].
func ExportJSON(d Description, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
