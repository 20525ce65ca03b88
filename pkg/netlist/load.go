package netlist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lightfab/picroute/pkg/errors"
)

// tomlDoc mirrors the on-disk TOML shape. Entry order within [groups] is
// recovered from toml.MetaData, since Go maps do not preserve it.
type tomlDoc struct {
	Groups map[string][]string `toml:"groups"`
}

// ParseTOML decodes a group table from TOML data.
func ParseTOML(data []byte) (*Table, error) {
	var doc tomlDoc
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err, "decode netlist")
	}
	if len(doc.Groups) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidNetlist, "netlist defines no groups")
	}

	t := New()
	for _, key := range md.Keys() {
		// Keys are emitted in definition order; group entries appear as
		// ["groups", "<name>"].
		if len(key) != 2 || key[0] != "groups" {
			continue
		}
		name := key[1]
		if err := t.Add(name, doc.Groups[name]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// jsonDoc mirrors the JSON request shape, an ordered array of entries.
type jsonDoc struct {
	Groups []Entry `json:"groups"`
}

// ParseJSON decodes a group table from JSON data.
func ParseJSON(data []byte) (*Table, error) {
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNetlist, err, "decode netlist")
	}
	if len(doc.Groups) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidNetlist, "netlist defines no groups")
	}

	t := New()
	for _, e := range doc.Groups {
		if err := t.Add(e.Name, e.Ports); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Read decodes a table from r in the given format ("toml" or "json").
func Read(r io.Reader, format string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read netlist: %w", err)
	}
	switch format {
	case "toml":
		return ParseTOML(data)
	case "json":
		return ParseJSON(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown netlist format %q", format)
	}
}

// Load reads a table from a file, inferring the format from the
// extension (.toml or .json).
func Load(path string) (*Table, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// MarshalJSON serializes the table in configuration order.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDoc{Groups: t.entries})
}

// UnmarshalJSON restores a table from its JSON form.
func (t *Table) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
