package port

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
)

// Exchange is the JSON interchange format between the upstream
// optical-layout assembly and this subsystem. It carries the flat port
// registry and the global bounding box of all previously placed
// geometry. The bounding box is an explicit value here; the pipeline
// never reads layout state from anywhere else.
type Exchange struct {
	BBox  geom.BBox `json:"bbox"`
	Ports []Port    `json:"ports"`
}

// ReadExchange decodes an exchange document from r into a registry and
// bounding box.
//
// Ports with an empty kind default to optical so that nothing is routed
// by accident; upstream tools that emit electrical contacts must say so
// explicitly. ReadExchange returns an error if:
//   - The JSON is malformed
//   - A port has a duplicate or empty name
//   - A port carries an unknown kind
//   - The bounding box has negative extent
func ReadExchange(r io.Reader) (*Registry, geom.BBox, error) {
	var doc Exchange
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, geom.BBox{}, errors.Wrap(errors.ErrCodeInvalidPorts, err, "decode ports")
	}

	if !doc.BBox.Valid() {
		return nil, geom.BBox{}, errors.New(errors.ErrCodeInvalidPorts,
			"bounding box has negative extent: %+v", doc.BBox)
	}

	reg, err := FromPorts(doc.Ports)
	if err != nil {
		return nil, geom.BBox{}, err
	}
	return reg, doc.BBox, nil
}

// FromPorts builds a registry from a flat port list, applying the same
// validation and kind defaulting as [ReadExchange].
func FromPorts(ports []Port) (*Registry, error) {
	reg := NewRegistry()
	for _, p := range ports {
		if p.Kind == "" {
			p.Kind = KindOptical
		}
		if !p.Kind.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidPorts,
				"port %q: unknown kind %q", p.Name, p.Kind)
		}
		if err := reg.Add(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// WriteExchange encodes a registry and bounding box as an exchange
// document on w. Output is indented and stable across runs.
func WriteExchange(reg *Registry, bbox geom.BBox, w io.Writer) error {
	doc := Exchange{BBox: bbox, Ports: reg.Ports()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode ports: %w", err)
	}
	return nil
}

// ImportExchange reads an exchange file at path.
func ImportExchange(path string) (*Registry, geom.BBox, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, geom.BBox{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, geom.BBox{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reg, bbox, err := ReadExchange(f)
	if err != nil {
		return nil, geom.BBox{}, fmt.Errorf("%s: %w", path, err)
	}
	return reg, bbox, nil
}

// ExportExchange writes a registry and bounding box to a JSON file at path.
func ExportExchange(reg *Registry, bbox geom.BBox, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteExchange(reg, bbox, f)
}
