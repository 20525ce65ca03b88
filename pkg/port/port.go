// Package port defines the shared port registry consumed and extended by
// the interconnect pipeline.
//
// Ports are produced by the upstream optical-layout assembly and read
// here; the pad placer inserts one additional electrical port per bond
// pad under the name pattern "bondpad_<group>". A port's kind is an
// explicit typed field set at creation time, never inferred from its
// name.
package port

import (
	"fmt"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
)

// Kind distinguishes optical waveguide ports from electrical contacts.
type Kind string

// Port kinds.
const (
	KindOptical    Kind = "optical"
	KindElectrical Kind = "electrical"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindOptical || k == KindElectrical
}

// Port is a named, positioned connection point on the layout plane.
// Ports are immutable values; the pipeline only reads upstream ports and
// appends new ones for bond pads.
type Port struct {
	Name        string     `json:"name"`
	Center      geom.Point `json:"center"`
	Orientation float64    `json:"orientation"` // degrees, counter-clockwise from +x
	Width       float64    `json:"width"`
	Layer       geom.Layer `json:"layer"`
	Kind        Kind       `json:"kind"`
}

// Registry is an insertion-ordered collection of uniquely named ports.
//
// Iteration order is the order ports were added, which keeps every
// derived computation deterministic. The zero value is not usable; call
// [NewRegistry].
type Registry struct {
	names  []string
	byName map[string]Port
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Port)}
}

// Add inserts a port. Duplicate names are rejected.
func (r *Registry) Add(p Port) error {
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidPorts, "port with empty name")
	}
	if _, exists := r.byName[p.Name]; exists {
		return errors.New(errors.ErrCodeInvalidPorts, "duplicate port %q", p.Name)
	}
	r.names = append(r.names, p.Name)
	r.byName[p.Name] = p
	return nil
}

// Get returns the port with the given name.
func (r *Registry) Get(name string) (Port, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Len returns the number of registered ports.
func (r *Registry) Len() int { return len(r.names) }

// Names returns all port names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Ports returns all ports in insertion order.
func (r *Registry) Ports() []Port {
	out := make([]Port, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// Electrical returns the electrical ports in insertion order.
func (r *Registry) Electrical() []Port {
	var out []Port
	for _, name := range r.names {
		if p := r.byName[name]; p.Kind == KindElectrical {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for _, name := range r.names {
		out.names = append(out.names, name)
		out.byName[name] = r.byName[name]
	}
	return out
}

// String summarizes the registry for logging.
func (r *Registry) String() string {
	return fmt.Sprintf("registry(%d ports, %d electrical)", r.Len(), len(r.Electrical()))
}
