// Package netlist defines the electrical group table: the static
// configuration mapping each logical node name to the contact ports that
// should be merged into it.
//
// The table is ordered. Configuration order is preserved through the
// pipeline and used as the stable tie-breaker wherever later stages sort
// groups, so two runs over the same table are always identical.
//
// Tables are loaded from TOML (the native configuration format) or JSON
// (for API requests). In TOML the table is a single [groups] section:
//
//	[groups]
//	heater_1_left  = ["heater_1_l_e1", "heater_1_l_e2"]
//	heater_1_right = ["heater_1_r_e1", "heater_1_r_e2"]
package netlist

import (
	"github.com/lightfab/picroute/pkg/errors"
)

// Entry is one named group and its ordered member port identifiers.
type Entry struct {
	Name  string   `json:"name"`
	Ports []string `json:"ports"`
}

// Table is an ordered group table.
type Table struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends a group. Group names must be unique and non-empty, and a
// group must list at least one port identifier (whether those
// identifiers resolve is decided later, against a concrete registry).
func (t *Table) Add(name string, ports []string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidNetlist, "group with empty name")
	}
	if _, exists := t.index[name]; exists {
		return errors.New(errors.ErrCodeInvalidNetlist, "duplicate group %q", name)
	}
	if len(ports) == 0 {
		return errors.New(errors.ErrCodeInvalidNetlist, "group %q lists no ports", name)
	}
	members := make([]string, len(ports))
	copy(members, ports)
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Ports: members})
	return nil
}

// Entries returns all groups in configuration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Get returns the entry for a group name.
func (t *Table) Get(name string) (Entry, bool) {
	i, ok := t.index[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Len returns the number of groups.
func (t *Table) Len() int { return len(t.entries) }
