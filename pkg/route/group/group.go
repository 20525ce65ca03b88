// Package group implements contact grouping, the first stage of the
// interconnect pipeline.
//
// A group collapses several physical contact ports (the terminals of one
// phase-shifter heater) into a single logical electrical node. Each
// surviving group carries its resolved member ports and a centroid, the
// arithmetic mean of the member positions. Later stages sort, place and
// route whole groups; the individual contacts only reappear during
// fan-in trace generation.
//
// Resolution policy: port identifiers absent from the registry are
// skipped, and a group whose identifiers all fail to resolve is dropped
// entirely. Both are warnings, not errors. Only structural
// misconfiguration (an empty registry, or a table where no group at all
// resolves) aborts the run.
package group

import (
	"gonum.org/v1/gonum/stat"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/netlist"
	"github.com/lightfab/picroute/pkg/port"
)

// Group is one logical electrical node: a named, ordered set of contact
// ports and their centroid. Immutable once built.
type Group struct {
	Name     string      `json:"name"`
	Members  []port.Port `json:"members"`
	Centroid geom.Point  `json:"centroid"`
}

// Warning reasons reported by [Build].
const (
	WarnUnresolvedPort = "unresolved_port" // identifier not in the registry
	WarnNotElectrical  = "not_electrical"  // identifier resolves to a non-electrical port
	WarnDroppedGroup   = "dropped_group"   // no identifier resolved; group removed
	WarnDegenerate     = "degenerate"      // group reduced to a single contact
)

// Warning records a non-fatal resolution issue. Port is empty for
// group-level warnings.
type Warning struct {
	Reason string `json:"reason"`
	Group  string `json:"group"`
	Port   string `json:"port,omitempty"`
}

// Build resolves a group table against a port registry and computes
// centroids. Groups are returned in configuration order.
//
// Build fails with a configuration error if the registry is empty or if
// not a single group resolves; everything else is reported through the
// returned warnings.
func Build(table *netlist.Table, reg *port.Registry) ([]Group, []Warning, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, nil, errors.New(errors.ErrCodeEmptyRegistry, "port registry is empty")
	}

	var (
		groups   []Group
		warnings []Warning
	)

	for _, entry := range table.Entries() {
		members := make([]port.Port, 0, len(entry.Ports))
		for _, name := range entry.Ports {
			p, ok := reg.Get(name)
			if !ok {
				warnings = append(warnings, Warning{Reason: WarnUnresolvedPort, Group: entry.Name, Port: name})
				continue
			}
			if p.Kind != port.KindElectrical {
				warnings = append(warnings, Warning{Reason: WarnNotElectrical, Group: entry.Name, Port: name})
				continue
			}
			members = append(members, p)
		}

		if len(members) == 0 {
			warnings = append(warnings, Warning{Reason: WarnDroppedGroup, Group: entry.Name})
			continue
		}
		if len(members) == 1 {
			warnings = append(warnings, Warning{Reason: WarnDegenerate, Group: entry.Name})
		}

		groups = append(groups, Group{
			Name:     entry.Name,
			Members:  members,
			Centroid: centroid(members),
		})
	}

	if len(groups) == 0 {
		return nil, warnings, errors.New(errors.ErrCodeNoResolvedGroups,
			"no group in the table resolved against the registry")
	}

	return groups, warnings, nil
}

// centroid returns the arithmetic mean position of the member ports,
// computed independently per axis.
func centroid(members []port.Port) geom.Point {
	xs := make([]float64, len(members))
	ys := make([]float64, len(members))
	for i, m := range members {
		xs[i] = m.Center.X
		ys[i] = m.Center.Y
	}
	return geom.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}
