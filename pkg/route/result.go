package route

import (
	"encoding/json"
	"time"

	"github.com/lightfab/picroute/pkg/port"
	"github.com/lightfab/picroute/pkg/route/group"
	"github.com/lightfab/picroute/pkg/route/pads"
	"github.com/lightfab/picroute/pkg/route/trace"
)

// Result contains the outputs of one routing run.
//
// Geometry (pads, bond ports, traces) is fully determined by the inputs:
// two runs over identical inputs produce identical waypoint sequences.
// RunID and Stats describe the run itself and are excluded from the
// cached payload.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string `json:"run_id,omitempty"`

	// Placement holds both pad rows in sorted order.
	Placement pads.Placement `json:"placement"`

	// BondPorts are the new registry entries, named "bondpad_<group>".
	BondPorts []port.Port `json:"bond_ports"`

	// Traces is all generated wire geometry, left row first, each group's
	// fan-in ahead of its long-haul path.
	Traces []trace.Trace `json:"traces"`

	// Warnings are the non-fatal resolution issues from contact grouping.
	Warnings []group.Warning `json:"warnings,omitempty"`

	// Stats contains counts and per-stage timing.
	Stats Stats `json:"stats"`

	// CacheHit reports whether the geometry came from the result cache.
	CacheHit bool `json:"cache_hit,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Groups       int           `json:"groups"`        // surviving contact groups
	Dropped      int           `json:"dropped"`       // groups with no resolvable ports
	LeftPads     int           `json:"left_pads"`     // pads on the left edge
	BottomPads   int           `json:"bottom_pads"`   // pads on the bottom edge
	Traces       int           `json:"traces"`        // total trace count (fan-in + long-haul)
	GroupingTime time.Duration `json:"grouping_time"` // stages 1–2
	PlaceTime    time.Duration `json:"place_time"`    // stages 3–4
	RouteTime    time.Duration `json:"route_time"`    // stage 5
}

// cachePayload is the deterministic subset of a Result stored in the
// cache: geometry and warnings, no run metadata.
type cachePayload struct {
	Placement pads.Placement  `json:"placement"`
	BondPorts []port.Port     `json:"bond_ports"`
	Traces    []trace.Trace   `json:"traces"`
	Warnings  []group.Warning `json:"warnings,omitempty"`
}

// marshalCache serializes the cacheable subset of a result.
func (r *Result) marshalCache() ([]byte, error) {
	return json.Marshal(cachePayload{
		Placement: r.Placement,
		BondPorts: r.BondPorts,
		Traces:    r.Traces,
		Warnings:  r.Warnings,
	})
}

// unmarshalCache restores a result from a cached payload and recomputes
// the count statistics. Timings stay zero for cached results.
func unmarshalCache(data []byte) (*Result, error) {
	var p cachePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	r := &Result{
		Placement: p.Placement,
		BondPorts: p.BondPorts,
		Traces:    p.Traces,
		Warnings:  p.Warnings,
	}
	r.fillCounts()
	return r, nil
}

// fillCounts derives the count statistics from the geometry.
func (r *Result) fillCounts() {
	r.Stats.LeftPads = len(r.Placement.Left.Pads)
	r.Stats.BottomPads = len(r.Placement.Bottom.Pads)
	r.Stats.Groups = r.Stats.LeftPads + r.Stats.BottomPads
	r.Stats.Traces = len(r.Traces)
	r.Stats.Dropped = 0
	for _, w := range r.Warnings {
		if w.Reason == group.WarnDroppedGroup {
			r.Stats.Dropped++
		}
	}
}
