// Package route orchestrates the electrical interconnect pipeline.
//
// The pipeline turns clusters of scattered electrical contact ports into
// bond pads on the chip periphery and collision-free Manhattan wire
// traces, in five strictly sequential stages:
//
//  1. Contact grouping  — netlist + registry → groups with centroids
//  2. Edge classification — centroid.x threshold → left/bottom partition
//  3. Pad placement     — sorted, fixed-pitch pads outside the bounding box
//  4. Channel assignment — one non-crossing corridor lane per group
//  5. Manhattan routing — fan-in traces plus five-waypoint long-haul paths
//
// Stages cannot be pipelined per group: placement needs the global
// bounding box, and channel assignment needs the complete sorted order
// of an edge. Each stage is therefore a full pass producing a new
// immutable table consumed by the next.
//
// # Usage
//
// Run the pure pipeline:
//
//	in := route.Input{Registry: reg, BBox: bbox, Netlist: table}
//	result, err := route.Run(ctx, in, route.DefaultParams())
//
// Or use a Runner for caching and logging:
//
//	runner := route.NewRunner(fileCache, logger)
//	result, err := runner.Execute(ctx, in, route.Options{Params: params})
package route

import (
	"context"
	"time"

	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/netlist"
	"github.com/lightfab/picroute/pkg/observability"
	"github.com/lightfab/picroute/pkg/port"
	"github.com/lightfab/picroute/pkg/route/channel"
	"github.com/lightfab/picroute/pkg/route/group"
	"github.com/lightfab/picroute/pkg/route/pads"
	"github.com/lightfab/picroute/pkg/route/trace"
)

// Input is the complete external state a routing run consumes: the
// shared port registry, the global bounding box of all previously placed
// geometry, and the group table. The run never reads layout state from
// anywhere else, and treats all three as read-only.
type Input struct {
	Registry *port.Registry
	BBox     geom.BBox
	Netlist  *netlist.Table
}

// Run executes the five pipeline stages over immutable inputs and
// returns a fresh Result. It performs no I/O and no caching; two calls
// with identical inputs produce identical geometry.
//
// Run fails fast on structural misconfiguration (invalid parameters,
// empty registry, nothing resolvable) before any geometry is emitted.
// Per-group issues are collected as warnings on the result.
func Run(ctx context.Context, in Input, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	runStart := time.Now()
	hooks.OnRunStart(ctx, in.Netlist.Len())

	// Stages 1–2: grouping and edge classification.
	stageStart := time.Now()
	hooks.OnStageStart(ctx, observability.StageGrouping, in.Netlist.Len())
	groups, warnings, err := group.Build(in.Netlist, in.Registry)
	hooks.OnStageComplete(ctx, observability.StageGrouping, len(groups), time.Since(stageStart), err)
	if err != nil {
		hooks.OnRunComplete(ctx, 0, 0, time.Since(runStart), err)
		return nil, err
	}

	hooks.OnStageStart(ctx, observability.StageClassify, len(groups))
	part := group.Classify(groups, params.Pads.LeftThresholdX)
	hooks.OnStageComplete(ctx, observability.StageClassify, len(groups), 0, nil)

	groupingTime := time.Since(stageStart)

	// Stage 3: pad placement.
	stageStart = time.Now()
	hooks.OnStageStart(ctx, observability.StagePlacement, len(groups))
	placement, err := pads.Place(part, in.BBox, params.padConfig())
	hooks.OnStageComplete(ctx, observability.StagePlacement,
		len(placement.Left.Pads)+len(placement.Bottom.Pads), time.Since(stageStart), err)
	if err != nil {
		hooks.OnRunComplete(ctx, 0, 0, time.Since(runStart), err)
		return nil, err
	}

	// Stage 4: channel assignment.
	hooks.OnStageStart(ctx, observability.StageChannels, len(groups))
	spacing := channel.Spacing(params.Routing.TraceWidth, params.Routing.ChannelGap)
	leftOffsets := channel.Assign(placement.Left, spacing)
	bottomOffsets := channel.Assign(placement.Bottom, spacing)
	hooks.OnStageComplete(ctx, observability.StageChannels,
		len(leftOffsets)+len(bottomOffsets), 0, nil)

	placeTime := time.Since(stageStart)

	// Stage 5: Manhattan routing.
	stageStart = time.Now()
	hooks.OnStageStart(ctx, observability.StageRouting, len(groups))
	leftTraces, err := trace.Route(placement.Left, leftOffsets,
		params.traceConfig(params.Routing.IntermediateOffsetLeft))
	if err == nil {
		var bottomTraces []trace.Trace
		bottomTraces, err = trace.Route(placement.Bottom, bottomOffsets,
			params.traceConfig(params.Routing.IntermediateOffsetBottom))
		leftTraces = append(leftTraces, bottomTraces...)
	}
	hooks.OnStageComplete(ctx, observability.StageRouting, len(leftTraces), time.Since(stageStart), err)
	if err != nil {
		hooks.OnRunComplete(ctx, 0, 0, time.Since(runStart), err)
		return nil, err
	}

	result := &Result{
		Placement: placement,
		BondPorts: placement.Ports(),
		Traces:    leftTraces,
		Warnings:  warnings,
	}
	result.fillCounts()
	result.Stats.GroupingTime = groupingTime
	result.Stats.PlaceTime = placeTime
	result.Stats.RouteTime = time.Since(stageStart)

	hooks.OnRunComplete(ctx, result.Stats.Groups, result.Stats.Traces, time.Since(runStart), nil)
	return result, nil
}
