package route

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/route/pads"
	"github.com/lightfab/picroute/pkg/route/trace"
)

// Reference-process defaults, in micrometers. These match the documented
// defaults of the upstream layout: 80 μm pads on a 100 μm pitch, 500 μm
// edge clearance, 15 μm metal traces on layer 49/0.
const (
	DefaultEdgeBuffer         = 500.0
	DefaultPadSize            = 80.0
	DefaultPadPitch           = 100.0
	DefaultPadPortWidth       = 40.0
	DefaultLeftPadStartY      = -200.0
	DefaultBottomPadStartX    = 0.0
	DefaultLeftThresholdX     = 100.0
	DefaultTraceWidth         = 15.0
	DefaultChannelGap         = 5.0
	DefaultIntermediateOffset = 200.0
	DefaultMetalLayerNumber   = 49
	DefaultMetalLayerDatatype = 0
)

// PadParams configures bond pad placement.
type PadParams struct {
	EdgeBuffer     float64 `toml:"edge_buffer" json:"edge_buffer"`
	Size           float64 `toml:"size" json:"size"`
	Pitch          float64 `toml:"pitch" json:"pitch"`
	PortWidth      float64 `toml:"port_width" json:"port_width"`
	LeftStartY     float64 `toml:"left_start_y" json:"left_start_y"`
	BottomStartX   float64 `toml:"bottom_start_x" json:"bottom_start_x"`
	LeftThresholdX float64 `toml:"left_threshold_x" json:"left_threshold_x"`
}

// RoutingParams configures channel assignment and trace generation.
type RoutingParams struct {
	TraceWidth               float64 `toml:"trace_width" json:"trace_width"`
	ChannelGap               float64 `toml:"channel_gap" json:"channel_gap"`
	IntermediateOffsetLeft   float64 `toml:"intermediate_offset_left" json:"intermediate_offset_left"`
	IntermediateOffsetBottom float64 `toml:"intermediate_offset_bottom" json:"intermediate_offset_bottom"`
	MetalLayer               int     `toml:"metal_layer" json:"metal_layer"`
	MetalDatatype            int     `toml:"metal_datatype" json:"metal_datatype"`
}

// Params is the complete layout parameter set for one routing run.
type Params struct {
	Pads    PadParams     `toml:"pads" json:"pads"`
	Routing RoutingParams `toml:"routing" json:"routing"`
}

// DefaultParams returns the reference-process parameter set.
func DefaultParams() Params {
	return Params{
		Pads: PadParams{
			EdgeBuffer:     DefaultEdgeBuffer,
			Size:           DefaultPadSize,
			Pitch:          DefaultPadPitch,
			PortWidth:      DefaultPadPortWidth,
			LeftStartY:     DefaultLeftPadStartY,
			BottomStartX:   DefaultBottomPadStartX,
			LeftThresholdX: DefaultLeftThresholdX,
		},
		Routing: RoutingParams{
			TraceWidth:               DefaultTraceWidth,
			ChannelGap:               DefaultChannelGap,
			IntermediateOffsetLeft:   DefaultIntermediateOffset,
			IntermediateOffsetBottom: DefaultIntermediateOffset,
			MetalLayer:               DefaultMetalLayerNumber,
			MetalDatatype:            DefaultMetalLayerDatatype,
		},
	}
}

// LoadParams reads a parameter file in TOML form, starting from defaults
// so a file only needs to name what it overrides.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if os.IsNotExist(err) {
			return Params{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Params{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks the parameter set. Violations are fatal configuration
// errors: the pipeline refuses to start rather than emit a partial or
// overlapping layout.
func (p Params) Validate() error {
	if err := p.padConfig().Validate(); err != nil {
		return err
	}
	if p.Routing.TraceWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"trace width %.3f must be positive", p.Routing.TraceWidth)
	}
	if p.Routing.ChannelGap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"channel gap %.3f must not be negative", p.Routing.ChannelGap)
	}
	return nil
}

// Layer returns the routing metal layer.
func (p Params) Layer() geom.Layer {
	return geom.Layer{Number: p.Routing.MetalLayer, Datatype: p.Routing.MetalDatatype}
}

// padConfig maps the parameter set onto the pad placer configuration.
func (p Params) padConfig() pads.Config {
	return pads.Config{
		EdgeBuffer:   p.Pads.EdgeBuffer,
		Size:         p.Pads.Size,
		Pitch:        p.Pads.Pitch,
		PortWidth:    p.Pads.PortWidth,
		LeftStartY:   p.Pads.LeftStartY,
		BottomStartX: p.Pads.BottomStartX,
		Layer:        p.Layer(),
	}
}

// traceConfig maps the parameter set onto the router configuration for
// one edge.
func (p Params) traceConfig(intermediateOffset float64) trace.Config {
	return trace.Config{
		Width:              p.Routing.TraceWidth,
		Layer:              p.Layer(),
		IntermediateOffset: intermediateOffset,
	}
}
