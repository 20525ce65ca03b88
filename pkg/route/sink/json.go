package sink

import (
	"encoding/json"

	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/route"
)

// RenderJSON exports a routing result as indented JSON. The geometry
// portion (placement, bond ports, traces) is deterministic; run metadata
// (run ID, timings) varies per execution.
func RenderJSON(res *route.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return append(data, '\n'), nil
}

// ParseJSON re-imports a result previously exported by [RenderJSON],
// enabling round-trip rendering of the SVG and DOT sinks without
// re-running the pipeline.
func ParseJSON(data []byte) (*route.Result, error) {
	var res route.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode result")
	}
	return &res, nil
}
