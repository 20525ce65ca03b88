package route

import (
	"context"
	"io"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/lightfab/picroute/pkg/cache"
	"github.com/lightfab/picroute/pkg/errors"
	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/netlist"
	"github.com/lightfab/picroute/pkg/port"
	"github.com/lightfab/picroute/pkg/route/trace"
)

// fixture builds a small but complete input: two left-edge groups, two
// bottom-edge groups, one unresolvable group, and one optical port that
// must be ignored.
func fixture(t *testing.T) Input {
	t.Helper()

	reg := port.NewRegistry()
	add := func(name string, x, y float64) {
		t.Helper()
		err := reg.Add(port.Port{
			Name:   name,
			Center: geom.Point{X: x, Y: y},
			Width:  10,
			Layer:  geom.Layer{Number: 12},
			Kind:   port.KindElectrical,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	add("h1_e1", 40, 590)
	add("h1_e2", 40, 610)
	add("h2_e1", 40, 990)
	add("h2_e2", 40, 1010)
	add("m1_e1", 880, 1300)
	add("m1_e2", 920, 1300)
	add("m2_e1", 1580, 1300)
	add("m2_e2", 1620, 1300)
	if err := reg.Add(port.Port{Name: "gc_in", Center: geom.Point{X: 5000, Y: 300}, Kind: port.KindOptical}); err != nil {
		t.Fatal(err)
	}

	tbl := netlist.New()
	for _, g := range []struct {
		name  string
		ports []string
	}{
		{"heater_1", []string{"h1_e1", "h1_e2"}},
		{"heater_2", []string{"h2_e1", "h2_e2"}},
		{"mzi_1", []string{"m1_e1", "m1_e2"}},
		{"mzi_2", []string{"m2_e1", "m2_e2"}},
		{"ghost", []string{"nonexistent_a", "nonexistent_b"}},
	} {
		if err := tbl.Add(g.name, g.ports); err != nil {
			t.Fatal(err)
		}
	}

	return Input{
		Registry: reg,
		BBox:     geom.BBox{MinX: 0, MinY: 0, MaxX: 5200, MaxY: 2400},
		Netlist:  tbl,
	}
}

func TestRunEndToEnd(t *testing.T) {
	in := fixture(t)
	result, err := Run(context.Background(), in, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Stats.LeftPads != 2 || result.Stats.BottomPads != 2 {
		t.Errorf("pads = %d left / %d bottom, want 2/2", result.Stats.LeftPads, result.Stats.BottomPads)
	}
	if result.Stats.Dropped != 1 {
		t.Errorf("dropped = %d, want 1", result.Stats.Dropped)
	}

	// 2 fan-in + 1 long-haul per group, 4 surviving groups.
	if len(result.Traces) != 12 {
		t.Errorf("traces = %d, want 12", len(result.Traces))
	}

	// The dropped group leaves no geometry anywhere.
	for _, p := range result.BondPorts {
		if p.Name == "bondpad_ghost" {
			t.Error("dropped group must not receive a pad")
		}
	}
	for _, tr := range result.Traces {
		if tr.Group == "ghost" {
			t.Error("dropped group must not receive traces")
		}
	}
}

func TestRunLongHaulTermination(t *testing.T) {
	in := fixture(t)
	result, err := Run(context.Background(), in, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	padCenter := make(map[string]geom.Point)
	for _, p := range result.BondPorts {
		padCenter[p.Name] = p.Center
	}

	// The last trace of each group is the long-haul; it must end exactly
	// on the pad port center and be fully orthogonal.
	lastOf := make(map[string]trace.Trace)
	for _, tr := range result.Traces {
		lastOf[tr.Group] = tr
	}
	for name, tr := range lastOf {
		want, ok := padCenter["bondpad_"+name]
		if !ok {
			t.Fatalf("no bond port for %s", name)
		}
		if got := tr.Points[len(tr.Points)-1]; got != want {
			t.Errorf("%s: long-haul ends at %v, want %v", name, got, want)
		}
		if !trace.IsManhattan(tr.Points) {
			t.Errorf("%s: long-haul not orthogonal: %v", name, tr.Points)
		}
	}
}

func TestRunNonCrossingInvariant(t *testing.T) {
	in := fixture(t)
	result, err := Run(context.Background(), in, DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	row := result.Placement.Left
	for i := 1; i < len(row.Order); i++ {
		prev, cur := row.Order[i-1], row.Order[i]
		if prev.Centroid.Y >= cur.Centroid.Y {
			t.Errorf("left row order not ascending: %v then %v", prev.Centroid, cur.Centroid)
		}
		if row.Pads[i].Origin.Y <= row.Pads[i-1].Origin.Y {
			t.Errorf("left pad positions not ascending")
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(context.Background(), fixture(t), DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(context.Background(), fixture(t), DefaultParams())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff(a.Placement, b.Placement); diff != "" {
		t.Errorf("placement differs between runs:\n%s", diff)
	}
	if diff := cmp.Diff(a.Traces, b.Traces); diff != "" {
		t.Errorf("traces differ between runs:\n%s", diff)
	}
}

func TestRunValidatesParams(t *testing.T) {
	params := DefaultParams()
	params.Pads.Pitch = params.Pads.Size // not strictly greater

	_, err := Run(context.Background(), fixture(t), params)
	if !errors.Is(err, errors.ErrCodeInvalidPitch) {
		t.Errorf("got %v, want INVALID_PITCH", err)
	}
}

func TestRunnerInsertsBondPorts(t *testing.T) {
	in := fixture(t)
	before := in.Registry.Len()

	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), in, Options{Params: DefaultParams()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if in.Registry.Len() != before+len(result.BondPorts) {
		t.Errorf("registry grew by %d, want %d", in.Registry.Len()-before, len(result.BondPorts))
	}
	if _, ok := in.Registry.Get("bondpad_heater_1"); !ok {
		t.Error("bondpad_heater_1 missing from registry")
	}
	if result.RunID == "" {
		t.Error("RunID not set")
	}
}

func TestRunnerCacheRoundTrip(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, charmlog.New(io.Discard))

	first, err := runner.Execute(context.Background(), fixture(t), Options{Params: DefaultParams()})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should not be a cache hit")
	}

	second, err := runner.Execute(context.Background(), fixture(t), Options{Params: DefaultParams()})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should be a cache hit")
	}
	if diff := cmp.Diff(first.Traces, second.Traces); diff != "" {
		t.Errorf("cached geometry differs:\n%s", diff)
	}
	if first.RunID == second.RunID {
		t.Error("each execution should get a fresh RunID")
	}

	// Changed parameters must miss the cache.
	params := DefaultParams()
	params.Routing.TraceWidth = 20
	third, err := runner.Execute(context.Background(), fixture(t), Options{Params: params})
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheHit {
		t.Error("changed params should not hit the cache")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, charmlog.New(io.Discard))

	if _, err := runner.Execute(context.Background(), fixture(t), Options{Params: DefaultParams()}); err != nil {
		t.Fatal(err)
	}
	result, err := runner.Execute(context.Background(), fixture(t),
		Options{Params: DefaultParams(), Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheHit {
		t.Error("refresh must bypass the cache")
	}
}

func TestLoadParamsOverrides(t *testing.T) {
	params := DefaultParams()
	if params.Pads.Pitch != DefaultPadPitch || params.Routing.MetalLayer != DefaultMetalLayerNumber {
		t.Errorf("defaults = %+v", params)
	}
	if params.Layer() != (geom.Layer{Number: 49, Datatype: 0}) {
		t.Errorf("Layer = %v", params.Layer())
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		ok     bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"zero trace width", func(p *Params) { p.Routing.TraceWidth = 0 }, false},
		{"negative gap", func(p *Params) { p.Routing.ChannelGap = -1 }, false},
		{"pitch below size", func(p *Params) { p.Pads.Pitch = 10 }, false},
	}
	for _, tt := range tests {
		p := DefaultParams()
		tt.mutate(&p)
		if err := p.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s: Validate = %v", tt.name, err)
		}
	}
}
