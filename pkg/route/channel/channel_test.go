package channel

import (
	"testing"

	"github.com/lightfab/picroute/pkg/geom"
	"github.com/lightfab/picroute/pkg/route/group"
	"github.com/lightfab/picroute/pkg/route/pads"
)

func leftRow(ys ...float64) pads.Row {
	row := pads.Row{Edge: group.EdgeLeft}
	for _, y := range ys {
		row.Order = append(row.Order, group.Group{Centroid: geom.Point{Y: y}})
	}
	return row
}

func TestSpacing(t *testing.T) {
	if got := Spacing(15, 5); got != 20 {
		t.Errorf("Spacing(15, 5) = %v, want 20", got)
	}
}

func TestAssignSymmetricSpread(t *testing.T) {
	// Three groups at y = 0, 0, 0 with spacing 20 spread to -20, 0, +20.
	offsets := Assign(leftRow(0, 0, 0), 20)
	want := []float64{-20, 0, 20}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("offsets = %v, want %v", offsets, want)
			break
		}
	}
}

func TestAssignStrictlyIncreasing(t *testing.T) {
	tests := []struct {
		name string
		ys   []float64
	}{
		{"spread", []float64{-10, 40, 90}},
		{"dense", []float64{0, 1, 2, 3}},
		{"ties", []float64{50, 50, 50, 50, 50}},
		{"near ties", []float64{10, 10.001, 10.002}},
	}

	for _, tt := range tests {
		offsets := Assign(leftRow(tt.ys...), 20)
		for i := 1; i < len(offsets); i++ {
			if offsets[i] <= offsets[i-1] {
				t.Errorf("%s: offsets %v not strictly increasing at %d", tt.name, offsets, i)
			}
		}
	}
}

func TestAssignMinimumGap(t *testing.T) {
	// Lanes for coincident centroids sit exactly one spacing apart, so
	// parallel traces keep the full clearance gap between their edges.
	offsets := Assign(leftRow(100, 100), 20)
	if diff := offsets[1] - offsets[0]; diff != 20 {
		t.Errorf("lane gap = %v, want 20", diff)
	}
}

func TestAssignSingle(t *testing.T) {
	offsets := Assign(leftRow(42), 20)
	if len(offsets) != 1 || offsets[0] != 42 {
		t.Errorf("single group offset = %v, want [42]", offsets)
	}
}

func TestAssignEmpty(t *testing.T) {
	if offsets := Assign(pads.Row{Edge: group.EdgeLeft}, 20); offsets != nil {
		t.Errorf("empty row = %v, want nil", offsets)
	}
}

func TestAssignBottomUsesX(t *testing.T) {
	row := pads.Row{Edge: group.EdgeBottom, Order: []group.Group{
		{Centroid: geom.Point{X: 200, Y: 999}},
		{Centroid: geom.Point{X: 600, Y: -999}},
	}}
	offsets := Assign(row, 20)
	want := []float64{190, 610}
	if offsets[0] != want[0] || offsets[1] != want[1] {
		t.Errorf("offsets = %v, want %v", offsets, want)
	}
}
