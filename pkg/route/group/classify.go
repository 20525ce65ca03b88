package group

// Edge identifies one of the two chip edges that bond pads may occupy.
type Edge string

// Placement edges.
const (
	EdgeLeft   Edge = "left"
	EdgeBottom Edge = "bottom"
)

// OrderAxis returns the sort key for pad ordering on this edge: the
// centroid coordinate along the edge direction (y for the left edge, x
// for the bottom edge). Routing channels are spread along the same axis,
// so one key drives both the pad index and the channel offset — the
// pairing that makes the non-crossing invariant hold.
func (e Edge) OrderAxis(g Group) float64 {
	if e == EdgeLeft {
		return g.Centroid.Y
	}
	return g.Centroid.X
}

// Partition holds the groups split by assigned edge, each set still in
// configuration order.
type Partition struct {
	Left   []Group
	Bottom []Group
}

// Classify assigns each group to a chip edge based on its centroid: left
// if centroid.x is strictly below thresholdX, bottom otherwise. A
// centroid exactly on the threshold goes to the bottom edge.
//
// This is a static positional convention inherited from the upstream
// layout (left-routed contacts sit near x ≈ 0), not something this
// subsystem infers.
func Classify(groups []Group, thresholdX float64) Partition {
	var p Partition
	for _, g := range groups {
		if g.Centroid.X < thresholdX {
			p.Left = append(p.Left, g)
		} else {
			p.Bottom = append(p.Bottom, g)
		}
	}
	return p
}
