package graphview

import "math"

// NodeID identifies an asset in the diagram by its ticker symbol.
type NodeID string

// Edge is one undirected MST edge between two assets. The edge list is
// supplied by the data loader; the view never verifies tree properties.
type Edge struct {
	Source      NodeID
	Target      NodeID
	Correlation float64 // Pearson correlation in [-1, 1]
	Distance    float64 // precomputed graph distance, treated as opaque
}

// DisplayWeight returns the value shown on the edge label. Distance is
// preferred when it is a defined, non-zero number; otherwise the raw
// correlation is shown so the label is never blank.
func (e Edge) DisplayWeight() float64 {
	if e.Distance != 0 && !math.IsNaN(e.Distance) && !math.IsInf(e.Distance, 0) {
		return e.Distance
	}
	return e.Correlation
}

// Position is a point in intrinsic surface coordinates.
type Position struct {
	X float64
	Y float64
}

// Model holds the immutable node-link data for a single view instance.
// Nodes preserves first-seen order from the edge list; that order is the
// documented tie-break order for hit-testing (later nodes win).
type Model struct {
	Nodes     []NodeID
	Positions map[NodeID]Position
	Edges     []Edge
	Width     int
	Height    int
}

// Nodes sit on a circle at this fraction of the shorter surface dimension.
const layoutRadiusFraction = 0.35

// BuildModel derives the node set from the edge list and assigns each node
// a static position on a circle centered in the surface. Node i of N sits
// at angle 2π·i/N. The ordering only affects angular placement, not
// correctness, so first-seen order is good enough. The function is total:
// self-loops and duplicate pairs pass through untouched and an empty edge
// list yields an empty model.
func BuildModel(edges []Edge, width, height int) *Model {
	m := &Model{
		Positions: make(map[NodeID]Position),
		Edges:     edges,
		Width:     width,
		Height:    height,
	}

	seen := make(map[NodeID]bool)
	for _, e := range edges {
		if !seen[e.Source] {
			seen[e.Source] = true
			m.Nodes = append(m.Nodes, e.Source)
		}
		if !seen[e.Target] {
			seen[e.Target] = true
			m.Nodes = append(m.Nodes, e.Target)
		}
	}

	n := len(m.Nodes)
	if n == 0 {
		return m
	}

	centerX := float64(width) / 2
	centerY := float64(height) / 2
	shorter := width
	if height < shorter {
		shorter = height
	}
	radius := layoutRadiusFraction * float64(shorter)

	for i, node := range m.Nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		m.Positions[node] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return m
}
