package market

import (
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
)

// Edge weights are floats but the graph library wants integers; scaling by
// 1e6 keeps six decimal places of the distance ordering intact.
const weightScale = 1e6

// ComputeMST reduces a full pairwise correlation table to its minimum
// spanning tree over distance. The view normally consumes a precomputed
// edge file; this reproduces the upstream pipeline step when only the raw
// table is available. Original correlation and distance values are carried
// onto the surviving edges untouched.
func ComputeMST(pairs []Pair) ([]graphview.Edge, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	g := graph.New(graph.StringHash, graph.Weighted())

	lookup := make(map[string]Pair, len(pairs))
	for _, p := range pairs {
		if p.A == p.B {
			continue // self-correlations carry no tree information
		}
		// Ignore errors - vertex might already exist
		g.AddVertex(string(p.A))
		g.AddVertex(string(p.B))
		if err := g.AddEdge(string(p.A), string(p.B), graph.EdgeWeight(int(p.Distance*weightScale))); err != nil {
			// Duplicate pairs keep the first weight seen
			continue
		}
		lookup[pairKey(p.A, p.B)] = p
	}

	mst, err := graph.MinimumSpanningTree(g)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spanning tree: %w", err)
	}

	treeEdges, err := mst.Edges()
	if err != nil {
		return nil, fmt.Errorf("failed to list spanning tree edges: %w", err)
	}

	edges := make([]graphview.Edge, 0, len(treeEdges))
	for _, te := range treeEdges {
		p, ok := lookup[pairKey(graphview.NodeID(te.Source), graphview.NodeID(te.Target))]
		if !ok {
			continue
		}
		edges = append(edges, graphview.Edge{
			Source:      p.A,
			Target:      p.B,
			Correlation: p.Correlation,
			Distance:    p.Distance,
		})
	}

	// The library iterates map-backed storage; sort so output order is
	// stable across runs.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return edges, nil
}

// pairKey returns a direction-independent key for a ticker pair.
func pairKey(a, b graphview.NodeID) string {
	if a > b {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}
