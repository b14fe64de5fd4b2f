package components

import (
	"testing"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
)

func testEdges() []graphview.Edge {
	return []graphview.Edge{
		{Source: "RELIANCE.NS", Target: "TCS.NS", Correlation: 0.8, Distance: 0.3},
		{Source: "TCS.NS", Target: "INFY.NS", Correlation: -0.6, Distance: 0.5},
	}
}

func TestNetworkViewRebuild(t *testing.T) {
	nv := NewNetworkView(nil, true)
	nv.SetData(testEdges(), nil)

	nv.rebuild(50, 20)

	if nv.model == nil {
		t.Fatal("Rebuild should produce a layout model")
	}
	if nv.model.Width != 50*cellPixelWidth || nv.model.Height != 20*cellPixelHeight {
		t.Errorf("Canvas should be one pixel block per cell, got %dx%d", nv.model.Width, nv.model.Height)
	}
	if len(nv.model.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(nv.model.Nodes))
	}
	if nv.controller == nil || nv.renderer == nil {
		t.Fatal("Rebuild should wire the renderer and controller")
	}
}

func TestNetworkViewPointerMapsCellsToPixels(t *testing.T) {
	nv := NewNetworkView(nil, true)
	nv.SetData(testEdges(), nil)
	nv.rebuild(50, 20)

	// Put the pointer on the cell containing the first node's center.
	pos := nv.model.Positions["RELIANCE.NS"]
	cellX := pos.X / cellPixelWidth
	cellY := pos.Y / cellPixelHeight

	nv.controller.PointerMoved(cellX, cellY)
	if nv.controller.Hovered() != "RELIANCE.NS" {
		t.Errorf("Expected hover on RELIANCE.NS, got %q", nv.controller.Hovered())
	}

	// A far corner resolves to nothing.
	nv.controller.PointerMoved(0, 0)
	if nv.controller.Hovered() != "" {
		t.Errorf("Expected idle in the corner, got %q", nv.controller.Hovered())
	}
}

func TestNetworkViewResizeInvalidatesFrame(t *testing.T) {
	nv := NewNetworkView(nil, true)
	nv.SetData(testEdges(), nil)

	nv.rebuild(50, 20)
	nv.cachedSixel = "stale"
	nv.rebuild(60, 24)

	if nv.cachedSixel != "" {
		t.Error("Resize should drop the cached frame")
	}
	if nv.cachedWidth != 60 || nv.cachedHeight != 24 {
		t.Errorf("Cached size not updated: %dx%d", nv.cachedWidth, nv.cachedHeight)
	}
}

func TestNetworkViewSelectSurvivesRebuild(t *testing.T) {
	nv := NewNetworkView(nil, true)
	nv.SetData(testEdges(), nil)

	var selected graphview.NodeID
	nv.SetSelectedFunc(func(id graphview.NodeID) { selected = id })

	nv.rebuild(50, 20)

	pos := nv.model.Positions["TCS.NS"]
	nv.controller.PointerMoved(pos.X/cellPixelWidth, pos.Y/cellPixelHeight)
	nv.controller.Clicked()

	if selected != "TCS.NS" {
		t.Errorf("Expected TCS.NS selected, got %q", selected)
	}
}
