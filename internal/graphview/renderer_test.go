package graphview

import (
	"bytes"
	"image/color"
	"testing"
)

func testModel() *Model {
	return BuildModel([]Edge{
		{Source: "A", Target: "B", Correlation: 0.8, Distance: 0.3},
		{Source: "B", Target: "C", Correlation: -0.6, Distance: 0.5},
	}, 400, 400)
}

func testRatings() map[NodeID]Rating {
	return map[NodeID]Rating{
		"A": {Advice: AdviceBuy, Momentum: 0.02},
		"B": {Advice: AdviceHold, Momentum: 0.0},
		"C": {Advice: AdviceAvoid, Momentum: -0.03},
	}
}

func snapshot(c *Canvas) []byte {
	return append([]byte(nil), c.Image().Pix...)
}

// nearbyColor reports whether any pixel within the given radius of (x,y)
// matches the color, tolerating Bresenham rounding of line placement.
func nearbyColor(c *Canvas, x, y, radius int, want color.RGBA) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if c.Image().RGBAAt(x+dx, y+dy) == want {
				return true
			}
		}
	}
	return false
}

func TestRepaintDeterministicAndIdempotent(t *testing.T) {
	m := testModel()
	ratings := testRatings()

	canvas := NewCanvas(400, 400)
	r := NewRenderer(canvas, DefaultPalette())

	r.Repaint(m, ratings, "")
	first := snapshot(canvas)

	r.Repaint(m, ratings, "")
	second := snapshot(canvas)
	if !bytes.Equal(first, second) {
		t.Error("Two repaints with identical inputs produced different pixels")
	}

	// Paint a different state in between, then return to the original.
	r.Repaint(m, ratings, "C")
	r.Repaint(m, ratings, "")
	third := snapshot(canvas)
	if !bytes.Equal(first, third) {
		t.Error("Repaint after an intermediate state is not reproducible")
	}
}

func TestRepaintEmptyModelNoOp(t *testing.T) {
	canvas := NewCanvas(100, 100)
	palette := DefaultPalette()
	r := NewRenderer(canvas, palette)

	r.Repaint(BuildModel(nil, 100, 100), nil, "")

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if got := canvas.Image().RGBAAt(x, y); got != palette.Background {
				t.Fatalf("Pixel (%d,%d) is %v, expected bare background", x, y, got)
			}
		}
	}

	// A nil model must not crash either.
	r.Repaint(nil, nil, "")
}

func TestRepaintNodeColors(t *testing.T) {
	m := testModel()
	ratings := testRatings()
	palette := DefaultPalette()

	canvas := NewCanvas(400, 400)
	r := NewRenderer(canvas, palette)
	r.Repaint(m, ratings, "")

	testCases := []struct {
		node NodeID
		want color.RGBA
	}{
		{"A", palette.NodeBuy},
		{"B", palette.NodeHold},
		{"C", palette.NodeAvoid},
	}
	for _, tc := range testCases {
		pos := m.Positions[tc.node]
		if got := canvas.Image().RGBAAt(int(pos.X), int(pos.Y)); got != tc.want {
			t.Errorf("Node %s center is %v, expected %v", tc.node, got, tc.want)
		}
	}
}

func TestRepaintMissingRatingIsNeutral(t *testing.T) {
	m := testModel()
	palette := DefaultPalette()

	canvas := NewCanvas(400, 400)
	r := NewRenderer(canvas, palette)
	r.Repaint(m, nil, "")

	for _, node := range m.Nodes {
		pos := m.Positions[node]
		if got := canvas.Image().RGBAAt(int(pos.X), int(pos.Y)); got != palette.NodeHold {
			t.Errorf("Unrated node %s is %v, expected neutral %v", node, got, palette.NodeHold)
		}
	}
}

func TestRepaintHoverHighlight(t *testing.T) {
	m := testModel()
	ratings := testRatings()
	palette := DefaultPalette()

	canvas := NewCanvas(400, 400)
	r := NewRenderer(canvas, palette)

	posC := m.Positions["C"]
	cx, cy := int(posC.X), int(posC.Y)
	ringX := cx + hoverNodeRadius - 1

	// Idle: no active outline at the enlarged radius.
	r.Repaint(m, ratings, "")
	if got := canvas.Image().RGBAAt(ringX, cy); got == palette.OutlineActive {
		t.Error("Active outline visible without hover")
	}

	// Hovered: enlarged AVOID fill plus the accent outline.
	r.Repaint(m, ratings, "C")
	if got := canvas.Image().RGBAAt(cx, cy); got != palette.NodeAvoid {
		t.Errorf("Hovered C center is %v, expected AVOID color", got)
	}
	if got := canvas.Image().RGBAAt(ringX, cy); got != palette.OutlineActive {
		t.Errorf("Hovered C rim is %v, expected active outline", got)
	}

	// The B–C edge is drawn at full opacity; A–B stays faded. Sample a
	// point a quarter of the way along each segment, clear of labels.
	posB := m.Positions["B"]
	posA := m.Positions["A"]
	bcX := int(posB.X + (posC.X-posB.X)*0.25)
	bcY := int(posB.Y + (posC.Y-posB.Y)*0.25)
	if !nearbyColor(canvas, bcX, bcY, 2, palette.EdgeHighlight) {
		t.Error("B-C edge not highlighted while C is hovered")
	}
	abX := int(posA.X + (posB.X-posA.X)*0.25)
	abY := int(posA.Y + (posB.Y-posA.Y)*0.25)
	if nearbyColor(canvas, abX, abY, 2, palette.EdgeHighlight) {
		t.Error("A-B edge highlighted although neither endpoint is hovered")
	}
}

func TestRepaintSelfLoopDoesNotCrash(t *testing.T) {
	m := BuildModel([]Edge{{Source: "X", Target: "X", Correlation: 1}}, 200, 200)
	canvas := NewCanvas(200, 200)
	r := NewRenderer(canvas, DefaultPalette())
	r.Repaint(m, nil, "")
	r.Repaint(m, nil, "X")
}

func TestRepaintLegendAlwaysPresent(t *testing.T) {
	palette := DefaultPalette()
	canvas := NewCanvas(400, 400)
	r := NewRenderer(canvas, palette)

	// Data contains no BUY or AVOID nodes, yet all three swatches render.
	m := BuildModel([]Edge{{Source: "A", Target: "B", Correlation: 0.5}}, 400, 400)
	r.Repaint(m, map[NodeID]Rating{"A": {Advice: AdviceHold}}, "")

	found := map[color.RGBA]bool{}
	for y := 300; y < 400; y++ {
		for x := 0; x < 60; x++ {
			found[canvas.Image().RGBAAt(x, y)] = true
		}
	}
	for _, want := range []color.RGBA{palette.NodeBuy, palette.NodeHold, palette.NodeAvoid} {
		if !found[want] {
			t.Errorf("Legend swatch %v missing from lower-left corner", want)
		}
	}
}

func TestShortLabel(t *testing.T) {
	testCases := []struct {
		in   NodeID
		want string
	}{
		{"RELIANCE.NS", "RELIANCE"},
		{"TCS.BO", "TCS"},
		{"AAPL", "AAPL"},
		{".ODD", ".ODD"},
	}
	for _, tc := range testCases {
		if got := ShortLabel(tc.in); got != tc.want {
			t.Errorf("ShortLabel(%q): expected %q, got %q", tc.in, got, tc.want)
		}
	}
}

func TestLabelFormatting(t *testing.T) {
	if got := formatWeight(0.42); got != "0.42" {
		t.Errorf("formatWeight(0.42): expected 0.42, got %s", got)
	}
	if got := formatMomentum(-0.03); got != "-3.00%" {
		t.Errorf("formatMomentum(-0.03): expected -3.00%%, got %s", got)
	}
	if got := formatMomentum(0.02); got != "+2.00%" {
		t.Errorf("formatMomentum(0.02): expected +2.00%%, got %s", got)
	}
	if got := formatMomentum(0); got != "+0.00%" {
		t.Errorf("formatMomentum(0): expected explicit sign, got %s", got)
	}
}
