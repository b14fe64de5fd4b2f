package graphview

import "testing"

// stubController builds a controller whose repaints are counted instead of
// rasterized, so state-change gating can be asserted directly.
func stubController(m *Model, ratings map[NodeID]Rating) (*Controller, *int) {
	c := &Controller{
		model:   m,
		ratings: ratings,
		scaleX:  1,
		scaleY:  1,
	}
	repaints := 0
	c.repaint = func(NodeID) { repaints++ }
	return c, &repaints
}

func TestPointerMoveHitAndMiss(t *testing.T) {
	m := testModel()
	c, _ := stubController(m, nil)

	// Exactly at a node's center is always a hit.
	posA := m.Positions["A"]
	c.PointerMoved(posA.X, posA.Y)
	if c.Hovered() != "A" {
		t.Errorf("Expected Focused(A), got %q", c.Hovered())
	}

	// Far away from every node resolves to idle.
	c.PointerMoved(1, 1)
	if c.Hovered() != "" {
		t.Errorf("Expected Idle, got %q", c.Hovered())
	}

	// Just inside the hit radius still resolves.
	c.PointerMoved(posA.X+hitRadius-1, posA.Y)
	if c.Hovered() != "A" {
		t.Errorf("Expected Focused(A) within hit radius, got %q", c.Hovered())
	}

	// Just outside the hit radius does not.
	c.PointerMoved(posA.X+hitRadius+1, posA.Y)
	if c.Hovered() != "" {
		t.Errorf("Expected Idle outside hit radius, got %q", c.Hovered())
	}
}

func TestPointerMoveRepaintGating(t *testing.T) {
	m := testModel()
	c, repaints := stubController(m, nil)

	posA := m.Positions["A"]

	// Two consecutive moves resolving to the same node repaint once.
	c.PointerMoved(posA.X, posA.Y)
	c.PointerMoved(posA.X+1, posA.Y)
	if *repaints != 1 {
		t.Errorf("Expected 1 repaint for duplicate hover, got %d", *repaints)
	}

	// Two consecutive misses repaint once (the transition back to idle).
	c.PointerMoved(1, 1)
	c.PointerMoved(2, 2)
	if *repaints != 2 {
		t.Errorf("Expected 2 repaints total, got %d", *repaints)
	}

	// Moves that never change the idle state repaint zero times.
	*repaints = 0
	c.PointerMoved(3, 3)
	c.PointerMoved(4, 4)
	if *repaints != 0 {
		t.Errorf("Expected no repaints while idle, got %d", *repaints)
	}
}

func TestPointerLeaveAlwaysRepaints(t *testing.T) {
	m := testModel()
	c, repaints := stubController(m, nil)

	posB := m.Positions["B"]
	c.PointerMoved(posB.X, posB.Y)
	*repaints = 0

	c.PointerLeft()
	if c.Hovered() != "" {
		t.Errorf("Expected Idle after leave, got %q", c.Hovered())
	}
	if *repaints != 1 {
		t.Errorf("Expected repaint on leave, got %d", *repaints)
	}

	// Leaving while already idle still repaints; the view clears on exit.
	c.PointerLeft()
	if *repaints != 2 {
		t.Errorf("Expected repaint on redundant leave, got %d", *repaints)
	}
}

func TestClickDispatch(t *testing.T) {
	m := testModel()
	c, _ := stubController(m, nil)

	var selected []NodeID
	c.OnSelect = func(n NodeID) { selected = append(selected, n) }

	// Click while idle is a no-op.
	c.Clicked()
	if len(selected) != 0 {
		t.Errorf("Idle click invoked select: %v", selected)
	}

	posB := m.Positions["B"]
	c.PointerMoved(posB.X, posB.Y)
	c.Clicked()
	if len(selected) != 1 || selected[0] != "B" {
		t.Errorf("Expected exactly one select of B, got %v", selected)
	}

	c.PointerLeft()
	c.Clicked()
	if len(selected) != 1 {
		t.Errorf("Click after leave invoked select again: %v", selected)
	}
}

func TestHitTestTieBreakLastWins(t *testing.T) {
	// Two nodes closer together than the hit radius: the later node in
	// model order wins the overlap.
	m := &Model{
		Nodes: []NodeID{"X", "Y"},
		Positions: map[NodeID]Position{
			"X": {X: 100, Y: 100},
			"Y": {X: 110, Y: 100},
		},
		Width:  200,
		Height: 200,
	}
	c, _ := stubController(m, nil)

	// (105,100) is within 20 units of both X and Y.
	c.PointerMoved(105, 100)
	if c.Hovered() != "Y" {
		t.Errorf("Expected later node Y to win the tie, got %q", c.Hovered())
	}
}

func TestDisplayScaleMapping(t *testing.T) {
	m := testModel()
	c, _ := stubController(m, nil)

	// Surface shown at half width and quarter height: device coordinates
	// must be scaled up before hit-testing.
	c.SetDisplaySize(float64(m.Width)/2, float64(m.Height)/4)

	posA := m.Positions["A"]
	c.PointerMoved(posA.X/2, posA.Y/4)
	if c.Hovered() != "A" {
		t.Errorf("Expected Focused(A) via scaled coordinates, got %q", c.Hovered())
	}

	// Degenerate display sizes fall back to identity scale.
	c.SetDisplaySize(0, 0)
	if c.scaleX != 1 || c.scaleY != 1 {
		t.Errorf("Expected identity scale fallback, got %f,%f", c.scaleX, c.scaleY)
	}
}

func TestEndToEndHoverScenario(t *testing.T) {
	// Three nodes at 120° spacing; hovering C's exact coordinates focuses
	// C and a click selects it.
	m := testModel()
	ratings := testRatings()

	canvas := NewCanvas(400, 400)
	r := NewRenderer(canvas, DefaultPalette())
	c := NewController(m, r, ratings)

	var selected []NodeID
	c.OnSelect = func(n NodeID) { selected = append(selected, n) }

	posC := m.Positions["C"]
	c.PointerMoved(posC.X, posC.Y)
	if c.Hovered() != "C" {
		t.Fatalf("Expected Focused(C), got %q", c.Hovered())
	}

	// The repaint went through the real renderer: C is drawn enlarged in
	// the AVOID color with the active outline.
	palette := DefaultPalette()
	cx, cy := int(posC.X), int(posC.Y)
	if got := canvas.Image().RGBAAt(cx, cy); got != palette.NodeAvoid {
		t.Errorf("Hovered C center is %v, expected AVOID color", got)
	}
	if got := canvas.Image().RGBAAt(cx+hoverNodeRadius-1, cy); got != palette.OutlineActive {
		t.Errorf("Hovered C rim is %v, expected active outline", got)
	}

	c.Clicked()
	if len(selected) != 1 || selected[0] != "C" {
		t.Errorf("Expected single select of C, got %v", selected)
	}
}
