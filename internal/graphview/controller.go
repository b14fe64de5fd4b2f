package graphview

import "math"

// Nodes hit-test against a fixed radius in surface units, independent of
// the drawn radius (which changes with hover state).
const hitRadius = 20.0

// Controller maps pointer events onto the hover state machine. It is the
// only writer of the hover state, and it triggers a repaint only when the
// state actually changes. All transitions are synchronous inside the event
// handler; there are no timers and no background work.
type Controller struct {
	model   *Model
	ratings map[NodeID]Rating

	// hovered is the single piece of mutable view state. Empty means Idle.
	hovered NodeID

	// Device-to-surface scale. The surface has fixed intrinsic pixel
	// dimensions but may be displayed at a different size; pointer
	// coordinates arrive in display units.
	scaleX float64
	scaleY float64

	// OnSelect is invoked with the focused node when it is clicked.
	OnSelect func(NodeID)

	repaint func(hovered NodeID)
}

// NewController wires a controller to a model and renderer. The renderer's
// Repaint is invoked with current data whenever the hover state changes.
func NewController(model *Model, renderer *Renderer, ratings map[NodeID]Rating) *Controller {
	c := &Controller{
		model:   model,
		ratings: ratings,
		scaleX:  1,
		scaleY:  1,
	}
	c.repaint = func(hovered NodeID) {
		renderer.Repaint(model, ratings, hovered)
	}
	return c
}

// SetDisplaySize records the on-screen size the surface is shown at, so
// pointer coordinates can be mapped back to intrinsic surface coordinates.
func (c *Controller) SetDisplaySize(width, height float64) {
	if width <= 0 || height <= 0 {
		c.scaleX, c.scaleY = 1, 1
		return
	}
	c.scaleX = float64(c.model.Width) / width
	c.scaleY = float64(c.model.Height) / height
}

// Hovered returns the currently focused node, or "" when idle.
func (c *Controller) Hovered() NodeID {
	return c.hovered
}

// PointerMoved handles a pointer-move event at display coordinates. When
// the resolved hit differs from the current hover state the controller
// transitions and repaints; an unchanged result (including "still none")
// triggers no repaint.
func (c *Controller) PointerMoved(x, y float64) {
	hit := c.hitTest(x*c.scaleX, y*c.scaleY)
	if hit == c.hovered {
		return
	}
	c.hovered = hit
	c.repaint(c.hovered)
}

// PointerLeft resets to idle when the pointer leaves the surface. A repaint
// is issued even when already idle, matching the view's established
// behavior of clearing on exit.
func (c *Controller) PointerLeft() {
	c.hovered = ""
	c.repaint(c.hovered)
}

// Clicked dispatches the select callback for the focused node. Clicks while
// idle are ignored.
func (c *Controller) Clicked() {
	if c.hovered == "" {
		return
	}
	if c.OnSelect != nil {
		c.OnSelect(c.hovered)
	}
}

// hitTest resolves surface coordinates to a node. Every node is checked in
// model order and the last one within the hit radius wins, so overlapping
// circles resolve deterministically.
func (c *Controller) hitTest(x, y float64) NodeID {
	var hit NodeID
	for _, node := range c.model.Nodes {
		pos := c.model.Positions[node]
		dx := x - pos.X
		dy := y - pos.Y
		if math.Sqrt(dx*dx+dy*dy) <= hitRadius {
			hit = node
		}
	}
	return hit
}
