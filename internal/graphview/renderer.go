package graphview

import (
	"fmt"
	"image/color"
	"strings"
)

// Advice is the analyst call attached to a node. Unknown values get the
// same neutral treatment as HOLD.
type Advice string

const (
	AdviceBuy   Advice = "BUY"
	AdviceHold  Advice = "HOLD"
	AdviceAvoid Advice = "AVOID"
)

// Rating is the per-node classification supplied by the recommendation
// loader. Momentum is a fraction (0.02 = +2%).
type Rating struct {
	Advice   Advice
	Momentum float64
}

// Palette holds every color the renderer paints with.
type Palette struct {
	Background    color.RGBA
	EdgeLine      color.RGBA
	EdgeHighlight color.RGBA
	EdgeLabel     color.RGBA
	LabelPatch    color.RGBA
	NodeBuy       color.RGBA
	NodeHold      color.RGBA
	NodeAvoid     color.RGBA
	NodeLabel     color.RGBA
	OutlineIdle   color.RGBA
	OutlineActive color.RGBA
	LegendText    color.RGBA
}

// DefaultPalette returns the dashboard's dark color scheme.
func DefaultPalette() Palette {
	return Palette{
		Background:    color.RGBA{16, 18, 28, 255},
		EdgeLine:      color.RGBA{150, 160, 180, 255},
		EdgeHighlight: color.RGBA{255, 255, 255, 255},
		EdgeLabel:     color.RGBA{210, 215, 225, 255},
		LabelPatch:    color.RGBA{16, 18, 28, 255},
		NodeBuy:       color.RGBA{0, 200, 90, 255},
		NodeHold:      color.RGBA{140, 140, 150, 255},
		NodeAvoid:     color.RGBA{220, 60, 50, 255},
		NodeLabel:     color.RGBA{235, 235, 240, 255},
		OutlineIdle:   color.RGBA{60, 65, 80, 255},
		OutlineActive: color.RGBA{80, 180, 255, 255},
		LegendText:    color.RGBA{200, 205, 215, 255},
	}
}

// Drawing constants. The hovered node is drawn larger with a wider, accent
// colored outline so focus is visible without animation.
const (
	baseEdgeWidth      = 1
	highlightEdgeWidth = 3
	nodeRadius         = 8
	hoverNodeRadius    = 12
	outlineStroke      = 1
	hoverOutlineStroke = 3
	labelPadding       = 3
	// Non-highlighted edge opacity never drops below this floor so weak
	// correlations stay legible.
	minEdgeOpacity = 0.3
)

// Renderer owns the drawing surface. All pixel writes go through Repaint so
// the paint order (edges, then nodes, then legend) is enforced in one place.
type Renderer struct {
	canvas  *Canvas
	palette Palette
}

// NewRenderer creates a renderer that paints on the given canvas.
func NewRenderer(canvas *Canvas, palette Palette) *Renderer {
	return &Renderer{canvas: canvas, palette: palette}
}

// Canvas returns the drawing surface.
func (r *Renderer) Canvas() *Canvas {
	return r.canvas
}

// Repaint redraws the whole surface from scratch. It is deterministic and
// idempotent: identical inputs produce pixel-identical output. An empty
// model clears the surface and draws nothing else.
func (r *Renderer) Repaint(m *Model, ratings map[NodeID]Rating, hovered NodeID) {
	r.canvas.Fill(r.palette.Background)

	if m == nil || len(m.Nodes) == 0 {
		return
	}

	r.paintEdges(m, hovered)
	r.paintNodes(m, ratings, hovered)
	r.paintLegend()
}

// paintEdges strokes every edge plus its weight label. Edges touching the
// hovered node get full opacity and a wider stroke; the rest fade with the
// magnitude of their correlation, floored at minEdgeOpacity.
func (r *Renderer) paintEdges(m *Model, hovered NodeID) {
	for _, e := range m.Edges {
		from, ok1 := m.Positions[e.Source]
		to, ok2 := m.Positions[e.Target]
		if !ok1 || !ok2 {
			// A malformed edge must not abort the repaint.
			continue
		}

		highlighted := hovered != "" && (e.Source == hovered || e.Target == hovered)

		col := r.palette.EdgeLine
		width := baseEdgeWidth
		if highlighted {
			col = r.palette.EdgeHighlight
			width = highlightEdgeWidth
		} else {
			opacity := e.Correlation
			if opacity < 0 {
				opacity = -opacity
			}
			if opacity < minEdgeOpacity {
				opacity = minEdgeOpacity
			}
			col.A = uint8(opacity * 255)
		}

		r.canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y), width, col)

		r.paintEdgeLabel(e, from, to)
	}
}

// paintEdgeLabel draws the resolved weight at the edge midpoint over an
// opaque background patch so overlapping edge lines never strike the text.
func (r *Renderer) paintEdgeLabel(e Edge, from, to Position) {
	label := formatWeight(e.DisplayWeight())
	textW := MeasureString(label)
	textH := TextHeight()

	midX := int((from.X + to.X) / 2)
	midY := int((from.Y + to.Y) / 2)

	patchX := midX - textW/2 - labelPadding
	patchY := midY - textH/2 - labelPadding
	r.canvas.FillRect(patchX, patchY, textW+2*labelPadding, textH+2*labelPadding, r.palette.LabelPatch)
	r.canvas.DrawString(midX-textW/2, midY-textH/2, label, r.palette.EdgeLabel)
}

// paintNodes draws every node glyph on top of the edge layer.
func (r *Renderer) paintNodes(m *Model, ratings map[NodeID]Rating, hovered NodeID) {
	for _, node := range m.Nodes {
		pos := m.Positions[node]
		x, y := int(pos.X), int(pos.Y)

		rating, rated := ratings[node]
		focused := node == hovered

		radius := nodeRadius
		stroke := outlineStroke
		outline := r.palette.OutlineIdle
		if focused {
			radius = hoverNodeRadius
			stroke = hoverOutlineStroke
			outline = r.palette.OutlineActive
		}

		r.canvas.FilledCircle(x, y, radius, r.adviceColor(rating, rated))
		r.canvas.CircleOutline(x, y, radius, stroke, outline)

		label := ShortLabel(node)
		textW := MeasureString(label)
		r.canvas.DrawString(x-textW/2, y-radius-TextHeight()-2, label, r.palette.NodeLabel)

		// Focused nodes with rating data show momentum and advice below.
		if focused && rated {
			momentum := formatMomentum(rating.Momentum)
			mw := MeasureString(momentum)
			r.canvas.DrawString(x-mw/2, y+radius+3, momentum, r.palette.NodeLabel)

			advice := string(rating.Advice)
			aw := MeasureString(advice)
			r.canvas.DrawString(x-aw/2, y+radius+3+TextHeight()+1, advice, r.palette.NodeLabel)
		}
	}
}

// adviceColor maps a rating to its fill color. Missing or unrecognized
// ratings degrade to the neutral HOLD color.
func (r *Renderer) adviceColor(rating Rating, rated bool) color.RGBA {
	if !rated {
		return r.palette.NodeHold
	}
	switch rating.Advice {
	case AdviceBuy:
		return r.palette.NodeBuy
	case AdviceAvoid:
		return r.palette.NodeAvoid
	default:
		return r.palette.NodeHold
	}
}

// paintLegend draws the three advice swatches in the lower-left corner.
// All three are always shown, even when a category is empty in the data.
func (r *Renderer) paintLegend() {
	entries := []struct {
		label string
		col   color.RGBA
	}{
		{"BUY", r.palette.NodeBuy},
		{"HOLD", r.palette.NodeHold},
		{"AVOID", r.palette.NodeAvoid},
	}

	_, h := r.canvas.Size()
	swatch := 10
	lineH := TextHeight() + 4
	startY := h - len(entries)*lineH - 8

	for i, entry := range entries {
		y := startY + i*lineH
		r.canvas.FillRect(12, y, swatch, swatch, entry.col)
		r.canvas.DrawString(12+swatch+6, y-2, entry.label, r.palette.LegendText)
	}
}

// ShortLabel strips any market-suffix decoration from a ticker, so
// "RELIANCE.NS" renders as "RELIANCE".
func ShortLabel(node NodeID) string {
	s := string(node)
	if i := strings.IndexByte(s, '.'); i > 0 {
		return s[:i]
	}
	return s
}

// formatWeight renders an edge weight with two decimals.
func formatWeight(w float64) string {
	return fmt.Sprintf("%.2f", w)
}

// formatMomentum renders a momentum fraction as a signed percentage, with
// the sign explicit for non-negative values ("+2.00%").
func formatMomentum(m float64) string {
	return fmt.Sprintf("%+.2f%%", m*100)
}
