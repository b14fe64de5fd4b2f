package components

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/log"
	"github.com/Dpkrgns/StockGraphix/internal/theme"
)

// NetworkView renders the correlation network as pixel graphics inside a
// tview panel. The graphview package does all the drawing and hit-testing;
// this component owns the cell-to-pixel mapping, the sixel encoding, and the
// tview event plumbing.
type NetworkView struct {
	*tview.Box

	sixelLayer   *SixelLayer
	regionID     string
	sixelCapable bool

	edges   []graphview.Edge
	ratings map[graphview.NodeID]graphview.Rating

	model      *graphview.Model
	renderer   *graphview.Renderer
	controller *graphview.Controller

	cachedSixel   string
	cachedWidth   int // inner size in cells at last rebuild
	cachedHeight  int
	paintedHover  graphview.NodeID
	pointerInside bool

	onSelect      func(graphview.NodeID)
	requestRedraw func()
}

// NewNetworkView creates the network panel. Pass sixelCapable=false to force
// the text fallback rendering.
func NewNetworkView(sixelLayer *SixelLayer, sixelCapable bool) *NetworkView {
	nv := &NetworkView{
		Box:          tview.NewBox(),
		sixelLayer:   sixelLayer,
		regionID:     "network",
		sixelCapable: sixelCapable,
	}

	colors := theme.Current().PanelColors()
	nv.SetBorder(true).
		SetBorderColor(colors.Border).
		SetTitleColor(colors.Title).
		SetBackgroundColor(colors.Background).
		SetTitle(" Correlation Network ")

	return nv
}

// SetData replaces the rendered edge set and ratings. The layout is rebuilt
// on the next draw.
func (nv *NetworkView) SetData(edges []graphview.Edge, ratings map[graphview.NodeID]graphview.Rating) {
	nv.edges = edges
	nv.ratings = ratings
	nv.model = nil
	nv.cachedSixel = ""
}

// SetSelectedFunc registers the callback invoked when a node is clicked.
func (nv *NetworkView) SetSelectedFunc(f func(graphview.NodeID)) {
	nv.onSelect = f
	if nv.controller != nil {
		nv.controller.OnSelect = f
	}
}

// SetRedrawFunc registers the callback used to schedule an application
// redraw after a hover transition.
func (nv *NetworkView) SetRedrawFunc(f func()) {
	nv.requestRedraw = f
}

// Hovered returns the node currently under the pointer, or "" when idle.
func (nv *NetworkView) Hovered() graphview.NodeID {
	if nv.controller == nil {
		return ""
	}
	return nv.controller.Hovered()
}

// Draw renders the panel chrome and registers the pixel frame with the
// sixel layer.
func (nv *NetworkView) Draw(screen tcell.Screen) {
	nv.Box.DrawForSubclass(screen, nv)

	x, y, width, height := nv.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	if len(nv.edges) == 0 {
		nv.drawStatusText(screen, x, y, width, height, "No network data loaded")
		nv.hideRegion()
		return
	}

	if nv.model == nil || nv.cachedWidth != width || nv.cachedHeight != height {
		nv.rebuild(width, height)
	}

	if !nv.sixelCapable {
		nv.drawTextFallback(screen, x, y, width, height)
		return
	}

	hovered := nv.controller.Hovered()
	if nv.cachedSixel == "" || hovered != nv.paintedHover {
		nv.renderer.Repaint(nv.model, nv.ratings, hovered)
		data, err := encodeSixel(nv.renderer.Canvas().Image())
		if err != nil {
			log.Error("Failed to encode network frame", "error", err)
			nv.drawStatusText(screen, x, y, width, height, "Sixel encoding failed")
			nv.hideRegion()
			return
		}
		nv.cachedSixel = data
		nv.paintedHover = hovered
	}

	nv.sixelLayer.SetRegion(nv.regionID, &SixelRegion{
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		SixelData: nv.cachedSixel,
		Visible:   true,
	})
}

// rebuild recomputes the layout for a new inner size. The canvas gets one
// pixel block per terminal cell, and the controller learns the display size
// so pointer cells map back onto canvas pixels.
func (nv *NetworkView) rebuild(width, height int) {
	pixelW := width * cellPixelWidth
	pixelH := height * cellPixelHeight

	nv.model = graphview.BuildModel(nv.edges, pixelW, pixelH)
	canvas := graphview.NewCanvas(pixelW, pixelH)
	nv.renderer = graphview.NewRenderer(canvas, graphview.DefaultPalette())
	nv.controller = graphview.NewController(nv.model, nv.renderer, nv.ratings)
	nv.controller.OnSelect = nv.onSelect
	nv.controller.SetDisplaySize(float64(width), float64(height))

	nv.cachedWidth = width
	nv.cachedHeight = height
	nv.cachedSixel = ""
	nv.paintedHover = ""

	log.Debug("Rebuilt network layout",
		"cells_w", width, "cells_h", height, "pixels_w", pixelW, "pixels_h", pixelH,
		"nodes", len(nv.model.Nodes))
}

// MouseHandler feeds pointer events into the hover state machine.
func (nv *NetworkView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return nv.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		if nv.controller == nil {
			return false, nil
		}

		x, y := event.Position()
		if !nv.InRect(x, y) {
			if nv.pointerInside {
				nv.pointerInside = false
				nv.controller.PointerLeft()
				nv.invalidateFrame()
			}
			return false, nil
		}

		innerX, innerY, _, _ := nv.GetInnerRect()
		// Use the cell center so hit-testing is not biased toward the
		// top-left pixel of each cell.
		fx := float64(x-innerX) + 0.5
		fy := float64(y-innerY) + 0.5

		switch action {
		case tview.MouseMove:
			nv.pointerInside = true
			before := nv.controller.Hovered()
			nv.controller.PointerMoved(fx, fy)
			if nv.controller.Hovered() != before {
				nv.invalidateFrame()
			}
			return true, nil

		case tview.MouseLeftClick:
			setFocus(nv)
			before := nv.controller.Hovered()
			nv.controller.PointerMoved(fx, fy)
			if nv.controller.Hovered() != before {
				nv.invalidateFrame()
			}
			nv.controller.Clicked()
			return true, nil
		}

		return false, nil
	})
}

// invalidateFrame drops the cached sixel and schedules an application redraw
// so the new hover state becomes visible.
func (nv *NetworkView) invalidateFrame() {
	nv.cachedSixel = ""
	if nv.requestRedraw != nil {
		nv.requestRedraw()
	}
}

func (nv *NetworkView) hideRegion() {
	if nv.sixelLayer != nil {
		nv.sixelLayer.SetRegionVisible(nv.regionID, false)
	}
}

// drawTextFallback lists the network as colored cells when the terminal
// cannot show sixels. Hover and selection still work through the same
// controller.
func (nv *NetworkView) drawTextFallback(screen tcell.Screen, x, y, width, height int) {
	advice := theme.Current().AdviceColors()
	hovered := nv.controller.Hovered()

	row := 0
	for _, node := range nv.model.Nodes {
		if row >= height {
			break
		}

		col := advice.Hold
		suffix := ""
		if rating, ok := nv.ratings[node]; ok {
			switch rating.Advice {
			case graphview.AdviceBuy:
				col = advice.Buy
			case graphview.AdviceAvoid:
				col = advice.Avoid
			}
			suffix = fmt.Sprintf("  %s %+.2f%%", rating.Advice, rating.Momentum*100)
		}

		marker := "  "
		if node == hovered {
			marker = "> "
		}

		line := marker + string(node) + suffix
		style := tcell.StyleDefault.Foreground(col).Background(theme.Current().PanelColors().Background)
		for i, r := range line {
			if i >= width {
				break
			}
			screen.SetContent(x+i, y+row, r, nil, style)
		}
		row++
	}
}

// drawStatusText centers a status message in the panel
func (nv *NetworkView) drawStatusText(screen tcell.Screen, x, y, width, height int, text string) {
	style := tcell.StyleDefault.
		Foreground(theme.Current().DefaultColors().Waiting).
		Background(theme.Current().PanelColors().Background)

	startX := x + (width-len(text))/2
	startY := y + height/2
	for i, r := range text {
		if startX+i >= x && startX+i < x+width {
			screen.SetContent(startX+i, startY, r, nil, style)
		}
	}
}
