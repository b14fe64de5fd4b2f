package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	xdraw "golang.org/x/image/draw"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/log"
)

// exportWidth is the pixel width every exported image is normalized to, so
// small trees do not come out as thumbnails and large ones stay shareable.
const exportWidth = 1200

// Advice fill colors for the exported image, matching the on-screen
// palette.
const (
	fillBuy        = "#00c85a"
	fillHold       = "#8c8c96"
	fillAvoid      = "#dc3c32"
	exportBackdrop = "#10121c"
)

// WritePNG renders the network to a PNG file using the neato force layout.
// The export is independent of the interactive circular layout; graphviz
// places nodes by edge length, which reads better on paper.
func WritePNG(path string, edges []graphview.Edge, ratings map[graphview.NodeID]graphview.Rating) error {
	if len(edges) == 0 {
		return fmt.Errorf("nothing to export: no edges")
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	g, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer g.Close()

	g.SetLayout("neato")
	g.SetBackgroundColor(exportBackdrop)
	g.SetOverlap(false)
	g.SetSplines("true")
	g.Set("len", "2.0")
	g.Attr(int(cgraph.EDGE), "color", "gray70")
	g.Attr(int(cgraph.EDGE), "fontcolor", "gray90")
	g.Attr(int(cgraph.NODE), "fontcolor", "black")

	nodes := make(map[graphview.NodeID]*graphviz.Node)
	node := func(id graphview.NodeID) (*graphviz.Node, error) {
		if n, ok := nodes[id]; ok {
			return n, nil
		}
		n, err := g.CreateNodeByName(string(id))
		if err != nil {
			return nil, err
		}
		n.SetShape("ellipse")
		n.SetStyle("filled")
		n.SetFontSize(14.0)

		label := graphview.ShortLabel(id)
		fill := fillHold
		if rating, ok := ratings[id]; ok {
			label = fmt.Sprintf("%s\\n%s %+.2f%%", label, rating.Advice, rating.Momentum*100)
			switch rating.Advice {
			case graphview.AdviceBuy:
				fill = fillBuy
			case graphview.AdviceAvoid:
				fill = fillAvoid
			}
		}
		n.SetLabel(label)
		n.SetFillColor(fill)

		nodes[id] = n
		return n, nil
	}

	for _, e := range edges {
		src, err := node(e.Source)
		if err != nil {
			return fmt.Errorf("failed to create node %s: %w", e.Source, err)
		}
		dst, err := node(e.Target)
		if err != nil {
			return fmt.Errorf("failed to create node %s: %w", e.Target, err)
		}

		edge, err := g.CreateEdgeByName("", src, dst)
		if err != nil {
			return fmt.Errorf("failed to create edge %s-%s: %w", e.Source, e.Target, err)
		}
		edge.SetDir("none")
		edge.SetPenWidth(1.5)
		edge.SetLabel(fmt.Sprintf("%.2f", e.DisplayWeight()))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render PNG: %w", err)
	}
	if buf.Len() == 0 {
		return fmt.Errorf("graphviz render produced no PNG output")
	}

	data, err := normalizeWidth(buf.Bytes())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info("Exported network PNG", "path", path, "nodes", len(nodes), "edges", len(edges))
	return nil
}

// normalizeWidth rescales the rendered PNG to exportWidth, preserving the
// aspect ratio.
func normalizeWidth(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered PNG: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == exportWidth || bounds.Dx() == 0 {
		return data, nil
	}

	height := bounds.Dy() * exportWidth / bounds.Dx()
	scaled := image.NewRGBA(image.Rect(0, 0, exportWidth, height))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode scaled PNG: %w", err)
	}
	return out.Bytes(), nil
}
