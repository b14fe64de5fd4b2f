package components

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/market"
	"github.com/Dpkrgns/StockGraphix/internal/theme"
)

// DetailPanel shows the drill-down view for the selected ticker: its
// recommendation, price summary, and direct neighbors in the tree.
type DetailPanel struct {
	view *tview.TextView
}

// NewDetailPanel creates an empty detail panel.
func NewDetailPanel() *DetailPanel {
	view := theme.NewPanelView()
	view.SetDynamicColors(true)
	view.SetTitle(" Details ")
	view.SetText("\n  Click a node to inspect it.")
	return &DetailPanel{view: view}
}

// View returns the wrapped primitive for layout.
func (dp *DetailPanel) View() *tview.TextView {
	return dp.view
}

// Show fills the panel for one ticker. rated is false when no
// recommendation exists for it.
func (dp *DetailPanel) Show(ticker graphview.NodeID, rating graphview.Rating, rated bool,
	summary market.Summary, neighbors []graphview.Edge) {

	advice := theme.Current().AdviceColors()
	var b strings.Builder

	fmt.Fprintf(&b, "\n  [::b]%s[::-]\n\n", ticker)

	if rated {
		fmt.Fprintf(&b, "  Advice    %s%s[-]\n", adviceTag(rating.Advice, advice), rating.Advice)
		fmt.Fprintf(&b, "  Momentum  %+.2f%%\n", rating.Momentum*100)
	} else {
		fmt.Fprintf(&b, "  Advice    %sunrated[-]\n", colorTag(advice.Hold))
	}

	if summary.Quotes > 0 {
		fmt.Fprintf(&b, "\n  Last      %.2f\n", summary.LastClose)
		fmt.Fprintf(&b, "  Range     %.2f - %.2f\n", summary.Low, summary.High)
		fmt.Fprintf(&b, "  Quotes    %d\n", summary.Quotes)
	}

	if len(neighbors) > 0 {
		fmt.Fprintf(&b, "\n  Linked to\n")
		for _, e := range neighbors {
			other := e.Target
			if other == ticker {
				other = e.Source
			}
			fmt.Fprintf(&b, "    %-14s %.2f\n", other, e.DisplayWeight())
		}
	}

	dp.view.SetTitle(fmt.Sprintf(" Details: %s ", graphview.ShortLabel(ticker)))
	dp.view.SetText(b.String())
}

// adviceTag returns the tview color tag for an advice value.
func adviceTag(a graphview.Advice, colors theme.AdviceColors) string {
	switch a {
	case graphview.AdviceBuy:
		return colorTag(colors.Buy)
	case graphview.AdviceAvoid:
		return colorTag(colors.Avoid)
	default:
		return colorTag(colors.Hold)
	}
}

func colorTag(c tcell.Color) string {
	return fmt.Sprintf("[#%06x]", c.Hex())
}
