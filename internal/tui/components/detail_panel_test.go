package components

import (
	"strings"
	"testing"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/market"
	"github.com/Dpkrgns/StockGraphix/internal/theme"
)

func TestDetailPanelShow(t *testing.T) {
	dp := NewDetailPanel()

	dp.Show("TCS.NS",
		graphview.Rating{Advice: graphview.AdviceBuy, Momentum: 0.021}, true,
		market.Summary{LastClose: 3544.75, Low: 3498.20, High: 3600.00, Quotes: 250},
		[]graphview.Edge{
			{Source: "TCS.NS", Target: "INFY.NS", Correlation: 0.8, Distance: 0.3},
			{Source: "RELIANCE.NS", Target: "TCS.NS", Correlation: 0.5, Distance: 0.6},
		})

	text := dp.View().GetText(true)
	for _, want := range []string{"TCS.NS", "BUY", "+2.10%", "3544.75", "250", "INFY.NS", "RELIANCE.NS", "0.30", "0.60"} {
		if !strings.Contains(text, want) {
			t.Errorf("Detail text missing %q:\n%s", want, text)
		}
	}
}

func TestDetailPanelUnrated(t *testing.T) {
	dp := NewDetailPanel()

	dp.Show("WIPRO.NS", graphview.Rating{}, false, market.Summary{}, nil)

	text := dp.View().GetText(true)
	if !strings.Contains(text, "unrated") {
		t.Errorf("Expected unrated marker, got:\n%s", text)
	}
	if strings.Contains(text, "Momentum") {
		t.Error("Unrated ticker should not show momentum")
	}
}

func TestAdviceTag(t *testing.T) {
	colors := theme.Current().AdviceColors()

	if adviceTag(graphview.AdviceBuy, colors) == adviceTag(graphview.AdviceAvoid, colors) {
		t.Error("BUY and AVOID must use different tags")
	}
	// Unknown advice falls back to the neutral tag.
	if adviceTag(graphview.Advice("STRONG BUY"), colors) != colorTag(colors.Hold) {
		t.Error("Unknown advice should use the HOLD tag")
	}
}
