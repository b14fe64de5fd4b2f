package components

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/log"
	"github.com/Dpkrgns/StockGraphix/internal/market"
	"github.com/Dpkrgns/StockGraphix/internal/theme"
)

const chartMargin = 34 // pixels reserved on the left for price labels

// ChartView plots the closing price history of the selected ticker as a
// pixel line chart, reusing the graphview canvas primitives and the same
// sixel pipeline as the network panel.
type ChartView struct {
	*tview.Box

	sixelLayer   *SixelLayer
	regionID     string
	sixelCapable bool

	ticker graphview.NodeID
	quotes []market.Quote

	cachedSixel  string
	cachedWidth  int
	cachedHeight int
}

// NewChartView creates the price chart panel.
func NewChartView(sixelLayer *SixelLayer, sixelCapable bool) *ChartView {
	cv := &ChartView{
		Box:          tview.NewBox(),
		sixelLayer:   sixelLayer,
		regionID:     "chart",
		sixelCapable: sixelCapable,
	}

	colors := theme.Current().PanelColors()
	cv.SetBorder(true).
		SetBorderColor(colors.Border).
		SetTitleColor(colors.Title).
		SetBackgroundColor(colors.Background).
		SetTitle(" Price History ")

	return cv
}

// SetQuotes replaces the plotted series. Quotes must already be in date
// order, as returned by the store.
func (cv *ChartView) SetQuotes(ticker graphview.NodeID, quotes []market.Quote) {
	cv.ticker = ticker
	cv.quotes = quotes
	cv.cachedSixel = ""
	cv.SetTitle(fmt.Sprintf(" Price History: %s ", graphview.ShortLabel(ticker)))
}

// Draw renders the chart frame and registers it with the sixel layer.
func (cv *ChartView) Draw(screen tcell.Screen) {
	cv.Box.DrawForSubclass(screen, cv)

	x, y, width, height := cv.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	if len(cv.quotes) < 2 {
		cv.drawStatusText(screen, x, y, width, height, "Select a symbol to plot")
		cv.hideRegion()
		return
	}

	if !cv.sixelCapable {
		cv.drawTextFallback(screen, x, y, width, height)
		return
	}

	if cv.cachedSixel == "" || cv.cachedWidth != width || cv.cachedHeight != height {
		canvas := graphview.NewCanvas(width*cellPixelWidth, height*cellPixelHeight)
		cv.paintChart(canvas)

		data, err := encodeSixel(canvas.Image())
		if err != nil {
			log.Error("Failed to encode chart frame", "error", err)
			cv.drawStatusText(screen, x, y, width, height, "Sixel encoding failed")
			cv.hideRegion()
			return
		}
		cv.cachedSixel = data
		cv.cachedWidth = width
		cv.cachedHeight = height
	}

	cv.sixelLayer.SetRegion(cv.regionID, &SixelRegion{
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		SixelData: cv.cachedSixel,
		Visible:   true,
	})
}

// paintChart draws the polyline plus high/low labels onto the canvas.
func (cv *ChartView) paintChart(canvas *graphview.Canvas) {
	palette := graphview.DefaultPalette()
	canvas.Fill(palette.Background)

	w, h := canvas.Size()
	plotLeft := chartMargin
	plotTop := graphview.TextHeight() + 4
	plotRight := w - 6
	plotBottom := h - graphview.TextHeight() - 6
	if plotRight <= plotLeft || plotBottom <= plotTop {
		return
	}

	low, high := cv.quotes[0].Close, cv.quotes[0].Close
	for _, q := range cv.quotes[1:] {
		if q.Close < low {
			low = q.Close
		}
		if q.Close > high {
			high = q.Close
		}
	}
	span := high - low
	if span == 0 {
		span = 1 // flat series plots as a midline
	}

	toX := func(i int) int {
		return plotLeft + i*(plotRight-plotLeft)/(len(cv.quotes)-1)
	}
	toY := func(close float64) int {
		return plotBottom - int((close-low)/span*float64(plotBottom-plotTop))
	}

	axis := color.RGBA{60, 65, 80, 255}
	line := color.RGBA{80, 180, 255, 255}

	canvas.Line(plotLeft, plotTop, plotLeft, plotBottom, 1, axis)
	canvas.Line(plotLeft, plotBottom, plotRight, plotBottom, 1, axis)

	for i := 1; i < len(cv.quotes); i++ {
		canvas.Line(toX(i-1), toY(cv.quotes[i-1].Close), toX(i), toY(cv.quotes[i].Close), 1, line)
	}

	canvas.DrawString(2, plotTop-graphview.TextHeight()-2, fmt.Sprintf("%.2f", high), palette.LegendText)
	canvas.DrawString(2, plotBottom+2, fmt.Sprintf("%.2f", low), palette.LegendText)

	first := cv.quotes[0].Date.Format("2006-01-02")
	last := cv.quotes[len(cv.quotes)-1].Date.Format("2006-01-02")
	canvas.DrawString(plotLeft, h-graphview.TextHeight()-1, first, palette.LegendText)
	canvas.DrawString(plotRight-graphview.MeasureString(last), h-graphview.TextHeight()-1, last, palette.LegendText)
}

func (cv *ChartView) hideRegion() {
	if cv.sixelLayer != nil {
		cv.sixelLayer.SetRegionVisible(cv.regionID, false)
	}
}

// drawTextFallback shows the series endpoints when sixels are unavailable.
func (cv *ChartView) drawTextFallback(screen tcell.Screen, x, y, width, height int) {
	low, high := cv.quotes[0].Close, cv.quotes[0].Close
	for _, q := range cv.quotes[1:] {
		if q.Close < low {
			low = q.Close
		}
		if q.Close > high {
			high = q.Close
		}
	}
	last := cv.quotes[len(cv.quotes)-1]

	lines := []string{
		fmt.Sprintf("Last  %.2f (%s)", last.Close, last.Date.Format("2006-01-02")),
		fmt.Sprintf("High  %.2f", high),
		fmt.Sprintf("Low   %.2f", low),
		fmt.Sprintf("Quotes %d", len(cv.quotes)),
	}

	style := tcell.StyleDefault.
		Foreground(theme.Current().PanelColors().Foreground).
		Background(theme.Current().PanelColors().Background)
	for row, line := range lines {
		if row >= height {
			break
		}
		for i, r := range line {
			if i >= width {
				break
			}
			screen.SetContent(x+i, y+row, r, nil, style)
		}
	}
}

func (cv *ChartView) drawStatusText(screen tcell.Screen, x, y, width, height int, text string) {
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
