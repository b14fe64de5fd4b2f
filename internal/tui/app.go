package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Dpkrgns/StockGraphix/internal/export"
	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/log"
	"github.com/Dpkrgns/StockGraphix/internal/market"
	"github.com/Dpkrgns/StockGraphix/internal/theme"
	"github.com/Dpkrgns/StockGraphix/internal/tui/components"
)

// Config carries everything the dashboard needs at startup.
type Config struct {
	Edges        []graphview.Edge
	Ratings      map[graphview.NodeID]graphview.Rating
	Store        *market.Store
	ExportPath   string
	SixelCapable bool
}

// App wires the dashboard components into one tview application.
type App struct {
	app   *tview.Application
	pages *tview.Pages

	sixelLayer *components.SixelLayer
	network    *components.NetworkView
	chart      *components.ChartView
	detail     *components.DetailPanel
	search     *components.SearchBox
	ticket     *components.TicketForm
	status     *tview.TextView

	store      *market.Store
	edges      []graphview.Edge
	exportPath string

	modalVisible bool
}

// NewApp creates and wires the dashboard.
func NewApp(cfg Config) *App {
	sixelLayer := components.NewSixelLayer()

	a := &App{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		sixelLayer: sixelLayer,
		network:    components.NewNetworkView(sixelLayer, cfg.SixelCapable),
		chart:      components.NewChartView(sixelLayer, cfg.SixelCapable),
		detail:     components.NewDetailPanel(),
		ticket:     components.NewTicketForm(theme.NewForm()),
		status:     theme.NewStatusBar(),
		store:      cfg.Store,
		edges:      cfg.Edges,
		exportPath: cfg.ExportPath,
	}

	a.network.SetData(cfg.Edges, cfg.Ratings)
	a.network.SetSelectedFunc(a.selectTicker)
	a.network.SetRedrawFunc(func() {
		// QueueUpdateDraw must not run on the event goroutine.
		go a.app.QueueUpdateDraw(func() {})
	})

	tickers, err := cfg.Store.Tickers()
	if err != nil {
		log.Warn("Could not list tickers for search", "error", err)
	}
	if len(tickers) == 0 {
		tickers = tickersFromEdges(cfg.Edges)
	}
	a.search = components.NewSearchBox(tickers, theme.NewInputField())
	a.search.SetSelectedFunc(a.selectTicker)
	a.search.SetCancelFunc(func() { a.app.SetFocus(a.network) })

	a.ticket.SetSubmitFunc(a.confirmTicket)
	a.ticket.SetErrorFunc(a.setStatusError)

	a.setupUI()
	a.setupInputHandling()
	a.setStatus("Hover a node, click to drill down. /=search p=export PNG q=quit")

	return a
}

// setupUI configures the dashboard layout
func (a *App) setupUI() {
	right := theme.NewFlex().SetDirection(tview.FlexRow)
	right.AddItem(a.detail.View(), 0, 2, false)
	right.AddItem(a.chart, 0, 2, false)
	right.AddItem(a.ticket.View(), 9, 0, false)

	grid := tview.NewGrid().
		SetRows(1, 0, 1).
		SetColumns(0, 44).
		SetBorders(false)
	grid.AddItem(a.search.View(), 0, 0, 1, 2, 0, 0, false)
	grid.AddItem(a.network, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(right, 1, 1, 1, 1, 0, 0, false)
	grid.AddItem(a.status, 2, 0, 1, 2, 0, 0, false)

	a.pages.AddPage("main", grid, true, true)
	a.app.SetRoot(a.pages, true)
	a.app.EnableMouse(true)

	// Pixel regions are painted over the finished cell grid on every draw.
	a.app.SetAfterDrawFunc(func(screen tcell.Screen) {
		a.sixelLayer.Render()
	})
}

// setupInputHandling configures global key bindings
func (a *App) setupInputHandling() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.modalVisible {
			return event
		}
		// Text entry fields get their keys untouched.
		focused := a.app.GetFocus()
		if focused == a.search.View() || isFormChild(a.ticket.View(), focused) {
			return event
		}

		switch event.Rune() {
		case '/':
			a.app.SetFocus(a.search.View())
			return nil
		case 'p':
			a.exportPNG()
			return nil
		case 'q':
			a.Stop()
			return nil
		}
		return event
	})
}

// Run starts the dashboard event loop.
func (a *App) Run() error {
	defer a.sixelLayer.Close()
	return a.app.Run()
}

// Stop shuts the application down.
func (a *App) Stop() {
	a.app.Stop()
}

// selectTicker is the single drill-down path, shared by node clicks and
// search hits.
func (a *App) selectTicker(ticker graphview.NodeID) {
	log.Info("Ticker selected", "ticker", ticker)

	rating, rated, err := a.store.Rating(ticker)
	if err != nil {
		log.Error("Rating lookup failed", "ticker", ticker, "error", err)
	}
	summary, err := a.store.Summary(ticker)
	if err != nil {
		log.Error("Summary lookup failed", "ticker", ticker, "error", err)
	}
	quotes, err := a.store.Quotes(ticker)
	if err != nil {
		log.Error("Quote lookup failed", "ticker", ticker, "error", err)
	}

	a.detail.Show(ticker, rating, rated, summary, a.neighborsOf(ticker))
	a.chart.SetQuotes(ticker, quotes)
	a.ticket.SetTicker(ticker, summary.LastClose)
	a.setStatus(fmt.Sprintf("Selected %s", ticker))
}

// neighborsOf returns the tree edges touching a ticker.
func (a *App) neighborsOf(ticker graphview.NodeID) []graphview.Edge {
	var neighbors []graphview.Edge
	for _, e := range a.edges {
		if e.Source == ticker || e.Target == ticker {
			neighbors = append(neighbors, e)
		}
	}
	return neighbors
}

// confirmTicket pops the confirmation modal for a submitted mock order.
func (a *App) confirmTicket(ticket components.Ticket) {
	text := fmt.Sprintf("%s %d x %s @ %.2f\n\nTotal %.2f\n\n(simulated, no order was sent)",
		ticket.Side, ticket.Quantity, ticket.Ticker, ticket.Price, ticket.Total)

	modal := theme.NewModal()
	modal.SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.closeModal()
			a.setStatus(fmt.Sprintf("Ticket recorded: %s %d %s", ticket.Side, ticket.Quantity, ticket.Ticker))
		})

	a.showModal(modal)
	log.Info("Mock ticket placed", "ticker", ticket.Ticker, "side", ticket.Side,
		"quantity", ticket.Quantity, "total", ticket.Total)
}

// exportPNG renders the network to the configured PNG path.
func (a *App) exportPNG() {
	if a.exportPath == "" {
		a.setStatusError("No export path configured (see -export flag)")
		return
	}

	ratings := make(map[graphview.NodeID]graphview.Rating)
	for _, t := range tickersFromEdges(a.edges) {
		if r, rated, err := a.store.Rating(t); err == nil && rated {
			ratings[t] = r
		}
	}

	if err := export.WritePNG(a.exportPath, a.edges, ratings); err != nil {
		log.Error("PNG export failed", "path", a.exportPath, "error", err)
		a.setStatusError("Export failed: " + err.Error())
		return
	}
	a.setStatus("Exported network to " + a.exportPath)
}

func (a *App) showModal(modal *tview.Modal) {
	a.modalVisible = true
	a.pages.AddPage("modal", modal, true, true)
	a.app.SetFocus(modal)
}

func (a *App) closeModal() {
	a.modalVisible = false
	a.pages.RemovePage("modal")
	a.app.SetFocus(a.network)
}

func (a *App) setStatus(msg string) {
	a.status.SetText(" " + msg)
}

func (a *App) setStatusError(msg string) {
	colors := theme.Current().StatusColors()
	a.status.SetText(fmt.Sprintf(" [#%06x]%s[-]", colors.ErrorFg.Hex(), msg))
	log.Warn("Status error shown", "message", msg)
}

// tickersFromEdges collects the node set of an edge list in first-seen
// order.
func tickersFromEdges(edges []graphview.Edge) []graphview.NodeID {
	seen := make(map[graphview.NodeID]bool)
	var tickers []graphview.NodeID
	for _, e := range edges {
		for _, t := range []graphview.NodeID{e.Source, e.Target} {
			if !seen[t] {
				seen[t] = true
				tickers = append(tickers, t)
			}
		}
	}
	return tickers
}

// isFormChild reports whether the focused primitive belongs to the form.
func isFormChild(form *tview.Form, focused tview.Primitive) bool {
	if focused == nil {
		return false
	}
	if focused == tview.Primitive(form) {
		return true
	}
	for i := 0; i < form.GetFormItemCount(); i++ {
		if form.GetFormItem(i) == focused {
			return true
		}
	}
	for i := 0; i < form.GetButtonCount(); i++ {
		if form.GetButton(i) == focused {
			return true
		}
	}
	return false
}
