package components

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/market"
)

// SearchBox finds tickers by case-insensitive substring and dispatches the
// chosen one through the same selection path as a node click.
type SearchBox struct {
	input    *tview.InputField
	tickers  []graphview.NodeID
	onSelect func(graphview.NodeID)
	onCancel func()
}

// NewSearchBox creates the search input over the given ticker universe.
func NewSearchBox(tickers []graphview.NodeID, input *tview.InputField) *SearchBox {
	sb := &SearchBox{
		input:   input,
		tickers: tickers,
	}

	input.SetLabel(" Search: ")
	input.SetAutocompleteFunc(func(current string) []string {
		matches := market.SearchTickers(sb.tickers, current)
		entries := make([]string, len(matches))
		for i, m := range matches {
			entries[i] = string(m)
		}
		return entries
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			matches := market.SearchTickers(sb.tickers, input.GetText())
			if len(matches) > 0 && sb.onSelect != nil {
				sb.onSelect(matches[0])
			}
			input.SetText("")
		case tcell.KeyEscape:
			input.SetText("")
			if sb.onCancel != nil {
				sb.onCancel()
			}
		}
	})

	return sb
}

// View returns the wrapped primitive for layout.
func (sb *SearchBox) View() *tview.InputField {
	return sb.input
}

// SetSelectedFunc registers the callback for a confirmed match.
func (sb *SearchBox) SetSelectedFunc(f func(graphview.NodeID)) {
	sb.onSelect = f
}

// SetCancelFunc registers the callback for Escape.
func (sb *SearchBox) SetCancelFunc(f func()) {
	sb.onCancel = f
}
