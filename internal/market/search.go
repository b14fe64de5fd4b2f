package market

import (
	"strings"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
)

// SearchTickers returns every ticker containing the query as a
// case-insensitive substring, preserving the input order. An empty query
// matches nothing.
func SearchTickers(tickers []graphview.NodeID, query string) []graphview.NodeID {
	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []graphview.NodeID
	for _, ticker := range tickers {
		if strings.Contains(strings.ToUpper(string(ticker)), query) {
			matches = append(matches, ticker)
		}
	}
	return matches
}
