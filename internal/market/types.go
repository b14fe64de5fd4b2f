package market

import (
	"time"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
)

// Quote is one daily closing price for a ticker.
type Quote struct {
	Date  time.Time
	Close float64
}

// Pair is one row of the pairwise correlation table the upstream pipeline
// produces. Distance is a precomputed graph distance; it is carried through
// untouched rather than recomputed from the correlation.
type Pair struct {
	A           graphview.NodeID
	B           graphview.NodeID
	Correlation float64
	Distance    float64
}

// Summary aggregates the stored price history of one ticker for the
// detail panel.
type Summary struct {
	LastClose float64
	Low       float64
	High      float64
	Quotes    int
}

// ParseAdvice normalizes a recommendation label. Anything unrecognized is
// treated as HOLD, the same neutral treatment the renderer applies.
func ParseAdvice(s string) graphview.Advice {
	switch s {
	case "BUY", "buy", "Buy":
		return graphview.AdviceBuy
	case "AVOID", "avoid", "Avoid", "SELL", "sell", "Sell":
		return graphview.AdviceAvoid
	default:
		return graphview.AdviceHold
	}
}
