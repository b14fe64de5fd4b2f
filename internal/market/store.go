package market

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
)

// Store holds the imported quotes and ratings in SQLite so the detail
// panel and chart query one place instead of re-reading CSV files.
type Store struct {
	db *sql.DB

	// Prepared statements for the hot query paths
	quotesStmt *sql.Stmt
	ratingStmt *sql.Stmt
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS quotes (
	ticker TEXT NOT NULL,
	date   TEXT NOT NULL,
	close  REAL NOT NULL,
	PRIMARY KEY (ticker, date)
);
CREATE TABLE IF NOT EXISTS ratings (
	ticker   TEXT PRIMARY KEY,
	advice   TEXT NOT NULL,
	momentum REAL NOT NULL
);
`

// OpenStore opens (or creates) the dashboard database. Pass ":memory:" for
// an ephemeral store.
func OpenStore(filename string) (*Store, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Store{db: db}

	s.quotesStmt, err = db.Prepare(`SELECT date, close FROM quotes WHERE ticker = ? ORDER BY date`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare quotes statement: %w", err)
	}
	s.ratingStmt, err = db.Prepare(`SELECT advice, momentum FROM ratings WHERE ticker = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare rating statement: %w", err)
	}

	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.quotesStmt != nil {
		s.quotesStmt.Close()
	}
	if s.ratingStmt != nil {
		s.ratingStmt.Close()
	}
	return s.db.Close()
}

// ImportQuotes replaces the stored price history for every ticker present
// in the input. The import runs in one transaction.
func (s *Store) ImportQuotes(quotes map[graphview.NodeID][]Quote) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO quotes (ticker, date, close) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for ticker, series := range quotes {
		for _, q := range series {
			if _, err := stmt.Exec(string(ticker), q.Date.Format(quoteDateLayout), q.Close); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to insert quote for %s: %w", ticker, err)
			}
		}
	}

	return tx.Commit()
}

// ImportRatings replaces the stored recommendation for every ticker
// present in the input.
func (s *Store) ImportRatings(ratings map[graphview.NodeID]graphview.Rating) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO ratings (ticker, advice, momentum) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for ticker, rating := range ratings {
		if _, err := stmt.Exec(string(ticker), string(rating.Advice), rating.Momentum); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert rating for %s: %w", ticker, err)
		}
	}

	return tx.Commit()
}

// Quotes returns the stored price history for a ticker in date order.
func (s *Store) Quotes(ticker graphview.NodeID) ([]Quote, error) {
	rows, err := s.quotesStmt.Query(string(ticker))
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var date string
		var q Quote
		if err := rows.Scan(&date, &q.Close); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		if q.Date, err = parseQuoteDate(date); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// Rating returns the stored recommendation for a ticker, with a found flag
// instead of an error for missing rows.
func (s *Store) Rating(ticker graphview.NodeID) (graphview.Rating, bool, error) {
	var advice string
	var momentum float64
	err := s.ratingStmt.QueryRow(string(ticker)).Scan(&advice, &momentum)
	if err == sql.ErrNoRows {
		return graphview.Rating{}, false, nil
	}
	if err != nil {
		return graphview.Rating{}, false, fmt.Errorf("failed to query rating: %w", err)
	}
	return graphview.Rating{Advice: graphview.Advice(advice), Momentum: momentum}, true, nil
}

// Summary aggregates the stored history of one ticker. A ticker with no
// quotes yields a zero summary, not an error.
func (s *Store) Summary(ticker graphview.NodeID) (Summary, error) {
	row := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(MIN(close), 0), COALESCE(MAX(close), 0)
		FROM quotes WHERE ticker = ?`, string(ticker))

	var sum Summary
	if err := row.Scan(&sum.Quotes, &sum.Low, &sum.High); err != nil {
		return Summary{}, fmt.Errorf("failed to query summary: %w", err)
	}
	if sum.Quotes == 0 {
		return sum, nil
	}

	last := s.db.QueryRow(`
		SELECT close FROM quotes WHERE ticker = ? ORDER BY date DESC LIMIT 1`, string(ticker))
	if err := last.Scan(&sum.LastClose); err != nil {
		return Summary{}, fmt.Errorf("failed to query last close: %w", err)
	}
	return sum, nil
}

// Tickers lists every ticker with stored quotes, sorted.
func (s *Store) Tickers() ([]graphview.NodeID, error) {
	rows, err := s.db.Query(`SELECT DISTINCT ticker FROM quotes ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []graphview.NodeID
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, graphview.NodeID(t))
	}
	return tickers, rows.Err()
}

func parseQuoteDate(s string) (t time.Time, err error) {
	t, err = time.Parse(quoteDateLayout, s)
	if err != nil {
		err = fmt.Errorf("failed to parse stored date %q: %w", s, err)
	}
	return t, err
}
