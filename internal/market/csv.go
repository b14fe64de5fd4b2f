package market

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/log"
)

const quoteDateLayout = "2006-01-02"

// readRecords loads a CSV file into records. Legacy exports from the old
// pipeline are Windows-1252 encoded; anything that is not valid UTF-8 is
// decoded through that code page before parsing.
func readRecords(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s as Windows-1252: %w", path, err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // row validation happens per loader

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// isHeader reports whether a first row looks like column names rather
// than data (no numeric value in the given column).
func isHeader(record []string, numericCol int) bool {
	if numericCol >= len(record) {
		return true
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[numericCol]), 64)
	return err != nil
}

// LoadMSTEdges reads the persisted MST edge table
// (source,target,correlation,distance). Malformed rows are skipped with a
// warning; an unreadable file is an error, an empty one is not.
func LoadMSTEdges(path string) ([]graphview.Edge, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	var edges []graphview.Edge
	for i, rec := range records {
		if i == 0 && isHeader(rec, 2) {
			continue
		}
		if len(rec) < 4 {
			log.Warn("Skipping short MST row", "file", path, "row", i)
			continue
		}
		corr, err1 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		dist, err2 := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err1 != nil || err2 != nil {
			log.Warn("Skipping unparsable MST row", "file", path, "row", i)
			continue
		}
		edges = append(edges, graphview.Edge{
			Source:      graphview.NodeID(strings.TrimSpace(rec[0])),
			Target:      graphview.NodeID(strings.TrimSpace(rec[1])),
			Correlation: corr,
			Distance:    dist,
		})
	}
	return edges, nil
}

// LoadPairs reads the full pairwise correlation table
// (ticker_a,ticker_b,correlation,distance) used to compute the MST when no
// precomputed edge file is available.
func LoadPairs(path string) ([]Pair, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for i, rec := range records {
		if i == 0 && isHeader(rec, 2) {
			continue
		}
		if len(rec) < 4 {
			log.Warn("Skipping short correlation row", "file", path, "row", i)
			continue
		}
		corr, err1 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		dist, err2 := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err1 != nil || err2 != nil {
			log.Warn("Skipping unparsable correlation row", "file", path, "row", i)
			continue
		}
		pairs = append(pairs, Pair{
			A:           graphview.NodeID(strings.TrimSpace(rec[0])),
			B:           graphview.NodeID(strings.TrimSpace(rec[1])),
			Correlation: corr,
			Distance:    dist,
		})
	}
	return pairs, nil
}

// LoadRatings reads the recommendation table (ticker,advice,momentum).
func LoadRatings(path string) (map[graphview.NodeID]graphview.Rating, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	ratings := make(map[graphview.NodeID]graphview.Rating)
	for i, rec := range records {
		if i == 0 && isHeader(rec, 2) {
			continue
		}
		if len(rec) < 3 {
			log.Warn("Skipping short recommendation row", "file", path, "row", i)
			continue
		}
		momentum, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			log.Warn("Skipping unparsable recommendation row", "file", path, "row", i)
			continue
		}
		ticker := graphview.NodeID(strings.TrimSpace(rec[0]))
		ratings[ticker] = graphview.Rating{
			Advice:   ParseAdvice(strings.TrimSpace(rec[1])),
			Momentum: momentum,
		}
	}
	return ratings, nil
}

// LoadQuotes reads the long-format price history table (date,ticker,close).
func LoadQuotes(path string) (map[graphview.NodeID][]Quote, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	quotes := make(map[graphview.NodeID][]Quote)
	for i, rec := range records {
		if i == 0 && isHeader(rec, 2) {
			continue
		}
		if len(rec) < 3 {
			log.Warn("Skipping short price row", "file", path, "row", i)
			continue
		}
		date, err1 := time.Parse(quoteDateLayout, strings.TrimSpace(rec[0]))
		closePrice, err2 := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err1 != nil || err2 != nil {
			log.Warn("Skipping unparsable price row", "file", path, "row", i)
			continue
		}
		ticker := graphview.NodeID(strings.TrimSpace(rec[1]))
		quotes[ticker] = append(quotes[ticker], Quote{Date: date, Close: closePrice})
	}
	return quotes, nil
}
