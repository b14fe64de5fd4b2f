package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/mattn/go-isatty"

	"github.com/Dpkrgns/StockGraphix/internal/graphview"
	"github.com/Dpkrgns/StockGraphix/internal/log"
	"github.com/Dpkrgns/StockGraphix/internal/market"
	"github.com/Dpkrgns/StockGraphix/internal/tui"
	"github.com/Dpkrgns/StockGraphix/internal/tui/components"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Global panic handler so a crash never leaves the terminal in raw mode
	// without an explanation.
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "Application crashed. See stockgraphix_debug.log for details.\n")
			os.Exit(1)
		}
	}()

	dataDir := flag.String("data", "data", "directory containing the CSV inputs")
	dbPath := flag.String("db", "stockgraphix.db", "SQLite database path (\":memory:\" for ephemeral)")
	exportPath := flag.String("export", "network.png", "PNG path for the 'p' export key")
	logPath := flag.String("log", "stockgraphix_debug.log", "debug log path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("stockgraphix %s (%s, built %s)\n", version, commit, date)
		return
	}

	if err := log.SetFileOutput(*logPath); err != nil {
		fmt.Printf("Warning: Could not configure debug logging to file: %v\n", err)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println("StockGraphix correlation dashboard")
		fmt.Println("This application requires a terminal/TTY to run.")
		os.Exit(1)
	}

	edges, err := loadEdges(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load network data: %v\n", err)
		os.Exit(1)
	}

	ratings, err := market.LoadRatings(filepath.Join(*dataDir, "recommendations.csv"))
	if err != nil {
		log.Warn("No recommendations loaded", "error", err)
		ratings = make(map[graphview.NodeID]graphview.Rating)
	}

	store, err := market.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if quotes, err := market.LoadQuotes(filepath.Join(*dataDir, "prices.csv")); err != nil {
		log.Warn("No price history loaded", "error", err)
	} else if err := store.ImportQuotes(quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import quotes: %v\n", err)
		os.Exit(1)
	}
	if err := store.ImportRatings(ratings); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import ratings: %v\n", err)
		os.Exit(1)
	}

	sixelCapable := components.SixelSupported()
	log.Info("Starting dashboard", "version", version, "edges", len(edges),
		"ratings", len(ratings), "sixel", sixelCapable)
	if !sixelCapable {
		fmt.Println("Note: terminal does not report sixel support, using text rendering.")
	}

	app := tui.NewApp(tui.Config{
		Edges:        edges,
		Ratings:      ratings,
		Store:        store,
		ExportPath:   *exportPath,
		SixelCapable: sixelCapable,
	})
	if err := app.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// loadEdges prefers a precomputed tree file and falls back to reducing the
// full correlation table.
func loadEdges(dataDir string) ([]graphview.Edge, error) {
	mstPath := filepath.Join(dataDir, "mst.csv")
	if _, err := os.Stat(mstPath); err == nil {
		return market.LoadMSTEdges(mstPath)
	}

	pairs, err := market.LoadPairs(filepath.Join(dataDir, "correlations.csv"))
	if err != nil {
		return nil, fmt.Errorf("neither mst.csv nor correlations.csv usable: %w", err)
	}
	log.Info("Reducing correlation table to spanning tree", "pairs", len(pairs))
	return market.ComputeMST(pairs)
}
