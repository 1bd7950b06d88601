package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/magefree/mage-client-go/internal/game/carddb"
)

// Converts a card CSV export into the YAML card database the tabletop client loads.
//
//	go run ./scripts/import_cards.go [export.csv] [cards.yaml]
func main() {
	csvPath := "data/cards_export.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "config/cards.yaml"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	absPath, err := filepath.Abs(csvPath)
	if err != nil {
		log.Fatalf("Failed to get absolute path: %v", err)
	}

	fmt.Println("=== Card Database Import ===")
	fmt.Printf("CSV file: %s\n", absPath)

	in, err := os.Open(absPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer in.Close()

	startTime := time.Now()
	cards, stats, err := carddb.ImportCSV(in)
	if err != nil {
		log.Fatalf("Failed to import cards: %v", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", outPath, err)
	}
	if err := carddb.Save(out, cards); err != nil {
		out.Close()
		log.Fatalf("Failed to write card database: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Failed to write card database: %v", err)
	}

	fmt.Println("\n=== Import Complete ===")
	fmt.Printf("Rows read: %d\n", stats.Rows)
	fmt.Printf("Cards written: %d\n", len(cards))
	if stats.Duplicates > 0 {
		fmt.Printf("Reprints merged: %d\n", stats.Duplicates)
	}
	if stats.Skipped > 0 {
		fmt.Printf("Rows skipped: %d\n", stats.Skipped)
	}
	fmt.Printf("Time taken: %s\n", time.Since(startTime))
	fmt.Printf("Output: %s\n", outPath)
}
