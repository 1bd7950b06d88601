package carddb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Columns of the card export CSV that the database needs.
const (
	colName      = 0
	colPower     = 4
	colToughness = 5
	colTypes     = 10
	exportCols   = 23
)

// ImportStats summarises one CSV import.
type ImportStats struct {
	Rows       int
	Skipped    int
	Duplicates int
}

// ImportCSV converts a card export (one header row, one row per printing) into database entries.
// Reprints collapse onto the first printing of a name. Rows that are too short are skipped.
func ImportCSV(r io.Reader) ([]Card, ImportStats, error) {
	var stats ImportStats
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("card export is empty")
		}
		return nil, stats, fmt.Errorf("failed to read card export header: %w", err)
	}

	seen := make(map[string]bool)
	var list []Card
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read card export: %w", err)
		}
		stats.Rows++
		if len(record) < exportCols || strings.TrimSpace(record[colName]) == "" {
			stats.Skipped++
			continue
		}
		name := strings.TrimSpace(record[colName])
		key := strings.ToLower(name)
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true
		list = append(list, Card{
			Name:     name,
			TableRow: TableRowFor(record[colTypes]),
			PT:       powerToughness(record[colPower], record[colToughness]),
		})
	}
	return list, stats, nil
}

// TableRowFor picks the table row for a type line such as "Artifact Creature".
func TableRowFor(types string) int {
	t := strings.ToLower(types)
	switch {
	case strings.Contains(t, "land"):
		return RowLands
	case strings.Contains(t, "creature"):
		return RowCreatures
	case strings.Contains(t, "instant"), strings.Contains(t, "sorcery"):
		return RowStack
	default:
		return RowPermanents
	}
}

func powerToughness(power, toughness string) string {
	power, toughness = strings.TrimSpace(power), strings.TrimSpace(toughness)
	if power == "" && toughness == "" {
		return ""
	}
	return power + "/" + toughness
}

// Save writes the card list in the format Load reads.
func Save(w io.Writer, list []Card) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file{Cards: list}); err != nil {
		return fmt.Errorf("failed to encode card database: %w", err)
	}
	return enc.Close()
}
