// Package carddb is the local card database consulted when playing a card from hand.
package carddb

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table rows as laid out on the battlefield grid.
const (
	RowLands      = 0
	RowPermanents = 1
	RowCreatures  = 2
	// RowStack marks instants and sorceries, which go to the stack instead of the table.
	RowStack = 3
)

// Card is the static data of one card name.
type Card struct {
	Name     string `yaml:"name"`
	TableRow int    `yaml:"table_row"`
	PT       string `yaml:"pt,omitempty"`
}

// Database maps card names (case insensitive) to their static data.
type Database struct {
	cards map[string]Card
}

// New creates a database from a list of cards. Later duplicates win.
func New(list []Card) *Database {
	db := &Database{cards: make(map[string]Card, len(list))}
	for _, c := range list {
		db.cards[strings.ToLower(c.Name)] = c
	}
	return db
}

// Lookup returns the card data for a name.
func (db *Database) Lookup(name string) (Card, bool) {
	if db == nil {
		return Card{}, false
	}
	c, ok := db.cards[strings.ToLower(name)]
	return c, ok
}

// Len returns the number of known cards.
func (db *Database) Len() int {
	if db == nil {
		return 0
	}
	return len(db.cards)
}

type file struct {
	Cards []Card `yaml:"cards"`
}

// Load reads a YAML card list of the form `cards: [{name, table_row, pt}]`.
func Load(r io.Reader) (*Database, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode card database: %w", err)
	}
	for _, c := range f.Cards {
		if c.TableRow < RowLands || c.TableRow > RowStack {
			return nil, fmt.Errorf("card %q: table row %d out of range", c.Name, c.TableRow)
		}
	}
	return New(f.Cards), nil
}

// LoadFile is Load on a file path.
func LoadFile(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card database: %w", err)
	}
	defer f.Close()
	return Load(f)
}
