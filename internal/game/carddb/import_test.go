package carddb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRow(name, power, toughness, types string) string {
	cols := make([]string, exportCols)
	cols[colName] = name
	cols[colPower] = power
	cols[colToughness] = toughness
	cols[colTypes] = types
	return strings.Join(cols, ",")
}

func TestImportCSV(t *testing.T) {
	export := strings.Join([]string{
		"name,set,number,...",
		exportRow("Forest", "", "", "Basic Land"),
		exportRow("Grizzly Bears", "2", "2", "Creature"),
		exportRow("grizzly bears", "2", "2", "Creature"),
		exportRow("Lightning Bolt", "", "", "Instant"),
		exportRow("Rancor", "", "", "Enchantment"),
		"Broken,row",
		exportRow("Dryad Arbor", "1", "1", "Land Creature"),
	}, "\n")

	list, stats, err := ImportCSV(strings.NewReader(export))
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Rows: 7, Skipped: 1, Duplicates: 1}, stats)
	assert.Equal(t, []Card{
		{Name: "Forest", TableRow: RowLands},
		{Name: "Grizzly Bears", TableRow: RowCreatures, PT: "2/2"},
		{Name: "Lightning Bolt", TableRow: RowStack},
		{Name: "Rancor", TableRow: RowPermanents},
		{Name: "Dryad Arbor", TableRow: RowLands, PT: "1/1"},
	}, list)
}

func TestImportCSVEmpty(t *testing.T) {
	_, _, err := ImportCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestSaveLoadsBack(t *testing.T) {
	list := []Card{
		{Name: "Grizzly Bears", TableRow: RowCreatures, PT: "2/2"},
		{Name: "Shock", TableRow: RowStack},
	}
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, list))

	db, err := Load(&buf)
	require.NoError(t, err)
	shock, ok := db.Lookup("shock")
	require.True(t, ok)
	assert.Equal(t, RowStack, shock.TableRow)
	assert.Equal(t, 2, db.Len())
}
