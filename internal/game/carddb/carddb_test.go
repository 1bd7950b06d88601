package carddb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	db, err := Load(strings.NewReader(`
cards:
  - {name: Grizzly Bears, table_row: 2, pt: 2/2}
  - {name: Lightning Bolt, table_row: 3}
`))
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())

	bears, ok := db.Lookup("grizzly bears")
	require.True(t, ok)
	assert.Equal(t, RowCreatures, bears.TableRow)
	assert.Equal(t, "2/2", bears.PT)

	_, ok = db.Lookup("Island")
	assert.False(t, ok)
}

func TestLoadRejectsBadRow(t *testing.T) {
	_, err := Load(strings.NewReader("cards:\n  - {name: X, table_row: 7}\n"))
	assert.Error(t, err)
}

func TestNilDatabase(t *testing.T) {
	var db *Database
	_, ok := db.Lookup("anything")
	assert.False(t, ok)
	assert.Zero(t, db.Len())
}
