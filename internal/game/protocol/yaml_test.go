package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleState = `
game_id: 4
local_player: 1
players:
  - id: 1
    name: alice
    zones:
      - name: deck
        card_count: 33
      - name: table
        cards:
          - {id: 0, name: Bear, x: 0, y: 0, tapped: true}
          - {id: 1, name: Rancor, x: 1, y: 0, attached: {player: 1, zone: table, card: 0}}
    counters:
      - {id: 0, name: life, color: {r: 255, g: 255, b: 255}, radius: 25, count: 20}
    arrows:
      - {id: 0, start_player: 1, start_zone: table, start_card: 0, target_player: 2, color: {r: 255}}
  - id: 2
    name: bob
    zones:
      - name: hand
        card_count: 7
`

func TestLoadGameStateYAML(t *testing.T) {
	gs, err := LoadGameStateYAML(strings.NewReader(sampleState))
	require.NoError(t, err)

	assert.Equal(t, 4, gs.GameID)
	assert.Equal(t, 1, gs.LocalPlayerID)
	require.Len(t, gs.Players, 2)

	alice := gs.Players[0]
	require.Len(t, alice.Zones, 2)
	assert.Equal(t, 33, alice.Zones[0].CardCount)
	assert.Empty(t, alice.Zones[0].Cards)
	assert.Equal(t, 2, alice.Zones[1].CardCount, "card count defaults to the listed cards")
	assert.True(t, alice.Zones[1].Cards[0].Tapped)
	require.NotNil(t, alice.Zones[1].Cards[1].Attached)
	assert.Equal(t, 0, alice.Zones[1].Cards[1].Attached.CardID)
	assert.Equal(t, 20, alice.Counters[0].Count)
	assert.Empty(t, alice.Arrows[0].TargetZone)
}

func TestLoadGameStateYAMLRejectsUnknownFields(t *testing.T) {
	_, err := LoadGameStateYAML(strings.NewReader("game_id: 1\nplayerz: []\n"))
	assert.Error(t, err)
}
