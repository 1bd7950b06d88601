package player

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/protocol"
)

type testGame struct {
	players map[int]*Player
}

func (g *testGame) Player(id int) *Player { return g.players[id] }

func (g *testGame) Players() []*Player {
	out := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

type recordingSink struct {
	batches [][]protocol.Command
}

func (s *recordingSink) SendCommands(_ int, cmds ...protocol.Command) {
	s.batches = append(s.batches, cmds)
}

func (s *recordingSink) last(t *testing.T) []protocol.Command {
	t.Helper()
	require.NotEmpty(t, s.batches, "no commands were sent")
	return s.batches[len(s.batches)-1]
}

// scriptedPrompter answers every prompt with fixed values. During runs inside the prompt before
// it returns, the way queued server events are applied while a dialog is open.
type scriptedPrompter struct {
	intValue  int
	textValue string
	cancel    bool
	during    func()
	asked     []string
}

func (s *scriptedPrompter) PromptInt(_ context.Context, req IntRequest) (int, bool) {
	s.asked = append(s.asked, req.Title)
	if s.during != nil {
		s.during()
	}
	return s.intValue, !s.cancel
}

func (s *scriptedPrompter) PromptText(_ context.Context, req TextRequest) (string, bool) {
	s.asked = append(s.asked, req.Title)
	if s.during != nil {
		s.during()
	}
	return s.textValue, !s.cancel
}

// newTestGame creates a local player 1 and a remote player 2 sharing one sink.
func newTestGame(t *testing.T) (*testGame, *recordingSink) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	sink := &recordingSink{}
	g := &testGame{players: make(map[int]*Player)}
	g.players[1] = New(logger, 1, "alice", Options{Local: true, Context: g, Sink: sink})
	g.players[2] = New(logger, 2, "bob", Options{Context: g, Sink: sink})
	return g, sink
}

// put places a named card with a known id in one of the player's zones.
func put(t *testing.T, p *Player, zone string, id int, name string) *cards.Card {
	t.Helper()
	z := p.Zone(zone)
	require.NotNil(t, z, "zone %s", zone)
	c := cards.New(id, name)
	z.Insert(c, protocol.AppendPosition, 0)
	return c
}

func fillHiddenDeck(p *Player, n int) {
	for i := 0; i < n; i++ {
		p.Zone(protocol.ZoneDeck).Insert(cards.NewHidden(), protocol.AppendPosition, 0)
	}
}

func TestNewPlayerZones(t *testing.T) {
	g, _ := newTestGame(t)
	local, remote := g.players[1], g.players[2]

	require.Len(t, local.Zones(), len(protocol.ZoneNames))
	assert.False(t, local.Zone(protocol.ZoneDeck).ContentsKnown())
	assert.False(t, local.Zone(protocol.ZoneSideboard).ContentsKnown())
	assert.True(t, local.Zone(protocol.ZoneGrave).ContentsKnown())
	assert.True(t, local.Zone(protocol.ZoneExile).ContentsKnown())
	assert.True(t, local.Zone(protocol.ZoneHand).ContentsKnown())
	assert.False(t, remote.Zone(protocol.ZoneHand).ContentsKnown())
	assert.Nil(t, local.Zone("library"))

	assert.Equal(t, defaultTopCards, local.DefaultTopCards())
	assert.Equal(t, 1, local.Target().PlayerID)
	_, hasLife := local.Target().Life()
	assert.False(t, hasLife)
}

func TestResolveCardAcrossPlayers(t *testing.T) {
	g, _ := newTestGame(t)
	bear := put(t, g.players[2], protocol.ZoneTable, 4, "Bear")

	assert.Same(t, bear, g.players[1].ResolveCard(2, protocol.ZoneTable, 4))
	assert.Nil(t, g.players[1].ResolveCard(2, protocol.ZoneTable, 5))
	assert.Nil(t, g.players[1].ResolveCard(9, protocol.ZoneTable, 4))

	c, z := g.players[1].Locate(bear.Handle)
	assert.Same(t, bear, c)
	assert.Equal(t, 2, z.OwnerID)
}

func TestPlayerWithoutContextSeesOnlyItself(t *testing.T) {
	p := New(zaptest.NewLogger(t), 5, "solo", Options{})
	c := put(t, p, protocol.ZoneTable, 1, "Wall")

	assert.Same(t, c, p.ResolveCard(5, protocol.ZoneTable, 1))
	assert.Nil(t, p.ResolveCard(6, protocol.ZoneTable, 1))
	p.DrawCard() // no sink: dropped with a warning
}
