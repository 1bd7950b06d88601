package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-client-go/internal/game/carddb"
	"github.com/magefree/mage-client-go/internal/game/counters"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/report"
)

func TestCommandsDoNotTouchState(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	fillHiddenDeck(alice, 5)

	alice.DrawCards(2)
	alice.Shuffle()
	alice.Mulligan()
	alice.UndoDraw()

	require.Len(t, sink.batches, 4)
	assert.Equal(t, []protocol.Command{protocol.DrawCardsCommand{Number: 2}}, sink.batches[0])
	assert.Equal(t, protocol.CommandShuffle, sink.batches[1][0].Kind())
	assert.Equal(t, protocol.CommandMulligan, sink.batches[2][0].Kind())
	assert.Equal(t, protocol.CommandUndoDraw, sink.batches[3][0].Kind())
	assert.Equal(t, 5, alice.Zone(protocol.ZoneDeck).Len())
	assert.Zero(t, alice.Zone(protocol.ZoneHand).Len())
}

func TestInvalidCommandsAreDropped(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]

	alice.DrawCards(0)
	alice.RollDie(1)
	alice.RollDie(1001)
	alice.SayMessage("   ")
	alice.CreateToken(TokenParams{Name: " "})
	alice.CreateAnotherToken()
	alice.MoveTopCardsTo(protocol.ZoneGrave, 3)

	assert.Empty(t, sink.batches)
	_, ok := alice.LastToken()
	assert.False(t, ok)
}

func TestRollDie(t *testing.T) {
	g, sink := newTestGame(t)
	g.players[1].RollDie(6)
	assert.Equal(t, []protocol.Command{protocol.RollDieCommand{Sides: 6}}, sink.last(t))
}

func TestMoveTopCardsClampsToLibrary(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	fillHiddenDeck(alice, 2)

	alice.MoveTopCardsTo(protocol.ZoneExile, 5)

	cmd, ok := sink.last(t)[0].(protocol.MoveCardCommand)
	require.True(t, ok)
	assert.Equal(t, protocol.ZoneDeck, cmd.StartZone)
	assert.Equal(t, protocol.ZoneExile, cmd.TargetZone)
	assert.Equal(t, []protocol.CardToMove{{CardID: 0}, {CardID: 1}}, cmd.Cards)
}

func TestMoveTopCardToBottom(t *testing.T) {
	g, sink := newTestGame(t)
	g.players[1].MoveTopCardToBottom()

	cmd := sink.last(t)[0].(protocol.MoveCardCommand)
	assert.Equal(t, protocol.ZoneDeck, cmd.TargetZone)
	assert.Equal(t, protocol.AppendPosition, cmd.X)
}

func TestUntapAllUsesWildcard(t *testing.T) {
	g, sink := newTestGame(t)
	g.players[1].UntapAll()

	assert.Equal(t, []protocol.Command{protocol.SetCardAttrCommand{
		Zone: protocol.ZoneTable, CardID: protocol.NoCard,
		AttrName: protocol.AttrTapped, AttrValue: "0",
	}}, sink.last(t))
}

func TestCreateTokenRemembersParameters(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	params := DefaultTokenParams()
	params.Name = "Saproling"
	params.Color = "g"
	params.PT = "1/1"

	alice.CreateToken(params)
	alice.CreateAnotherToken()

	require.Len(t, sink.batches, 2)
	assert.Equal(t, sink.batches[0], sink.batches[1])
	cmd := sink.batches[0][0].(protocol.CreateTokenCommand)
	assert.Equal(t, "Saproling", cmd.CardName)
	assert.True(t, cmd.DestroyOnZoneChange)
	assert.Equal(t, protocol.AppendPosition, cmd.X)

	last, ok := alice.LastToken()
	require.True(t, ok)
	assert.Equal(t, params, last)
}

func TestPlayCardUsesTableRow(t *testing.T) {
	logger := zaptest.NewLogger(t)
	sink := &recordingSink{}
	db := carddb.New([]carddb.Card{
		{Name: "Forest", TableRow: carddb.RowLands},
		{Name: "Grizzly Bears", TableRow: carddb.RowCreatures, PT: "2/2"},
		{Name: "Shock", TableRow: carddb.RowStack},
	})
	alice := New(logger, 1, "alice", Options{Local: true, Sink: sink, CardDatabase: db})
	forest := put(t, alice, protocol.ZoneHand, 1, "Forest")
	bears := put(t, alice, protocol.ZoneHand, 2, "Grizzly Bears")
	shock := put(t, alice, protocol.ZoneHand, 3, "Shock")
	unknown := put(t, alice, protocol.ZoneHand, 4, "Mystery")

	alice.PlayCard(forest.Handle, false, false)
	alice.PlayCard(bears.Handle, false, true)
	alice.PlayCard(shock.Handle, true, true)
	alice.PlayCard(unknown.Handle, true, false)
	require.Len(t, sink.batches, 4)

	land := sink.batches[0][0].(protocol.MoveCardCommand)
	assert.Equal(t, protocol.ZoneTable, land.TargetZone)
	assert.Equal(t, 2, land.Y)
	assert.Equal(t, protocol.AppendPosition, land.X)

	creature := sink.batches[1][0].(protocol.MoveCardCommand)
	assert.Equal(t, 0, creature.Y)
	assert.Equal(t, protocol.CardToMove{CardID: 2, PT: "2/2", Tapped: true}, creature.Cards[0])

	spell := sink.batches[2][0].(protocol.MoveCardCommand)
	assert.Equal(t, protocol.ZoneStack, spell.TargetZone)
	assert.Equal(t, protocol.CardToMove{CardID: 3}, spell.Cards[0], "spells ignore face-down and tapped")

	other := sink.batches[3][0].(protocol.MoveCardCommand)
	assert.Equal(t, 1, other.Y)
	assert.True(t, other.Cards[0].FaceDown)
}

func TestRevealCommands(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]

	alice.RevealTopCard(2)
	alice.RevealRandomHandCard(protocol.NoPlayer)
	alice.RevealLibrary(2)

	assert.Equal(t, protocol.RevealCardsCommand{ZoneName: protocol.ZoneDeck, PlayerID: 2, CardID: 0}, sink.batches[0][0])
	assert.Equal(t, protocol.RevealCardsCommand{ZoneName: protocol.ZoneHand, PlayerID: protocol.NoPlayer, CardID: protocol.RandomCard}, sink.batches[1][0])
	assert.Equal(t, protocol.NoCard, sink.batches[2][0].(protocol.RevealCardsCommand).CardID)
}

func TestSelectionCommands(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	tapped := put(t, alice, protocol.ZoneTable, 1, "Elf")
	tapped.Tapped = true
	untapped := put(t, alice, protocol.ZoneTable, 2, "Bear")
	graveCard := put(t, alice, protocol.ZoneGrave, 3, "Zombie")
	foreign := put(t, g.players[2], protocol.ZoneTable, 4, "Goblin")
	alice.Select(tapped.Handle, untapped.Handle, foreign.Handle)

	assert.Len(t, alice.Selection(), 2, "cards of other players are not selectable")

	alice.TapSelected()
	assert.Equal(t, []protocol.Command{setAttr(untapped, protocol.AttrTapped, "1")}, sink.last(t))

	alice.UntapSelected()
	assert.Equal(t, []protocol.Command{setAttr(tapped, protocol.AttrTapped, "0")}, sink.last(t))

	alice.IncPTSelected(1, -1)
	batch := sink.last(t)
	require.Len(t, batch, 2)
	assert.Equal(t, "+1/-1", batch[0].(protocol.SetCardAttrCommand).AttrValue)

	alice.ToggleDoesntUntapSelected()
	assert.Equal(t, "1", sink.last(t)[0].(protocol.SetCardAttrCommand).AttrValue)

	alice.Select(tapped.Handle, untapped.Handle, graveCard.Handle)
	alice.MoveSelectedTo(Exile)
	batch = sink.last(t)
	require.Len(t, batch, 2, "one move command per start zone")
	fromTable := batch[0].(protocol.MoveCardCommand)
	assert.Equal(t, protocol.ZoneTable, fromTable.StartZone)
	assert.Len(t, fromTable.Cards, 2)
	assert.Equal(t, protocol.ZoneGrave, batch[1].(protocol.MoveCardCommand).StartZone)

	alice.MoveSelectedTo(DeckBottom)
	assert.Equal(t, protocol.AppendPosition, sink.last(t)[0].(protocol.MoveCardCommand).X)
}

func TestCardCounterSelection(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	full := put(t, alice, protocol.ZoneTable, 1, "Hydra")
	full.SetCounter(counters.CardCounterGreen, counters.MaxOnCard)
	empty := put(t, alice, protocol.ZoneTable, 2, "Bear")
	alice.Select(full.Handle, empty.Handle)

	alice.IncCardCounterSelected(counters.CardCounterGreen)
	assert.Equal(t, []protocol.Command{setCounter(empty, counters.CardCounterGreen, 1)}, sink.last(t))

	alice.DecCardCounterSelected(counters.CardCounterGreen)
	assert.Equal(t, []protocol.Command{setCounter(full, counters.CardCounterGreen, counters.MaxOnCard-1)}, sink.last(t))
}

func TestAttachCommands(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	aura := put(t, alice, protocol.ZoneTable, 1, "Aura")
	host := put(t, g.players[2], protocol.ZoneTable, 6, "Dragon")

	alice.Attach(aura.Handle, host.Handle)
	assert.Equal(t, protocol.AttachCardCommand{
		StartZone: protocol.ZoneTable, CardID: 1,
		TargetPlayerID: 2, TargetZone: protocol.ZoneTable, TargetCardID: 6,
	}, sink.last(t)[0])

	alice.Attach(aura.Handle, aura.Handle)
	assert.Len(t, sink.batches, 1, "a card cannot be attached to itself")

	alice.Unattach(aura.Handle)
	assert.Equal(t, protocol.NoPlayer, sink.last(t)[0].(protocol.AttachCardCommand).TargetPlayerID)
}

func TestPromptedCommands(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	prompter := &scriptedPrompter{intValue: 6}
	alice.SetPrompter(prompter)

	alice.PromptRollDie(context.Background())
	assert.Equal(t, []protocol.Command{protocol.RollDieCommand{Sides: 6}}, sink.last(t))

	prompter.intValue = 3
	alice.PromptDrawCards(context.Background())
	assert.Equal(t, []protocol.Command{protocol.DrawCardsCommand{Number: 3}}, sink.last(t))

	prompter.cancel = true
	alice.PromptDrawCards(context.Background())
	assert.Len(t, sink.batches, 2, "cancelled prompt sends nothing")
}

func TestPromptAnswersOutOfRangeAreIgnored(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	prompter := &scriptedPrompter{}
	alice.SetPrompter(prompter)

	for _, sides := range []int{0, 1, maxDieSides + 1, -4} {
		prompter.intValue = sides
		alice.PromptRollDie(context.Background())
	}
	prompter.intValue = -1
	alice.PromptDrawCards(context.Background())
	prompter.intValue = 0
	alice.PromptDrawCards(context.Background())
	assert.Empty(t, sink.batches)

	bear := put(t, alice, protocol.ZoneTable, 1, "Bear")
	alice.Select(bear.Handle)
	prompter.intValue = counters.MaxOnCard + 1
	alice.PromptSetCardCounterSelected(context.Background(), counters.CardCounterRed)
	assert.Empty(t, sink.batches)

	prompter.intValue = 2
	alice.PromptRollDie(context.Background())
	assert.Equal(t, []protocol.Command{protocol.RollDieCommand{Sides: 2}}, sink.last(t))
}

func TestPromptWithoutPrompterDoesNothing(t *testing.T) {
	g, sink := newTestGame(t)
	g.players[1].PromptDrawCards(context.Background())
	assert.Empty(t, sink.batches)
}

func TestGuardedPromptAbortsWhenCardsAreDeleted(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	bear := put(t, alice, protocol.ZoneTable, 1, "Bear")
	alice.Select(bear.Handle)

	prompter := &scriptedPrompter{textValue: "blocking"}
	prompter.during = func() {
		assert.True(t, alice.PromptOpen())
		r := alice.ApplyEvent(protocol.DestroyCardEvent{Zone: protocol.ZoneTable, CardID: 1}, protocol.NoContext)
		assert.True(t, r.Find(report.KindDeleteCard)[0].Flag, "deletion is deferred while the prompt is open")
		assert.Len(t, alice.PendingDeletions(), 1)
	}
	alice.SetPrompter(prompter)

	alice.PromptSetAnnotationSelected(context.Background())

	assert.Empty(t, sink.batches)
	assert.False(t, alice.PromptOpen())
	assert.Empty(t, alice.PendingDeletions())
}

func TestUnguardedPromptSurvivesDeletions(t *testing.T) {
	g, sink := newTestGame(t)
	alice := g.players[1]
	put(t, alice, protocol.ZoneTable, 1, "Bear")
	prompter := &scriptedPrompter{intValue: 2}
	prompter.during = func() {
		alice.ApplyEvent(protocol.DestroyCardEvent{Zone: protocol.ZoneTable, CardID: 1}, protocol.NoContext)
	}
	alice.SetPrompter(prompter)

	alice.PromptDrawCards(context.Background())
	assert.Equal(t, []protocol.Command{protocol.DrawCardsCommand{Number: 2}}, sink.last(t))
}

func TestZoneViews(t *testing.T) {
	g, _ := newTestGame(t)
	alice := g.players[1]

	r := alice.ViewGraveyard()
	assert.True(t, r.Find(report.KindViewZone)[0].Flag)
	assert.Equal(t, []ZoneView{{Zone: protocol.ZoneGrave, NumberCards: ViewAll}}, alice.Views())

	r = alice.ViewGraveyard()
	assert.False(t, r.Find(report.KindViewZone)[0].Flag, "same view toggles closed")
	assert.Empty(t, alice.Views())

	prompter := &scriptedPrompter{intValue: 0}
	alice.SetPrompter(prompter)
	alice.PromptViewTopCards(context.Background())
	assert.Empty(t, alice.Views(), "zero cards is not a view")

	prompter.intValue = 4
	alice.PromptViewTopCards(context.Background())
	assert.Equal(t, []ZoneView{{Zone: protocol.ZoneDeck, NumberCards: 4}}, alice.Views())
	assert.Equal(t, 4, alice.DefaultTopCards())
}
