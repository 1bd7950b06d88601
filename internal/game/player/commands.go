package player

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/carddb"
	"github.com/magefree/mage-client-go/internal/game/protocol"
)

const (
	minDieSides = 2
	maxDieSides = 1000
)

// TokenParams are the user-chosen attributes of a token.
type TokenParams struct {
	Name                string
	Color               string
	PT                  string
	Annotation          string
	DestroyOnZoneChange bool
}

// DefaultTokenParams returns the parameters a fresh token dialog starts with.
func DefaultTokenParams() TokenParams {
	return TokenParams{DestroyOnZoneChange: true}
}

func (p *Player) send(cmds ...protocol.Command) {
	if len(cmds) == 0 {
		return
	}
	if p.sink == nil {
		p.logger.Warn("no command sink, dropping commands", zap.Int("count", len(cmds)))
		return
	}
	p.sink.SendCommands(p.id, cmds...)
}

// DrawCard draws one card.
func (p *Player) DrawCard() {
	p.DrawCards(1)
}

// DrawCards draws n cards. A count of zero or less is ignored.
func (p *Player) DrawCards(n int) {
	if n <= 0 {
		return
	}
	p.send(protocol.DrawCardsCommand{Number: n})
}

// PromptDrawCards asks how many cards to draw.
func (p *Player) PromptDrawCards(ctx context.Context) {
	n, ok := p.promptInt(ctx, IntRequest{Title: "Draw cards", Label: "Number:"}, false)
	if !ok {
		return
	}
	p.DrawCards(n)
}

func (p *Player) Shuffle() {
	p.send(protocol.ShuffleCommand{})
}

func (p *Player) Mulligan() {
	p.send(protocol.MulliganCommand{})
}

func (p *Player) UndoDraw() {
	p.send(protocol.UndoDrawCommand{})
}

// RollDie rolls a die with 2 to 1000 sides. Other side counts are ignored.
func (p *Player) RollDie(sides int) {
	if sides < minDieSides || sides > maxDieSides {
		p.logger.Debug("ignoring die roll", zap.Int("sides", sides))
		return
	}
	p.send(protocol.RollDieCommand{Sides: sides})
}

// PromptRollDie asks for the number of sides.
func (p *Player) PromptRollDie(ctx context.Context) {
	sides, ok := p.promptInt(ctx, IntRequest{
		Title:   "Roll die",
		Label:   "Number of sides:",
		Default: p.defaultDieSides,
		Min:     minDieSides,
		Max:     maxDieSides,
	}, false)
	if !ok {
		return
	}
	p.RollDie(sides)
}

// MoveTopCardsTo moves the top n cards of the library to one of this player's zones. n is clamped
// to the known library size.
func (p *Player) MoveTopCardsTo(zone string, n int) {
	if size := p.zones[protocol.ZoneDeck].Len(); n > size {
		n = size
	}
	if n <= 0 {
		return
	}
	cmd := protocol.MoveCardCommand{
		StartZone:      protocol.ZoneDeck,
		TargetPlayerID: p.id,
		TargetZone:     zone,
		X:              0,
		Y:              0,
	}
	for i := 0; i < n; i++ {
		cmd.Cards = append(cmd.Cards, protocol.CardToMove{CardID: i})
	}
	p.send(cmd)
}

// PromptMoveTopCardsToGrave asks how many cards to mill.
func (p *Player) PromptMoveTopCardsToGrave(ctx context.Context) {
	p.promptMoveTopCards(ctx, "Move top cards to grave", protocol.ZoneGrave)
}

// PromptMoveTopCardsToExile asks how many cards to exile from the top of the library.
func (p *Player) PromptMoveTopCardsToExile(ctx context.Context) {
	p.promptMoveTopCards(ctx, "Move top cards to exile", protocol.ZoneExile)
}

func (p *Player) promptMoveTopCards(ctx context.Context, title, zone string) {
	n, ok := p.promptInt(ctx, IntRequest{Title: title, Label: "Number:"}, false)
	if !ok {
		return
	}
	p.MoveTopCardsTo(zone, n)
}

// MoveTopCardToBottom puts the top card of the library at the bottom.
func (p *Player) MoveTopCardToBottom() {
	p.send(protocol.MoveCardCommand{
		StartZone:      protocol.ZoneDeck,
		TargetPlayerID: p.id,
		TargetZone:     protocol.ZoneDeck,
		Cards:          []protocol.CardToMove{{CardID: 0}},
		X:              protocol.AppendPosition,
		Y:              0,
	})
}

// UntapAll untaps every permanent. The wildcard card id lets the server skip cards that do not
// untap, including ones this client cannot see.
func (p *Player) UntapAll() {
	p.send(protocol.SetCardAttrCommand{
		Zone:      protocol.ZoneTable,
		CardID:    protocol.NoCard,
		AttrName:  protocol.AttrTapped,
		AttrValue: protocol.BoolValue(false),
	})
}

// CreateToken creates a token and remembers the parameters for CreateAnotherToken.
func (p *Player) CreateToken(params TokenParams) {
	if strings.TrimSpace(params.Name) == "" {
		return
	}
	p.lastToken = &params
	p.CreateAnotherToken()
}

// CreateAnotherToken repeats the last token. It does nothing before the first token.
func (p *Player) CreateAnotherToken() {
	if p.lastToken == nil {
		return
	}
	t := p.lastToken
	p.send(protocol.CreateTokenCommand{
		Zone:                protocol.ZoneTable,
		CardName:            t.Name,
		Color:               t.Color,
		PT:                  t.PT,
		Annotation:          t.Annotation,
		DestroyOnZoneChange: t.DestroyOnZoneChange,
		X:                   protocol.AppendPosition,
		Y:                   0,
	})
}

// LastToken returns the parameters of the last created token.
func (p *Player) LastToken() (TokenParams, bool) {
	if p.lastToken == nil {
		return TokenParams{}, false
	}
	return *p.lastToken, true
}

// SayMessage sends a chat line to the game. Blank messages are dropped.
func (p *Player) SayMessage(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.send(protocol.GameSayCommand{Message: text})
}

// PlayCard moves a card of this player to the stack (instants and sorceries) or onto the table in
// the row given by the card database. Unknown cards go to the middle row.
func (p *Player) PlayCard(h uuid.UUID, faceDown, tapped bool) {
	c, z := p.CardByHandle(h)
	if c == nil {
		p.logger.Debug("play card: card not found", zap.String("handle", h.String()))
		return
	}
	data, ok := p.cardDB.Lookup(c.Name)
	if !ok {
		data = carddb.Card{Name: c.Name, TableRow: carddb.RowPermanents, PT: c.PT}
	}
	move := protocol.CardToMove{CardID: c.ID}
	cmd := protocol.MoveCardCommand{
		StartZone:      z.Name,
		TargetPlayerID: p.id,
	}
	if data.TableRow == carddb.RowStack {
		cmd.TargetZone = protocol.ZoneStack
		cmd.X, cmd.Y = 0, 0
	} else {
		move.FaceDown = faceDown
		move.PT = data.PT
		move.Tapped = tapped
		cmd.TargetZone = protocol.ZoneTable
		cmd.X, cmd.Y = protocol.AppendPosition, carddb.RowCreatures-data.TableRow
	}
	cmd.Cards = []protocol.CardToMove{move}
	p.send(cmd)
}

// RevealZone reveals a zone, or one card of it, to a player. toPlayer NoPlayer reveals to
// everyone; cardID NoCard reveals the whole zone and RandomCard a random card.
func (p *Player) RevealZone(zone string, toPlayer, cardID int) {
	p.send(protocol.RevealCardsCommand{ZoneName: zone, PlayerID: toPlayer, CardID: cardID})
}

func (p *Player) RevealLibrary(toPlayer int) {
	p.RevealZone(protocol.ZoneDeck, toPlayer, protocol.NoCard)
}

func (p *Player) RevealTopCard(toPlayer int) {
	p.RevealZone(protocol.ZoneDeck, toPlayer, 0)
}

func (p *Player) RevealHand(toPlayer int) {
	p.RevealZone(protocol.ZoneHand, toPlayer, protocol.NoCard)
}

func (p *Player) RevealRandomHandCard(toPlayer int) {
	p.RevealZone(protocol.ZoneHand, toPlayer, protocol.RandomCard)
}
