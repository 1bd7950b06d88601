package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/counters"
	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// Destination is where MoveSelectedTo sends cards.
type Destination int

const (
	DeckTop Destination = iota
	DeckBottom
	Graveyard
	Exile
)

func (d Destination) target() (zone string, x int) {
	switch d {
	case DeckBottom:
		return protocol.ZoneDeck, protocol.AppendPosition
	case Graveyard:
		return protocol.ZoneGrave, 0
	case Exile:
		return protocol.ZoneExile, 0
	default:
		return protocol.ZoneDeck, 0
	}
}

// Select replaces the current selection. Handles are weak; cards that disappear are skipped.
func (p *Player) Select(handles ...uuid.UUID) {
	p.selection = append([]uuid.UUID(nil), handles...)
}

// Selection returns the handles of the selection that still resolve to this player's cards.
func (p *Player) Selection() []uuid.UUID {
	var out []uuid.UUID
	for _, c := range p.selectedCards() {
		out = append(out, c.Handle)
	}
	return out
}

func (p *Player) selectedCards() []*cards.Card {
	var out []*cards.Card
	for _, h := range p.selection {
		if c, _ := p.CardByHandle(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func setAttr(c *cards.Card, name, value string) protocol.Command {
	return protocol.SetCardAttrCommand{Zone: c.Zone, CardID: c.ID, AttrName: name, AttrValue: value}
}

// TapSelected taps the selected cards that are untapped.
func (p *Player) TapSelected() {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		if !c.Tapped {
			cmds = append(cmds, setAttr(c, protocol.AttrTapped, protocol.BoolValue(true)))
		}
	}
	p.send(cmds...)
}

// UntapSelected untaps the selected cards that are tapped.
func (p *Player) UntapSelected() {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		if c.Tapped {
			cmds = append(cmds, setAttr(c, protocol.AttrTapped, protocol.BoolValue(false)))
		}
	}
	p.send(cmds...)
}

// ToggleDoesntUntapSelected flips the doesn't-untap flag of every selected card.
func (p *Player) ToggleDoesntUntapSelected() {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, setAttr(c, protocol.AttrDoesntUntap, protocol.BoolValue(!c.DoesntUntap)))
	}
	p.send(cmds...)
}

// FlipSelected turns every selected card over.
func (p *Player) FlipSelected() {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, protocol.FlipCardCommand{Zone: c.Zone, CardID: c.ID, FaceDown: !c.FaceDown})
	}
	p.send(cmds...)
}

// CloneSelected creates a token copy of every selected card in the same row.
func (p *Player) CloneSelected() {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, protocol.CreateTokenCommand{
			Zone:                c.Zone,
			CardName:            c.Name,
			Color:               c.Color,
			PT:                  c.PT,
			Annotation:          c.Annotation,
			DestroyOnZoneChange: true,
			X:                   protocol.AppendPosition,
			Y:                   c.Y,
		})
	}
	p.send(cmds...)
}

// MoveSelectedTo moves the selection to the library, graveyard or exile. Cards are grouped by the
// zone they leave, one move command per zone, all in one batch.
func (p *Player) MoveSelectedTo(dest Destination) {
	zone, x := dest.target()
	var cmds []protocol.Command
	byZone := make(map[string]int)
	for _, c := range p.selectedCards() {
		i, ok := byZone[c.Zone]
		if !ok {
			i = len(cmds)
			byZone[c.Zone] = i
			cmds = append(cmds, protocol.MoveCardCommand{
				StartZone:      c.Zone,
				TargetPlayerID: p.id,
				TargetZone:     zone,
				X:              x,
				Y:              0,
			})
		}
		cmd := cmds[i].(protocol.MoveCardCommand)
		cmd.Cards = append(cmd.Cards, protocol.CardToMove{CardID: c.ID})
		cmds[i] = cmd
	}
	p.send(cmds...)
}

// IncPTSelected changes the power and toughness of the selection by a relative amount.
func (p *Player) IncPTSelected(deltaP, deltaT int) {
	pt := fmt.Sprintf("%+d/%+d", deltaP, deltaT)
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, setAttr(c, protocol.AttrPT, pt))
	}
	p.send(cmds...)
}

// PromptSetPTSelected asks for a power/toughness and sets it on the selection.
func (p *Player) PromptSetPTSelected(ctx context.Context) {
	selected := p.selectedCards()
	if len(selected) == 0 {
		return
	}
	var old string
	for _, c := range selected {
		if c.PT != "" {
			old = c.PT
		}
	}
	pt, ok := p.promptText(ctx, TextRequest{
		Title:   "Set power/toughness",
		Label:   "Please enter the new PT:",
		Default: old,
	}, true)
	if !ok {
		return
	}
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, setAttr(c, protocol.AttrPT, pt))
	}
	p.send(cmds...)
}

// PromptSetAnnotationSelected asks for an annotation and sets it on the selection.
func (p *Player) PromptSetAnnotationSelected(ctx context.Context) {
	selected := p.selectedCards()
	if len(selected) == 0 {
		return
	}
	var old string
	for _, c := range selected {
		if c.Annotation != "" {
			old = c.Annotation
		}
	}
	annotation, ok := p.promptText(ctx, TextRequest{
		Title:   "Set annotation",
		Label:   "Please enter the new annotation:",
		Default: old,
	}, true)
	if !ok {
		return
	}
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, setAttr(c, protocol.AttrAnnotation, annotation))
	}
	p.send(cmds...)
}

func (p *Player) attachCommand(c *cards.Card, target uuid.UUID) (protocol.Command, bool) {
	t, tz := p.Locate(target)
	if t == nil {
		p.logger.Debug("attach: target not found", zap.String("handle", target.String()))
		return nil, false
	}
	if t.Handle == c.Handle {
		return nil, false
	}
	return protocol.AttachCardCommand{
		StartZone:      c.Zone,
		CardID:         c.ID,
		TargetPlayerID: tz.OwnerID,
		TargetZone:     tz.Name,
		TargetCardID:   t.ID,
	}, true
}

// Attach attaches one of this player's cards to a card of any player.
func (p *Player) Attach(card, target uuid.UUID) {
	c, _ := p.CardByHandle(card)
	if c == nil {
		return
	}
	if cmd, ok := p.attachCommand(c, target); ok {
		p.send(cmd)
	}
}

// AttachSelected attaches every selected card to the target.
func (p *Player) AttachSelected(target uuid.UUID) {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		if cmd, ok := p.attachCommand(c, target); ok {
			cmds = append(cmds, cmd)
		}
	}
	p.send(cmds...)
}

// Unattach detaches one of this player's cards from its parent.
func (p *Player) Unattach(card uuid.UUID) {
	c, _ := p.CardByHandle(card)
	if c == nil {
		return
	}
	p.send(protocol.AttachCardCommand{
		StartZone:      c.Zone,
		CardID:         c.ID,
		TargetPlayerID: protocol.NoPlayer,
		TargetCardID:   protocol.NoCard,
	})
}

func setCounter(c *cards.Card, counterID, value int) protocol.Command {
	return protocol.SetCardCounterCommand{Zone: c.Zone, CardID: c.ID, CounterID: counterID, CounterValue: value}
}

// IncCardCounterSelected adds one counter to every selected card below the maximum.
func (p *Player) IncCardCounterSelected(counterID int) {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		if v := c.Counter(counterID); v < counters.MaxOnCard {
			cmds = append(cmds, setCounter(c, counterID, v+1))
		}
	}
	p.send(cmds...)
}

// DecCardCounterSelected removes one counter from every selected card that has one.
func (p *Player) DecCardCounterSelected(counterID int) {
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		if v := c.Counter(counterID); v > 0 {
			cmds = append(cmds, setCounter(c, counterID, v-1))
		}
	}
	p.send(cmds...)
}

// PromptSetCardCounterSelected asks for a counter value and sets it on the selection.
func (p *Player) PromptSetCardCounterSelected(ctx context.Context, counterID int) {
	if len(p.selectedCards()) == 0 {
		return
	}
	n, ok := p.promptInt(ctx, IntRequest{
		Title: "Set counters",
		Label: "Number:",
		Min:   0,
		Max:   counters.MaxOnCard,
	}, true)
	if !ok {
		return
	}
	n = counters.ClampCardValue(n)
	var cmds []protocol.Command
	for _, c := range p.selectedCards() {
		cmds = append(cmds, setCounter(c, counterID, n))
	}
	p.send(cmds...)
}
