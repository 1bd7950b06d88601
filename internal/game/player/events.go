package player

import (
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/report"
	"github.com/magefree/mage-client-go/internal/game/zones"
)

// Report event kinds for changes that do not come from a server event.
const (
	snapshotEvent protocol.EventKind = "player_info"
	concedeEvent  protocol.EventKind = "conceded"
	viewEvent     protocol.EventKind = "zone_view"
)

// ApplyEvent applies one server event to the player and reports what changed. It never fails:
// events referring to players, zones or cards that do not exist are dropped.
func (p *Player) ApplyEvent(ev protocol.Event, ectx protocol.EventContext) *report.Report {
	r := report.New(p.id, ev.Kind(), ectx)
	switch e := ev.(type) {
	case protocol.ConnectionStateChangedEvent:
		r.Add(report.Change{Kind: report.KindConnectionState, Flag: e.Connected})
	case protocol.SayEvent:
		r.Add(report.Change{Kind: report.KindSay, Text: e.Message})
	case protocol.ShuffleEvent:
		r.Add(report.Change{Kind: report.KindShuffle, Zone: protocol.ZoneDeck})
	case protocol.RollDieEvent:
		r.Add(report.Change{Kind: report.KindRollDie, Value: e.Value, OldValue: e.Sides})
	case protocol.CreateArrowsEvent:
		p.applyCreateArrows(e, r)
	case protocol.DeleteArrowEvent:
		p.DelArrow(e.ArrowID, r)
	case protocol.CreateTokenEvent:
		p.applyCreateToken(e, r)
	case protocol.SetCardAttrEvent:
		p.applySetCardAttr(e, ectx, r)
	case protocol.SetCardCounterEvent:
		p.applySetCardCounter(e, r)
	case protocol.CreateCountersEvent:
		for _, info := range e.Counters {
			p.AddCounter(info, r)
		}
	case protocol.SetCounterEvent:
		p.applySetCounter(e, r)
	case protocol.DelCounterEvent:
		p.DelCounter(e.CounterID, r)
	case protocol.DumpZoneEvent:
		p.applyDumpZone(e, r)
	case protocol.StopDumpZoneEvent:
		p.applyStopDumpZone(e, r)
	case protocol.MoveCardEvent:
		p.applyMoveCard(e, ectx, r)
	case protocol.FlipCardEvent:
		p.applyFlipCard(e, r)
	case protocol.DestroyCardEvent:
		p.applyDestroyCard(e, r)
	case protocol.AttachCardEvent:
		p.applyAttachCard(e, r)
	case protocol.DrawCardsEvent:
		p.applyDrawCards(e, r)
	case protocol.RevealCardsEvent:
		p.applyRevealCards(e, r)
	case protocol.UnknownEvent:
		p.logger.Warn("ignoring unknown event", zap.String("type", e.Type))
		r.Add(report.Change{Kind: report.KindUnknownEvent, Text: e.Type})
	default:
		p.logger.Warn("ignoring unhandled event", zap.String("type", string(ev.Kind())))
	}
	return r
}

func (p *Player) notFound(what string, fields ...zap.Field) {
	p.logger.Debug(what+" not found", fields...)
}

func (p *Player) applyCreateToken(e protocol.CreateTokenEvent, r *report.Report) {
	zone := p.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	c := cards.New(e.CardID, e.CardName)
	c.Color = e.Color
	c.PT = e.PT
	c.Annotation = e.Annotation
	c.DestroyOnZoneChange = e.DestroyOnZoneChange
	zone.Insert(c, e.X, e.Y)
	r.Add(report.Change{
		Kind:     report.KindCreateToken,
		Zone:     zone.Name,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
		Text:     c.PT,
		Flag:     c.DestroyOnZoneChange,
	})
}

func attrKind(name string) (report.Kind, bool) {
	switch name {
	case protocol.AttrTapped:
		return report.KindSetTapped, true
	case protocol.AttrAttacking:
		return report.KindSetAttacking, true
	case protocol.AttrFaceDown:
		return report.KindSetFaceDown, true
	case protocol.AttrAnnotation:
		return report.KindSetAnnotation, true
	case protocol.AttrDoesntUntap:
		return report.KindSetDoesntUntap, true
	case protocol.AttrPT:
		return report.KindSetPT, true
	}
	return "", false
}

func (p *Player) applySetCardAttr(e protocol.SetCardAttrEvent, ectx protocol.EventContext, r *report.Report) {
	zone := p.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	kind, known := attrKind(e.AttrName)
	if !known {
		p.logger.Debug("ignoring unknown card attribute", zap.String("attr", e.AttrName))
		return
	}
	change := report.Change{
		Kind:  kind,
		Zone:  zone.Name,
		Flag:  protocol.ParseBoolValue(e.AttrValue),
		Text:  e.AttrValue,
		Quiet: ectx == protocol.ContextMoveCard,
	}
	if e.CardID == protocol.NoCard {
		for _, c := range zone.Cards() {
			res := c.ApplyAttr(e.AttrName, e.AttrValue, true)
			if kind != report.KindSetTapped && res.Changed {
				per := change
				per.Card, per.CardID, per.CardName = c.Handle, c.ID, c.Name
				r.Add(per)
			}
		}
		if kind == report.KindSetTapped {
			change.CardID = protocol.NoCard
			r.Add(change)
		}
		return
	}
	c := zone.Card(e.CardID)
	if c == nil {
		p.notFound("card", zap.String("zone", e.Zone), zap.Int("card_id", e.CardID))
		return
	}
	c.ApplyAttr(e.AttrName, e.AttrValue, false)
	change.Card, change.CardID, change.CardName = c.Handle, c.ID, c.Name
	r.Add(change)
}

func (p *Player) applySetCardCounter(e protocol.SetCardCounterEvent, r *report.Report) {
	zone := p.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	c := zone.Card(e.CardID)
	if c == nil {
		p.notFound("card", zap.String("zone", e.Zone), zap.Int("card_id", e.CardID))
		return
	}
	old := c.SetCounter(e.CounterID, e.CounterValue)
	r.Add(report.Change{
		Kind:     report.KindSetCardCounter,
		Zone:     zone.Name,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
		ObjectID: e.CounterID,
		Value:    e.CounterValue,
		OldValue: old,
		Text:     counterName(e.CounterID),
	})
}

func (p *Player) applyDumpZone(e protocol.DumpZoneEvent, r *report.Report) {
	owner := p.lookupPlayer(e.ZoneOwnerID)
	if owner == nil {
		p.notFound("player", zap.Int("zone_owner_id", e.ZoneOwnerID))
		return
	}
	zone := owner.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	zone.AddViewer(p.id, e.NumberCards)
	r.Add(report.Change{
		Kind:           report.KindDumpZone,
		Zone:           zone.Name,
		TargetPlayerID: owner.id,
		Value:          e.NumberCards,
	})
}

func (p *Player) applyStopDumpZone(e protocol.StopDumpZoneEvent, r *report.Report) {
	owner := p.lookupPlayer(e.ZoneOwnerID)
	if owner == nil {
		p.notFound("player", zap.Int("zone_owner_id", e.ZoneOwnerID))
		return
	}
	zone := owner.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	zone.RemoveViewer(p.id)
	r.Add(report.Change{
		Kind:           report.KindStopDumpZone,
		Zone:           zone.Name,
		TargetPlayerID: owner.id,
	})
}

// applyMoveCard moves a card between zones, possibly of another player.
//
// Crossing zones gives the card its new id, severs its attachments in both directions, resets the
// state it had on the table and deletes every arrow touching it. Moving inside one zone keeps
// attachments and refreshes the arrows instead.
func (p *Player) applyMoveCard(e protocol.MoveCardEvent, ectx protocol.EventContext, r *report.Report) {
	startZone := p.zones[e.StartZone]
	targetPlayer := p.lookupPlayer(e.TargetPlayerID)
	if targetPlayer == nil {
		p.notFound("player", zap.Int("target_player_id", e.TargetPlayerID))
		return
	}
	targetZone := targetPlayer.zones[e.TargetZone]
	if startZone == nil || targetZone == nil {
		p.notFound("zone", zap.String("start_zone", e.StartZone), zap.String("target_zone", e.TargetZone))
		return
	}

	c := startZone.Take(e.Position, e.CardID)
	if c == nil {
		p.notFound("card", zap.String("zone", e.StartZone), zap.Int("card_id", e.CardID), zap.Int("position", e.Position))
		return
	}
	crossZone := startZone != targetZone
	c.Name = e.CardName

	if crossZone {
		p.detachFromParent(c, r)
		p.detachChildren(c, r)
		if startZone.IsTable() {
			c.ResetForZoneChange()
		}
	}
	c.ID = e.NewCardID
	c.FaceDown = e.FaceDown

	change := report.Change{
		Kind:           report.KindMoveCard,
		Zone:           startZone.Name,
		TargetPlayerID: targetPlayer.id,
		TargetZone:     targetZone.Name,
		Card:           c.Handle,
		CardID:         c.ID,
		CardName:       c.Name,
		Position:       e.Position,
		Value:          e.X,
		Flag:           startZone.OwnerID != targetZone.OwnerID,
	}
	if ectx == protocol.ContextUndoDraw {
		change.Kind = report.KindUndoDraw
	}
	r.Add(change)

	targetZone.Insert(c, e.X, e.Y)
	p.refreshArrows(c, crossZone, r)
}

func (p *Player) applyFlipCard(e protocol.FlipCardEvent, r *report.Report) {
	zone := p.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	c := zone.Card(e.CardID)
	if c == nil {
		p.notFound("card", zap.String("zone", e.Zone), zap.Int("card_id", e.CardID))
		return
	}
	if e.CardName != "" {
		c.Name = e.CardName
	}
	c.FaceDown = e.FaceDown
	r.Add(report.Change{
		Kind:     report.KindFlipCard,
		Zone:     zone.Name,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
		Flag:     e.FaceDown,
	})
}

// applyDestroyCard removes a card from the game. A destroyed card should never have cards attached;
// if it does they are detached and the inconsistency is logged.
func (p *Player) applyDestroyCard(e protocol.DestroyCardEvent, r *report.Report) {
	zone := p.zones[e.Zone]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.Zone))
		return
	}
	c := zone.Card(e.CardID)
	if c == nil {
		p.notFound("card", zap.String("zone", e.Zone), zap.Int("card_id", e.CardID))
		return
	}
	if children := p.Children(c.Handle); len(children) > 0 {
		p.logger.Warn("destroyed card still has attached cards",
			zap.String("zone", e.Zone),
			zap.Int("card_id", e.CardID),
			zap.Int("attached", len(children)))
		r.Add(report.Change{
			Kind:     report.KindInconsistency,
			Zone:     zone.Name,
			Card:     c.Handle,
			CardID:   c.ID,
			CardName: c.Name,
			Value:    len(children),
			Text:     "destroyed card had attached cards",
		})
	}
	r.Add(report.Change{
		Kind:     report.KindDestroyCard,
		Zone:     zone.Name,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
	})
	zone.Remove(c.Handle)
	p.releaseCard(c, r)
}

// applyAttachCard attaches a card of this player to a target card, or detaches it when the target
// does not resolve.
func (p *Player) applyAttachCard(e protocol.AttachCardEvent, r *report.Report) {
	var targetPlayer *Player
	var targetZone *zones.Zone
	var targetCard *cards.Card
	if e.TargetPlayerID != protocol.NoPlayer {
		targetPlayer = p.lookupPlayer(e.TargetPlayerID)
	}
	if targetPlayer != nil {
		targetZone = targetPlayer.zones[e.TargetZone]
	}
	if targetZone != nil {
		targetCard = targetZone.Card(e.TargetCardID)
	}

	startZone := p.zones[e.StartZone]
	if startZone == nil {
		p.notFound("zone", zap.String("zone", e.StartZone))
		return
	}
	c := startZone.Card(e.CardID)
	if c == nil {
		p.notFound("card", zap.String("zone", e.StartZone), zap.Int("card_id", e.CardID))
		return
	}

	oldParent := c.AttachedTo
	oldParentZone := p.zoneOf(oldParent)
	if targetCard != nil && targetCard != c {
		c.AttachedTo = targetCard.Handle
	} else {
		targetCard = nil
		c.Detach()
	}

	p.reorganize(startZone, r)
	if targetZone != nil && targetZone != startZone {
		p.reorganize(targetZone, r)
	}
	if oldParentZone != nil {
		p.reorganize(oldParentZone, r)
	}

	if targetCard != nil {
		r.Add(report.Change{
			Kind:           report.KindAttachCard,
			Zone:           startZone.Name,
			TargetPlayerID: targetPlayer.id,
			TargetZone:     targetZone.Name,
			Card:           c.Handle,
			CardID:         c.ID,
			CardName:       c.Name,
			TargetName:     targetCard.Name,
		})
		return
	}
	r.Add(report.Change{
		Kind:     report.KindUnattachCard,
		Zone:     startZone.Name,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
	})
}

// applyDrawCards moves cards from the top of the library to the hand. When the event names the
// cards they take those identities, otherwise the draw is blind.
func (p *Player) applyDrawCards(e protocol.DrawCardsEvent, r *report.Report) {
	deck := p.zones[protocol.ZoneDeck]
	hand := p.zones[protocol.ZoneHand]
	drawn := 0
	if len(e.Cards) > 0 {
		for _, info := range e.Cards {
			c := deck.Take(zones.ByID, info.ID)
			if c == nil {
				c = deck.Take(0, info.ID)
			}
			if c == nil {
				p.notFound("library card", zap.Int("card_id", info.ID))
				break
			}
			c.Name = info.Name
			hand.Insert(c, protocol.AppendPosition, 0)
			drawn++
		}
	} else {
		for i := 0; i < e.NumberCards; i++ {
			top := deck.At(0)
			if top == nil {
				p.notFound("library card", zap.Int("position", 0))
				break
			}
			hand.Insert(deck.Take(0, top.ID), protocol.AppendPosition, 0)
			drawn++
		}
	}
	p.reorganize(hand, r)
	p.reorganize(deck, r)
	r.Add(report.Change{Kind: report.KindDrawCards, Zone: deck.Name, TargetZone: hand.Name, Value: drawn})
}

func (p *Player) applyRevealCards(e protocol.RevealCardsEvent, r *report.Report) {
	zone := p.zones[e.ZoneName]
	if zone == nil {
		p.notFound("zone", zap.String("zone", e.ZoneName))
		return
	}
	if e.OtherPlayerID != protocol.NoPlayer && p.lookupPlayer(e.OtherPlayerID) == nil {
		p.notFound("player", zap.Int("other_player_id", e.OtherPlayerID))
		return
	}
	if len(e.Cards) > 0 {
		zone.SetRevealed(&zones.Reveal{CardID: e.CardID, ToPlayer: e.OtherPlayerID, Cards: e.Cards})
	}
	change := report.Change{
		Kind:           report.KindRevealCards,
		Zone:           zone.Name,
		TargetPlayerID: e.OtherPlayerID,
		CardID:         e.CardID,
		Value:          len(e.Cards),
	}
	if len(e.Cards) == 1 {
		change.CardName = e.Cards[0].Name
	}
	r.Add(change)
}
