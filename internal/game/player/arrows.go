package player

import (
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/arrows"
	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/report"
)

func (p *Player) applyCreateArrows(e protocol.CreateArrowsEvent, r *report.Report) {
	for _, info := range e.Arrows {
		p.AddArrow(info, r)
	}
}

// AddArrow resolves both end points of an arrow and stores it. An arrow whose start card, target
// card or target player cannot be found is dropped and nil is returned.
func (p *Player) AddArrow(info protocol.ArrowInfo, r *report.Report) *arrows.Arrow {
	startPlayer := p.lookupPlayer(info.StartPlayerID)
	targetPlayer := p.lookupPlayer(info.TargetPlayerID)
	if startPlayer == nil || targetPlayer == nil {
		p.notFound("arrow player", zap.Int("arrow_id", info.ID))
		return nil
	}
	toPlayer := info.TargetZone == ""
	startZone := startPlayer.zones[info.StartZone]
	targetZone := targetPlayer.zones[info.TargetZone]
	if startZone == nil || (targetZone == nil && !toPlayer) {
		p.notFound("arrow zone", zap.Int("arrow_id", info.ID))
		return nil
	}
	start := startZone.Card(info.StartCardID)
	var target *cards.Card
	if targetZone != nil {
		target = targetZone.Card(info.TargetCardID)
	}
	if start == nil || (target == nil && !toPlayer) {
		p.notFound("arrow card", zap.Int("arrow_id", info.ID))
		return nil
	}

	a := &arrows.Arrow{
		ID:      info.ID,
		OwnerID: p.id,
		Color:   info.Color,
		Start:   start.Handle,
	}
	change := report.Change{
		Kind:           report.KindCreateArrow,
		Zone:           startZone.Name,
		TargetPlayerID: targetPlayer.id,
		Card:           start.Handle,
		CardID:         start.ID,
		CardName:       start.Name,
		ObjectID:       info.ID,
	}
	if target != nil {
		a.Target = arrows.CardTarget(target.Handle)
		change.TargetZone = targetZone.Name
		change.TargetName = target.Name
	} else {
		a.Target = arrows.PlayerTarget(targetPlayer.id)
	}
	p.arrows.Add(a)
	r.Add(change)
	return a
}

// DelArrow deletes one of this player's arrows. Unknown ids are ignored.
func (p *Player) DelArrow(id int, r *report.Report) {
	a := p.arrows.Remove(id)
	if a == nil {
		p.notFound("arrow", zap.Int("arrow_id", id))
		return
	}
	r.Add(report.Change{Kind: report.KindDeleteArrow, TargetPlayerID: p.id, Card: a.Start, ObjectID: a.ID})
}

func (p *Player) clearArrows(r *report.Report) {
	for _, a := range p.arrows.Clear() {
		r.Add(report.Change{Kind: report.KindDeleteArrow, TargetPlayerID: p.id, Card: a.Start, ObjectID: a.ID})
	}
}

// arrowInfo converts an arrow back to wire form. It fails when an end point no longer resolves.
func (p *Player) arrowInfo(a *arrows.Arrow) (protocol.ArrowInfo, bool) {
	start, startZone := p.Locate(a.Start)
	if start == nil {
		return protocol.ArrowInfo{}, false
	}
	info := protocol.ArrowInfo{
		ID:            a.ID,
		StartPlayerID: startZone.OwnerID,
		StartZone:     startZone.Name,
		StartCardID:   start.ID,
		Color:         a.Color,
	}
	if a.Target.Kind == arrows.TargetPlayer {
		info.TargetPlayerID = a.Target.PlayerID
		return info, true
	}
	target, targetZone := p.Locate(a.Target.Card)
	if target == nil {
		return protocol.ArrowInfo{}, false
	}
	info.TargetPlayerID = targetZone.OwnerID
	info.TargetZone = targetZone.Name
	info.TargetCardID = target.ID
	return info, true
}
