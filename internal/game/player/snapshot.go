package player

import (
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/report"
)

// ProcessPlayerInfo rebuilds zones, counters and the conceded flag from a snapshot. Attachments
// and arrows may point at players that are not rebuilt yet, so they are restored afterwards by
// ProcessCardAttachments and ProcessArrows once every player has gone through this first pass.
func (p *Player) ProcessPlayerInfo(info protocol.PlayerInfo) *report.Report {
	r := report.New(p.id, snapshotEvent, protocol.NoContext)
	p.clearArrows(r)
	p.clearCounters(r)
	p.clearZones(r)
	if info.Name != "" {
		p.name = info.Name
	}

	for _, zi := range info.Zones {
		zone := p.zones[zi.Name]
		if zone == nil {
			p.notFound("snapshot zone", zap.String("zone", zi.Name))
			continue
		}
		if len(zi.Cards) == 0 {
			for i := 0; i < zi.CardCount; i++ {
				zone.Insert(cards.NewHidden(), protocol.AppendPosition, 0)
			}
		} else {
			for _, ci := range zi.Cards {
				c := cards.FromInfo(ci)
				if zone.IsTable() {
					zone.Insert(c, ci.X, ci.Y)
				} else {
					zone.Insert(c, protocol.AppendPosition, 0)
				}
			}
		}
		p.reorganize(zone, r)
	}

	for _, ci := range info.Counters {
		p.AddCounter(ci, r)
	}

	p.setConceded(info.Conceded, r)
	return r
}

// ProcessCardAttachments restores the attachments listed in a snapshot. Targets that cannot be
// resolved are skipped.
func (p *Player) ProcessCardAttachments(info protocol.PlayerInfo) *report.Report {
	r := report.New(p.id, snapshotEvent, protocol.NoContext)
	for _, zi := range info.Zones {
		zone := p.zones[zi.Name]
		if zone == nil {
			continue
		}
		for _, ci := range zi.Cards {
			if ci.Attached == nil || ci.Attached.PlayerID == protocol.NoPlayer {
				continue
			}
			c := zone.Card(ci.ID)
			target := p.ResolveCard(ci.Attached.PlayerID, ci.Attached.Zone, ci.Attached.CardID)
			if c == nil || target == nil || target == c {
				p.notFound("attachment target", zap.String("zone", zi.Name), zap.Int("card_id", ci.ID))
				continue
			}
			c.AttachedTo = target.Handle
			r.Add(report.Change{
				Kind:           report.KindAttachCard,
				Zone:           zone.Name,
				TargetPlayerID: ci.Attached.PlayerID,
				TargetZone:     ci.Attached.Zone,
				Card:           c.Handle,
				CardID:         c.ID,
				CardName:       c.Name,
				TargetName:     target.Name,
			})
		}
	}
	return r
}

// ProcessArrows restores the arrows listed in a snapshot, skipping unresolvable ones.
func (p *Player) ProcessArrows(info protocol.PlayerInfo) *report.Report {
	r := report.New(p.id, snapshotEvent, protocol.NoContext)
	for _, ai := range info.Arrows {
		p.AddArrow(ai, r)
	}
	return r
}

// Info converts the player to a snapshot. Zones whose contents this client does not know are
// listed by count only.
func (p *Player) Info() protocol.PlayerInfo {
	info := protocol.PlayerInfo{
		ID:       p.id,
		Name:     p.name,
		Conceded: p.conceded,
		Counters: p.counters.ToInfo(),
	}
	for _, z := range p.Zones() {
		zi := z.Info()
		for i, c := range z.Cards() {
			if i >= len(zi.Cards) || !c.IsAttached() {
				continue
			}
			if parent, pz := p.Locate(c.AttachedTo); parent != nil {
				zi.Cards[i].Attached = &protocol.AttachInfo{PlayerID: pz.OwnerID, Zone: pz.Name, CardID: parent.ID}
			}
		}
		info.Zones = append(info.Zones, zi)
	}
	for _, a := range p.arrows.Sorted() {
		if ai, ok := p.arrowInfo(a); ok {
			info.Arrows = append(info.Arrows, ai)
		}
	}
	return info
}

// SetConceded updates the conceded flag. Conceding clears the player's cards, counters and arrows.
func (p *Player) SetConceded(conceded bool) *report.Report {
	r := report.New(p.id, concedeEvent, protocol.NoContext)
	p.setConceded(conceded, r)
	return r
}

func (p *Player) setConceded(conceded bool, r *report.Report) {
	changed := p.conceded != conceded
	p.conceded = conceded
	if conceded {
		p.Clear(r)
	}
	if changed {
		r.Add(report.Change{Kind: report.KindConceded, Flag: conceded})
	}
}

// Clear removes every arrow, card and counter of the player.
func (p *Player) Clear(r *report.Report) {
	p.clearArrows(r)
	p.clearZones(r)
	p.clearCounters(r)
}

func (p *Player) clearZones(r *report.Report) {
	for _, z := range p.Zones() {
		removed := z.Clear()
		for _, c := range removed {
			p.releaseCard(c, r)
		}
	}
}
