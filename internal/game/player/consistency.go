package player

import (
	"github.com/google/uuid"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/counters"
	"github.com/magefree/mage-client-go/internal/game/report"
	"github.com/magefree/mage-client-go/internal/game/zones"
)

func counterName(id int) string {
	return counters.CardCounterName(id)
}

func (p *Player) zoneOf(h uuid.UUID) *zones.Zone {
	_, z := p.Locate(h)
	return z
}

func (p *Player) reorganize(z *zones.Zone, r *report.Report) {
	z.Reorganize()
	r.Add(report.Change{Kind: report.KindReorganizeZone, Zone: z.Name, TargetPlayerID: z.OwnerID})
}

// detachFromParent severs the card's link to the card it is attached to.
func (p *Player) detachFromParent(c *cards.Card, r *report.Report) {
	if !c.IsAttached() {
		return
	}
	parentZone := p.zoneOf(c.AttachedTo)
	c.Detach()
	r.Add(report.Change{
		Kind:     report.KindUnattachCard,
		Zone:     c.Zone,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
	})
	if parentZone != nil {
		p.reorganize(parentZone, r)
	}
}

// detachChildren severs every card attached to c. The children stay where they are.
func (p *Player) detachChildren(c *cards.Card, r *report.Report) {
	for _, child := range p.Children(c.Handle) {
		child.Detach()
		r.Add(report.Change{
			Kind:           report.KindUnattachCard,
			Zone:           child.Zone,
			TargetPlayerID: child.OwnerID,
			Card:           child.Handle,
			CardID:         child.ID,
			CardName:       child.Name,
		})
		if _, z := p.Locate(child.Handle); z != nil {
			p.reorganize(z, r)
		}
	}
}

// refreshArrows looks at every arrow of every player touching the card. Arrows survive a move
// inside one zone and are redrawn; any other move deletes them.
func (p *Player) refreshArrows(c *cards.Card, deleteArrows bool, r *report.Report) {
	for _, pl := range p.allPlayers() {
		for _, a := range pl.arrows.Touching(c.Handle) {
			change := report.Change{
				Kind:           report.KindUpdateArrow,
				TargetPlayerID: pl.id,
				Card:           c.Handle,
				CardID:         c.ID,
				CardName:       c.Name,
				ObjectID:       a.ID,
			}
			if deleteArrows {
				pl.arrows.Remove(a.ID)
				change.Kind = report.KindDeleteArrow
			} else {
				a.Refresh()
			}
			r.Add(change)
		}
	}
}

// releaseCard drops every reference to a card that has left its zone for good and deletes it.
func (p *Player) releaseCard(c *cards.Card, r *report.Report) {
	p.detachFromParent(c, r)
	p.detachChildren(c, r)
	p.refreshArrows(c, true, r)
	deferred := p.deleteCard(c)
	r.Add(report.Change{
		Kind:     report.KindDeleteCard,
		Zone:     c.Zone,
		Card:     c.Handle,
		CardID:   c.ID,
		CardName: c.Name,
		Flag:     deferred,
	})
}
