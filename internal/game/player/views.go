package player

import (
	"context"
	"sort"

	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/report"
)

// ViewAll is the view size of a whole zone.
const ViewAll = -1

// ZoneView is a zone the local user has opened for browsing.
type ZoneView struct {
	Zone        string
	NumberCards int
}

// ToggleZoneView opens a view of n cards of one of this player's zones, or closes it when the
// same view is already open. Views are local and send nothing to the server.
func (p *Player) ToggleZoneView(zone string, n int) *report.Report {
	r := report.New(p.id, viewEvent, protocol.NoContext)
	if p.zones[zone] == nil {
		return r
	}
	if current, ok := p.views[zone]; ok && current == n {
		delete(p.views, zone)
		r.Add(report.Change{Kind: report.KindViewZone, Zone: zone, Value: n, Flag: false})
		return r
	}
	p.views[zone] = n
	r.Add(report.Change{Kind: report.KindViewZone, Zone: zone, Value: n, Flag: true})
	return r
}

// PromptViewTopCards asks how many library cards to view and remembers the answer.
func (p *Player) PromptViewTopCards(ctx context.Context) *report.Report {
	n, ok := p.promptInt(ctx, IntRequest{
		Title:   "View top cards of library",
		Label:   "Number of cards:",
		Default: p.defaultTopCards,
		Min:     1,
		Max:     2000000000,
	}, false)
	if !ok {
		return report.New(p.id, viewEvent, protocol.NoContext)
	}
	p.defaultTopCards = n
	return p.ToggleZoneView(protocol.ZoneDeck, n)
}

func (p *Player) ViewLibrary() *report.Report   { return p.ToggleZoneView(protocol.ZoneDeck, ViewAll) }
func (p *Player) ViewGraveyard() *report.Report { return p.ToggleZoneView(protocol.ZoneGrave, ViewAll) }
func (p *Player) ViewExile() *report.Report     { return p.ToggleZoneView(protocol.ZoneExile, ViewAll) }
func (p *Player) ViewSideboard() *report.Report { return p.ToggleZoneView(protocol.ZoneSideboard, ViewAll) }

// Views returns the open zone views ordered by zone name.
func (p *Player) Views() []ZoneView {
	out := make([]ZoneView, 0, len(p.views))
	for zone, n := range p.views {
		out = append(out, ZoneView{Zone: zone, NumberCards: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out
}
