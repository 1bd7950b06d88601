package player

import (
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/counters"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/report"
)

// AddCounter creates a player counter. It returns nil and changes nothing when the id is taken.
// The life counter is also bound to the player target.
func (p *Player) AddCounter(info protocol.CounterInfo, r *report.Report) *counters.Counter {
	c := p.counters.Add(counters.NewCounter(info))
	if c == nil {
		p.logger.Debug("counter already exists", zap.Int("counter_id", info.ID), zap.String("name", info.Name))
		return nil
	}
	if c.IsLife() {
		p.target.life = c
	}
	r.Add(report.Change{Kind: report.KindCreateCounter, ObjectID: c.ID, Text: c.Name, Value: c.Value})
	return c
}

// DelCounter deletes a player counter. Unknown ids are ignored.
func (p *Player) DelCounter(id int, r *report.Report) {
	c := p.counters.Remove(id)
	if c == nil {
		p.notFound("counter", zap.Int("counter_id", id))
		return
	}
	if p.target.life == c {
		p.target.life = nil
	}
	r.Add(report.Change{Kind: report.KindDeleteCounter, ObjectID: c.ID, Text: c.Name, OldValue: c.Value})
}

func (p *Player) applySetCounter(e protocol.SetCounterEvent, r *report.Report) {
	c := p.counters.Get(e.CounterID)
	if c == nil {
		p.notFound("counter", zap.Int("counter_id", e.CounterID))
		return
	}
	old := c.SetValue(e.Value)
	r.Add(report.Change{Kind: report.KindSetCounter, ObjectID: c.ID, Text: c.Name, Value: e.Value, OldValue: old})
}

func (p *Player) clearCounters(r *report.Report) {
	for _, c := range p.counters.Sorted() {
		r.Add(report.Change{Kind: report.KindDeleteCounter, ObjectID: c.ID, Text: c.Name, OldValue: c.Value})
	}
	p.counters.Clear()
	p.target.life = nil
}
