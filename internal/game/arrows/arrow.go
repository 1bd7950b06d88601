// Package arrows models the directed annotations players draw from a card to a card or a player.
package arrows

import (
	"sort"

	"github.com/google/uuid"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// TargetKind tells which half of a Target is set.
type TargetKind int

const (
	TargetCard TargetKind = iota
	TargetPlayer
)

func (k TargetKind) String() string {
	if k == TargetPlayer {
		return "player"
	}
	return "card"
}

// Target is the end point of an arrow: a card handle or a player target.
type Target struct {
	Kind     TargetKind
	Card     uuid.UUID
	PlayerID int
}

// CardTarget points at a card.
func CardTarget(h uuid.UUID) Target {
	return Target{Kind: TargetCard, Card: h, PlayerID: protocol.NoPlayer}
}

// PlayerTarget points at a player.
func PlayerTarget(playerID int) Target {
	return Target{Kind: TargetPlayer, PlayerID: playerID}
}

// Arrow belongs to the player who created it. Its end points are weak card handles.
type Arrow struct {
	ID      int
	OwnerID int
	Color   protocol.Color
	Start   uuid.UUID
	Target  Target

	// Revision increases every time the arrow geometry is refreshed.
	Revision int
}

// Touches reports whether the arrow starts or ends at the card.
func (a *Arrow) Touches(h uuid.UUID) bool {
	if a.Start == h {
		return true
	}
	return a.Target.Kind == TargetCard && a.Target.Card == h
}

// Refresh marks the arrow path as needing a redraw.
func (a *Arrow) Refresh() {
	a.Revision++
}

// Set holds the arrows of one player keyed by id.
type Set struct {
	arrows map[int]*Arrow
}

// NewSet creates an empty arrow set.
func NewSet() *Set {
	return &Set{arrows: make(map[int]*Arrow)}
}

// Add stores the arrow, replacing any arrow with the same id, and returns the replaced one.
func (s *Set) Add(a *Arrow) *Arrow {
	old := s.arrows[a.ID]
	s.arrows[a.ID] = a
	return old
}

// Get returns the arrow with the given id, or nil.
func (s *Set) Get(id int) *Arrow {
	return s.arrows[id]
}

// Remove deletes the arrow and returns it, or nil when there was none.
func (s *Set) Remove(id int) *Arrow {
	a, ok := s.arrows[id]
	if !ok {
		return nil
	}
	delete(s.arrows, id)
	return a
}

// Clear removes every arrow and returns them ordered by id.
func (s *Set) Clear() []*Arrow {
	removed := s.Sorted()
	s.arrows = make(map[int]*Arrow)
	return removed
}

// Len returns the number of arrows.
func (s *Set) Len() int {
	return len(s.arrows)
}

// Sorted returns the arrows ordered by id.
func (s *Set) Sorted() []*Arrow {
	result := make([]*Arrow, 0, len(s.arrows))
	for _, a := range s.arrows {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Touching returns the arrows that start or end at the card, ordered by id.
func (s *Set) Touching(h uuid.UUID) []*Arrow {
	var result []*Arrow
	for _, a := range s.Sorted() {
		if a.Touches(h) {
			result = append(result, a)
		}
	}
	return result
}
