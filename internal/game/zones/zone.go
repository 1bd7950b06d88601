// Package zones holds the ordered card containers owned by a player.
package zones

import (
	"github.com/google/uuid"

	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// ByID is the Take position that looks the card up by id only.
const ByID = -1

// Zone is an ordered list of cards. Index 0 is the top of a library.
//
// A zone whose contents are not known (library, sideboard, an opponent's hand) only tracks how many
// cards it holds; cards in it carry protocol id -1 and are addressed by position.
type Zone struct {
	Name    string
	OwnerID int

	contentsKnown bool
	cards         []*cards.Card
	revision      int

	viewers  map[int]int
	revealed *Reveal
}

// Reveal is the last set of cards revealed from this zone.
type Reveal struct {
	CardID   int
	ToPlayer int
	Cards    []protocol.CardInfo
}

// New creates an empty zone.
func New(name string, ownerID int, contentsKnown bool) *Zone {
	return &Zone{
		Name:          name,
		OwnerID:       ownerID,
		contentsKnown: contentsKnown,
		viewers:       make(map[int]int),
	}
}

// ContentsKnown reports whether this client knows the identities of the cards in the zone.
func (z *Zone) ContentsKnown() bool {
	return z.contentsKnown
}

// IsTable reports whether cards in the zone are placed on a grid instead of a list.
func (z *Zone) IsTable() bool {
	return z.Name == protocol.ZoneTable
}

// Len returns the number of cards.
func (z *Zone) Len() int {
	return len(z.cards)
}

// Revision increases on every change to membership or layout.
func (z *Zone) Revision() int {
	return z.revision
}

// Cards returns the cards in order. The slice is a copy; the cards are not.
func (z *Zone) Cards() []*cards.Card {
	out := make([]*cards.Card, len(z.cards))
	copy(out, z.cards)
	return out
}

// At returns the card at position i, or nil when out of range.
func (z *Zone) At(i int) *cards.Card {
	if i < 0 || i >= len(z.cards) {
		return nil
	}
	return z.cards[i]
}

// Card finds a card by protocol id. In a zone with unknown contents the id is the position.
func (z *Zone) Card(id int) *cards.Card {
	for _, c := range z.cards {
		if c.ID == id && id != protocol.NoCard {
			return c
		}
	}
	if !z.contentsKnown {
		return z.At(id)
	}
	return nil
}

// ByHandle finds a card by handle.
func (z *Zone) ByHandle(h uuid.UUID) *cards.Card {
	if i := z.IndexOf(h); i >= 0 {
		return z.cards[i]
	}
	return nil
}

// IndexOf returns the position of the card with the given handle, or -1.
func (z *Zone) IndexOf(h uuid.UUID) int {
	for i, c := range z.cards {
		if c.Handle == h {
			return i
		}
	}
	return -1
}

// Take removes a card and gives it the protocol id id.
//
// position -1 means the card is found by id only; an id that is not present yields nil. A position
// past the end yields nil.
func (z *Zone) Take(position, id int) *cards.Card {
	if position == ByID {
		for i, c := range z.cards {
			if c.ID == id {
				position = i
				break
			}
		}
		if position == ByID {
			return nil
		}
	}
	if position < 0 || position >= len(z.cards) {
		return nil
	}
	c := z.cards[position]
	z.cards = append(z.cards[:position], z.cards[position+1:]...)
	c.ID = id
	z.revision++
	return c
}

// Remove removes the card with the given handle and returns it, or nil.
func (z *Zone) Remove(h uuid.UUID) *cards.Card {
	i := z.IndexOf(h)
	if i < 0 {
		return nil
	}
	c := z.cards[i]
	z.cards = append(z.cards[:i], z.cards[i+1:]...)
	z.revision++
	return c
}

// Insert adds a card. On the table x and y are grid coordinates and x -1 picks the next free
// column of row y. Elsewhere x is the list index and -1 appends at the bottom.
func (z *Zone) Insert(c *cards.Card, x, y int) {
	c.Zone = z.Name
	c.OwnerID = z.OwnerID
	z.revision++
	if z.IsTable() {
		if x < 0 {
			x = z.nextFreeColumn(y)
		}
		c.X, c.Y = x, y
		z.cards = append(z.cards, c)
		return
	}
	c.X, c.Y = 0, 0
	if x < 0 || x >= len(z.cards) {
		z.cards = append(z.cards, c)
		return
	}
	z.cards = append(z.cards, nil)
	copy(z.cards[x+1:], z.cards[x:])
	z.cards[x] = c
}

func (z *Zone) nextFreeColumn(row int) int {
	next := 0
	for _, c := range z.cards {
		if c.Y == row && c.X >= next {
			next = c.X + 1
		}
	}
	return next
}

// Clear removes every card and view state and returns the removed cards.
func (z *Zone) Clear() []*cards.Card {
	removed := z.cards
	z.cards = nil
	z.viewers = make(map[int]int)
	z.revealed = nil
	z.revision++
	return removed
}

// Reorganize marks the zone layout as changed.
func (z *Zone) Reorganize() {
	z.revision++
}

// AddViewer records that a player is looking at the zone. numberCards -1 means the whole zone.
func (z *Zone) AddViewer(playerID, numberCards int) {
	z.viewers[playerID] = numberCards
}

// RemoveViewer forgets a viewer and reports whether it was viewing.
func (z *Zone) RemoveViewer(playerID int) bool {
	if _, ok := z.viewers[playerID]; !ok {
		return false
	}
	delete(z.viewers, playerID)
	return true
}

// Viewers returns a copy of the viewer map.
func (z *Zone) Viewers() map[int]int {
	out := make(map[int]int, len(z.viewers))
	for id, n := range z.viewers {
		out[id] = n
	}
	return out
}

// SetRevealed stores the cards of the latest reveal.
func (z *Zone) SetRevealed(r *Reveal) {
	z.revealed = r
}

// Revealed returns the latest reveal, or nil.
func (z *Zone) Revealed() *Reveal {
	return z.revealed
}

// Info converts the zone to a snapshot description. Cards are listed only when known.
func (z *Zone) Info() protocol.ZoneInfo {
	info := protocol.ZoneInfo{Name: z.Name, CardCount: len(z.cards)}
	if z.contentsKnown {
		for _, c := range z.cards {
			info.Cards = append(info.Cards, c.Info())
		}
	}
	return info
}
