// Package cards holds the client-side card entity.
package cards

import (
	"github.com/google/uuid"

	"github.com/magefree/mage-client-go/internal/game/counters"
	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// Card is one physical game object as seen by this client.
//
// ID is assigned by the server and is only unique inside the card's current zone; it changes on
// every cross-zone move. Handle never changes and is what attachments, arrows and selections hold
// on to.
type Card struct {
	Handle  uuid.UUID
	ID      int
	OwnerID int
	Zone    string

	Name                string
	Color               string
	PT                  string
	Annotation          string
	FaceDown            bool
	Tapped              bool
	DoesntUntap         bool
	Attacking           bool
	DestroyOnZoneChange bool

	// X and Y are the grid coordinates of the card on the table.
	X int
	Y int

	Counters counters.CardCounters

	// AttachedTo is the handle of the parent card, uuid.Nil when not attached.
	AttachedTo uuid.UUID
}

// New creates a card with a fresh handle.
func New(id int, name string) *Card {
	return &Card{
		Handle:   uuid.New(),
		ID:       id,
		Name:     name,
		Counters: make(counters.CardCounters),
	}
}

// NewHidden creates a card whose identity is not known to this client.
func NewHidden() *Card {
	return New(protocol.NoCard, "")
}

// FromInfo creates a card from a snapshot description. The attachment is resolved separately
// because its target may not exist yet.
func FromInfo(info protocol.CardInfo) *Card {
	c := New(info.ID, info.Name)
	c.X = info.X
	c.Y = info.Y
	c.Tapped = info.Tapped
	c.Attacking = info.Attacking
	c.Color = info.Color
	c.PT = info.PT
	c.Annotation = info.Annotation
	c.FaceDown = info.FaceDown
	c.DestroyOnZoneChange = info.DestroyOnZoneChange
	c.DoesntUntap = info.DoesntUntap
	c.Counters = counters.CardCountersFromInfo(info.Counters)
	return c
}

// Info converts the card back to a snapshot description without attachment.
func (c *Card) Info() protocol.CardInfo {
	return protocol.CardInfo{
		ID:                  c.ID,
		Name:                c.Name,
		X:                   c.X,
		Y:                   c.Y,
		Counters:            c.Counters.ToInfo(),
		Tapped:              c.Tapped,
		Attacking:           c.Attacking,
		Color:               c.Color,
		PT:                  c.PT,
		Annotation:          c.Annotation,
		FaceDown:            c.FaceDown,
		DestroyOnZoneChange: c.DestroyOnZoneChange,
		DoesntUntap:         c.DoesntUntap,
	}
}

// IsAttached reports whether the card is attached to a parent.
func (c *Card) IsAttached() bool {
	return c.AttachedTo != uuid.Nil
}

// Detach clears the attachment and returns the previous parent handle.
func (c *Card) Detach() uuid.UUID {
	parent := c.AttachedTo
	c.AttachedTo = uuid.Nil
	return parent
}

// SetCounter overwrites a card counter and returns its previous value.
func (c *Card) SetCounter(id, value int) int {
	if c.Counters == nil {
		c.Counters = make(counters.CardCounters)
	}
	return c.Counters.Set(id, value)
}

// Counter returns the value of a card counter.
func (c *Card) Counter(id int) int {
	return c.Counters.Get(id)
}

// ResetForZoneChange clears the per-zone state a card loses when it leaves its zone.
func (c *Card) ResetForZoneChange() {
	c.Tapped = false
	c.Attacking = false
	c.DoesntUntap = false
	c.Annotation = ""
	c.PT = ""
	c.Counters = make(counters.CardCounters)
	c.AttachedTo = uuid.Nil
}

// Copy creates a deep copy keeping the handle.
func (c *Card) Copy() *Card {
	copy := *c
	copy.Counters = c.Counters.Copy()
	return &copy
}
