package cards

import "github.com/magefree/mage-client-go/internal/game/protocol"

// Attr is the result of applying one attribute change to a card.
type Attr struct {
	Name    string
	Value   string
	Changed bool
	// Skipped is set when a wildcard untap left a doesn't-untap card tapped.
	Skipped bool
}

// ApplyAttr sets one wire attribute on the card. wildcard is true when the change addresses every
// card in the zone; a wildcard untap never untaps a card flagged doesn't-untap. Unknown attribute
// names are ignored and reported as unchanged.
func (c *Card) ApplyAttr(name, value string, wildcard bool) Attr {
	res := Attr{Name: name, Value: value}
	switch name {
	case protocol.AttrTapped:
		tapped := protocol.ParseBoolValue(value)
		if !tapped && wildcard && c.DoesntUntap {
			res.Skipped = true
			return res
		}
		res.Changed = c.Tapped != tapped
		c.Tapped = tapped
	case protocol.AttrAttacking:
		attacking := protocol.ParseBoolValue(value)
		res.Changed = c.Attacking != attacking
		c.Attacking = attacking
	case protocol.AttrFaceDown:
		faceDown := protocol.ParseBoolValue(value)
		res.Changed = c.FaceDown != faceDown
		c.FaceDown = faceDown
	case protocol.AttrAnnotation:
		res.Changed = c.Annotation != value
		c.Annotation = value
	case protocol.AttrDoesntUntap:
		doesntUntap := protocol.ParseBoolValue(value)
		res.Changed = c.DoesntUntap != doesntUntap
		c.DoesntUntap = doesntUntap
	case protocol.AttrPT:
		res.Changed = c.PT != value
		c.PT = value
	}
	return res
}
