// Package report describes what an applied event changed. Every event application returns a
// Report; observers such as the game log or a renderer subscribe to them on a Bus.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// Kind is the category of one change. For KindRollDie, Value is the result and OldValue the
// number of sides.
type Kind string

const (
	KindConnectionState Kind = "connection_state"
	KindSay             Kind = "say"
	KindShuffle         Kind = "shuffle"
	KindRollDie         Kind = "roll_die"
	KindCreateArrow     Kind = "create_arrow"
	KindDeleteArrow     Kind = "delete_arrow"
	KindUpdateArrow     Kind = "update_arrow"
	KindCreateToken     Kind = "create_token"
	KindSetTapped       Kind = "set_tapped"
	KindSetAttacking    Kind = "set_attacking"
	KindSetFaceDown     Kind = "set_face_down"
	KindSetAnnotation   Kind = "set_annotation"
	KindSetDoesntUntap  Kind = "set_doesnt_untap"
	KindSetPT           Kind = "set_pt"
	KindSetCardCounter  Kind = "set_card_counter"
	KindCreateCounter   Kind = "create_counter"
	KindSetCounter      Kind = "set_counter"
	KindDeleteCounter   Kind = "delete_counter"
	KindDumpZone        Kind = "dump_zone"
	KindStopDumpZone    Kind = "stop_dump_zone"
	KindMoveCard        Kind = "move_card"
	KindUndoDraw        Kind = "undo_draw"
	KindFlipCard        Kind = "flip_card"
	KindDestroyCard     Kind = "destroy_card"
	KindAttachCard      Kind = "attach_card"
	KindUnattachCard    Kind = "unattach_card"
	KindDrawCards       Kind = "draw_cards"
	KindRevealCards     Kind = "reveal_cards"
	KindReorganizeZone  Kind = "reorganize_zone"
	KindDeleteCard      Kind = "delete_card"
	KindConceded        Kind = "conceded"
	KindViewZone        Kind = "view_zone"
	KindInconsistency   Kind = "inconsistency"
	KindUnknownEvent    Kind = "unknown_event"
)

// Change is one observable effect. Only the fields relevant to Kind are set.
type Change struct {
	Kind     Kind
	PlayerID int

	Zone           string
	TargetPlayerID int
	TargetZone     string

	Card       uuid.UUID
	CardID     int
	CardName   string
	TargetName string

	// ObjectID is the counter or arrow id for counter and arrow changes.
	ObjectID int
	Position int
	Value    int
	OldValue int
	Flag     bool
	Text     string
	// Quiet marks a change that should not be animated.
	Quiet bool
}

// String renders the change as a game log line.
func (c Change) String() string {
	name := c.CardName
	if name == "" {
		name = "a card"
	}
	switch c.Kind {
	case KindConnectionState:
		if c.Flag {
			return fmt.Sprintf("player %d has restored connection", c.PlayerID)
		}
		return fmt.Sprintf("player %d has lost connection", c.PlayerID)
	case KindSay:
		return fmt.Sprintf("player %d: %s", c.PlayerID, c.Text)
	case KindShuffle:
		return fmt.Sprintf("player %d shuffles their library", c.PlayerID)
	case KindRollDie:
		return fmt.Sprintf("player %d rolls a %d with a %d-sided die", c.PlayerID, c.Value, c.OldValue)
	case KindCreateArrow:
		if c.TargetZone == "" {
			return fmt.Sprintf("player %d points from %s to player %d", c.PlayerID, name, c.TargetPlayerID)
		}
		return fmt.Sprintf("player %d points from %s to %s", c.PlayerID, name, c.TargetName)
	case KindCreateToken:
		return fmt.Sprintf("player %d creates token %s (%s)", c.PlayerID, name, c.Text)
	case KindSetTapped:
		verb := "untaps"
		if c.Flag {
			verb = "taps"
		}
		if c.CardID == protocol.NoCard {
			return fmt.Sprintf("player %d %s their permanents", c.PlayerID, verb)
		}
		return fmt.Sprintf("player %d %s %s", c.PlayerID, verb, name)
	case KindSetAnnotation:
		return fmt.Sprintf("player %d sets annotation of %s to %q", c.PlayerID, name, c.Text)
	case KindSetDoesntUntap:
		if c.Flag {
			return fmt.Sprintf("%s will no longer untap normally", name)
		}
		return fmt.Sprintf("%s will untap normally", name)
	case KindSetPT:
		return fmt.Sprintf("player %d sets PT of %s to %s", c.PlayerID, name, c.Text)
	case KindSetCardCounter:
		return fmt.Sprintf("player %d sets %s counters on %s to %d (was %d)", c.PlayerID, c.Text, name, c.Value, c.OldValue)
	case KindSetCounter:
		return fmt.Sprintf("player %d sets counter %s to %d (was %d)", c.PlayerID, c.Text, c.Value, c.OldValue)
	case KindDumpZone:
		if c.Value == -1 {
			return fmt.Sprintf("player %d is looking at %s of player %d", c.PlayerID, c.Zone, c.TargetPlayerID)
		}
		return fmt.Sprintf("player %d is looking at the top %d cards of %s of player %d", c.PlayerID, c.Value, c.Zone, c.TargetPlayerID)
	case KindStopDumpZone:
		return fmt.Sprintf("player %d stops looking at %s of player %d", c.PlayerID, c.Zone, c.TargetPlayerID)
	case KindMoveCard:
		return fmt.Sprintf("player %d moves %s from %s to %s", c.PlayerID, name, c.Zone, c.TargetZone)
	case KindUndoDraw:
		return fmt.Sprintf("player %d undoes their last draw (%s)", c.PlayerID, name)
	case KindFlipCard:
		if c.Flag {
			return fmt.Sprintf("player %d turns %s face down", c.PlayerID, name)
		}
		return fmt.Sprintf("player %d turns %s face up", c.PlayerID, name)
	case KindDestroyCard:
		return fmt.Sprintf("player %d destroys %s", c.PlayerID, name)
	case KindAttachCard:
		return fmt.Sprintf("player %d attaches %s to %s of player %d", c.PlayerID, name, c.TargetName, c.TargetPlayerID)
	case KindUnattachCard:
		return fmt.Sprintf("player %d unattaches %s", c.PlayerID, name)
	case KindDrawCards:
		return fmt.Sprintf("player %d draws %d card(s)", c.PlayerID, c.Value)
	case KindRevealCards:
		return fmt.Sprintf("player %d reveals %s from %s", c.PlayerID, name, c.Zone)
	case KindConceded:
		return fmt.Sprintf("player %d has conceded", c.PlayerID)
	}
	parts := []string{string(c.Kind), fmt.Sprintf("player=%d", c.PlayerID)}
	if c.Zone != "" {
		parts = append(parts, "zone="+c.Zone)
	}
	if c.CardName != "" {
		parts = append(parts, "card="+c.CardName)
	}
	if c.Text != "" {
		parts = append(parts, "text="+c.Text)
	}
	return strings.Join(parts, " ")
}

// Report collects the changes caused by one applied event.
type Report struct {
	PlayerID int
	Event    protocol.EventKind
	Context  protocol.EventContext
	Changes  []Change
}

// New creates an empty report.
func New(playerID int, event protocol.EventKind, ctx protocol.EventContext) *Report {
	return &Report{PlayerID: playerID, Event: event, Context: ctx}
}

// Add appends a change made by the reporting player. Adding to a nil report is a no-op.
func (r *Report) Add(c Change) {
	if r == nil {
		return
	}
	c.PlayerID = r.PlayerID
	r.Changes = append(r.Changes, c)
}

// Empty reports whether the event had no observable effect.
func (r *Report) Empty() bool {
	return r == nil || len(r.Changes) == 0
}

// Has reports whether any change is of the given kind.
func (r *Report) Has(kind Kind) bool {
	return len(r.Find(kind)) > 0
}

// Find returns the changes of the given kind in order.
func (r *Report) Find(kind Kind) []Change {
	if r == nil {
		return nil
	}
	var out []Change
	for _, c := range r.Changes {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Merge appends the changes of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Changes = append(r.Changes, other.Changes...)
}
